package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/fraudshield/internal/cli"
	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/tui"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260101120000[0:GMT]
<DTEND>20260131120000[0:GMT]
<STMTTRN>
<TRNTYPE>POS
<DTPOSTED>20260115120000[0:GMT]
<TRNAMT>-25.50
<FITID>JAN01
<NAME>STARBUCKS
</STMTTRN>
<STMTTRN>
<TRNTYPE>ATM
<DTPOSTED>20260116030000[0:GMT]
<TRNAMT>-4000.00
<FITID>JAN02
<NAME>ATM WITHDRAWAL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20260131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// scoringServer answers /predict, flagging anything above $1000.
type scoringServer struct {
	received []map[string]any
	mu       sync.Mutex
}

func (s *scoringServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/predict":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.received = append(s.received, body)
		s.mu.Unlock()

		resp := map[string]any{"transaction_id": body["transaction_id"], "prediction": "Legitimate", "risk_score": 0.1, "reason": ""}
		if amount, _ := body["transaction_amount"].(float64); amount > 1000 {
			resp["prediction"] = "Fraud"
			resp["risk_score"] = 0.96
			resp["reason"] = "Large cash withdrawal"
		}
		_ = json.NewEncoder(w).Encode(resp)
	case "/metrics":
		_ = json.NewEncoder(w).Encode(map[string]float64{"accuracy": 0.951, "precision": 0.8, "recall": 0.778, "f1_score": 0.79, "auc": 0.9})
	case "/alerts":
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"transaction_id": "TXN-A", "risk_score": 0.91, "reason": "Velocity", "timestamp": "2026-03-04T09:15:00"},
		})
	default:
		http.NotFound(w, r)
	}
}

// execute runs the CLI with args and returns its plain stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	t.Cleanup(viper.Reset)

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--log-level", "error"))

	err := root.ExecuteContext(context.Background())
	return ansi.ReplaceAllString(out.String(), ""), err
}

func TestParseView(t *testing.T) {
	for _, v := range tui.Views {
		got, err := parseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	got, err := parseView("ALERTS")
	require.NoError(t, err)
	assert.Equal(t, tui.ViewAlerts, got)

	_, err = parseView("dashboard")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestDraftFromFlags(t *testing.T) {
	now := time.Date(2026, 3, 4, 14, 30, 0, 0, time.UTC)

	cmd := scoreCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--amount", "980.5", "--channel", "ATM", "--kyc=false", "--hour", "3"}))

	draft, err := draftFromFlags(cmd, now)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCustomerID, draft.CustomerID)
	assert.InDelta(t, 980.5, draft.TransactionAmount, 0.001)
	assert.Equal(t, model.ChannelATM, draft.Channel)
	assert.False(t, draft.KYCVerified)
	assert.Equal(t, 3, draft.Hour)
	assert.Equal(t, 3, draft.Weekday, "unset weekday comes from the clock")
	assert.NotEmpty(t, draft.TransactionID)
}

func TestDraftFromFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "hour out of range", args: []string{"--hour", "25"}},
		{name: "unknown channel", args: []string{"--channel", "fax"}},
		{name: "negative amount", args: []string{"--amount", "-4"}},
		{name: "blank customer", args: []string{"--customer", " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := scoreCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			_, err := draftFromFlags(cmd, time.Now())
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestScoreCommand(t *testing.T) {
	srv := &scoringServer{}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	out, err := execute(t, "score", "--base-url", ts.URL, "--amount", "5000", "--customer", "CUST-042")
	require.NoError(t, err)

	require.Len(t, srv.received, 1)
	assert.Equal(t, "CUST-042", srv.received[0]["customer_id"])
	assert.Contains(t, out, "FRAUD")
	assert.Contains(t, out, "96%")
}

func TestScoreCommand_ServiceDown(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := execute(t, "score", "--base-url", url)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNetwork)
	assert.Contains(t, common.UserMessage(err, ""), "scoring service unreachable")
}

func TestReportError(t *testing.T) {
	var out bytes.Buffer
	reportError(&out, common.NewUserError("No statement files found", errors.New("no files matched")))
	assert.Equal(t, cli.ErrorIcon+" No statement files found\n", ansi.ReplaceAllString(out.String(), ""))

	out.Reset()
	reportError(&out, errors.New("boom"))
	assert.Equal(t, cli.ErrorIcon+" boom\n", ansi.ReplaceAllString(out.String(), ""))
}

func TestAlertsAndMetricsCommands(t *testing.T) {
	ts := httptest.NewServer(&scoringServer{})
	defer ts.Close()

	out, err := execute(t, "alerts", "--base-url", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "TXN-A")
	assert.Contains(t, out, "Critical")

	out, err = execute(t, "metrics", "--base-url", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "95.1%")
}

func TestScoreOFXCommand(t *testing.T) {
	srv := &scoringServer{}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "jan.qfx")
	require.NoError(t, os.WriteFile(path, []byte(testStatement), 0o600))
	// The same statement twice is scored once.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jan-copy.qfx"), []byte(testStatement), 0o600))

	out, err := execute(t, "score-ofx", filepath.Join(dir, "*.qfx"), "--base-url", ts.URL, "--no-progress")
	require.NoError(t, err)

	require.Len(t, srv.received, 2)
	assert.Equal(t, "pos", srv.received[0]["channel"])
	assert.Equal(t, "atm", srv.received[1]["channel"])
	assert.Equal(t, "1234567890", srv.received[0]["customer_id"])

	assert.Contains(t, out, "OFX-JAN01")
	assert.Contains(t, out, "STARBUCKS")
	assert.Contains(t, out, "Scored: 2 of 2")
	assert.Contains(t, out, "Flagged as fraud: 1")
	assert.Contains(t, out, "Fraud rate 50%")
}

func TestScoreOFXCommand_NoFiles(t *testing.T) {
	_, err := execute(t, "score-ofx", filepath.Join(t.TempDir(), "*.qfx"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fraudshield dev")
}
