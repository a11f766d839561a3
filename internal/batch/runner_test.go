package batch

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	failures map[string]error
	cancel   context.CancelFunc
	calls    []string
	mu       sync.Mutex
}

func (c *scriptedClient) SubmitTransaction(_ context.Context, d model.Draft) (model.Verdict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, d.TransactionID)
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.failures[d.TransactionID]; err != nil {
		return model.Verdict{}, err
	}
	v := model.Verdict{TransactionID: d.TransactionID, Prediction: model.PredictionLegitimate, RiskScore: 0.1}
	if d.TransactionAmount > 1000 {
		v.Prediction = model.PredictionFraud
		v.RiskScore = 0.9
	}
	return v, nil
}

func (c *scriptedClient) FetchMetrics(context.Context) (model.MetricsSnapshot, error) {
	return model.MetricsSnapshot{}, nil
}

func (c *scriptedClient) FetchAlerts(context.Context, int) ([]model.AlertRecord, error) {
	return nil, nil
}

func (c *scriptedClient) Health(context.Context) (string, error) { return "", nil }

var _ scoring.Client = (*scriptedClient)(nil)

type memoryRecorder struct {
	err error
	ids []string
}

func (r *memoryRecorder) Record(_ context.Context, d model.Draft, _ model.Verdict) error {
	r.ids = append(r.ids, d.TransactionID)
	return r.err
}

func drafts(amounts ...float64) []model.Draft {
	out := make([]model.Draft, 0, len(amounts))
	for i, a := range amounts {
		d := model.Draft{
			TransactionID:     "OFX-" + string(rune('A'+i)),
			CustomerID:        "ACCT-1",
			Channel:           model.ChannelPOS,
			TransactionAmount: a,
		}
		out = append(out, d)
	}
	return out
}

func TestRunner_ScoresInOrderWithSingleAttempt(t *testing.T) {
	client := &scriptedClient{failures: map[string]error{
		"OFX-B": &scoring.NetworkError{Op: "submit transaction", Err: errors.New("connection refused")},
	}}
	rec := &memoryRecorder{}
	runner := NewRunner(client, WithoutProgress(), WithRecorder(rec))

	report, err := runner.Run(context.Background(), drafts(20, 30, 5000))
	require.NoError(t, err)

	assert.Equal(t, []string{"OFX-A", "OFX-B", "OFX-C"}, client.calls, "each draft is tried exactly once")
	require.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Scored())
	assert.Equal(t, 1, report.Flagged())

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, "OFX-B", failures[0].Draft.TransactionID)
	assert.ErrorIs(t, failures[0].Err, common.ErrNetwork)

	assert.Equal(t, []string{"OFX-A", "OFX-C"}, rec.ids, "only verdicts are journaled")
}

func TestRunner_JournalFailureDoesNotFailDraft(t *testing.T) {
	client := &scriptedClient{}
	rec := &memoryRecorder{err: errors.New("disk full")}

	report, err := NewRunner(client, WithoutProgress(), WithRecorder(rec)).Run(context.Background(), drafts(10))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scored())
}

func TestRunner_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &scriptedClient{cancel: cancel}

	report, err := NewRunner(client, WithoutProgress()).Run(ctx, drafts(1, 2, 3))
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, client.calls, 1)
	assert.Len(t, report.Results, 1)
}

func TestRunner_EmptyInput(t *testing.T) {
	client := &scriptedClient{}
	var out bytes.Buffer

	report, err := NewRunner(client, WithWriter(&out)).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Empty(t, client.calls)
	assert.Empty(t, out.String(), "no bar is drawn for nothing")
}

func TestRunner_DrawsProgress(t *testing.T) {
	client := &scriptedClient{}
	var out bytes.Buffer

	_, err := NewRunner(client, WithWriter(&out)).Run(context.Background(), drafts(1, 2))
	require.NoError(t, err)
	assert.True(t, strings.Contains(out.String(), "Scoring transactions"), out.String())
}
