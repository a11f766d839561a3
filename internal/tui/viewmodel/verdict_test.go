package viewmodel

import (
	"math"
	"testing"

	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPresentVerdict_LegitimateScenario(t *testing.T) {
	view := PresentVerdict(model.Verdict{
		TransactionID: "TXN-1",
		Prediction:    model.PredictionLegitimate,
		RiskScore:     0.12,
	})

	assert.False(t, view.IsFraud)
	assert.Equal(t, 12, view.RiskPercent)
	assert.False(t, view.ShowReviewBanner)
	assert.Empty(t, view.ReviewBanner)
	assert.Equal(t, NoReasonFallback, view.Headline)
	assert.Equal(t, "TXN-1", view.TransactionID)
	assert.Equal(t, "Legitimate", view.Prediction)
	assert.InDelta(t, 0.12, view.ProgressFraction(), 0.0001)
}

func TestPresentVerdict_Fraud(t *testing.T) {
	view := PresentVerdict(model.Verdict{
		TransactionID: "TXN-2",
		Prediction:    model.PredictionFraud,
		RiskScore:     0.94,
		Reason:        "Odd Hours Transaction | Risky Channel (web) |  | Unverified KYC",
	})

	assert.True(t, view.IsFraud)
	assert.True(t, view.ShowReviewBanner)
	assert.Equal(t, ReviewBannerText, view.ReviewBanner)
	assert.Equal(t, 94, view.RiskPercent)
	assert.Equal(t, "Odd Hours Transaction", view.Headline)
	assert.Equal(t, []string{"Risky Channel (web)", "Unverified KYC"}, view.Details)
}

func TestPresentVerdict_RiskPercentIsClamped(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  int
	}{
		{name: "negative", score: -0.4, want: 0},
		{name: "zero", score: 0, want: 0},
		{name: "rounds to nearest", score: 0.006, want: 1},
		{name: "typical", score: 0.5, want: 50},
		{name: "one", score: 1, want: 100},
		{name: "above one", score: 1.7, want: 100},
		{name: "huge", score: 1e9, want: 100},
		{name: "positive infinity", score: math.Inf(1), want: 100},
		{name: "negative infinity", score: math.Inf(-1), want: 0},
		{name: "nan", score: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := PresentVerdict(model.Verdict{Prediction: model.PredictionFraud, RiskScore: tt.score})
			assert.Equal(t, tt.want, view.RiskPercent)
			assert.GreaterOrEqual(t, view.RiskPercent, 0)
			assert.LessOrEqual(t, view.RiskPercent, 100)
		})
	}
}

func TestPresentVerdict_IsDeterministic(t *testing.T) {
	v := model.Verdict{TransactionID: "X", Prediction: model.PredictionFraud, RiskScore: 0.66, Reason: "a|b"}
	assert.Equal(t, PresentVerdict(v), PresentVerdict(v))
}

func TestPresentVerdict_WhitespaceReasonFallsBack(t *testing.T) {
	view := PresentVerdict(model.Verdict{Prediction: model.PredictionLegitimate, Reason: "   | trailing"})

	assert.Equal(t, NoReasonFallback, view.Headline)
	assert.Equal(t, []string{"trailing"}, view.Details)
}

func TestSplitReason(t *testing.T) {
	headline, details := SplitReason("High Amount")
	assert.Equal(t, "High Amount", headline)
	assert.Empty(t, details)

	headline, details = SplitReason("")
	assert.Empty(t, headline)
	assert.Empty(t, details)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcdefg...", TruncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "ünï...", TruncateString("ünïcödé", 6))
}

func TestSanitizeForDisplay(t *testing.T) {
	assert.Equal(t, "line one line two", SanitizeForDisplay("line one\nline\r two"))
}
