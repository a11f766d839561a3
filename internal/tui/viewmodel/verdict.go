package viewmodel

import "github.com/Veraticus/fraudshield/internal/model"

// Fixed operator-facing copy for verdicts.
const (
	NoReasonFallback = "No suspicious activity detected. Transaction appears normal."
	ReviewBannerText = "This transaction has been flagged for immediate review by the fraud team."
)

// VerdictView is the display model of a single verdict.
type VerdictView struct {
	TransactionID    string
	Prediction       string
	Headline         string
	ReviewBanner     string
	Details          []string
	RiskPercent      int
	IsFraud          bool
	ShowReviewBanner bool
}

// PresentVerdict maps a verdict to its display model. The result depends only
// on the input.
func PresentVerdict(v model.Verdict) VerdictView {
	isFraud := v.Prediction.IsFraud()

	headline, details := SplitReason(v.Reason)
	if headline == "" {
		headline = NoReasonFallback
	}

	view := VerdictView{
		TransactionID:    v.TransactionID,
		Prediction:       string(v.Prediction),
		Headline:         headline,
		Details:          details,
		RiskPercent:      RiskPercent(v.RiskScore),
		IsFraud:          isFraud,
		ShowReviewBanner: isFraud,
	}
	if view.ShowReviewBanner {
		view.ReviewBanner = ReviewBannerText
	}
	return view
}

// ProgressFraction is the target fill of the animated risk bar.
func (v VerdictView) ProgressFraction() float64 {
	return float64(v.RiskPercent) / 100
}
