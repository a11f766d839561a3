package model

import "time"

// Prediction is the scoring service's binary classification.
type Prediction string

// Prediction values.
const (
	PredictionFraud      Prediction = "Fraud"
	PredictionLegitimate Prediction = "Legitimate"
)

// IsFraud reports whether the prediction flags the transaction.
func (p Prediction) IsFraud() bool {
	return p == PredictionFraud
}

// Verdict is the result of one scoring call. Verdicts are never mutated.
type Verdict struct {
	TransactionID string
	Prediction    Prediction
	Reason        string
	RiskScore     float64
}

// AlertRecord is one historical flagged transaction from the alert feed.
type AlertRecord struct {
	Timestamp     time.Time
	TransactionID string
	Reason        string
	RiskScore     float64
}

// MetricsSnapshot holds the scoring model's offline evaluation metrics.
type MetricsSnapshot struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1Score   float64
	AUC       float64
}
