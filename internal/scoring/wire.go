package scoring

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/fraudshield/internal/model"
)

// predictRequest is the body of POST /predict.
type predictRequest struct {
	TransactionID     string  `json:"transaction_id"`
	CustomerID        string  `json:"customer_id"`
	Channel           string  `json:"channel"`
	TransactionAmount float64 `json:"transaction_amount"`
	AccountAgeDays    int     `json:"account_age_days"`
	KYCVerifiedFlag   int     `json:"kyc_verified_flag"`
	Hour              int     `json:"hour"`
	Weekday           int     `json:"weekday"`
}

// predictResponse is the body returned by POST /predict. Older service builds
// only send is_fraud.
type predictResponse struct {
	IsFraud       *bool   `json:"is_fraud,omitempty"`
	TransactionID string  `json:"transaction_id"`
	Prediction    string  `json:"prediction"`
	Reason        string  `json:"reason"`
	RiskScore     float64 `json:"risk_score"`
}

type metricsResponse struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	AUC       float64 `json:"auc"`
}

type alertResponse struct {
	Timestamp     wireTime `json:"timestamp"`
	TransactionID string   `json:"transaction_id"`
	Reason        string   `json:"reason"`
	RiskScore     float64  `json:"risk_score"`
}

type healthResponse struct {
	Message string `json:"message"`
}

func newPredictRequest(d model.Draft) predictRequest {
	return predictRequest{
		TransactionID:     d.TransactionID,
		CustomerID:        d.CustomerID,
		AccountAgeDays:    d.AccountAgeDays,
		TransactionAmount: d.TransactionAmount,
		Channel:           string(d.Channel),
		KYCVerifiedFlag:   d.KYCFlag(),
		Hour:              d.Hour,
		Weekday:           d.Weekday,
	}
}

func (r predictResponse) toVerdict(submittedID string) (model.Verdict, error) {
	prediction, err := parsePrediction(r.Prediction, r.IsFraud)
	if err != nil {
		return model.Verdict{}, err
	}

	id := r.TransactionID
	if id == "" {
		id = submittedID
	}

	return model.Verdict{
		TransactionID: id,
		Prediction:    prediction,
		RiskScore:     r.RiskScore,
		Reason:        r.Reason,
	}, nil
}

func parsePrediction(raw string, isFraud *bool) (model.Prediction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "fraud":
		return model.PredictionFraud, nil
	case "legitimate", "legit":
		return model.PredictionLegitimate, nil
	case "":
		if isFraud == nil {
			return "", fmt.Errorf("response carries neither prediction nor is_fraud")
		}
		if *isFraud {
			return model.PredictionFraud, nil
		}
		return model.PredictionLegitimate, nil
	default:
		return "", fmt.Errorf("unexpected prediction %q", raw)
	}
}

func (r metricsResponse) toSnapshot() model.MetricsSnapshot {
	return model.MetricsSnapshot{
		Accuracy:  r.Accuracy,
		Precision: r.Precision,
		Recall:    r.Recall,
		F1Score:   r.F1Score,
		AUC:       r.AUC,
	}
}

func (r alertResponse) toRecord() model.AlertRecord {
	return model.AlertRecord{
		TransactionID: r.TransactionID,
		RiskScore:     r.RiskScore,
		Reason:        r.Reason,
		Timestamp:     time.Time(r.Timestamp),
	}
}

// wireTime accepts RFC 3339 instants as well as the naive ISO timestamps the
// service writes from its database, which are taken to be UTC.
type wireTime time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = wireTime(time.Time{})
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = wireTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
