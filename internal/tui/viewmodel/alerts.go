package viewmodel

import (
	"fmt"
	"time"

	"github.com/Veraticus/fraudshield/internal/model"
)

// Severity is a discrete tier derived from a continuous risk score.
type Severity int

// Severity tiers, in chart order.
const (
	SeverityCritical Severity = iota
	SeverityHigh
	SeverityMedium
)

// Severity cut points. A score equal to a threshold falls into the lower tier.
const (
	CriticalThreshold = 0.8
	HighThreshold     = 0.5
)

// Severities lists every tier in chart order.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium}

// String returns a string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// ClassifySeverity buckets a risk score.
func ClassifySeverity(score float64) Severity {
	switch {
	case score > CriticalThreshold:
		return SeverityCritical
	case score > HighThreshold:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// SeverityBucket is one bar of the severity histogram.
type SeverityBucket struct {
	Severity Severity
	Count    int
}

// TrendPoint is one sample of the chronological risk trend.
type TrendPoint struct {
	Timestamp time.Time
	RiskScore float64
}

// AlertRow is one line of the recent flags list.
type AlertRow struct {
	Timestamp     time.Time
	TransactionID string
	Headline      string
	Severity      Severity
	RiskPercent   int
}

// AlertFeedView is everything the alert feed renders for one fetched list.
type AlertFeedView struct {
	Rows      []AlertRow
	Histogram []SeverityBucket
	Trend     []TrendPoint
}

// BuildAlertFeed derives the feed display model from a most-recent-first list.
// The input slice is never modified.
func BuildAlertFeed(alerts []model.AlertRecord) AlertFeedView {
	rows := make([]AlertRow, 0, len(alerts))
	for _, a := range alerts {
		headline, _ := SplitReason(a.Reason)
		rows = append(rows, AlertRow{
			TransactionID: a.TransactionID,
			Headline:      headline,
			Timestamp:     a.Timestamp,
			Severity:      ClassifySeverity(a.RiskScore),
			RiskPercent:   RiskPercent(a.RiskScore),
		})
	}

	return AlertFeedView{
		Rows:      rows,
		Histogram: SeverityHistogram(alerts),
		Trend:     RiskTrend(alerts),
	}
}

// IsEmpty reports whether the service returned no alerts.
func (v AlertFeedView) IsEmpty() bool {
	return len(v.Rows) == 0
}

// TrendScores returns the trend as a plain series for charting.
func (v AlertFeedView) TrendScores() []float64 {
	scores := make([]float64, len(v.Trend))
	for i, p := range v.Trend {
		scores[i] = p.RiskScore
	}
	return scores
}

// SeverityHistogram counts alerts per tier. Tiers without alerts are omitted.
func SeverityHistogram(alerts []model.AlertRecord) []SeverityBucket {
	counts := make(map[Severity]int, len(Severities))
	for _, a := range alerts {
		counts[ClassifySeverity(a.RiskScore)]++
	}

	var buckets []SeverityBucket
	for _, s := range Severities {
		if counts[s] > 0 {
			buckets = append(buckets, SeverityBucket{Severity: s, Count: counts[s]})
		}
	}
	return buckets
}

// RiskTrend reverses a most-recent-first list into chronological
// (timestamp, score) pairs.
func RiskTrend(alerts []model.AlertRecord) []TrendPoint {
	trend := make([]TrendPoint, len(alerts))
	for i, a := range alerts {
		trend[len(alerts)-1-i] = TrendPoint{Timestamp: a.Timestamp, RiskScore: a.RiskScore}
	}
	return trend
}
