package viewmodel

import "github.com/Veraticus/fraudshield/internal/model"

// MetricPoint is one labeled bar of the metrics chart.
type MetricPoint struct {
	Label string
	Value float64
}

// Scorecard is a standalone headline metric.
type Scorecard struct {
	Label   string
	Display string
	Value   float64
}

// MetricsView is the display model of a metrics snapshot.
type MetricsView struct {
	Series     []MetricPoint
	Scorecards []Scorecard
}

// BuildMetrics reshapes a snapshot into a fixed-order series and the three
// headline scorecards.
func BuildMetrics(s model.MetricsSnapshot) MetricsView {
	series := []MetricPoint{
		{Label: "Accuracy", Value: s.Accuracy},
		{Label: "Precision", Value: s.Precision},
		{Label: "Recall", Value: s.Recall},
		{Label: "F1 Score", Value: s.F1Score},
		{Label: "AUC", Value: s.AUC},
	}

	cards := make([]Scorecard, 0, 3)
	for _, p := range series[:3] {
		cards = append(cards, Scorecard{
			Label:   p.Label,
			Value:   p.Value,
			Display: FormatRatioPercent(p.Value),
		})
	}

	return MetricsView{Series: series, Scorecards: cards}
}
