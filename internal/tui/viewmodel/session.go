package viewmodel

import (
	"fmt"

	"github.com/Veraticus/fraudshield/internal/storage"
)

// SessionView summarizes the verdicts received during this console session.
type SessionView struct {
	FraudRate          string
	Submitted          int
	Flagged            int
	AverageRiskPercent int
}

// PresentSession maps journal totals to the overview card.
func PresentSession(s storage.Summary) SessionView {
	view := SessionView{
		Submitted:          s.Submitted,
		Flagged:            s.Flagged,
		AverageRiskPercent: RiskPercent(s.AverageRisk),
		FraudRate:          "—",
	}
	if s.Submitted > 0 {
		view.FraudRate = fmt.Sprintf("%.0f%%", float64(s.Flagged)/float64(s.Submitted)*100)
	}
	return view
}

// HasActivity reports whether anything was scored this session.
func (v SessionView) HasActivity() bool {
	return v.Submitted > 0
}
