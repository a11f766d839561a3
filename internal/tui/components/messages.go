package components

import (
	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/storage"
)

// Ticket identifies one operation issued by one controller instance. A
// controller ignores results whose ticket is not its latest.
type Ticket struct {
	Owner string
	Seq   int
}

// VerdictReceivedMsg is sent when the scoring service returns a verdict.
type VerdictReceivedMsg struct {
	Draft   model.Draft
	Verdict model.Verdict
	Ticket  Ticket
}

// SubmitFailedMsg is sent when a submission could not be scored.
type SubmitFailedMsg struct {
	Err    error
	Ticket Ticket
}

// VerdictPublishedMsg carries a fresh verdict up to the composition root.
type VerdictPublishedMsg struct {
	Draft   model.Draft
	Verdict model.Verdict
}

// AlertsLoadedMsg is sent when an alert fetch completes.
type AlertsLoadedMsg struct {
	Err    error
	Ticket Ticket
	Alerts []model.AlertRecord
}

// MetricsLoadedMsg is sent when a metrics fetch completes.
type MetricsLoadedMsg struct {
	Err      error
	Ticket   Ticket
	Snapshot model.MetricsSnapshot
}

// HealthCheckedMsg is sent when the service status probe completes.
type HealthCheckedMsg struct {
	Err     error
	Ticket  Ticket
	Message string
}

// SessionSummaryMsg is sent when the journal totals have been read.
type SessionSummaryMsg struct {
	Err     error
	Ticket  Ticket
	Recent  []storage.Entry
	Summary storage.Summary
}
