package tui

import (
	"context"

	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// Journal persists the verdicts of the current session.
type Journal interface {
	components.SessionSummarizer
	Record(ctx context.Context, draft model.Draft, verdict model.Verdict) error
}

// recordVerdict journals a published verdict.
func (m Model) recordVerdict(draft model.Draft, verdict model.Verdict) tea.Cmd {
	if m.journal == nil {
		return nil
	}
	ctx, journal := m.ctx, m.journal
	return func() tea.Msg {
		return verdictRecordedMsg{
			transactionID: verdict.TransactionID,
			err:           journal.Record(ctx, draft, verdict),
		}
	}
}
