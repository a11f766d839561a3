package components

import (
	"context"

	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/scoring"
	"github.com/Veraticus/fraudshield/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
)

// SessionRecentLimit is how many journaled verdicts the session card lists.
const SessionRecentLimit = 3

// SessionSummarizer reports on the verdicts recorded this session.
type SessionSummarizer interface {
	Summary(ctx context.Context) (storage.Summary, error)
	Recent(ctx context.Context, limit int) ([]storage.Entry, error)
}

func submitTransaction(ctx context.Context, client scoring.Client, draft model.Draft, t Ticket) tea.Cmd {
	return func() tea.Msg {
		verdict, err := client.SubmitTransaction(ctx, draft)
		if err != nil {
			return SubmitFailedMsg{Ticket: t, Err: err}
		}
		return VerdictReceivedMsg{Ticket: t, Draft: draft, Verdict: verdict}
	}
}

func publishVerdict(draft model.Draft, verdict model.Verdict) tea.Cmd {
	return func() tea.Msg {
		return VerdictPublishedMsg{Draft: draft, Verdict: verdict}
	}
}

func fetchAlerts(ctx context.Context, client scoring.Client, limit int, t Ticket) tea.Cmd {
	return func() tea.Msg {
		alerts, err := client.FetchAlerts(ctx, limit)
		return AlertsLoadedMsg{Ticket: t, Alerts: alerts, Err: err}
	}
}

func fetchMetrics(ctx context.Context, client scoring.Client, t Ticket) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := client.FetchMetrics(ctx)
		return MetricsLoadedMsg{Ticket: t, Snapshot: snapshot, Err: err}
	}
}

func checkHealth(ctx context.Context, client scoring.Client, t Ticket) tea.Cmd {
	return func() tea.Msg {
		message, err := client.Health(ctx)
		return HealthCheckedMsg{Ticket: t, Message: message, Err: err}
	}
}

func loadSessionSummary(ctx context.Context, journal SessionSummarizer, t Ticket) tea.Cmd {
	return func() tea.Msg {
		summary, err := journal.Summary(ctx)
		if err != nil {
			return SessionSummaryMsg{Ticket: t, Err: err}
		}
		recent, err := journal.Recent(ctx, SessionRecentLimit)
		return SessionSummaryMsg{Ticket: t, Summary: summary, Recent: recent, Err: err}
	}
}
