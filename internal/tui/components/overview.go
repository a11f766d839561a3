package components

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/fraudshield/internal/request"
	"github.com/Veraticus/fraudshield/internal/scoring"
	"github.com/Veraticus/fraudshield/internal/storage"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Ticket owners of the overview's fetches.
const (
	OverviewHealthOwner  = "overview.health"
	OverviewSessionOwner = "overview.session"
	OverviewFeedOwner    = "overview.alerts"
)

// OverviewModel aggregates service status, session totals and a compact
// alert feed of its own.
type OverviewModel struct {
	ctx        context.Context
	client     scoring.Client
	journal    SessionSummarizer
	theme      themes.Theme
	health     request.State[string]
	session    request.State[storage.Summary]
	feed       AlertFeedModel
	recent     []storage.Entry
	healthSeq  int
	sessionSeq int
	width      int
}

// NewOverviewModel creates an idle overview. A nil journal hides the session
// card. The embedded feed asks for alertLimit alerts.
func NewOverviewModel(ctx context.Context, client scoring.Client, journal SessionSummarizer, theme themes.Theme, loc *time.Location, alertLimit int) OverviewModel {
	return OverviewModel{
		ctx:     ctx,
		client:  client,
		journal: journal,
		theme:   theme,
		health:  request.Idle[string](),
		session: request.Idle[storage.Summary](),
		feed: NewAlertFeedModel(ctx, client, theme, FeedConfig{
			Owner:    OverviewFeedOwner,
			Limit:    alertLimit,
			Location: loc,
			Compact:  true,
		}),
	}
}

// Health returns the status probe lifecycle.
func (m OverviewModel) Health() request.State[string] { return m.health }

// Recent returns the latest journaled verdicts read with the session totals.
func (m OverviewModel) Recent() []storage.Entry { return m.recent }

// Session returns the journal totals lifecycle.
func (m OverviewModel) Session() request.State[storage.Summary] { return m.session }

// Feed returns the embedded alert feed.
func (m OverviewModel) Feed() AlertFeedModel { return m.feed }

// Activate refreshes every card whose fetch is not already in flight.
func (m *OverviewModel) Activate() tea.Cmd {
	var cmds []tea.Cmd

	if m.health.Begin() {
		m.healthSeq++
		cmds = append(cmds, checkHealth(m.ctx, m.client, Ticket{Owner: OverviewHealthOwner, Seq: m.healthSeq}))
	}
	if m.journal != nil && m.session.Begin() {
		m.sessionSeq++
		cmds = append(cmds, loadSessionSummary(m.ctx, m.journal, Ticket{Owner: OverviewSessionOwner, Seq: m.sessionSeq}))
	}
	cmds = append(cmds, m.feed.Activate())

	return tea.Batch(cmds...)
}

// Update handles messages.
func (m OverviewModel) Update(msg tea.Msg) (OverviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case HealthCheckedMsg:
		if msg.Ticket.Owner == OverviewHealthOwner && msg.Ticket.Seq == m.healthSeq && m.health.IsPending() {
			m.health.Resolve(msg.Message, msg.Err)
		}
		return m, nil

	case SessionSummaryMsg:
		if msg.Ticket.Owner == OverviewSessionOwner && msg.Ticket.Seq == m.sessionSeq && m.session.IsPending() {
			m.session.Resolve(msg.Summary, msg.Err)
			m.recent = msg.Recent
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	var cmd tea.Cmd
	m.feed, cmd = m.feed.Update(msg)
	return m, cmd
}

// View renders the overview.
func (m OverviewModel) View() string {
	cards := []string{m.renderHealth()}
	if m.journal != nil {
		cards = append(cards, m.renderSession())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Overview"),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		m.feed.View(),
	)
}

func (m OverviewModel) card(title string, lines ...string) string {
	body := append([]string{m.theme.Label.Render(title)}, lines...)
	return m.theme.RoundedBox.
		Padding(0, 2).
		Width(34).
		Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func (m OverviewModel) renderHealth() string {
	switch m.health.Status() {
	case request.StatusPending:
		return m.card("Scoring Service", m.theme.StatusPending.Render("Checking..."))
	case request.StatusFailed:
		return m.card("Scoring Service",
			m.theme.StatusError.Render("● Offline"),
			m.theme.Label.Render(failureText(m.health.Err())),
		)
	case request.StatusSuccess:
		message, _ := m.health.Value()
		return m.card("Scoring Service",
			m.theme.StatusSuccess.Render("● Online"),
			m.theme.Label.Render(viewmodel.TruncateString(message, 30)),
		)
	default:
		return m.card("Scoring Service", m.theme.StatusPending.Render("Not checked"))
	}
}

func (m OverviewModel) renderSession() string {
	switch m.session.Status() {
	case request.StatusFailed:
		return m.card("This Session", m.theme.StatusError.Render(m.session.Err().Error()))
	case request.StatusSuccess:
		summary, _ := m.session.Value()
		view := viewmodel.PresentSession(summary)
		if !view.HasActivity() {
			return m.card("This Session", m.theme.Label.Render("No transactions scored yet"))
		}
		lines := []string{
			m.theme.Normal.Render(fmt.Sprintf("Scored:   %d", view.Submitted)),
			m.theme.StatusError.Render(fmt.Sprintf("Flagged:  %d (%s)", view.Flagged, view.FraudRate)),
			m.theme.Normal.Render(fmt.Sprintf("Avg risk: %d%%", view.AverageRiskPercent)),
		}
		if len(m.recent) > 0 {
			lines = append(lines, "", m.theme.Label.Render("Latest"))
			for _, e := range m.recent {
				v := viewmodel.PresentVerdict(e.Verdict)
				lines = append(lines, m.theme.VerdictStyle(v.IsFraud).Render(
					fmt.Sprintf("%-16s %3d%%", viewmodel.TruncateString(v.TransactionID, 16), v.RiskPercent)))
			}
		}
		return m.card("This Session", lines...)
	default:
		return m.card("This Session", m.theme.StatusPending.Render("Loading..."))
	}
}
