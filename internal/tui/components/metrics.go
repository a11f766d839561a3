package components

import (
	"context"

	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/request"
	"github.com/Veraticus/fraudshield/internal/scoring"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MetricsOwner is the ticket owner of the metrics controller.
const MetricsOwner = "metrics"

// MetricsModel fetches the model evaluation snapshot once per activation.
type MetricsModel struct {
	ctx     context.Context
	client  scoring.Client
	theme   themes.Theme
	state   request.State[model.MetricsSnapshot]
	spinner spinner.Model
	seq     int
	width   int
}

// NewMetricsModel creates an idle metrics view.
func NewMetricsModel(ctx context.Context, client scoring.Client, theme themes.Theme) MetricsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return MetricsModel{
		ctx:     ctx,
		client:  client,
		theme:   theme,
		spinner: s,
		state:   request.Idle[model.MetricsSnapshot](),
	}
}

// State returns the fetch lifecycle.
func (m MetricsModel) State() request.State[model.MetricsSnapshot] { return m.state }

// Activate issues one fetch. While a fetch is in flight it is a no-op.
func (m *MetricsModel) Activate() tea.Cmd {
	if !m.state.Begin() {
		return nil
	}
	m.seq++

	return tea.Batch(
		m.spinner.Tick,
		fetchMetrics(m.ctx, m.client, Ticket{Owner: MetricsOwner, Seq: m.seq}),
	)
}

// Update handles messages.
func (m MetricsModel) Update(msg tea.Msg) (MetricsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case MetricsLoadedMsg:
		if msg.Ticket.Owner == MetricsOwner && msg.Ticket.Seq == m.seq && m.state.IsPending() {
			m.state.Resolve(msg.Snapshot, msg.Err)
		}

	case spinner.TickMsg:
		if m.state.IsPending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

// View renders the scorecards and the metric chart.
func (m MetricsModel) View() string {
	title := m.theme.Title.Render("Model Performance")

	var body string
	switch m.state.Status() {
	case request.StatusIdle:
		body = lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Waiting to load metrics...")
	case request.StatusPending:
		body = m.spinner.View() + " " + m.theme.StatusPending.Render("Loading metrics...")
	case request.StatusFailed:
		body = m.theme.StatusError.Render("Failed to load metrics: " + failureText(m.state.Err()))
	case request.StatusSuccess:
		snapshot, _ := m.state.Value()
		body = m.renderSnapshot(viewmodel.BuildMetrics(snapshot))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func (m MetricsModel) renderSnapshot(view viewmodel.MetricsView) string {
	cards := make([]string, 0, len(view.Scorecards))
	for _, c := range view.Scorecards {
		cards = append(cards, m.theme.RoundedBox.
			Padding(0, 2).
			Render(lipgloss.JoinVertical(lipgloss.Left,
				m.theme.Label.Render(c.Label),
				m.theme.StatusInfo.Render(c.Display),
			)))
	}

	bars := make([]barSpec, 0, len(view.Series))
	for _, p := range view.Series {
		bars = append(bars, barSpec{
			label: p.Label,
			value: viewmodel.FormatRatioPercent(p.Value),
			color: m.theme.Primary,
			ratio: p.Value,
		})
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
		"",
		renderBars(bars, max(m.width/2, 40), m.theme.ProgressEmpty),
	)
}
