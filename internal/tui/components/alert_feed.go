package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/request"
	"github.com/Veraticus/fraudshield/internal/scoring"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FeedAlertLimit is how many alerts one activation asks the service for.
const FeedAlertLimit = 20

// NoAlertsText is shown when the service returned an empty feed.
const NoAlertsText = "No alerts found"

// FeedConfig configures an AlertFeedModel.
type FeedConfig struct {
	Location *time.Location
	Owner    string
	Limit    int
	Compact  bool
}

// AlertFeedModel fetches recent flagged transactions once per activation
// and charts them.
type AlertFeedModel struct {
	ctx     context.Context
	client  scoring.Client
	loc     *time.Location
	theme   themes.Theme
	state   request.State[[]model.AlertRecord]
	owner   string
	feed    viewmodel.AlertFeedView
	table   table.Model
	spinner spinner.Model
	limit   int
	seq     int
	width   int
	compact bool
}

// NewAlertFeedModel creates an idle alert feed.
func NewAlertFeedModel(ctx context.Context, client scoring.Client, theme themes.Theme, cfg FeedConfig) AlertFeedModel {
	if cfg.Limit <= 0 {
		cfg.Limit = FeedAlertLimit
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	t := table.New(
		table.WithColumns(feedColumns(80)),
		table.WithHeight(10),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = theme.Highlighted
	t.SetStyles(styles)

	return AlertFeedModel{
		ctx:     ctx,
		client:  client,
		theme:   theme,
		loc:     cfg.Location,
		owner:   cfg.Owner,
		limit:   cfg.Limit,
		compact: cfg.Compact,
		spinner: s,
		table:   t,
		state:   request.Idle[[]model.AlertRecord](),
	}
}

func feedColumns(width int) []table.Column {
	headline := max(width-19-16-9-6-10, 16)
	return []table.Column{
		{Title: "Time", Width: 19},
		{Title: "Transaction", Width: 16},
		{Title: "Severity", Width: 9},
		{Title: "Risk", Width: 6},
		{Title: "Reason", Width: headline},
	}
}

// State returns the fetch lifecycle.
func (m AlertFeedModel) State() request.State[[]model.AlertRecord] { return m.state }

// Feed returns the display model derived from the last successful fetch.
func (m AlertFeedModel) Feed() viewmodel.AlertFeedView { return m.feed }

// Activate issues one fetch. While a fetch is in flight it is a no-op.
func (m *AlertFeedModel) Activate() tea.Cmd {
	if !m.state.Begin() {
		return nil
	}
	m.seq++
	ticket := Ticket{Owner: m.owner, Seq: m.seq}

	return tea.Batch(
		m.spinner.Tick,
		fetchAlerts(m.ctx, m.client, m.limit, ticket),
	)
}

// Update handles messages.
func (m AlertFeedModel) Update(msg tea.Msg) (AlertFeedModel, tea.Cmd) {
	switch msg := msg.(type) {
	case AlertsLoadedMsg:
		if msg.Ticket.Owner != m.owner || msg.Ticket.Seq != m.seq || !m.state.IsPending() {
			return m, nil
		}
		m.state.Resolve(msg.Alerts, msg.Err)
		if alerts, ok := m.state.Value(); ok {
			m.feed = viewmodel.BuildAlertFeed(alerts)
			m.table.SetRows(m.tableRows())
			m.table.GotoTop()
		}

	case spinner.TickMsg:
		if m.state.IsPending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		if m.state.IsSuccess() && !m.compact {
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(feedColumns(msg.Width - 4))
		m.table.SetHeight(max(msg.Height-20, 5))
	}

	return m, nil
}

func (m AlertFeedModel) tableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.feed.Rows))
	for _, r := range m.feed.Rows {
		rows = append(rows, table.Row{
			viewmodel.FormatTimestamp(r.Timestamp, m.loc),
			r.TransactionID,
			r.Severity.String(),
			fmt.Sprintf("%d%%", r.RiskPercent),
			viewmodel.SanitizeForDisplay(r.Headline),
		})
	}
	return rows
}

// View renders the feed.
func (m AlertFeedModel) View() string {
	title := m.theme.Title.Render("Fraud Alerts")
	if m.compact {
		title = m.theme.Subtitle.Render("Recent Alerts")
	}

	var body string
	switch m.state.Status() {
	case request.StatusIdle:
		body = lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Waiting to load alerts...")
	case request.StatusPending:
		body = m.spinner.View() + " " + m.theme.StatusPending.Render("Loading alerts...")
	case request.StatusFailed:
		body = m.theme.StatusError.Render("Failed to load alerts: " + failureText(m.state.Err()))
	case request.StatusSuccess:
		body = m.renderFeed()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func (m AlertFeedModel) renderFeed() string {
	if m.feed.IsEmpty() {
		return m.theme.StatusSuccess.Render(NoAlertsText)
	}

	chartWidth := max(m.width/2, 40)
	sections := []string{
		m.theme.Label.Render(fmt.Sprintf("%d alerts by severity", len(m.feed.Rows))),
		m.renderHistogram(chartWidth),
		"",
		m.theme.Label.Render("Risk trend (oldest → newest)"),
		lipgloss.NewStyle().Foreground(m.theme.Warning).Render(renderSparkline(m.feed.TrendScores(), chartWidth)),
	}
	if !m.compact {
		sections = append(sections, "", m.table.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m AlertFeedModel) renderHistogram(width int) string {
	total := len(m.feed.Rows)
	bars := make([]barSpec, 0, len(m.feed.Histogram))
	for _, b := range m.feed.Histogram {
		bars = append(bars, barSpec{
			label: b.Severity.String(),
			value: fmt.Sprintf("%d", b.Count),
			color: m.theme.SeverityColor(int(b.Severity)),
			ratio: float64(b.Count) / float64(total),
		})
	}
	return strings.TrimRight(renderBars(bars, width, m.theme.ProgressEmpty), "\n")
}
