package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/tui/components"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// View identifies one top-level screen of the console.
type View int

// Top-level views, in tab order.
const (
	ViewIntake View = iota
	ViewOverview
	ViewAlerts
	ViewMetrics
)

// Views lists every view in tab order.
var Views = []View{ViewIntake, ViewOverview, ViewAlerts, ViewMetrics}

// String returns the tab label of the view.
func (v View) String() string {
	switch v {
	case ViewIntake:
		return "Analyze"
	case ViewOverview:
		return "Overview"
	case ViewAlerts:
		return "Alerts"
	case ViewMetrics:
		return "Metrics"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Ticket owner of the standalone alert feed.
const alertsOwner = "alerts"

// Model is the composition root: it owns every controller, routes messages
// to them and renders exactly one view at a time.
type Model struct {
	ctx         context.Context
	journal     Journal
	startCmd    tea.Cmd
	lastError   error
	lastVerdict *model.Verdict
	theme       themes.Theme
	keymap      KeyMap
	help        help.Model
	intake      components.IntakeModel
	card        components.VerdictCardModel
	overview    components.OverviewModel
	alerts      components.AlertFeedModel
	metrics     components.MetricsModel
	active      View
	width       int
	height      int
	quitting    bool
}

// New creates the console model.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Client == nil {
		return Model{}, fmt.Errorf("scoring client is required: %w", common.ErrMissingConfig)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var intakeOpts []components.IntakeOption
	if cfg.IDGenerator != nil {
		intakeOpts = append(intakeOpts, components.WithIDGenerator(cfg.IDGenerator))
	}

	var summarizer components.SessionSummarizer
	if cfg.Journal != nil {
		summarizer = cfg.Journal
	}

	m := Model{
		ctx:      ctx,
		journal:  cfg.Journal,
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		intake:   components.NewIntakeModel(ctx, cfg.Client, cfg.Theme, intakeOpts...),
		card:     components.NewVerdictCardModel(cfg.Theme),
		overview: components.NewOverviewModel(ctx, cfg.Client, summarizer, cfg.Theme, cfg.Location, cfg.AlertLimit),
		alerts: components.NewAlertFeedModel(ctx, cfg.Client, cfg.Theme, components.FeedConfig{
			Owner:    alertsOwner,
			Limit:    cfg.AlertLimit,
			Location: cfg.Location,
		}),
		metrics: components.NewMetricsModel(ctx, cfg.Client, cfg.Theme),
		active:  cfg.StartView,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	// Init cannot mutate the model, so the first view is activated here.
	m.startCmd = m.activate(m.active)
	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.intake.Init(), m.startCmd)
}

// Active returns the view currently shown.
func (m Model) Active() View { return m.active }

// LastVerdict returns the most recent verdict of the session, if any.
func (m Model) LastVerdict() (model.Verdict, bool) {
	if m.lastVerdict == nil {
		return model.Verdict{}, false
	}
	return *m.lastVerdict, true
}

// Intake returns the intake controller.
func (m Model) Intake() components.IntakeModel { return m.intake }

// Overview returns the overview controller.
func (m Model) Overview() components.OverviewModel { return m.overview }

// Alerts returns the alert feed controller.
func (m Model) Alerts() components.AlertFeedModel { return m.alerts }

// Metrics returns the metrics controller.
func (m Model) Metrics() components.MetricsModel { return m.metrics }

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case components.VerdictPublishedMsg:
		verdict := msg.Verdict
		m.lastVerdict = &verdict
		return m, tea.Batch(m.card.Show(verdict), m.recordVerdict(msg.Draft, verdict))

	case verdictRecordedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			slog.Warn("failed to journal verdict",
				"transaction_id", msg.transactionID,
				"error", msg.err)
		}
		return m, nil

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.card, cmd = m.card.Update(msg)
		return m, cmd
	}

	// Results are routed by ticket, so every controller sees every message
	// and keeps only its own. This lets a fetch finish after its view was left.
	return m.broadcast(msg)
}

func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 5)
	m.intake, cmds[0] = m.intake.Update(msg)
	m.card, cmds[1] = m.card.Update(msg)
	m.overview, cmds[2] = m.overview.Update(msg)
	m.alerts, cmds[3] = m.alerts.Update(msg)
	m.metrics, cmds[4] = m.metrics.Update(msg)
	return m, tea.Batch(cmds...)
}

// handleKey handles global keys and forwards the rest to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	// The form owns plain keys; only alt chords switch views from it.
	if m.active == ViewIntake {
		if v, ok := m.keymap.viewFor(msg); ok && msg.Alt {
			return m, m.switchTo(v)
		}
		var cmd tea.Cmd
		m.intake, cmd = m.intake.Update(msg)
		return m, cmd
	}

	if v, ok := m.keymap.viewFor(msg); ok {
		return m, m.switchTo(v)
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.NextView):
		return m, m.switchTo(Views[(int(m.active)+1)%len(Views)])

	case key.Matches(msg, m.keymap.PrevView):
		return m, m.switchTo(Views[(int(m.active)+len(Views)-1)%len(Views)])

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.activate(m.active)
	}

	var cmd tea.Cmd
	switch m.active {
	case ViewAlerts:
		m.alerts, cmd = m.alerts.Update(msg)
	case ViewOverview:
		m.overview, cmd = m.overview.Update(msg)
	case ViewMetrics:
		m.metrics, cmd = m.metrics.Update(msg)
	}
	return m, cmd
}

// switchTo shows v, activating its controller when the view changes.
func (m *Model) switchTo(v View) tea.Cmd {
	if v == m.active {
		return nil
	}
	m.active = v
	return m.activate(v)
}

// activate issues the one fetch each view performs per activation.
func (m *Model) activate(v View) tea.Cmd {
	switch v {
	case ViewOverview:
		return m.overview.Activate()
	case ViewAlerts:
		return m.alerts.Activate()
	case ViewMetrics:
		return m.metrics.Activate()
	default:
		return nil
	}
}
