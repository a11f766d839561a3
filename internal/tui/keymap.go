package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all keyboard shortcuts of the console. The intake form
// captures plain keys while it is active, so every view binding also has an
// alt variant that works from anywhere.
type KeyMap struct {
	// Views
	Intake   key.Binding
	Overview key.Binding
	Alerts   key.Binding
	Metrics  key.Binding
	NextView key.Binding
	PrevView key.Binding

	// Actions
	Submit  key.Binding
	Refresh key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Views
		Intake: key.NewBinding(
			key.WithKeys("1", "alt+1"),
			key.WithHelp("1", "analyze"),
		),
		Overview: key.NewBinding(
			key.WithKeys("2", "alt+2"),
			key.WithHelp("2", "overview"),
		),
		Alerts: key.NewBinding(
			key.WithKeys("3", "alt+3"),
			key.WithHelp("3", "alerts"),
		),
		Metrics: key.NewBinding(
			key.WithKeys("4", "alt+4"),
			key.WithHelp("4", "metrics"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous view"),
		),

		// Actions
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "analyze transaction"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		// Application
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// viewFor returns the view a key selects directly.
func (k KeyMap) viewFor(msg tea.KeyMsg) (View, bool) {
	switch {
	case key.Matches(msg, k.Intake):
		return ViewIntake, true
	case key.Matches(msg, k.Overview):
		return ViewOverview, true
	case key.Matches(msg, k.Alerts):
		return ViewAlerts, true
	case key.Matches(msg, k.Metrics):
		return ViewMetrics, true
	default:
		return 0, false
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Intake, k.Overview, k.Alerts, k.Metrics, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Intake, k.Overview, k.Alerts, k.Metrics},
		{k.NextView, k.PrevView, k.Refresh},
		{k.Submit, k.Help, k.Quit, k.ForceQuit},
	}
}
