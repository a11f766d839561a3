package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.active {
	case ViewIntake:
		body = m.renderIntake()
	case ViewOverview:
		body = m.overview.View()
	case ViewAlerts:
		body = m.alerts.View()
	case ViewMetrics:
		body = m.metrics.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		m.theme.Box.Render(body),
		m.renderStatusBar(),
		m.help.View(m.keymap),
	)
}

// renderIntake places the form beside the last verdict on wide terminals
// and above it on narrow ones.
func (m Model) renderIntake() string {
	form := m.intake.View()
	card := m.card.View()

	if m.width < 100 {
		return lipgloss.JoinVertical(lipgloss.Left, form, "", card)
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		form,
		m.theme.Normal.Render("  │  "),
		card,
	)
}

// renderTabs renders the view selector.
func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(Views))
	for i, v := range Views {
		label := fmt.Sprintf("%d %s", i+1, v)
		if v == m.active {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}

	title := m.theme.Bold.Foreground(m.theme.Primary).Render("FraudShield")
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", strings.Join(tabs, ""))
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	left := m.theme.StatusInfo.Render(m.active.String())

	right := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No verdict yet")
	if v, ok := m.LastVerdict(); ok {
		view := viewmodel.PresentVerdict(v)
		right = fmt.Sprintf("Last: %s %s %d%%",
			view.TransactionID,
			m.theme.VerdictStyle(view.IsFraud).Render(view.Prediction),
			view.RiskPercent,
		)
	}
	if m.lastError != nil {
		right += "  " + m.theme.StatusWarning.Render("journal unavailable")
	}

	totalWidth := max(m.width-2, 0)
	spacing := max(totalWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return m.theme.Normal.
		Background(m.theme.Surface).
		Width(totalWidth).
		MaxWidth(totalWidth).
		Render(left + strings.Repeat(" ", spacing) + right)
}
