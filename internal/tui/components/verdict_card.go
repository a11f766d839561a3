package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// VerdictCardModel renders the last verdict with an animated risk bar.
type VerdictCardModel struct {
	theme themes.Theme
	view  *viewmodel.VerdictView
	bar   progress.Model
	width int
}

// NewVerdictCardModel creates an empty verdict card.
func NewVerdictCardModel(theme themes.Theme) VerdictCardModel {
	bar := progress.New(progress.WithSolidFill(string(theme.Secondary)))
	bar.ShowPercentage = false
	bar.EmptyColor = string(theme.Border)
	bar.Width = 36

	return VerdictCardModel{theme: theme, bar: bar}
}

// Show replaces the displayed verdict and starts the bar animation.
func (m *VerdictCardModel) Show(v model.Verdict) tea.Cmd {
	view := viewmodel.PresentVerdict(v)
	m.view = &view

	m.bar.FullColor = string(m.theme.Secondary)
	if view.IsFraud {
		m.bar.FullColor = string(m.theme.Danger)
	}
	return m.bar.SetPercent(view.ProgressFraction())
}

// Current returns the displayed verdict, if any.
func (m VerdictCardModel) Current() (viewmodel.VerdictView, bool) {
	if m.view == nil {
		return viewmodel.VerdictView{}, false
	}
	return *m.view, true
}

// Update handles messages.
func (m VerdictCardModel) Update(msg tea.Msg) (VerdictCardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		if bar, ok := updated.(progress.Model); ok {
			m.bar = bar
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width/3, 20), 48)
	}
	return m, nil
}

// View renders the verdict card.
func (m VerdictCardModel) View() string {
	title := m.theme.Title.Render("Risk Verdict")
	if m.view == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Submit a transaction to see its risk verdict."),
		)
	}

	v := m.view
	sections := []string{
		title,
		m.theme.Label.Render("Transaction ") + m.theme.Code.Render(v.TransactionID),
		m.theme.VerdictStyle(v.IsFraud).Render(strings.ToUpper(v.Prediction)),
		"",
		m.theme.Label.Render("Risk Score"),
		m.bar.View() + " " + m.theme.Bold.Render(percentLabel(v.RiskPercent)),
		"",
		m.theme.Normal.Render(v.Headline),
	}
	for _, d := range v.Details {
		sections = append(sections, m.theme.Label.Render("• "+d))
	}
	if v.ShowReviewBanner {
		sections = append(sections, "", m.theme.Banner.Render(v.ReviewBanner))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func percentLabel(p int) string {
	return fmt.Sprintf("%d%%", p)
}
