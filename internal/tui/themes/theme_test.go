package themes

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#3B82F6"), GetTheme("").Primary)
	assert.Equal(t, lipgloss.Color("#89b4fa"), GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Danger, GetTheme("unknown").Danger)
}

func TestDefaultPalette(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#10B981"), Default.Secondary)
	assert.Equal(t, lipgloss.Color("#EF4444"), Default.Danger)
	assert.Equal(t, lipgloss.Color("#F59E0B"), Default.Warning)
	assert.Equal(t, lipgloss.Color("#0F172A"), Default.Background)
	assert.Equal(t, lipgloss.Color("#1E293B"), Default.Surface)
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, Default.Danger, Default.SeverityColor(0))
	assert.Equal(t, Default.Warning, Default.SeverityColor(1))
	assert.Equal(t, Default.Primary, Default.SeverityColor(2))
}
