package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkTicks are the eight heights of a sparkline cell, lowest first.
var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// barSpec is one row of a horizontal bar chart.
type barSpec struct {
	label string
	value string
	color lipgloss.Color
	ratio float64
}

// renderBars draws labeled horizontal bars. Ratios outside [0, 1] are clamped.
func renderBars(bars []barSpec, width int, empty lipgloss.Style) string {
	if len(bars) == 0 {
		return ""
	}

	labelWidth := 0
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.label))
	}
	barWidth := max(width-labelWidth-10, 10)

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		filled := int(math.Round(clampRatio(b.ratio) * float64(barWidth)))
		line := fmt.Sprintf("%-*s %s%s %s",
			labelWidth,
			b.label,
			lipgloss.NewStyle().Foreground(b.color).Render(strings.Repeat("█", filled)),
			empty.Render(strings.Repeat("░", barWidth-filled)),
			b.value,
		)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderSparkline draws one cell per value in [0, 1], keeping the most
// recent values when the series is wider than width.
func renderSparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round(clampRatio(v) * float64(len(sparkTicks)-1)))
		b.WriteRune(sparkTicks[idx])
	}
	return b.String()
}

func clampRatio(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
