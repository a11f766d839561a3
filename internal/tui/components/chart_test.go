package components

import (
	"math"
	"strings"
	"testing"

	tuitest "github.com/Veraticus/fraudshield/internal/tui/testing"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
	"github.com/stretchr/testify/assert"
)

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "▁█", renderSparkline([]float64{0, 1}, 0))
	assert.Equal(t, "▁█", renderSparkline([]float64{-3, 7}, 0), "out-of-range values are clamped")
	assert.Equal(t, "▁", renderSparkline([]float64{math.NaN()}, 0))
	assert.Empty(t, renderSparkline(nil, 10))

	// The most recent values are kept.
	assert.Equal(t, "█▁", renderSparkline([]float64{0, 0, 1, 0}, 2))
}

func TestRenderBars(t *testing.T) {
	out := tuitest.StripANSI(renderBars([]barSpec{
		{label: "Critical", value: "2", ratio: 1, color: themes.Default.Danger},
		{label: "Medium", value: "0", ratio: 0, color: themes.Default.Primary},
	}, 30, themes.Default.ProgressEmpty))

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Critical █"))
	assert.True(t, strings.HasSuffix(lines[0], " 2"))
	assert.True(t, strings.HasPrefix(lines[1], "Medium   ░"))
	assert.NotContains(t, lines[1], "█")
	assert.Empty(t, renderBars(nil, 30, themes.Default.ProgressEmpty))
}
