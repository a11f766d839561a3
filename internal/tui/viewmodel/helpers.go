// Package viewmodel holds pure transformations from domain records into the
// display models the console renders. Nothing here performs I/O or keeps state.
package viewmodel

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ReasonSeparator splits the clauses of a scoring explanation.
const ReasonSeparator = "|"

// SplitReason returns the first clause of a pipe-delimited explanation and the
// remaining non-empty clauses, all trimmed.
func SplitReason(reason string) (string, []string) {
	parts := strings.Split(reason, ReasonSeparator)
	headline := strings.TrimSpace(parts[0])

	var details []string
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			details = append(details, p)
		}
	}
	return headline, details
}

// RiskPercent converts a risk score to a whole percentage in [0, 100].
// Halves round up. Out-of-range and NaN scores are clamped.
func RiskPercent(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	p := math.Floor(score*100 + 0.5)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return int(p)
	}
}

// FormatRatioPercent renders a ratio in [0, 1] as a percentage with one decimal.
func FormatRatioPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// FormatTimestamp renders an alert instant in the operator's zone.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "—"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006-01-02 15:04:05")
}

// TruncateString truncates a string to the specified rune length with ellipsis.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SanitizeForDisplay removes potentially problematic characters for terminal display.
func SanitizeForDisplay(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}
