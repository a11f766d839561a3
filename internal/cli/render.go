package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/fraudshield/internal/batch"
	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const barWidth = 30

// RenderVerdict renders a single verdict as a boxed card.
func RenderVerdict(v viewmodel.VerdictView) string {
	predStyle := SuccessStyle
	if v.IsFraud {
		predStyle = ErrorStyle
	}

	lines := []string{
		SubtleStyle.Render("Transaction ") + BoldStyle.Render(v.TransactionID),
		predStyle.Bold(true).Render(strings.ToUpper(v.Prediction)),
		riskBar(v.RiskPercent, predStyle),
		"",
		v.Headline,
	}
	for _, d := range v.Details {
		lines = append(lines, SubtleStyle.Render("  • "+d))
	}
	if v.ShowReviewBanner {
		lines = append(lines, "", BannerStyle.Render(AlertIcon+" "+v.ReviewBanner))
	}

	return RenderBox("Risk Verdict", strings.Join(lines, "\n"))
}

func riskBar(percent int, style lipgloss.Style) string {
	filled := percent * barWidth / 100
	return style.Render(strings.Repeat("█", filled)) +
		SubtleStyle.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %d%%", percent)
}

// RenderAlerts renders the alert feed as a severity summary and a table.
func RenderAlerts(feed viewmodel.AlertFeedView, loc *time.Location) string {
	if feed.IsEmpty() {
		return FormatSuccess("No alerts found")
	}

	counts := make([]string, 0, len(feed.Histogram))
	for _, b := range feed.Histogram {
		counts = append(counts, fmt.Sprintf("%s %d", severityStyle(b.Severity).Render(b.Severity.String()), b.Count))
	}

	rows := make([][]string, 0, len(feed.Rows))
	for _, r := range feed.Rows {
		rows = append(rows, []string{
			viewmodel.FormatTimestamp(r.Timestamp, loc),
			r.TransactionID,
			r.Severity.String(),
			fmt.Sprintf("%d%%", r.RiskPercent),
			viewmodel.TruncateString(viewmodel.SanitizeForDisplay(r.Headline), 60),
		})
	}

	t := newTable("Time", "Transaction", "Severity", "Risk", "Reason").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if col == 2 {
				return severityStyle(feed.Rows[row].Severity).PaddingRight(2)
			}
			return TableCellStyle
		})

	return lipgloss.JoinVertical(lipgloss.Left,
		FormatTitle(fmt.Sprintf("%d Fraud Alerts", len(feed.Rows))),
		strings.Join(counts, SubtleStyle.Render("  ·  ")),
		t.String(),
	)
}

func severityStyle(s viewmodel.Severity) lipgloss.Style {
	switch s {
	case viewmodel.SeverityCritical:
		return ErrorStyle
	case viewmodel.SeverityHigh:
		return WarningStyle
	default:
		return InfoStyle
	}
}

// RenderMetrics renders the evaluation metrics as labeled bars.
func RenderMetrics(m viewmodel.MetricsView) string {
	cards := make([]string, 0, len(m.Scorecards))
	for _, c := range m.Scorecards {
		cards = append(cards, SubtleStyle.Render(c.Label+" ")+BoldStyle.Render(c.Display))
	}

	lines := []string{strings.Join(cards, "   "), ""}
	for _, p := range m.Series {
		pct := viewmodel.RiskPercent(p.Value)
		lines = append(lines, fmt.Sprintf("%-10s %s", p.Label, riskBar(pct, InfoStyle)))
	}

	return RenderBox(ChartIcon+" Model Performance", strings.Join(lines, "\n"))
}

// RenderBatchReport renders the outcome of a batch run. payees maps
// transaction ids to a display name and may be nil.
func RenderBatchReport(report batch.Report, payees map[string]string) string {
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		outcome, risk := "", ""
		if res.OK() {
			outcome = string(res.Verdict.Prediction)
			risk = fmt.Sprintf("%d%%", viewmodel.RiskPercent(res.Verdict.RiskScore))
		} else {
			outcome = "error"
		}
		rows = append(rows, []string{
			res.Draft.TransactionID,
			viewmodel.TruncateString(payees[res.Draft.TransactionID], 28),
			fmt.Sprintf("$%.2f", res.Draft.TransactionAmount),
			res.Draft.Channel.Label(),
			outcome,
			risk,
		})
	}

	t := newTable("Transaction", "Payee", "Amount", "Channel", "Verdict", "Risk").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			if col == 4 {
				res := report.Results[row]
				switch {
				case !res.OK():
					return WarningStyle.PaddingRight(2)
				case res.Verdict.Prediction.IsFraud():
					return ErrorStyle.PaddingRight(2)
				default:
					return SuccessStyle.PaddingRight(2)
				}
			}
			return TableCellStyle
		})

	failures := report.Failures()
	summary := fmt.Sprintf("  • Scored: %d of %d\n", report.Scored(), len(report.Results)) +
		fmt.Sprintf("  • Flagged as fraud: %d\n", report.Flagged()) +
		fmt.Sprintf("  • Failed: %d\n", len(failures)) +
		fmt.Sprintf("  • Time taken: %s", report.Duration.Round(time.Millisecond))

	sections := []string{t.String(), "", RenderBox("Batch Complete", summary)}
	for _, f := range failures {
		sections = append(sections, FormatWarning(fmt.Sprintf("%s: %v", f.Draft.TransactionID, f.Err)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(BorderColor)).
		BorderColumn(false).
		Headers(headers...)
}
