package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the console.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Label         lipgloss.Style
	Code          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	ProgressEmpty lipgloss.Style
	StatusPending lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Banner        lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Danger        lipgloss.Color
	Warning       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Surface       lipgloss.Color
}

// Default is the slate theme of the console.
var Default = build(palette{
	primary:    "#3B82F6",
	secondary:  "#10B981",
	danger:     "#EF4444",
	warning:    "#F59E0B",
	background: "#0F172A",
	surface:    "#1E293B",
	foreground: "#F8FAFC",
	muted:      "#94A3B8",
	border:     "#334155",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:    "#89b4fa",
	secondary:  "#a6e3a1",
	danger:     "#f38ba8",
	warning:    "#f9e2af",
	background: "#1e1e2e",
	surface:    "#313244",
	foreground: "#cdd6f4",
	muted:      "#6c7086",
	border:     "#45475a",
})

type palette struct {
	primary, secondary, danger, warning string
	background, surface, foreground     string
	muted, border                       string
}

func build(p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	border := lipgloss.Color(p.border)

	return Theme{
		Primary:    lipgloss.Color(p.primary),
		Secondary:  lipgloss.Color(p.secondary),
		Danger:     lipgloss.Color(p.danger),
		Warning:    lipgloss.Color(p.warning),
		Background: lipgloss.Color(p.background),
		Surface:    lipgloss.Color(p.surface),
		Foreground: fg,
		Muted:      lipgloss.Color(p.muted),
		Border:     border,

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			MarginBottom(1),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		Code: lipgloss.NewStyle().
			Background(lipgloss.Color(p.surface)).
			Foreground(fg).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(fg).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color(p.surface)).
			Foreground(fg),

		// Component styles
		Box: lipgloss.NewStyle().
			Padding(1, 2),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(1, 2),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
		TabActive: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(fg).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Padding(0, 2),
		ProgressEmpty: lipgloss.NewStyle().
			Foreground(border),
		Banner: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(p.danger)).
			Foreground(lipgloss.Color(p.danger)).
			Bold(true).
			PaddingLeft(1),

		// Status styles
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.secondary)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.danger)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.primary)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// SeverityColor returns the chart color of a severity tier, indexed in
// Critical, High, Medium order.
func (t Theme) SeverityColor(tier int) lipgloss.Color {
	switch tier {
	case 0:
		return t.Danger
	case 1:
		return t.Warning
	default:
		return t.Primary
	}
}

// VerdictStyle returns the accent style for a fraud or legitimate verdict.
func (t Theme) VerdictStyle(isFraud bool) lipgloss.Style {
	if isFraud {
		return t.StatusError
	}
	return t.StatusSuccess
}
