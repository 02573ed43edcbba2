// Package tuistyles holds the lipgloss palette and styles shared by the TUI
// packages. It lives apart from package tui so scenes and components can use
// it without an import cycle.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.Color("#0E7C66")
	ColorSecondary = lipgloss.Color("#1F4E79")
	ColorAccent    = lipgloss.Color("#F2B705")
	ColorSuccess   = lipgloss.Color("#2E9E44")
	ColorDanger    = lipgloss.Color("#D64545")
	ColorInfo      = lipgloss.Color("#3A86FF")

	ColorForeground = lipgloss.Color("#E6E6E6")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#4A4A4A")

	// Bars in the burden chart
	ColorCurrent = lipgloss.Color("#3A86FF")
	ColorBest    = lipgloss.Color("#2E9E44")
	ColorWorst   = lipgloss.Color("#D64545")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorSecondary).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)

	FieldLabelStyle        = lipgloss.NewStyle().Foreground(ColorForeground)
	FocusedFieldLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	FieldHintStyle         = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo)

	WarningBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(ColorDanger).
				Padding(0, 1)

	GoodNewsBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(ColorSuccess).
				Padding(0, 1)

	SelectedItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// BurdenStyle colors a change in tax burden: increases are bad news.
func BurdenStyle(increase bool) lipgloss.Style {
	if increase {
		return lipgloss.NewStyle().Foreground(ColorDanger)
	}
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// TrendIndicator returns an arrow for the direction of a change.
func TrendIndicator(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}
