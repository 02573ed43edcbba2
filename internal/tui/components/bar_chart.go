package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/reformcalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ChartBar is one labelled, colored bar.
type ChartBar struct {
	Label string
	Value decimal.Decimal
	Text  string // formatted value shown after the bar
	Color lipgloss.Color
}

// BarChart draws horizontal bars scaled to the largest magnitude.
type BarChart struct {
	Title string
	Bars  []ChartBar
	Width int // width of the longest bar
}

// NewBarChart creates a new bar chart
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 40}
}

// AddBar appends a bar
func (c *BarChart) AddBar(label string, value decimal.Decimal, text string, color lipgloss.Color) *BarChart {
	c.Bars = append(c.Bars, ChartBar{Label: label, Value: value, Text: text, Color: color})
	return c
}

// WithWidth sets the width of the longest bar
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Render returns the styled chart. Negative values use a lighter fill.
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	width := c.Width
	if width <= 0 {
		width = 40
	}

	maxAbs := decimal.Zero
	labelWidth := 0
	for _, b := range c.Bars {
		maxAbs = decimal.Max(maxAbs, b.Value.Abs())
		if len(b.Label) > labelWidth {
			labelWidth = len(b.Label)
		}
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(tuistyles.TitleStyle.Render(c.Title))
		sb.WriteString("\n\n")
	}

	labelStyle := lipgloss.NewStyle().Width(labelWidth).Foreground(tuistyles.ColorForeground)
	for _, b := range c.Bars {
		n := BarLength(b.Value, maxAbs, width)
		fill := "█"
		if b.Value.IsNegative() {
			fill = "░"
		}
		bar := lipgloss.NewStyle().Foreground(b.Color).Render(strings.Repeat(fill, n))

		sb.WriteString(labelStyle.Render(b.Label))
		sb.WriteString(" │")
		sb.WriteString(bar)
		sb.WriteString(strings.Repeat(" ", width-n))
		sb.WriteString(" ")
		sb.WriteString(b.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// BarLength scales |v| against maxAbs to at most width cells.
func BarLength(v, maxAbs decimal.Decimal, width int) int {
	if !maxAbs.IsPositive() {
		return 0
	}
	n := int(v.Abs().Div(maxAbs).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if n > width {
		n = width
	}
	return n
}
