package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/reformcalc/internal/tui/tuistyles"
)

// MetricCard displays a single amount with a label and an optional change
// against today's burden.
type MetricCard struct {
	Label       string
	Value       string
	Change      *Change
	Description string
	Width       int
}

// Change is a formatted difference and whether it raises the burden.
type Change struct {
	Increase bool
	Text     string // e.g. "+R$ 14.500,00"
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithChange adds the difference from today's burden
func (m *MetricCard) WithChange(increase bool, text string) *MetricCard {
	m.Change = &Change{Increase: increase, Text: text}
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)

	if m.Change != nil {
		content += "\n" + tuistyles.BurdenStyle(m.Change.Increase).
			Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Change.Increase), m.Change.Text))
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricRow renders cards side by side
func MetricRow(cards []*MetricCard) string {
	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, card.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
