package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/reformcalc/internal/compare"
	"github.com/rgehrsitz/reformcalc/internal/output"
	"github.com/rgehrsitz/reformcalc/internal/transform"
	"github.com/rgehrsitz/reformcalc/internal/tui/components"
	"github.com/rgehrsitz/reformcalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/reformcalc/internal/tui/tuistyles"
)

var (
	cursorUpKey   = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	cursorDownKey = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	toggleKey     = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select"))
	compareKey    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "compare"))
	clearKey      = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "clear"))
)

// CompareModel lets the user pick what-if templates and shows the comparison
type CompareModel struct {
	items     []components.TemplateItem
	cursor    int
	set       *compare.ComparisonSet
	comparing bool
	numbers   output.NumberFormat
	width     int
	height    int
}

// NewCompareModel creates a compare scene listing the given templates
func NewCompareModel(templates *transform.TemplateRegistry, nf output.NumberFormat) *CompareModel {
	m := &CompareModel{numbers: nf}
	for _, name := range templates.List() {
		t, _ := templates.Get(name)
		m.items = append(m.items, components.TemplateItem{Name: t.Name, Description: t.Description})
	}
	return m
}

// SetComparison stores comparison results
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
	m.comparing = false
}

// Comparing reports whether a comparison is in flight
func (m *CompareModel) Comparing() bool {
	return m.comparing
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, cursorUpKey):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, cursorDownKey):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, toggleKey):
		if len(m.items) > 0 {
			m.items[m.cursor].Checked = !m.items[m.cursor].Checked
		}
	case key.Matches(keyMsg, clearKey):
		for i := range m.items {
			m.items[i].Checked = false
		}
		m.set = nil
	case key.Matches(keyMsg, compareKey):
		selected := m.Selected()
		if len(selected) == 0 {
			return m, nil
		}
		m.comparing = true
		return m, func() tea.Msg { return tuimsg.CompareRequestedMsg{Templates: selected} }
	}
	return m, nil
}

// Selected returns the checked template names in list order
func (m *CompareModel) Selected() []string {
	var selected []string
	for _, item := range m.items {
		if item.Checked {
			selected = append(selected, item.Name)
		}
	}
	return selected
}

// View renders the compare scene
func (m *CompareModel) View() string {
	var sb strings.Builder

	sb.WriteString(tuistyles.TitleStyle.Render("What-if comparison"))
	sb.WriteString("\n")
	sb.WriteString(tuistyles.SubtitleStyle.Render("Select templates to compare against your current inputs."))
	sb.WriteString("\n\n")
	sb.WriteString(components.TemplateList(m.items, m.cursor))
	sb.WriteString("\n\n")

	switch {
	case m.comparing:
		sb.WriteString(tuistyles.InfoStyle.Render("Comparing..."))
		sb.WriteString("\n\n")
	case m.set != nil:
		sb.WriteString((&compare.TableFormatter{Numbers: m.numbers}).Format(m.set))
		sb.WriteString("\n")
	}

	sb.WriteString(renderKeyHelp(cursorUpKey, cursorDownKey, toggleKey, compareKey, clearKey))
	return sb.String()
}
