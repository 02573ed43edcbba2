package scenes

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/input"
	"github.com/rgehrsitz/reformcalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/reformcalc/internal/tui/tuistyles"
)

type formField struct {
	name  string
	label string
	hint  string
}

var formFields = []formField{
	{input.FieldPISCOFINS, "PIS/COFINS paid per year", "R$, e.g. 1.000,00"},
	{input.FieldISS, "ISS paid per year", "R$"},
	{input.FieldAnnualRevenue, "Annual revenue", "R$"},
	{input.FieldExemptRevenuePct, "Revenue from the special economic zone", "% of revenue, 0-100"},
	{input.FieldOperatingCosts, "Operating costs per year", "R$"},
	{input.FieldSimplifiedSupplierPct, "Costs from simplified-regime suppliers", "% of costs, 0-100"},
}

var (
	nextFieldKey = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	prevFieldKey = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field"))
	submitKey    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate"))
)

// FormModel collects the six inputs and validates them on submit.
type FormModel struct {
	inputs    []textinput.Model
	errors    []string
	focused   int
	collector *input.Collector
	width     int
}

// NewFormModel creates the input form. A nil collector accepts pt-BR text and
// treats blank fields as zero.
func NewFormModel(collector *input.Collector) *FormModel {
	if collector == nil {
		collector = input.NewCollector()
		collector.EmptyAsZero = true
	}

	m := &FormModel{
		inputs:    make([]textinput.Model, len(formFields)),
		errors:    make([]string, len(formFields)),
		collector: collector,
	}
	for i, f := range formFields {
		ti := textinput.New()
		ti.Placeholder = "0"
		ti.Prompt = "› "
		ti.CharLimit = 24
		ti.Width = 24
		if input.IsPercentField(f.name) {
			ti.CharLimit = 8
		}
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

// SetDecimalMark changes the separator ambiguous text is read with.
func (m *FormModel) SetDecimalMark(mark rune) {
	m.collector.DecimalMark = mark
}

// SetValues fills the form, e.g. from an input file.
func (m *FormModel) SetValues(raw input.RawInputs) {
	values := []string{raw.PISCOFINS, raw.ISS, raw.AnnualRevenue, raw.ExemptRevenuePct, raw.OperatingCosts, raw.SimplifiedSupplierPct}
	for i, v := range values {
		m.inputs[i].SetValue(v)
		m.errors[i] = ""
	}
}

// Raw returns the text currently in the form.
func (m *FormModel) Raw() input.RawInputs {
	return input.RawInputs{
		PISCOFINS:             m.inputs[0].Value(),
		ISS:                   m.inputs[1].Value(),
		AnnualRevenue:         m.inputs[2].Value(),
		ExemptRevenuePct:      m.inputs[3].Value(),
		OperatingCosts:        m.inputs[4].Value(),
		SimplifiedSupplierPct: m.inputs[5].Value(),
	}
}

// Focused returns the index of the field with focus.
func (m *FormModel) Focused() int {
	return m.focused
}

// Errors returns the inline error for each field, empty when valid.
func (m *FormModel) Errors() []string {
	return m.errors
}

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, nextFieldKey):
			return m, m.focus((m.focused + 1) % len(m.inputs))
		case key.Matches(msg, prevFieldKey):
			return m, m.focus((m.focused - 1 + len(m.inputs)) % len(m.inputs))
		case key.Matches(msg, submitKey):
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *FormModel) focus(i int) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = i
	return m.inputs[i].Focus()
}

// submit validates every field so all errors show at once, then either
// focuses the first invalid field or emits the inputs.
func (m *FormModel) submit() tea.Cmd {
	var in domain.Inputs
	dst := []*decimal.Decimal{
		&in.PISCOFINS, &in.ISS, &in.AnnualRevenue,
		&in.ExemptRevenuePct, &in.OperatingCosts, &in.SimplifiedSupplierPct,
	}

	firstInvalid := -1
	for i, f := range formFields {
		value, err := m.collector.ParseField(f.name, m.inputs[i].Value())
		if err != nil {
			m.errors[i] = fieldMessage(err)
			if firstInvalid < 0 {
				firstInvalid = i
			}
			continue
		}
		m.errors[i] = ""
		*dst[i] = value
	}

	if firstInvalid >= 0 {
		return m.focus(firstInvalid)
	}
	return func() tea.Msg { return tuimsg.InputsSubmittedMsg{Inputs: in} }
}

// fieldMessage drops the field name, which the form already shows.
func fieldMessage(err error) string {
	var fe *input.FieldError
	if errors.As(err, &fe) {
		return fe.Err.Error()
	}
	return err.Error()
}

// View renders the form scene
func (m *FormModel) View() string {
	var sb strings.Builder

	sb.WriteString(tuistyles.TitleStyle.Render("Your business today"))
	sb.WriteString("\n")
	sb.WriteString(tuistyles.SubtitleStyle.Render("Enter annual amounts; blank fields count as zero."))
	sb.WriteString("\n\n")

	labelWidth := 0
	for _, f := range formFields {
		if len(f.label) > labelWidth {
			labelWidth = len(f.label)
		}
	}

	for i, f := range formFields {
		labelStyle := tuistyles.FieldLabelStyle
		if i == m.focused {
			labelStyle = tuistyles.FocusedFieldLabelStyle
		}
		label := labelStyle.Width(labelWidth + 2).Render(f.label)

		note := tuistyles.FieldHintStyle.Render(f.hint)
		if m.errors[i] != "" {
			note = tuistyles.ErrorStyle.Render("✗ " + m.errors[i])
		}

		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, m.inputs[i].View(), "  ", note))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(renderKeyHelp(nextFieldKey, prevFieldKey, submitKey))
	return sb.String()
}

func renderKeyHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, tuistyles.HelpKeyStyle.Render(h.Key)+" "+tuistyles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, " • ")
}
