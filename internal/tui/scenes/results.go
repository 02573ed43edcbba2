package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/output"
	"github.com/rgehrsitz/reformcalc/internal/tui/components"
	"github.com/rgehrsitz/reformcalc/internal/tui/tuistyles"
)

// ResultsModel represents the results display scene
type ResultsModel struct {
	report  *domain.Report
	numbers output.NumberFormat
	width   int
	height  int
}

// NewResultsModel creates a new results scene model
func NewResultsModel(nf output.NumberFormat) *ResultsModel {
	return &ResultsModel{numbers: nf}
}

// SetReport updates the results to display
func (m *ResultsModel) SetReport(report *domain.Report) {
	m.report = report
}

// Report returns the results on display, if any
func (m *ResultsModel) Report() *domain.Report {
	return m.report
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	// Results scene is read-only
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.report == nil {
		return renderNoResultsState()
	}

	s := m.report.Result.Summary
	sections := []string{
		m.renderAlert(s),
		"",
		m.renderKeyMetrics(s),
		"",
		m.renderScenarioTable(),
	}

	if be := m.report.BreakEven; be != nil && be.Found {
		sections = append(sections, "",
			tuistyles.InfoStyle.Render(fmt.Sprintf("Break-even rate: %s", m.numbers.Rate(be.Rate, 2))))
	}

	if output.AssessIncrease(s).Raised {
		chart := components.NewBarChart("Tax burden comparison").WithWidth(36).
			AddBar("Current", s.CurrentBurden, m.numbers.Currency(s.CurrentBurden), tuistyles.ColorCurrent).
			AddBar("Best case", s.BestCaseBurden, m.numbers.Currency(s.BestCaseBurden), tuistyles.ColorBest).
			AddBar("Worst case", s.WorstCaseBurden, m.numbers.Currency(s.WorstCaseBurden), tuistyles.ColorWorst)
		sections = append(sections, "", chart.Render(),
			tuistyles.SubtitleStyle.Render("Estimated values across the candidate reform rates."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderNoResultsState() string {
	return `No results to display.

Fill in the form and press enter to calculate.

Press ESC to go back.`
}

func (m *ResultsModel) renderAlert(s domain.SummaryResult) string {
	msg := output.AlertMessage(s, m.numbers)
	if output.AssessIncrease(s).Raised {
		return tuistyles.WarningBannerStyle.Render(msg)
	}
	return tuistyles.GoodNewsBannerStyle.Render(msg)
}

func (m *ResultsModel) renderKeyMetrics(s domain.SummaryResult) string {
	nf := m.numbers
	cards := []*components.MetricCard{
		components.NewMetricCard("Today's burden", nf.Currency(s.CurrentBurden)).
			WithDescription("PIS/COFINS + ISS"),
		components.NewMetricCard("Best case", nf.Currency(s.BestCaseBurden)).
			WithChange(s.BestCaseDelta.IsPositive(), signedCurrency(nf, s.BestCaseDelta)),
		components.NewMetricCard("Worst case", nf.Currency(s.WorstCaseBurden)).
			WithChange(s.WorstCaseDelta.IsPositive(), signedCurrency(nf, s.WorstCaseDelta)),
	}
	return components.MetricRow(cards)
}

func (m *ResultsModel) renderScenarioTable() string {
	nf := m.numbers
	var sb strings.Builder

	header := fmt.Sprintf("%-8s %18s %18s %18s", "Rate", "Debits", "Credits", "Burden")
	sb.WriteString(tuistyles.TableHeaderStyle.Render(header))
	sb.WriteString("\n")

	worst := m.report.Result.Summary.WorstCaseBurden
	for _, sc := range m.report.Result.Scenarios {
		row := fmt.Sprintf("%-8s %18s %18s %18s",
			nf.Rate(sc.Rate, 1),
			nf.Currency(sc.DebitAmount),
			nf.Currency(sc.CreditAmount),
			nf.Currency(sc.EstimatedBurden))
		style := tuistyles.TableCellStyle
		if sc.EstimatedBurden.Equal(worst) {
			style = tuistyles.TableHighlightStyle
		}
		sb.WriteString(style.Render(row))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// signedCurrency prefixes increases with a plus sign
func signedCurrency(nf output.NumberFormat, d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + nf.Currency(d)
	}
	return nf.Currency(d)
}
