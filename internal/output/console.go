package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the scenario table, the best/worst summary, the
// increase alert, and a bar chart for a terminal.
type ConsoleFormatter struct {
	Numbers NumberFormat
	Chart   bool
}

func (ConsoleFormatter) Name() string { return "console" }

const lineWidth = 80

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	nf := c.Numbers
	if nf.printer == nil {
		nf = DefaultNumberFormat()
	}
	buf := &bytes.Buffer{}
	res := report.Result

	buf.WriteString("TAX REFORM IMPACT ANALYSIS\n")
	buf.WriteString(strings.Repeat("=", lineWidth) + "\n")
	if report.Company != "" {
		fmt.Fprintf(buf, "Company: %s\n", report.Company)
	}
	buf.WriteString("\n")

	writeInputs(buf, res.Inputs, nf)

	buf.WriteString("SCENARIOS BY CANDIDATE RATE\n")
	buf.WriteString(strings.Repeat("-", lineWidth) + "\n")
	fmt.Fprintf(buf, "%-10s %22s %22s %22s\n", "Rate", "Debits", "Credits", "Estimated Burden")
	for _, sc := range res.Scenarios {
		fmt.Fprintf(buf, "%-10s %22s %22s %22s\n",
			nf.Rate(sc.Rate, 1),
			nf.Currency(sc.DebitAmount),
			nf.Currency(sc.CreditAmount),
			nf.Currency(sc.EstimatedBurden))
	}
	buf.WriteString("\n")

	s := res.Summary
	buf.WriteString("SUMMARY\n")
	buf.WriteString(strings.Repeat("-", lineWidth) + "\n")
	fmt.Fprintf(buf, "%-12s %22s %22s %20s\n", "Scenario", "Estimated Burden", "Current Burden", "Difference")
	fmt.Fprintf(buf, "%-12s %22s %22s %20s\n", "Best case", nf.Currency(s.BestCaseBurden), nf.Currency(s.CurrentBurden), nf.Currency(s.BestCaseDelta))
	fmt.Fprintf(buf, "%-12s %22s %22s %20s\n", "Worst case", nf.Currency(s.WorstCaseBurden), nf.Currency(s.CurrentBurden), nf.Currency(s.WorstCaseDelta))
	buf.WriteString("\n")

	if report.BreakEven != nil && report.BreakEven.Found {
		fmt.Fprintf(buf, "Break-even rate: %s (uniform rate at which the projected burden equals today's)\n\n",
			nf.Rate(report.BreakEven.Rate, 2))
	}

	buf.WriteString(AlertMessage(s, nf) + "\n")

	if c.Chart && AssessIncrease(s).Raised {
		buf.WriteString("\nTAX BURDEN COMPARISON\n")
		buf.WriteString(strings.Repeat("-", lineWidth) + "\n")
		buf.WriteString(RenderBarChart(ComparisonBars(s), 40, nf))
		buf.WriteString("Estimated values across the candidate reform rates.\n")
	}

	return buf.Bytes(), nil
}

func writeInputs(buf *bytes.Buffer, in domain.Inputs, nf NumberFormat) {
	buf.WriteString("INPUTS\n")
	buf.WriteString(strings.Repeat("-", lineWidth) + "\n")
	fmt.Fprintf(buf, "  %-42s %s\n", "PIS/COFINS (annual):", nf.Currency(in.PISCOFINS))
	fmt.Fprintf(buf, "  %-42s %s\n", "ISS (annual):", nf.Currency(in.ISS))
	fmt.Fprintf(buf, "  %-42s %s\n", "Annual revenue:", nf.Currency(in.AnnualRevenue))
	fmt.Fprintf(buf, "  %-42s %s\n", "Exempt revenue (special economic zone):", nf.Percent(in.ExemptRevenuePct, 2))
	fmt.Fprintf(buf, "  %-42s %s\n", "Operating costs (annual):", nf.Currency(in.OperatingCosts))
	fmt.Fprintf(buf, "  %-42s %s\n", "Costs from simplified-regime suppliers:", nf.Percent(in.SimplifiedSupplierPct, 2))
	buf.WriteString("\n")
}

// Bar is one labelled value in a bar chart.
type Bar struct {
	Label string
	Value decimal.Decimal
}

// ComparisonBars returns current, best, and worst burdens in display order.
func ComparisonBars(s domain.SummaryResult) []Bar {
	return []Bar{
		{Label: "Current", Value: s.CurrentBurden},
		{Label: "Best case", Value: s.BestCaseBurden},
		{Label: "Worst case", Value: s.WorstCaseBurden},
	}
}

var barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C7C7C6"))

// RenderBarChart draws horizontal bars scaled to the largest magnitude.
// Negative values are drawn with a lighter fill.
func RenderBarChart(bars []Bar, width int, nf NumberFormat) string {
	if width <= 0 {
		width = 40
	}

	maxAbs := decimal.Zero
	labelWidth := 0
	for _, b := range bars {
		maxAbs = decimal.Max(maxAbs, b.Value.Abs())
		labelWidth = max(labelWidth, len(b.Label))
	}

	var sb strings.Builder
	for _, b := range bars {
		n := 0
		if maxAbs.IsPositive() {
			n = int(b.Value.Abs().Div(maxAbs).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
		}
		fill := "█"
		if b.Value.IsNegative() {
			fill = "░"
		}
		bar := barStyle.Render(strings.Repeat(fill, n))
		fmt.Fprintf(&sb, "%-*s │%s%s %s\n", labelWidth, b.Label, bar, strings.Repeat(" ", width-n), nf.Currency(b.Value))
	}
	return sb.String()
}
