package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/reformcalc/internal/calculation"
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func sampleReport() *domain.Report {
	in := domain.Inputs{
		PISCOFINS:             d("1000"),
		ISS:                   d("500"),
		AnnualRevenue:         d("100000"),
		ExemptRevenuePct:      d("0"),
		OperatingCosts:        d("50000"),
		SimplifiedSupplierPct: d("20"),
	}
	report := calculation.NewCalculationEngine().Run(in)
	report.Company = "Acme Ltda"
	return &report
}

func TestNumberFormat(t *testing.T) {
	br, err := NewNumberFormat("pt-BR")
	require.NoError(t, err)
	us, err := NewNumberFormat("en-US")
	require.NoError(t, err)

	assert.Equal(t, "1.234.567,89", br.Number(d("1234567.891"), 2))
	assert.Equal(t, "1,234,567.89", us.Number(d("1234567.891"), 2))
	assert.Equal(t, "R$ 14.200,00", br.Currency(d("14200")))
	assert.Equal(t, "-R$ 1.500,50", br.Currency(d("-1500.5")))
	assert.Equal(t, "R$ 0,00", br.Currency(d("-0.001")))
	assert.Equal(t, "25,0%", br.Rate(d("0.25"), 1))
	assert.Equal(t, "966.7%", us.Percent(d("966.66666"), 1))
}

func TestNumberFormat_Defaults(t *testing.T) {
	nf, err := NewNumberFormat("")
	require.NoError(t, err)
	assert.Equal(t, "R$ 1.000,00", nf.Currency(d("1000")))

	var zero NumberFormat
	assert.Equal(t, "1.000,00", zero.Number(d("1000"), 2))

	_, err = NewNumberFormat("not a locale!")
	assert.Error(t, err)
}

func TestAssessIncrease(t *testing.T) {
	tests := []struct {
		name     string
		summary  domain.SummaryResult
		raised   bool
		expected string
	}{
		{
			name:     "increase",
			summary:  domain.SummaryResult{CurrentBurden: d("1500"), WorstCaseDelta: d("14500")},
			raised:   true,
			expected: "966.6666666666666667",
		},
		{
			name:    "decrease",
			summary: domain.SummaryResult{CurrentBurden: d("1500"), WorstCaseDelta: d("-100")},
		},
		{
			name:    "no change",
			summary: domain.SummaryResult{CurrentBurden: d("1500"), WorstCaseDelta: d("0")},
		},
		{
			name:    "no current burden",
			summary: domain.SummaryResult{CurrentBurden: d("0"), WorstCaseDelta: d("5000")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := AssessIncrease(tt.summary)
			assert.Equal(t, tt.raised, sig.Raised)
			if tt.raised {
				expected := tt.summary.WorstCaseDelta.Div(tt.summary.CurrentBurden).Mul(decimal.NewFromInt(100))
				assert.True(t, sig.PercentIncrease.Equal(expected), "got %s", sig.PercentIncrease)
				assert.True(t, sig.PercentIncrease.Sub(d(tt.expected)).Abs().LessThan(d("0.0000001")))
			} else {
				assert.True(t, sig.PercentIncrease.IsZero())
			}
		})
	}
}

func TestAlertMessage(t *testing.T) {
	nf := DefaultNumberFormat()

	msg := AlertMessage(domain.SummaryResult{CurrentBurden: d("1500"), WorstCaseDelta: d("14500")}, nf)
	assert.Contains(t, msg, "966,7%")

	msg = AlertMessage(domain.SummaryResult{CurrentBurden: d("1500"), WorstCaseDelta: d("-1")}, nf)
	assert.Contains(t, msg, "does not increase")

	msg = AlertMessage(domain.SummaryResult{}, nf)
	assert.Contains(t, msg, "No current tax burden")
}

func TestConsoleFormatter(t *testing.T) {
	f := GetFormatterByName("console", DefaultNumberFormat())
	require.NotNil(t, f)

	out, err := f.Format(sampleReport())
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "TAX REFORM IMPACT ANALYSIS")
	assert.Contains(t, text, "Company: Acme Ltda")
	assert.Contains(t, text, "25,0%")
	assert.Contains(t, text, "28,0%")
	assert.Contains(t, text, "R$ 25.000,00")
	assert.Contains(t, text, "R$ 10.800,00")
	assert.Contains(t, text, "R$ 14.200,00")
	assert.Contains(t, text, "R$ 16.000,00")
	assert.Contains(t, text, "R$ 14.500,00")
	assert.Contains(t, text, "Break-even rate: 3,83%")
	assert.Contains(t, text, "may increase by up to 966,7%")
	assert.Contains(t, text, "TAX BURDEN COMPARISON")
	assert.Contains(t, text, "Worst case")
}

func TestConsoleFormatter_NoIncreaseSkipsChart(t *testing.T) {
	in := domain.Inputs{
		PISCOFINS:      d("50000"),
		AnnualRevenue:  d("100000"),
		OperatingCosts: d("50000"),
	}
	report := calculation.NewCalculationEngine().Run(in)

	out, err := ConsoleFormatter{Numbers: DefaultNumberFormat(), Chart: true}.Format(&report)
	require.NoError(t, err)

	assert.Contains(t, string(out), "does not increase")
	assert.NotContains(t, string(out), "TAX BURDEN COMPARISON")
}

func TestRenderBarChart(t *testing.T) {
	bars := []Bar{
		{Label: "Current", Value: d("1500")},
		{Label: "Best case", Value: d("14200")},
		{Label: "Worst case", Value: d("16000")},
	}

	chart := RenderBarChart(bars, 20, DefaultNumberFormat())
	lines := strings.Split(strings.TrimRight(chart, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, 2, strings.Count(lines[0], "█"))
	assert.Equal(t, 18, strings.Count(lines[1], "█"))
	assert.Equal(t, 20, strings.Count(lines[2], "█"))
	assert.Contains(t, lines[2], "R$ 16.000,00")
}

func TestRenderBarChart_NegativeAndZero(t *testing.T) {
	chart := RenderBarChart([]Bar{{Label: "a", Value: d("-10")}, {Label: "b", Value: d("0")}}, 10, DefaultNumberFormat())

	assert.Equal(t, 10, strings.Count(chart, "░"))
	assert.Equal(t, 0, strings.Count(chart, "█"))

	chart = RenderBarChart([]Bar{{Label: "zero", Value: decimal.Zero}}, 0, DefaultNumberFormat())
	assert.Contains(t, chart, "R$ 0,00")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)

	assert.Equal(t, "Section", records[0][0])
	assert.Equal(t, []string{"scenario", "25%", "0.25", "25000.00", "10800.00", "14200.00", "", ""}, records[1])
	assert.Equal(t, []string{"summary", "best_case", "", "", "", "14200.00", "1500.00", "12700.00"}, records[5])
	assert.Equal(t, []string{"summary", "worst_case", "", "", "", "16000.00", "1500.00", "14500.00"}, records[6])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{Pretty: true}.Format(sampleReport())
	require.NoError(t, err)

	var doc struct {
		Company   string `json:"company"`
		Scenarios []struct {
			Rate            string `json:"rate"`
			EstimatedBurden string `json:"estimatedBurden"`
		} `json:"scenarios"`
		Summary struct {
			CurrentBurden  string `json:"currentBurden"`
			WorstCaseDelta string `json:"worstCaseDelta"`
		} `json:"summary"`
		Increase struct {
			Raised bool `json:"raised"`
		} `json:"increase"`
		BreakEven struct {
			Found bool `json:"found"`
		} `json:"breakEven"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, "Acme Ltda", doc.Company)
	require.Len(t, doc.Scenarios, 4)
	assert.Equal(t, "0.25", doc.Scenarios[0].Rate)
	assert.Equal(t, "14200", doc.Scenarios[0].EstimatedBurden)
	assert.Equal(t, "1500", doc.Summary.CurrentBurden)
	assert.Equal(t, "14500", doc.Summary.WorstCaseDelta)
	assert.True(t, doc.Increase.Raised)
	assert.True(t, doc.BreakEven.Found)
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(sampleReport())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "Acme Ltda", doc["company"])
	assert.Len(t, doc["scenarios"], 4)
	assert.Contains(t, string(out), "current_burden: \"1500\"")
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{Numbers: DefaultNumberFormat()}.Format(sampleReport())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<html lang=\"pt-BR\">")
	assert.Contains(t, html, "Acme Ltda")
	assert.Contains(t, html, "R$ 14.200,00")
	assert.Contains(t, html, "alert increase")
	assert.Contains(t, html, "width:100%")
}

func TestGetFormatterByName(t *testing.T) {
	nf := DefaultNumberFormat()
	for _, name := range FormatterNames() {
		f := GetFormatterByName(name, nf)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Equal(t, "console", GetFormatterByName("", nf).Name())
	assert.Equal(t, "console", GetFormatterByName("table", nf).Name())
	assert.Nil(t, GetFormatterByName("pdf", nf))
	assert.Equal(t, []string{"console", "csv", "html", "json", "yaml"}, FormatterNames())
}

func TestGenerateReport_Unsupported(t *testing.T) {
	_, err := GenerateReport(sampleReport(), "pdf", DefaultNumberFormat())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: pdf")
}
