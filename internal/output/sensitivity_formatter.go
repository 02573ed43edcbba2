package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct {
	Numbers NumberFormat
}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Points) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}

	var buf bytes.Buffer
	nf := scf.Numbers
	param := analysis.Parameter
	value := func(d decimal.Decimal) string {
		if param.Unit == "percent" {
			return nf.Percent(d, 2)
		}
		return nf.Currency(d)
	}

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	buf.WriteString(strings.Repeat("=", 80) + "\n")
	fmt.Fprintf(&buf, "Base value: %s\n", value(param.BaseValue))
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n", value(param.MinValue), value(param.MaxValue), len(analysis.Points))
	if param.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", param.Description)
	}
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "%-18s %18s %18s %18s\n", "Value", "Best Case", "Worst Case", "vs Today")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	for _, p := range analysis.Points {
		marker := ""
		if p.Value.Equal(param.BaseValue) {
			marker = " *"
		}
		fmt.Fprintf(&buf, "%-18s %18s %18s %18s%s\n",
			value(p.Value),
			nf.Currency(p.Summary.BestCaseBurden),
			nf.Currency(p.Summary.WorstCaseBurden),
			nf.Currency(p.Summary.WorstCaseDelta),
			marker)
	}
	buf.WriteString("\n")

	s := analysis.Summary
	buf.WriteString("SUMMARY\n")
	buf.WriteString(strings.Repeat("-", 80) + "\n")
	fmt.Fprintf(&buf, "Lowest worst case:  %s at %s\n", nf.Currency(s.LowestWorstCase), value(s.LowestAt))
	fmt.Fprintf(&buf, "Highest worst case: %s at %s\n", nf.Currency(s.HighestWorstCase), value(s.HighestAt))
	fmt.Fprintf(&buf, "Change per unit:    %s\n", nf.Number(s.WorstCaseChangePerUnit, 4))
	for _, rec := range s.Recommendations {
		fmt.Fprintf(&buf, "• %s\n", rec)
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("no results in analysis")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{{"Parameter", "Value", "BestCaseBurden", "WorstCaseBurden", "CurrentBurden", "WorstCaseDelta"}}
	for _, p := range analysis.Points {
		rows = append(rows, []string{
			analysis.Parameter.Name,
			p.Value.String(),
			p.Summary.BestCaseBurden.StringFixed(2),
			p.Summary.WorstCaseBurden.StringFixed(2),
			p.Summary.CurrentBurden.StringFixed(2),
			p.Summary.WorstCaseDelta.StringFixed(2),
		})
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.SensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter returns the formatter for format, or nil if unknown
func NewSensitivityFormatter(format string, nf NumberFormat) SensitivityFormatter {
	switch format {
	case "", "console", "table":
		return SensitivityConsoleFormatter{Numbers: nf}
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return nil
	}
}
