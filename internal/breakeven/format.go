package breakeven

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/reformcalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct {
	Numbers output.NumberFormat
}

// Format generates a formatted table for one solver result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	heading(&sb, "BREAK-EVEN INPUT ANALYSIS", "=")

	sb.WriteString(fmt.Sprintf("Target:          %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Case:            %s\n", result.Case))
	sb.WriteString(fmt.Sprintf("Search range:    %s to %s\n",
		tf.formatValue(result.Target, result.Lower), tf.formatValue(result.Target, result.Upper)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", statusLabel(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.Success {
		heading(&sb, "BREAK-EVEN POINT", "-")
		sb.WriteString(fmt.Sprintf("Current value:   %s\n", tf.formatValue(result.Target, result.BaseValue)))
		sb.WriteString(fmt.Sprintf("Break-even:      %s\n", tf.formatValue(result.Target, result.Value)))
		sb.WriteString(fmt.Sprintf("Change needed:   %s\n", tf.signedValue(result.Target, result.Value.Sub(result.BaseValue))))
		sb.WriteString(fmt.Sprintf("Today's burden:  %s\n", tf.Numbers.Currency(result.CurrentBurden)))
		sb.WriteString(fmt.Sprintf("Best case:       %s\n", tf.Numbers.Currency(result.Summary.BestCaseBurden)))
		sb.WriteString(fmt.Sprintf("Worst case:      %s\n", tf.Numbers.Currency(result.Summary.WorstCaseBurden)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiTarget formats results from solving every target
func (tf *TableFormatter) FormatMultiTarget(result *MultiTargetResult) string {
	var sb strings.Builder

	heading(&sb, "BREAK-EVEN INPUT ANALYSIS (ALL TARGETS)", "=")
	sb.WriteString(fmt.Sprintf("Case: %s\n\n", result.Case))

	heading(&sb, fmt.Sprintf("%-26s %18s %18s %14s", "Target", "Current", "Break-even", "Status"), "-")

	for _, res := range result.Results {
		breakEven := "-"
		if res.Success {
			breakEven = tf.formatValue(res.Target, res.Value)
		}
		sb.WriteString(fmt.Sprintf("%-26s %18s %18s %14s\n",
			res.Target,
			tf.formatValue(res.Target, res.BaseValue),
			breakEven,
			statusLabel(res.Success)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		heading(&sb, "RECOMMENDATIONS", "-")
		for _, rec := range result.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter writes a SolveResult or MultiTargetResult as JSON.
type JSONFormatter struct {
	Pretty bool
}

// Format encodes result. Decimal fields become JSON strings.
func (jf *JSONFormatter) Format(result any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return "", fmt.Errorf("failed to encode break-even result: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func statusLabel(success bool) string {
	if success {
		return "✓ Found"
	}
	return "⚠ No crossing"
}

func (tf *TableFormatter) formatValue(target Target, d decimal.Decimal) string {
	if target.IsPercent() {
		return tf.Numbers.Percent(d, 2)
	}
	return tf.Numbers.Currency(d)
}

// signedValue renders a change with an explicit sign.
func (tf *TableFormatter) signedValue(target Target, change decimal.Decimal) string {
	var sign string
	switch change.Sign() {
	case 1:
		sign = "+"
	case -1:
		sign = "-"
	}
	return sign + tf.formatValue(target, change.Abs())
}

func heading(sb *strings.Builder, title, rule string) {
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat(rule, 80) + "\n")
}
