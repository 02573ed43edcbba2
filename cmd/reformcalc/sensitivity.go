package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/reformcalc/internal/calculation"
	"github.com/rgehrsitz/reformcalc/internal/config"
	"github.com/rgehrsitz/reformcalc/internal/output"
	"github.com/spf13/cobra"
)

func newSensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep one input and show how the best and worst cases move",
		Long: fmt.Sprintf(`Sweep one input across a range and show the best and worst cases at each step.

Percentages sweep 0-100 by default; amounts sweep from half to one and a half
times their current value.

Parameters: %s

Examples:
  reformcalc sensitivity company.yaml --param operating_costs
  reformcalc sensitivity company.yaml --param simplified_supplier_pct --steps 5
  reformcalc sensitivity company.yaml --param annual_revenue --min 50.000 --max 200.000 -f csv`,
			strings.Join(calculation.SensitivityParameters(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: runSensitivity,
	}

	addInputFlags(cmd)
	cmd.Flags().String("param", calculation.ParamOperatingCosts, "Input to sweep")
	cmd.Flags().String("min", "", "Lowest value of the sweep")
	cmd.Flags().String("max", "", "Highest value of the sweep")
	cmd.Flags().Int("steps", calculation.DefaultSensitivitySteps, "Number of points in the sweep (1 evaluates only the current value, which must lie within --min/--max)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	return cmd
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	paramName, _ := cmd.Flags().GetString("param")

	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	formatter := output.NewSensitivityFormatter(format, s.Numbers)
	if formatter == nil {
		return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
	}

	param, err := calculation.DefaultSensitivityParameter(paramName, s.Inputs)
	if err != nil {
		return err
	}

	mark := config.DecimalMark(s.Locale)
	minValue, err := parseBound(cmd, "min", mark)
	if err != nil {
		return err
	}
	if minValue != nil {
		param.MinValue = *minValue
	}
	maxValue, err := parseBound(cmd, "max", mark)
	if err != nil {
		return err
	}
	if maxValue != nil {
		param.MaxValue = *maxValue
	}
	if cmd.Flags().Changed("steps") {
		param.Steps, _ = cmd.Flags().GetInt("steps")
	}

	analysis, err := calculation.NewSensitivityAnalyzer(s.Engine).AnalyzeSingleParameter(cmd.Context(), s.Inputs, param)
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	text, err := formatter.FormatSensitivityAnalysis(analysis)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}
