package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/reformcalc/internal/calculation"
	"github.com/rgehrsitz/reformcalc/internal/config"
	"github.com/rgehrsitz/reformcalc/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate the tax burden under each candidate rate",
		Long: `Calculate debits, credits and the estimated burden under each candidate rate,
then compare the best and worst cases with today's burden.

Inputs come from a YAML file or from the six input flags.

Examples:
  reformcalc calculate company.yaml
  reformcalc calculate company.yaml -f html --output report.html
  reformcalc calculate --pis-cofins 1.000,00 --iss 500 --revenue 100.000,00 \
    --exempt-pct 0 --costs 50.000,00 --simplified-pct 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCalculate,
	}

	addInputFlags(cmd)
	cmd.Flags().StringP("format", "f", "", "Output format (console, csv, json, yaml, html); defaults to the input file's format or console")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().Bool("no-chart", false, "Omit the bar chart from console output")
	return cmd
}

func runCalculate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	report := s.Engine.Run(s.Inputs)
	if s.Submission != nil {
		report.Company = s.Submission.Company
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" && s.Submission != nil {
		format = s.Submission.Output.Format
	}

	var formatter output.Formatter
	if noChart, _ := cmd.Flags().GetBool("no-chart"); noChart && (format == "" || format == "console" || format == "table") {
		formatter = output.ConsoleFormatter{Numbers: s.Numbers}
	} else {
		formatter = output.GetFormatterByName(format, s.Numbers)
	}
	if formatter == nil {
		return fmt.Errorf("unsupported format: %s (valid: %v)", format, output.FormatterNames())
	}

	data, err := formatter.Format(&report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	outFile, _ := cmd.Flags().GetString("output")
	if outFile == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	s.Logger.Info("report written", zap.String("path", outFile), zap.String("format", formatter.Name()))
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outFile)
	return nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, _ := cmd.Flags().GetString("locale")
			parser := config.NewInputParser()
			parser.DefaultLocale = locale
			loaded, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if locale == "" {
				locale = loaded.Submission.Locale
			}
			if locale == "" {
				locale = defaultLocale
			}
			nf, err := output.NewNumberFormat(locale)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Current burden: %s\n", nf.Currency(loaded.Inputs.CurrentBurden()))
			return nil
		},
	}
}

func newRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "List the candidate rates and the simplified-regime credit rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nf, err := numberFormat(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Candidate uniform rates:")
			for _, r := range calculation.CandidateRates() {
				fmt.Fprintf(out, "  %s\n", nf.Rate(r, 1))
			}
			fmt.Fprintf(out, "Presumed credit on simplified-regime purchases: %s\n", nf.Rate(calculation.SimplifiedCreditRate, 1))
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [output-file]",
		Short: "Write an example input file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "reformcalc.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if force, _ := cmd.Flags().GetBool("force"); !force && fileExists(path) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveSubmission(config.ExampleSubmission(), path); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example input written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
