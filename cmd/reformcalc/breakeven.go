package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/reformcalc/internal/breakeven"
	"github.com/rgehrsitz/reformcalc/internal/config"
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/output"
	"github.com/spf13/cobra"
)

func newBreakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Find the rate, or the input value, at which the burden matches today's",
		Long: `Without --target, report the uniform rate at which the projected burden equals
today's burden.

With --target, solve for the value of one input that brings the worst-case
(or best-case) burden back to today's level. Use --target all to solve for
every supported input.

Targets: operating_costs, simplified_supplier_pct, exempt_revenue_pct, annual_revenue

Examples:
  reformcalc break-even company.yaml
  reformcalc break-even company.yaml --target operating_costs
  reformcalc break-even company.yaml --target exempt_revenue_pct --case best
  reformcalc break-even company.yaml --target all -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBreakEven,
	}

	addInputFlags(cmd)
	cmd.Flags().String("target", "", "Input to solve for, or \"all\"")
	cmd.Flags().String("case", "worst", "Which case to bring back to today's burden (worst, best)")
	cmd.Flags().String("min", "", "Lower bound of the search")
	cmd.Flags().String("max", "", "Upper bound of the search")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

func runBreakEven(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "", "table", "console", "json":
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
	}
	asJSON := format == "json"

	targetFlag, _ := cmd.Flags().GetString("target")
	if targetFlag == "" {
		report := s.Engine.Run(s.Inputs)
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), report.BreakEven)
		}
		_, err := io.WriteString(cmd.OutOrStdout(), formatBreakEvenRate(report, s.Numbers))
		return err
	}

	caseFlag, _ := cmd.Flags().GetString("case")
	c, err := breakeven.ParseCase(caseFlag)
	if err != nil {
		return err
	}

	solver := breakeven.NewDefaultSolver(s.Engine)
	tf := &breakeven.TableFormatter{Numbers: s.Numbers}

	if strings.EqualFold(targetFlag, "all") {
		multi, err := solver.SolveAllTargets(cmd.Context(), s.Inputs, c)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), multi)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), tf.FormatMultiTarget(multi))
		return err
	}

	target, err := breakeven.ParseTarget(targetFlag)
	if err != nil {
		return err
	}

	mark := config.DecimalMark(s.Locale)
	var constraints breakeven.Constraints
	if constraints.Min, err = parseBound(cmd, "min", mark); err != nil {
		return err
	}
	if constraints.Max, err = parseBound(cmd, "max", mark); err != nil {
		return err
	}

	result, err := solver.Solve(cmd.Context(), breakeven.SolveRequest{
		Base:        s.Inputs,
		Target:      target,
		Case:        c,
		Constraints: constraints,
	})
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), tf.Format(result))
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

func formatBreakEvenRate(report domain.Report, nf output.NumberFormat) string {
	var sb strings.Builder
	be := report.BreakEven

	sb.WriteString("BREAK-EVEN RATE ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Today's burden (PIS/COFINS + ISS): %s\n\n", nf.Currency(be.CurrentBurden))

	if !be.Found {
		sb.WriteString("The projected burden does not change with the rate: taxable revenue equals\n")
		sb.WriteString("the costs that earn full credit. No break-even rate exists.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Break-even rate: %s\n\n", nf.Rate(be.Rate, 2))

	fmt.Fprintf(&sb, "%-10s %20s %20s\n", "Rate", "Estimated Burden", "vs Today")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	raising := 0
	for _, sc := range report.Result.Scenarios {
		delta := sc.EstimatedBurden.Sub(be.CurrentBurden)
		if delta.IsPositive() {
			raising++
		}
		fmt.Fprintf(&sb, "%-10s %20s %20s\n", nf.Rate(sc.Rate, 1), nf.Currency(sc.EstimatedBurden), nf.Currency(delta))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%d of %d candidate rates raise the burden above today's.\n", raising, len(report.Result.Scenarios))
	return sb.String()
}
