package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/reformcalc/internal/compare"
	"github.com/rgehrsitz/reformcalc/internal/transform"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare today's inputs against what-if scenarios",
		Long: `Compare the base inputs against alternative scenarios built from templates
or individual transforms.

Examples:
  reformcalc compare company.yaml --templates regular_suppliers,costs_up_10
  reformcalc compare company.yaml --transform scale_revenue:percent=20 --format csv
  reformcalc compare --list-templates  # Show all available templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompare,
	}

	addInputFlags(cmd)
	cmd.Flags().String("templates", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available templates and transforms")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list-templates"); list {
		_, err := io.WriteString(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(), transform.NewTransformRegistry()))
		return err
	}

	templatesStr, _ := cmd.Flags().GetString("templates")
	transforms, _ := cmd.Flags().GetStringArray("transform")
	templates := transform.ParseTemplateList(templatesStr)
	if len(templates) == 0 && len(transforms) == 0 {
		return fmt.Errorf("--templates or --transform is required (use --list-templates to see what is available)")
	}

	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	engine := compare.NewCompareEngine(s.Engine)
	compSet, err := engine.Compare(cmd.Context(), s.Inputs, compare.CompareOptions{
		Templates:  templates,
		Transforms: transforms,
	})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	if s.Submission != nil {
		compSet.InputPath = s.Source
	}

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	switch strings.ToLower(format) {
	case "csv":
		text, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		_, err = io.WriteString(out, text)
		return err

	case "json":
		text, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		_, err = io.WriteString(out, text+"\n")
		return err

	case "compact":
		_, err := io.WriteString(out, (&compare.TableFormatter{Numbers: s.Numbers}).FormatCompact(compSet)+"\n")
		return err

	case "table", "console", "":
		_, err := io.WriteString(out, (&compare.TableFormatter{Numbers: s.Numbers}).Format(compSet))
		return err

	default:
		return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
	}
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List built-in what-if templates and transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(), transform.NewTransformRegistry()))
			return err
		},
	}
}
