package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rgehrsitz/reformcalc/internal/calculation"
	"github.com/rgehrsitz/reformcalc/internal/config"
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/input"
	"github.com/rgehrsitz/reformcalc/internal/logging"
	"github.com/rgehrsitz/reformcalc/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultLocale = "pt-BR"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reformcalc",
		Short: "Tax reform impact calculator",
		Long: `Estimate how the consumption-tax reform changes a business's tax burden.

The calculator projects debits, credits and the resulting burden under each
candidate uniform rate (25% to 28%) and compares the best and worst cases
with what the business pays today in PIS/COFINS and ISS.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of each calculation step")
	rootCmd.PersistentFlags().String("locale", "", "Locale for number input and output (default pt-BR); an input file's own locale still governs how that file is read")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (console, json)")

	rootCmd.AddCommand(
		newCalculateCmd(),
		newValidateCmd(),
		newRatesCmd(),
		newBreakEvenCmd(),
		newCompareCmd(),
		newTemplatesCmd(),
		newSensitivityCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reformcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// Input flags shared by every command that runs the engine.
var inputFlags = []struct {
	flag  string
	usage string
}{
	{"pis-cofins", "Annual PIS/COFINS paid today"},
	{"iss", "Annual ISS paid today"},
	{"revenue", "Annual revenue"},
	{"exempt-pct", "Share of revenue from the special economic zone (0-100)"},
	{"costs", "Annual operating costs"},
	{"simplified-pct", "Share of costs bought from simplified-regime suppliers (0-100)"},
}

func addInputFlags(cmd *cobra.Command) {
	for _, f := range inputFlags {
		cmd.Flags().String(f.flag, "", f.usage)
	}
}

func rawInputsFromFlags(cmd *cobra.Command) input.RawInputs {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return input.RawInputs{
		PISCOFINS:             get("pis-cofins"),
		ISS:                   get("iss"),
		AnnualRevenue:         get("revenue"),
		ExemptRevenuePct:      get("exempt-pct"),
		OperatingCosts:        get("costs"),
		SimplifiedSupplierPct: get("simplified-pct"),
	}
}

// session is everything a command needs after reading its inputs.
type session struct {
	Inputs     domain.Inputs
	Submission *config.Submission // nil when the inputs came from flags
	Source     string
	Locale     string
	Numbers    output.NumberFormat
	Logger     *zap.Logger
	Engine     *calculation.CalculationEngine
}

// Close flushes the logger.
func (s *session) Close() {
	_ = s.Logger.Sync()
}

// openSession loads inputs from the file in args, or from the input flags
// when no file is given, and sets up logging and the engine.
func openSession(cmd *cobra.Command, args []string) (*session, error) {
	s := &session{}
	locale, _ := cmd.Flags().GetString("locale")

	if len(args) > 0 {
		parser := config.NewInputParser()
		parser.DefaultLocale = locale
		loaded, err := parser.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		s.Inputs = loaded.Inputs
		s.Submission = loaded.Submission
		s.Source = args[0]
		if locale == "" {
			locale = loaded.Submission.Locale
		}
	} else {
		if locale == "" {
			locale = defaultLocale
		}
		collector := input.NewCollector()
		collector.DecimalMark = config.DecimalMark(locale)
		in, err := collector.Collect(rawInputsFromFlags(cmd))
		if err != nil {
			return nil, fmt.Errorf("invalid inputs (pass an input file or all six input flags): %w", err)
		}
		s.Inputs = in
		s.Source = "flags"
	}

	if locale == "" {
		locale = defaultLocale
	}
	nf, err := output.NewNumberFormat(locale)
	if err != nil {
		return nil, err
	}
	s.Locale = locale
	s.Numbers = nf

	s.Logger, err = newLogger(cmd, s.Submission)
	if err != nil {
		return nil, err
	}

	debugMode, _ := cmd.Flags().GetBool("debug")
	s.Engine = calculation.NewCalculationEngine()
	s.Engine.SetLogger(logging.NewEngineLogger(s.Logger))
	s.Engine.Debug = debugMode

	s.Logger.Debug("inputs loaded", zap.String("source", s.Source), zap.String("locale", locale))
	return s, nil
}

// newLogger applies the submission's logging settings, then the command-line
// overrides. Logs to stderr go to the command's error stream.
func newLogger(cmd *cobra.Command, sub *config.Submission) (*zap.Logger, error) {
	cfg := logging.DefaultConfig()
	if sub != nil && sub.Logging.Level != "" {
		cfg = sub.Logging
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		cfg.Level = "debug"
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Format = format
	}

	if cfg.Output == "" || cfg.Output == "stderr" {
		return logging.NewWithWriter(cfg, cmd.ErrOrStderr()), nil
	}
	return logging.New(cfg)
}

// numberFormat resolves --locale for commands that read no inputs.
func numberFormat(cmd *cobra.Command) (output.NumberFormat, error) {
	locale, _ := cmd.Flags().GetString("locale")
	if locale == "" {
		locale = defaultLocale
	}
	return output.NewNumberFormat(locale)
}

// parseBound reads an optional --min/--max style flag in the session locale.
func parseBound(cmd *cobra.Command, name string, mark rune) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	text, _ := cmd.Flags().GetString(name)
	v, err := input.ParseNumber(text, mark)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &v, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
