package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Target is the input the solver varies.
type Target string

const (
	TargetOperatingCosts  Target = "operating_costs"
	TargetSimplifiedShare Target = "simplified_supplier_pct"
	TargetExemptShare     Target = "exempt_revenue_pct"
	TargetAnnualRevenue   Target = "annual_revenue"
)

// Targets lists every supported target in display order.
func Targets() []Target {
	return []Target{TargetOperatingCosts, TargetSimplifiedShare, TargetExemptShare, TargetAnnualRevenue}
}

// IsPercent reports whether the target is a 0-100 share.
func (t Target) IsPercent() bool {
	return t == TargetSimplifiedShare || t == TargetExemptShare
}

// ParseTarget accepts a target name.
func ParseTarget(s string) (Target, error) {
	for _, t := range Targets() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &BreakEvenError{
		Operation: "parse_target",
		Message:   fmt.Sprintf("unsupported target %q", s),
	}
}

// Case selects which end of the rate range must match today's burden.
type Case string

const (
	CaseWorst Case = "worst"
	CaseBest  Case = "best"
)

// ParseCase accepts "worst", "best", or "" (worst).
func ParseCase(s string) (Case, error) {
	switch s {
	case "", string(CaseWorst):
		return CaseWorst, nil
	case string(CaseBest):
		return CaseBest, nil
	}
	return "", &BreakEvenError{
		Operation: "parse_case",
		Message:   fmt.Sprintf("unsupported case %q (want worst or best)", s),
	}
}

// Constraints bound the search interval. Nil bounds use the defaults for the target.
type Constraints struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.Min != nil && c.Min.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min cannot be negative"}
	}
	if c.Min != nil && c.Max != nil && c.Min.GreaterThan(*c.Max) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min cannot be greater than max"}
	}
	return nil
}

// SolveRequest defines the parameters for one solver run
type SolveRequest struct {
	Base          domain.Inputs
	Target        Target
	Case          Case
	Constraints   Constraints
	MaxIterations int             // Maximum bisection steps
	Tolerance     decimal.Decimal // Accepted |burden - current| in currency units
}

// SolveResult contains the results of a solver run
type SolveResult struct {
	Target          Target `json:"target"`
	Case            Case   `json:"case"`
	Success         bool   `json:"success"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergenceInfo"`

	// Value is the target value at which the selected case matches today's burden.
	Value     decimal.Decimal `json:"value"`
	BaseValue decimal.Decimal `json:"baseValue"`
	Lower     decimal.Decimal `json:"lower"`
	Upper     decimal.Decimal `json:"upper"`

	// KeepAtOrAbove is true when values above Value keep the burden at or below today's.
	KeepAtOrAbove bool `json:"keepAtOrAbove"`

	CurrentBurden decimal.Decimal      `json:"currentBurden"`
	Summary       domain.SummaryResult `json:"summary"`
}

// MultiTargetResult contains results when solving every target
type MultiTargetResult struct {
	Case            Case          `json:"case"`
	Results         []SolveResult `json:"results"`
	Recommendations []string      `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance on the burden difference
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.New(1, -2), // one cent
		MaxIterations: 100,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
