package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/reformcalc/internal/calculation"
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	two           = decimal.NewFromInt(2)
	ten           = decimal.NewFromInt(10)
	hundred       = decimal.NewFromInt(100)
	minAmountSpan = decimal.NewFromInt(1000)
	minWidth      = decimal.New(1, -9)
)

// Solver finds the input value at which the projected burden equals today's
// burden, using binary search over one target.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs the binary search described by req. A result with Success=false
// and a nil error means the burden never crosses today's burden inside the
// search interval.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseTarget(string(req.Target)); err != nil {
		return nil, err
	}
	if req.Case == "" {
		req.Case = CaseWorst
	}
	if _, err := ParseCase(string(req.Case)); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	lo, hi := bounds(req)
	result := &SolveResult{
		Target:        req.Target,
		Case:          req.Case,
		BaseValue:     targetValue(req.Base, req.Target),
		Lower:         lo,
		Upper:         hi,
		CurrentBurden: req.Base.CurrentBurden(),
	}

	fLo, _, err := s.evaluate(req, lo)
	if err != nil {
		return nil, err
	}
	fHi, _, err := s.evaluate(req, hi)
	if err != nil {
		return nil, err
	}
	result.KeepAtOrAbove = fLo.GreaterThan(fHi)

	if fLo.Sign() == fHi.Sign() && !fLo.IsZero() {
		direction := "above"
		if fLo.IsNegative() {
			direction = "below"
		}
		result.ConvergenceInfo = fmt.Sprintf("the %s-case burden stays %s today's burden for every %s between %s and %s",
			req.Case, direction, req.Target, lo.String(), hi.String())
		return result, nil
	}

	for result.Iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two)
		fMid, summary, err := s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}
		s.CalcEngine.Logger.Debugf("break-even %s: iteration %d value=%s diff=%s",
			req.Target, result.Iterations, mid.String(), fMid.String())

		if fMid.Abs().LessThanOrEqual(req.Tolerance) || hi.Sub(lo).LessThan(minWidth) {
			result.Success = true
			result.Value = mid
			result.Summary = summary
			result.ConvergenceInfo = fmt.Sprintf("Converged within %s of today's burden", req.Tolerance.String())
			return result, nil
		}

		if fMid.Sign() == fLo.Sign() {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}

	result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return result, nil
}

// evaluate returns the selected-case burden minus today's burden at value.
func (s *Solver) evaluate(req SolveRequest, value decimal.Decimal) (decimal.Decimal, domain.SummaryResult, error) {
	in, err := transform.ApplyTransforms(req.Base, []transform.ScenarioTransform{setter(req.Target, value)})
	if err != nil {
		return decimal.Zero, domain.SummaryResult{}, &BreakEvenError{
			Operation: "solve_" + string(req.Target),
			Message:   "failed to apply transform",
			Cause:     err,
		}
	}

	summary := calculation.ComputeScenarios(in).Summary
	if req.Case == CaseBest {
		return summary.BestCaseDelta, summary, nil
	}
	return summary.WorstCaseDelta, summary, nil
}

func setter(target Target, value decimal.Decimal) transform.ScenarioTransform {
	switch target {
	case TargetSimplifiedShare:
		return &transform.SetSimplifiedShare{Percent: value}
	case TargetExemptShare:
		return &transform.SetExemptShare{Percent: value}
	case TargetAnnualRevenue:
		return &transform.SetAnnualRevenue{Amount: value}
	default:
		return &transform.SetOperatingCosts{Amount: value}
	}
}

func targetValue(in domain.Inputs, target Target) decimal.Decimal {
	switch target {
	case TargetSimplifiedShare:
		return in.SimplifiedSupplierPct
	case TargetExemptShare:
		return in.ExemptRevenuePct
	case TargetAnnualRevenue:
		return in.AnnualRevenue
	default:
		return in.OperatingCosts
	}
}

// bounds returns the search interval: [0,100] for shares, and for amounts
// [0, 10x the larger of the base value, revenue, costs, or 1000].
func bounds(req SolveRequest) (decimal.Decimal, decimal.Decimal) {
	lo := decimal.Zero
	var hi decimal.Decimal
	if req.Target.IsPercent() {
		hi = hundred
	} else {
		span := decimal.Max(targetValue(req.Base, req.Target), req.Base.AnnualRevenue, req.Base.OperatingCosts, minAmountSpan)
		hi = span.Mul(ten)
	}

	if req.Constraints.Min != nil {
		lo = *req.Constraints.Min
	}
	if req.Constraints.Max != nil {
		hi = *req.Constraints.Max
	}
	if req.Target.IsPercent() {
		hi = decimal.Min(hi, hundred)
	}
	return lo, hi
}
