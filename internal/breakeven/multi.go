package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/reformcalc/internal/domain"
)

// SolveAllTargets runs the solver for every target and collects the
// break-even points that exist.
func (s *Solver) SolveAllTargets(ctx context.Context, base domain.Inputs, c Case) (*MultiTargetResult, error) {
	if c == "" {
		c = CaseWorst
	}

	multi := &MultiTargetResult{Case: c}
	for _, target := range Targets() {
		result, err := s.Solve(ctx, SolveRequest{Base: base, Target: target, Case: c})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.CalcEngine.Logger.Warnf("break-even %s failed: %v", target, err)
			continue
		}
		multi.Results = append(multi.Results, *result)
	}

	if len(multi.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all_targets",
			Message:   "no target could be solved",
		}
	}

	multi.Recommendations = GenerateRecommendations(multi)
	return multi, nil
}

// GenerateRecommendations describes, per solved target, which side of the
// break-even point keeps the burden at or below today's.
func GenerateRecommendations(multi *MultiTargetResult) []string {
	var recs []string
	for _, r := range multi.Results {
		if !r.Success {
			continue
		}
		side := "at or below"
		if r.KeepAtOrAbove {
			side = "at or above"
		}
		value := r.Value.StringFixed(2)
		if r.Target.IsPercent() {
			value += "%"
		}
		recs = append(recs, fmt.Sprintf("Keep %s %s %s (currently %s) to hold the %s-case burden at today's level",
			r.Target, side, value, r.BaseValue.StringFixed(2), r.Case))
	}
	if len(recs) == 0 {
		recs = append(recs, fmt.Sprintf("No single input change brings the %s-case burden back to today's level", multi.Case))
	}
	return recs
}
