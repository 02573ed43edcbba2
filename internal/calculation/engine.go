package calculation

import (
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// SimplifiedCreditRate is the presumed credit on purchases from suppliers
	// under the simplified regime. It does not move with the candidate rate.
	SimplifiedCreditRate = decimal.NewFromFloat(0.08)
)

// CandidateRates returns a fresh copy of the proposed uniform rates, ascending.
func CandidateRates() []decimal.Decimal {
	return []decimal.Decimal{
		decimal.NewFromFloat(0.25),
		decimal.NewFromFloat(0.26),
		decimal.NewFromFloat(0.27),
		decimal.NewFromFloat(0.28),
	}
}

// ComputeScenarios projects the tax burden under each candidate rate and
// summarizes best and worst cases against the current burden.
//
// Inputs are expected to have passed input validation: amounts non-negative and
// percentages within [0, 100]. Values outside that domain are run through the
// same formula unchanged; the result is then implementation-defined and is not
// clamped. No rounding is applied.
func ComputeScenarios(in domain.Inputs) domain.ScenarioResult {
	rates := CandidateRates()
	records := make([]domain.ScenarioRecord, 0, len(rates))
	for _, r := range rates {
		records = append(records, scenarioForRate(in, r))
	}

	return domain.ScenarioResult{
		Inputs:    in,
		Scenarios: records,
		Summary:   summarize(records, in.CurrentBurden()),
	}
}

func scenarioForRate(in domain.Inputs, rate decimal.Decimal) domain.ScenarioRecord {
	debit := taxableRevenue(in).Mul(rate)

	simplified, nonSimplified := splitCosts(in)
	credit := simplified.Mul(SimplifiedCreditRate).Add(nonSimplified.Mul(rate))

	return domain.ScenarioRecord{
		Rate:            rate,
		DebitAmount:     debit,
		CreditAmount:    credit,
		EstimatedBurden: debit.Sub(credit),
	}
}

// taxableRevenue is the share of revenue that falls under the new regime.
func taxableRevenue(in domain.Inputs) decimal.Decimal {
	fraction := hundred.Sub(in.ExemptRevenuePct).Shift(-2)
	return in.AnnualRevenue.Mul(fraction)
}

// splitCosts separates costs bought from simplified-regime suppliers from the rest.
func splitCosts(in domain.Inputs) (simplified, nonSimplified decimal.Decimal) {
	simplified = in.SimplifiedSupplierPct.Shift(-2).Mul(in.OperatingCosts)
	return simplified, in.OperatingCosts.Sub(simplified)
}

func summarize(records []domain.ScenarioRecord, current decimal.Decimal) domain.SummaryResult {
	if len(records) == 0 {
		return domain.SummaryResult{CurrentBurden: current}
	}

	best := records[0].EstimatedBurden
	worst := records[0].EstimatedBurden
	for _, rec := range records[1:] {
		best = decimal.Min(best, rec.EstimatedBurden)
		worst = decimal.Max(worst, rec.EstimatedBurden)
	}

	return domain.SummaryResult{
		BestCaseBurden:  best,
		WorstCaseBurden: worst,
		CurrentBurden:   current,
		BestCaseDelta:   best.Sub(current),
		WorstCaseDelta:  worst.Sub(current),
	}
}

// CalculationEngine wraps the pure computations with diagnostic logging.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Log per-scenario detail
}

// NewCalculationEngine creates an engine that logs nothing.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger installs a logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Run computes the scenarios and, when the input allows it, the break-even rate.
func (ce *CalculationEngine) Run(in domain.Inputs) domain.Report {
	result := ComputeScenarios(in)

	if ce.Debug {
		for _, rec := range result.Scenarios {
			ce.Logger.Debugf("rate=%s debit=%s credit=%s burden=%s",
				rec.Rate.String(), rec.DebitAmount.String(), rec.CreditAmount.String(), rec.EstimatedBurden.String())
		}
	}
	ce.Logger.Infof("computed %d scenarios: best=%s worst=%s current=%s",
		len(result.Scenarios),
		result.Summary.BestCaseBurden.String(),
		result.Summary.WorstCaseBurden.String(),
		result.Summary.CurrentBurden.String())

	be := BreakEven(in)
	if !be.Found {
		ce.Logger.Warnf("burden does not vary with the rate; no break-even rate")
	}

	return domain.Report{Result: result, BreakEven: &be}
}
