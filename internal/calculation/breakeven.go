package calculation

import (
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// BreakEven finds the uniform rate r at which the projected burden equals the
// current burden. Burden is linear in r:
//
//	burden(r) = (taxable - nonSimplified) * r - simplified * 0.08
//
// so r = (current + simplified * 0.08) / (taxable - nonSimplified). When the
// slope is zero the burden is flat and no rate matches unless by coincidence;
// Found is false in that case.
func BreakEven(in domain.Inputs) domain.BreakEvenRate {
	simplified, nonSimplified := splitCosts(in)
	slope := taxableRevenue(in).Sub(nonSimplified)
	current := in.CurrentBurden()

	be := domain.BreakEvenRate{
		CurrentBurden: current,
		Slope:         slope,
	}
	if slope.IsZero() {
		return be
	}

	be.Rate = current.Add(simplified.Mul(SimplifiedCreditRate)).Div(slope)
	be.Found = true
	return be
}

// BurdenAt evaluates the projected burden for an arbitrary rate. It is the same
// formula ComputeScenarios applies to each candidate rate.
func BurdenAt(in domain.Inputs, rate decimal.Decimal) decimal.Decimal {
	return scenarioForRate(in, rate).EstimatedBurden
}
