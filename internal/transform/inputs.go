package transform

import (
	"fmt"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ScaleRevenue changes annual revenue by a signed percentage (-10 = 10% less).
type ScaleRevenue struct {
	Percent decimal.Decimal
}

func (t *ScaleRevenue) Name() string { return "scale_revenue" }

func (t *ScaleRevenue) Description() string {
	return fmt.Sprintf("Change annual revenue by %s%%", signed(t.Percent))
}

func (t *ScaleRevenue) Validate(base domain.Inputs) error {
	return validateScale(t.Name(), t.Percent)
}

func (t *ScaleRevenue) Apply(base domain.Inputs) (domain.Inputs, error) {
	base.AnnualRevenue = scale(base.AnnualRevenue, t.Percent)
	return base, nil
}

// ScaleCosts changes operating costs by a signed percentage.
type ScaleCosts struct {
	Percent decimal.Decimal
}

func (t *ScaleCosts) Name() string { return "scale_costs" }

func (t *ScaleCosts) Description() string {
	return fmt.Sprintf("Change operating costs by %s%%", signed(t.Percent))
}

func (t *ScaleCosts) Validate(base domain.Inputs) error {
	return validateScale(t.Name(), t.Percent)
}

func (t *ScaleCosts) Apply(base domain.Inputs) (domain.Inputs, error) {
	base.OperatingCosts = scale(base.OperatingCosts, t.Percent)
	return base, nil
}

// SetOperatingCosts replaces operating costs with a fixed amount.
type SetOperatingCosts struct {
	Amount decimal.Decimal
}

func (t *SetOperatingCosts) Name() string { return "set_operating_costs" }

func (t *SetOperatingCosts) Description() string {
	return fmt.Sprintf("Set operating costs to %s", t.Amount.StringFixed(2))
}

func (t *SetOperatingCosts) Validate(base domain.Inputs) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetOperatingCosts) Apply(base domain.Inputs) (domain.Inputs, error) {
	base.OperatingCosts = t.Amount
	return base, nil
}

// SetAnnualRevenue replaces annual revenue with a fixed amount.
type SetAnnualRevenue struct {
	Amount decimal.Decimal
}

func (t *SetAnnualRevenue) Name() string { return "set_annual_revenue" }

func (t *SetAnnualRevenue) Description() string {
	return fmt.Sprintf("Set annual revenue to %s", t.Amount.StringFixed(2))
}

func (t *SetAnnualRevenue) Validate(base domain.Inputs) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetAnnualRevenue) Apply(base domain.Inputs) (domain.Inputs, error) {
	base.AnnualRevenue = t.Amount
	return base, nil
}

// SetSimplifiedShare sets the share of costs bought from simplified-regime suppliers.
type SetSimplifiedShare struct {
	Percent decimal.Decimal
}

func (t *SetSimplifiedShare) Name() string { return "set_simplified_share" }

func (t *SetSimplifiedShare) Description() string {
	return fmt.Sprintf("Buy %s%% of costs from simplified-regime suppliers", t.Percent.String())
}

func (t *SetSimplifiedShare) Validate(base domain.Inputs) error {
	return validateShare(t.Name(), t.Percent)
}

func (t *SetSimplifiedShare) Apply(base domain.Inputs) (domain.Inputs, error) {
	base.SimplifiedSupplierPct = t.Percent
	return base, nil
}

// SetExemptShare sets the share of revenue earned inside the special economic zone.
type SetExemptShare struct {
	Percent decimal.Decimal
}

func (t *SetExemptShare) Name() string { return "set_exempt_share" }

func (t *SetExemptShare) Description() string {
	return fmt.Sprintf("Earn %s%% of revenue in the special economic zone", t.Percent.String())
}

func (t *SetExemptShare) Validate(base domain.Inputs) error {
	return validateShare(t.Name(), t.Percent)
}

func (t *SetExemptShare) Apply(base domain.Inputs) (domain.Inputs, error) {
	base.ExemptRevenuePct = t.Percent
	return base, nil
}

func scale(v, percent decimal.Decimal) decimal.Decimal {
	return v.Mul(hundred.Add(percent)).Shift(-2)
}

func validateScale(name string, percent decimal.Decimal) error {
	if percent.LessThan(hundred.Neg()) {
		return NewTransformError(name, "validate", fmt.Sprintf("cannot reduce by more than 100%% (got %s%%)", percent), nil)
	}
	return nil
}

func validateShare(name string, percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return NewTransformError(name, "validate", fmt.Sprintf("percent must be between 0 and 100, got %s", percent), nil)
	}
	return nil
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.String()
	}
	return "+" + d.String()
}
