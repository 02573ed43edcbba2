package domain

import (
	"github.com/shopspring/decimal"
)

// Inputs holds the six validated values describing a business's current tax
// position. Monetary values are annual amounts; percentages are on a 0-100 scale.
type Inputs struct {
	PISCOFINS             decimal.Decimal `yaml:"pis_cofins" json:"pisCofins"`
	ISS                   decimal.Decimal `yaml:"iss" json:"iss"`
	AnnualRevenue         decimal.Decimal `yaml:"annual_revenue" json:"annualRevenue"`
	ExemptRevenuePct      decimal.Decimal `yaml:"exempt_revenue_pct" json:"exemptRevenuePct"`
	OperatingCosts        decimal.Decimal `yaml:"operating_costs" json:"operatingCosts"`
	SimplifiedSupplierPct decimal.Decimal `yaml:"simplified_supplier_pct" json:"simplifiedSupplierPct"`
}

// CurrentBurden is the tax paid today under the regime being replaced.
func (in Inputs) CurrentBurden() decimal.Decimal {
	return in.PISCOFINS.Add(in.ISS)
}

// ScenarioRecord is the projection for a single candidate rate.
type ScenarioRecord struct {
	Rate            decimal.Decimal `json:"rate" yaml:"rate"`
	DebitAmount     decimal.Decimal `json:"debitAmount" yaml:"debit_amount"`
	CreditAmount    decimal.Decimal `json:"creditAmount" yaml:"credit_amount"`
	EstimatedBurden decimal.Decimal `json:"estimatedBurden" yaml:"estimated_burden"`
}

// SummaryResult condenses the scenarios into best and worst cases measured
// against the current burden.
type SummaryResult struct {
	BestCaseBurden  decimal.Decimal `json:"bestCaseBurden" yaml:"best_case_burden"`
	WorstCaseBurden decimal.Decimal `json:"worstCaseBurden" yaml:"worst_case_burden"`
	CurrentBurden   decimal.Decimal `json:"currentBurden" yaml:"current_burden"`
	BestCaseDelta   decimal.Decimal `json:"bestCaseDelta" yaml:"best_case_delta"`
	WorstCaseDelta  decimal.Decimal `json:"worstCaseDelta" yaml:"worst_case_delta"`
}

// ScenarioResult is everything a single computation produces.
type ScenarioResult struct {
	Inputs    Inputs           `json:"inputs" yaml:"inputs"`
	Scenarios []ScenarioRecord `json:"scenarios" yaml:"scenarios"`
	Summary   SummaryResult    `json:"summary" yaml:"summary"`
}

// BreakEvenRate is the uniform rate at which the projected burden matches the
// current burden. Found is false when the burden does not depend on the rate.
type BreakEvenRate struct {
	Rate          decimal.Decimal `json:"rate" yaml:"rate"`
	Found         bool            `json:"found" yaml:"found"`
	CurrentBurden decimal.Decimal `json:"currentBurden" yaml:"current_burden"`
	// Slope is d(burden)/d(rate): taxable revenue minus non-simplified costs.
	Slope decimal.Decimal `json:"slope" yaml:"slope"`
}

// Report bundles a computation with the labels the presenter needs.
type Report struct {
	Company   string         `json:"company,omitempty" yaml:"company,omitempty"`
	Result    ScenarioResult `json:"result" yaml:"result"`
	BreakEven *BreakEvenRate `json:"breakEven,omitempty" yaml:"break_even,omitempty"`
}
