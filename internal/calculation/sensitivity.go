package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Sweepable inputs.
const (
	ParamAnnualRevenue         = "annual_revenue"
	ParamOperatingCosts        = "operating_costs"
	ParamExemptRevenuePct      = "exempt_revenue_pct"
	ParamSimplifiedSupplierPct = "simplified_supplier_pct"
	ParamPISCOFINS             = "pis_cofins"
	ParamISS                   = "iss"
)

// DefaultSensitivitySteps is the number of points in a default sweep.
const DefaultSensitivitySteps = 11

var sensitivityDescriptions = map[string]string{
	ParamAnnualRevenue:         "Annual revenue",
	ParamOperatingCosts:        "Annual operating costs",
	ParamExemptRevenuePct:      "Share of revenue from the special economic zone",
	ParamSimplifiedSupplierPct: "Share of costs from simplified-regime suppliers",
	ParamPISCOFINS:             "Annual PIS/COFINS paid today",
	ParamISS:                   "Annual ISS paid today",
}

// SensitivityParameters lists every sweepable input in display order.
func SensitivityParameters() []string {
	return []string{
		ParamAnnualRevenue, ParamOperatingCosts, ParamExemptRevenuePct,
		ParamSimplifiedSupplierPct, ParamPISCOFINS, ParamISS,
	}
}

func isPercentParam(name string) bool {
	return name == ParamExemptRevenuePct || name == ParamSimplifiedSupplierPct
}

// DefaultSensitivityParameter builds a sweep around the base value: [0,100]
// for shares, and ±50% of the base for amounts.
func DefaultSensitivityParameter(name string, base domain.Inputs) (domain.SensitivityParameter, error) {
	desc, ok := sensitivityDescriptions[name]
	if !ok {
		return domain.SensitivityParameter{}, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}

	baseValue := inputParameter(base, name)
	param := domain.SensitivityParameter{
		Name:        name,
		BaseValue:   baseValue,
		Steps:       DefaultSensitivitySteps,
		Description: desc,
	}

	if isPercentParam(name) {
		param.Unit = "percent"
		param.MinValue = decimal.Zero
		param.MaxValue = hundred
		return param, nil
	}

	param.Unit = "currency"
	if baseValue.IsZero() {
		param.MinValue = decimal.Zero
		param.MaxValue = decimal.Max(base.AnnualRevenue, decimal.NewFromInt(1000))
		return param, nil
	}
	half := decimal.New(5, -1)
	param.MinValue = baseValue.Mul(half)
	param.MaxValue = baseValue.Add(baseValue.Mul(half))
	return param, nil
}

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(ce *CalculationEngine) *SensitivityAnalyzer {
	if ce == nil {
		ce = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: ce}
}

// AnalyzeSingleParameter evaluates the scenarios at each sweep value
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	base domain.Inputs,
	param domain.SensitivityParameter,
) (*domain.SensitivityAnalysis, error) {
	if err := validateSensitivityParameter(param); err != nil {
		return nil, err
	}

	values := sa.generateParameterValues(param)
	points := make([]domain.SensitivityPoint, 0, len(values))

	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified := modifyInputParameter(base, param.Name, value)
		summary := ComputeScenarios(modified).Summary
		sa.calculationEngine.Logger.Debugf("sensitivity %s=%s worst=%s", param.Name, value.String(), summary.WorstCaseBurden.String())

		points = append(points, domain.SensitivityPoint{Value: value, Summary: summary})
	}

	return &domain.SensitivityAnalysis{
		Parameter: param,
		Points:    points,
		Summary:   sa.calculateSensitivitySummary(points, param),
	}, nil
}

func validateSensitivityParameter(param domain.SensitivityParameter) error {
	if _, ok := sensitivityDescriptions[param.Name]; !ok {
		return fmt.Errorf("unknown sensitivity parameter: %s", param.Name)
	}
	if param.Steps < 0 {
		return fmt.Errorf("steps cannot be negative: %d", param.Steps)
	}
	if param.MinValue.GreaterThan(param.MaxValue) {
		return fmt.Errorf("min value %s is greater than max value %s", param.MinValue, param.MaxValue)
	}
	if param.MinValue.IsNegative() {
		return fmt.Errorf("%s cannot be negative", param.Name)
	}
	if isPercentParam(param.Name) && param.MaxValue.GreaterThan(hundred) {
		return fmt.Errorf("%s cannot exceed 100", param.Name)
	}
	// A single-step sweep evaluates only the base value
	if param.Steps <= 1 && (param.BaseValue.LessThan(param.MinValue) || param.BaseValue.GreaterThan(param.MaxValue)) {
		return fmt.Errorf("a single-step sweep uses the base value %s, which is outside %s to %s",
			param.BaseValue, param.MinValue, param.MaxValue)
	}
	return nil
}

// generateParameterValues generates values for a parameter sweep
func (sa *SensitivityAnalyzer) generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	for i := 0; i < param.Steps-1; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	// Land exactly on the upper bound
	values = append(values, param.MaxValue)

	return values
}

func inputParameter(in domain.Inputs, name string) decimal.Decimal {
	switch name {
	case ParamAnnualRevenue:
		return in.AnnualRevenue
	case ParamOperatingCosts:
		return in.OperatingCosts
	case ParamExemptRevenuePct:
		return in.ExemptRevenuePct
	case ParamSimplifiedSupplierPct:
		return in.SimplifiedSupplierPct
	case ParamPISCOFINS:
		return in.PISCOFINS
	case ParamISS:
		return in.ISS
	}
	return decimal.Zero
}

// modifyInputParameter returns a copy of in with one input replaced
func modifyInputParameter(in domain.Inputs, name string, value decimal.Decimal) domain.Inputs {
	switch name {
	case ParamAnnualRevenue:
		in.AnnualRevenue = value
	case ParamOperatingCosts:
		in.OperatingCosts = value
	case ParamExemptRevenuePct:
		in.ExemptRevenuePct = value
	case ParamSimplifiedSupplierPct:
		in.SimplifiedSupplierPct = value
	case ParamPISCOFINS:
		in.PISCOFINS = value
	case ParamISS:
		in.ISS = value
	}
	return in
}

func (sa *SensitivityAnalyzer) calculateSensitivitySummary(points []domain.SensitivityPoint, param domain.SensitivityParameter) domain.SensitivitySummary {
	var summary domain.SensitivitySummary
	if len(points) == 0 {
		return summary
	}

	first, last := points[0], points[len(points)-1]
	summary.LowestWorstCase, summary.LowestAt = first.Summary.WorstCaseBurden, first.Value
	summary.HighestWorstCase, summary.HighestAt = first.Summary.WorstCaseBurden, first.Value

	increases, holds := 0, 0
	for _, p := range points {
		w := p.Summary.WorstCaseBurden
		if w.LessThan(summary.LowestWorstCase) {
			summary.LowestWorstCase, summary.LowestAt = w, p.Value
		}
		if w.GreaterThan(summary.HighestWorstCase) {
			summary.HighestWorstCase, summary.HighestAt = w, p.Value
		}
		if p.Summary.WorstCaseDelta.IsPositive() {
			increases++
		} else {
			holds++
		}
	}

	if span := last.Value.Sub(first.Value); !span.IsZero() {
		summary.WorstCaseChangePerUnit = last.Summary.WorstCaseBurden.Sub(first.Summary.WorstCaseBurden).Div(span)
	}
	summary.CrossesCurrentBurden = increases > 0 && holds > 0

	switch {
	case summary.CrossesCurrentBurden:
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("The worst case crosses today's burden inside this %s range", param.Name))
	case increases > 0:
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("Every %s value in the range raises the worst-case burden above today's", param.Name))
	default:
		summary.Recommendations = append(summary.Recommendations,
			fmt.Sprintf("No %s value in the range raises the worst-case burden above today's", param.Name))
	}

	return summary
}
