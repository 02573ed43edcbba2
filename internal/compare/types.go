package compare

import (
	"fmt"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one what-if scenario with its comparison metrics
type ComparisonResult struct {
	ScenarioName string               `json:"scenarioName"`
	Description  string               `json:"description,omitempty"`
	Inputs       domain.Inputs        `json:"inputs"`
	Summary      domain.SummaryResult `json:"summary"`

	// Comparison to Base
	BestDiffFromBase  decimal.Decimal `json:"bestDiffFromBase"`
	WorstDiffFromBase decimal.Decimal `json:"worstDiffFromBase"`
	WorstPctFromBase  decimal.Decimal `json:"worstPctFromBase"`
}

// IncreasesBurden reports whether the worst case exceeds today's burden.
func (r ComparisonResult) IncreasesBurden() bool {
	return r.Summary.WorstCaseDelta.IsPositive()
}

// ComparisonSet represents a base scenario and its alternatives
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath,omitempty"`
}

// MetricsCalculator turns engine results into comparison metrics
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics builds a comparison row from an engine result
func (mc *MetricsCalculator) CalculateMetrics(name string, result domain.ScenarioResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName: name,
		Inputs:       result.Inputs,
		Summary:      result.Summary,
	}
}

// CalculateComparison fills in the differences between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.BestDiffFromBase = scenario.Summary.BestCaseBurden.Sub(base.Summary.BestCaseBurden)
	scenario.WorstDiffFromBase = scenario.Summary.WorstCaseBurden.Sub(base.Summary.WorstCaseBurden)

	if !base.Summary.WorstCaseBurden.IsZero() {
		scenario.WorstPctFromBase = scenario.WorstDiffFromBase.
			Div(base.Summary.WorstCaseBurden.Abs()).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	lowest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Summary.WorstCaseBurden.LessThan(lowest.Summary.WorstCaseBurden) {
			lowest = alt
		}
	}

	if lowest != compSet.BaseResult {
		savings := compSet.BaseResult.Summary.WorstCaseBurden.Sub(lowest.Summary.WorstCaseBurden)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest worst case: %s reduces the worst-case burden by %s",
				lowest.ScenarioName, savings.StringFixed(2)))
	} else {
		recommendations = append(recommendations,
			"No alternative lowers the worst-case burden below the base scenario")
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.IncreasesBurden() && !compSet.BaseResult.IncreasesBurden() {
			recommendations = append(recommendations,
				fmt.Sprintf("Watch out: under %s the worst case exceeds today's burden by %s",
					alt.ScenarioName, alt.Summary.WorstCaseDelta.StringFixed(2)))
		}
	}

	if compSet.BaseResult.IncreasesBurden() {
		var relief []string
		for _, alt := range compSet.AlternativeResults {
			if !alt.IncreasesBurden() {
				relief = append(relief, alt.ScenarioName)
			}
		}
		if len(relief) > 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("Keeps the worst case at or below today's burden: %v", relief))
		}
	}

	return recommendations
}
