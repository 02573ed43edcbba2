package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/reformcalc/internal/calculation"
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/rgehrsitz/reformcalc/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func baseInputs() domain.Inputs {
	return domain.Inputs{
		PISCOFINS:             d("1000"),
		ISS:                   d("500"),
		AnnualRevenue:         d("100000"),
		ExemptRevenuePct:      d("0"),
		OperatingCosts:        d("50000"),
		SimplifiedSupplierPct: d("20"),
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "%s: expected %s, got %s", field, expected, actual)
}

func TestCompareEngine_Templates(t *testing.T) {
	engine := NewCompareEngine(nil)

	compSet, err := engine.Compare(context.Background(), baseInputs(), CompareOptions{
		Templates: []string{"regular_suppliers", "costs_up_10"},
	})
	require.NoError(t, err)

	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, BaseScenarioName, compSet.BaseScenarioName)
	assertDecimal(t, "14200", compSet.BaseResult.Summary.BestCaseBurden, "base best")
	assertDecimal(t, "16000", compSet.BaseResult.Summary.WorstCaseBurden, "base worst")

	require.Len(t, compSet.AlternativeResults, 2)

	regular := compSet.AlternativeResults[0]
	assert.Equal(t, "regular_suppliers", regular.ScenarioName)
	assert.NotEmpty(t, regular.Description)
	assertDecimal(t, "12500", regular.Summary.BestCaseBurden, "regular best")
	assertDecimal(t, "14000", regular.Summary.WorstCaseBurden, "regular worst")
	assertDecimal(t, "-1700", regular.BestDiffFromBase, "regular best diff")
	assertDecimal(t, "-2000", regular.WorstDiffFromBase, "regular worst diff")
	assertDecimal(t, "-12.5", regular.WorstPctFromBase, "regular worst pct")

	costs := compSet.AlternativeResults[1]
	assertDecimal(t, "13120", costs.Summary.BestCaseBurden, "costs best")
	assertDecimal(t, "14800", costs.Summary.WorstCaseBurden, "costs worst")
	assertDecimal(t, "-1200", costs.WorstDiffFromBase, "costs worst diff")

	require.Len(t, compSet.Recommendations, 1)
	assert.Contains(t, compSet.Recommendations[0], "regular_suppliers reduces the worst-case burden by 2000.00")
}

func TestCompareEngine_TransformSpecs(t *testing.T) {
	in := domain.Inputs{
		PISCOFINS:      d("50000"),
		AnnualRevenue:  d("100000"),
		OperatingCosts: d("50000"),
	}

	compSet, err := NewCompareEngine(nil).Compare(context.Background(), in, CompareOptions{
		Transforms: []string{"scale_revenue:percent=200"},
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)

	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "scale_revenue:percent=200", alt.ScenarioName)
	assert.Equal(t, "Change annual revenue by +200%", alt.Description)
	assert.True(t, alt.IncreasesBurden())
	assert.False(t, compSet.BaseResult.IncreasesBurden())
	assertDecimal(t, "70000", alt.Summary.WorstCaseBurden, "worst")

	require.Len(t, compSet.Recommendations, 2)
	assert.Contains(t, compSet.Recommendations[0], "No alternative lowers")
	assert.Contains(t, compSet.Recommendations[1], "exceeds today's burden by 20000.00")
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	ctx := context.Background()

	_, err := engine.Compare(ctx, baseInputs(), CompareOptions{})
	assert.ErrorContains(t, err, "no templates or transforms")

	_, err = engine.Compare(ctx, baseInputs(), CompareOptions{Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = engine.Compare(ctx, baseInputs(), CompareOptions{Transforms: []string{"scale_costs"}})
	assert.ErrorContains(t, err, "invalid transform")

	_, err = engine.Compare(ctx, baseInputs(), CompareOptions{Transforms: []string{"set_exempt_share:percent=120"}})
	assert.ErrorContains(t, err, "failed to apply")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = engine.Compare(cancelled, baseInputs(), CompareOptions{Templates: []string{"costs_up_10"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func sampleSet(t *testing.T) *ComparisonSet {
	t.Helper()
	compSet, err := NewCompareEngine(nil).Compare(context.Background(), baseInputs(), CompareOptions{
		Templates: []string{"regular_suppliers", "all_simplified"},
	})
	require.NoError(t, err)
	return compSet
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{Numbers: output.DefaultNumberFormat()}
	compSet := sampleSet(t)
	compSet.InputPath = "company.yaml"

	result := formatter.Format(compSet)

	assert.Contains(t, result, "TAX REFORM WHAT-IF COMPARISON")
	assert.Contains(t, result, "Input: company.yaml")
	assert.Contains(t, result, "base (today's inputs)")
	assert.Contains(t, result, "R$ 16.000,00")
	assert.Contains(t, result, "regular_suppliers")
	assert.Contains(t, result, "Worst case:  -R$ 2.000,00 (-12.5%)")
	assert.Contains(t, result, "RECOMMENDATIONS")
}

func TestTableFormatter_ZeroNumberFormat(t *testing.T) {
	result := (&TableFormatter{}).Format(sampleSet(t))
	assert.Contains(t, result, "R$ 14.200,00")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	result := (&TableFormatter{}).FormatCompact(sampleSet(t))
	assert.True(t, strings.HasPrefix(result, "Base: base | "))
	assert.Contains(t, result, "regular_suppliers: -R$ 2.000,00")
	assert.Contains(t, result, " | all_simplified: +")
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"base", "base", "14200.00", "16000.00", "1500.00", "14500.00", "0.00", "0.00", "0.00"}, records[1])
	assert.Equal(t, "regular_suppliers", records[2][0])
	assert.Equal(t, "-2000.00", records[2][7])
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleSet(t))
	require.NoError(t, err)
	assert.Contains(t, out, "\n  ")

	var doc struct {
		BaseScenarioName   string `json:"baseScenarioName"`
		AlternativeResults []struct {
			ScenarioName      string `json:"scenarioName"`
			WorstDiffFromBase string `json:"worstDiffFromBase"`
		} `json:"alternativeResults"`
		Recommendations []string `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "base", doc.BaseScenarioName)
	require.Len(t, doc.AlternativeResults, 2)
	assert.Equal(t, "regular_suppliers", doc.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "-2000", doc.AlternativeResults[0].WorstDiffFromBase)
	assert.NotEmpty(t, doc.Recommendations)

	compact, err := (&JSONFormatter{}).Format(sampleSet(t))
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: &ComparisonResult{}}))
}
