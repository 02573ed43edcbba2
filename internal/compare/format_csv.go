package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Best Case Burden",
		"Worst Case Burden",
		"Current Burden",
		"Worst Case Delta",
		"Best Diff from Base",
		"Worst Diff from Base",
		"Worst % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Summary.BestCaseBurden.StringFixed(2),
		result.Summary.WorstCaseBurden.StringFixed(2),
		result.Summary.CurrentBurden.StringFixed(2),
		result.Summary.WorstCaseDelta.StringFixed(2),
		result.BestDiffFromBase.StringFixed(2),
		result.WorstDiffFromBase.StringFixed(2),
		result.WorstPctFromBase.StringFixed(2),
	}
}
