package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/reformcalc/internal/domain"
)

// CSVFormatter writes one row per candidate rate followed by the summary rows.
// Numbers use plain decimal notation so spreadsheets can re-import them.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	rows := [][]string{{"Section", "Label", "Rate", "Debits", "Credits", "EstimatedBurden", "CurrentBurden", "Difference"}}

	for _, sc := range report.Result.Scenarios {
		rows = append(rows, []string{
			"scenario",
			sc.Rate.Mul(hundred).String() + "%",
			sc.Rate.String(),
			sc.DebitAmount.StringFixed(2),
			sc.CreditAmount.StringFixed(2),
			sc.EstimatedBurden.StringFixed(2),
			"",
			"",
		})
	}

	s := report.Result.Summary
	rows = append(rows,
		[]string{"summary", "best_case", "", "", "", s.BestCaseBurden.StringFixed(2), s.CurrentBurden.StringFixed(2), s.BestCaseDelta.StringFixed(2)},
		[]string{"summary", "worst_case", "", "", "", s.WorstCaseBurden.StringFixed(2), s.CurrentBurden.StringFixed(2), s.WorstCaseDelta.StringFixed(2)},
	)

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
