package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct {
	Numbers NumberFormat
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

type htmlRow struct {
	Rate, Debit, Credit, Burden string
}

type htmlBar struct {
	Label, Value string
	Percent      int
	Negative     bool
}

func (h HTMLFormatter) Format(report *domain.Report) ([]byte, error) {
	nf := h.Numbers
	if nf.printer == nil {
		nf = DefaultNumberFormat()
	}
	s := report.Result.Summary

	rows := make([]htmlRow, 0, len(report.Result.Scenarios))
	for _, sc := range report.Result.Scenarios {
		rows = append(rows, htmlRow{
			Rate:   nf.Rate(sc.Rate, 1),
			Debit:  nf.Currency(sc.DebitAmount),
			Credit: nf.Currency(sc.CreditAmount),
			Burden: nf.Currency(sc.EstimatedBurden),
		})
	}

	bars := ComparisonBars(s)
	maxAbs := decimal.Zero
	for _, b := range bars {
		maxAbs = decimal.Max(maxAbs, b.Value.Abs())
	}
	chart := make([]htmlBar, 0, len(bars))
	for _, b := range bars {
		pct := 0
		if maxAbs.IsPositive() {
			pct = int(b.Value.Abs().Div(maxAbs).Mul(hundred).Round(0).IntPart())
		}
		chart = append(chart, htmlBar{Label: b.Label, Value: nf.Currency(b.Value), Percent: pct, Negative: b.Value.IsNegative()})
	}

	var breakEven string
	if report.BreakEven != nil && report.BreakEven.Found {
		breakEven = nf.Rate(report.BreakEven.Rate, 2)
	}

	data := struct {
		Company   string
		Lang      string
		Rows      []htmlRow
		Best      [3]string
		Worst     [3]string
		Alert     string
		Increase  bool
		Chart     []htmlBar
		BreakEven string
	}{
		Company:   report.Company,
		Lang:      nf.Tag.String(),
		Rows:      rows,
		Best:      [3]string{nf.Currency(s.BestCaseBurden), nf.Currency(s.CurrentBurden), nf.Currency(s.BestCaseDelta)},
		Worst:     [3]string{nf.Currency(s.WorstCaseBurden), nf.Currency(s.CurrentBurden), nf.Currency(s.WorstCaseDelta)},
		Alert:     AlertMessage(s, nf),
		Increase:  AssessIncrease(s).Raised,
		Chart:     chart,
		BreakEven: breakEven,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
