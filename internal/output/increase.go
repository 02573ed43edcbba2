package output

import (
	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// IncreaseSignal tells the reader whether the reform may raise their tax bill.
type IncreaseSignal struct {
	Raised bool `json:"raised" yaml:"raised"`
	// PercentIncrease is worst-case delta over current burden, on a 0-100 scale.
	// Zero unless Raised.
	PercentIncrease decimal.Decimal `json:"percentIncrease" yaml:"percent_increase"`
}

// AssessIncrease raises the signal when the worst case exceeds a positive
// current burden.
func AssessIncrease(s domain.SummaryResult) IncreaseSignal {
	if !s.WorstCaseDelta.IsPositive() || !s.CurrentBurden.IsPositive() {
		return IncreaseSignal{}
	}
	return IncreaseSignal{
		Raised:          true,
		PercentIncrease: s.WorstCaseDelta.Div(s.CurrentBurden).Mul(hundred),
	}
}

// AlertMessage is the headline shown above the results.
func AlertMessage(s domain.SummaryResult, nf NumberFormat) string {
	sig := AssessIncrease(s)
	switch {
	case sig.Raised:
		return "Warning: your tax burden may increase by up to " + nf.Percent(sig.PercentIncrease, 1) + " after the tax reform!"
	case s.CurrentBurden.IsPositive():
		return "Good news: even in the worst case your tax burden does not increase after the tax reform."
	default:
		return "No current tax burden to compare against; see the projected scenarios below."
	}
}
