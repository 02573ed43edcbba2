package output

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale matches the market the calculator is built for.
const DefaultLocale = "pt-BR"

// CurrencySymbol is fixed: all amounts are in reais and never converted.
const CurrencySymbol = "R$"

// NumberFormat renders decimals with locale-specific separators. It is used for
// display only; values handed to it are never fed back into calculations.
type NumberFormat struct {
	Tag     language.Tag
	printer *message.Printer
}

// NewNumberFormat builds a formatter for a BCP 47 locale such as "pt-BR" or "en-US".
func NewNumberFormat(locale string) (NumberFormat, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return NumberFormat{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return NumberFormat{Tag: tag, printer: message.NewPrinter(tag)}, nil
}

// DefaultNumberFormat returns the pt-BR formatter.
func DefaultNumberFormat() NumberFormat {
	nf, _ := NewNumberFormat(DefaultLocale)
	return nf
}

func (nf NumberFormat) p() *message.Printer {
	if nf.printer == nil {
		return message.NewPrinter(language.BrazilianPortuguese)
	}
	return nf.printer
}

// Number formats d with the given number of decimals and digit grouping.
func (nf NumberFormat) Number(d decimal.Decimal, decimals int) string {
	return nf.p().Sprintf(fmt.Sprintf("%%.%df", decimals), d.Round(int32(decimals)).InexactFloat64())
}

// Currency formats an amount as "R$ 1.234,56"; negatives become "-R$ 1.234,56".
func (nf NumberFormat) Currency(d decimal.Decimal) string {
	if d.Round(2).IsNegative() {
		return "-" + CurrencySymbol + " " + nf.Number(d.Abs(), 2)
	}
	return CurrencySymbol + " " + nf.Number(d, 2)
}

// Percent formats a value already on a 0-100 scale.
func (nf NumberFormat) Percent(d decimal.Decimal, decimals int) string {
	return nf.Number(d, decimals) + "%"
}

// Rate formats a fractional rate such as 0.25 as a percentage.
func (nf NumberFormat) Rate(r decimal.Decimal, decimals int) string {
	return nf.Percent(r.Mul(hundred), decimals)
}

var hundred = decimal.NewFromInt(100)
