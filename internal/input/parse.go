package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrMalformedNumber reports text that is not a localized decimal number.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrNegativeAmount reports a monetary value below zero.
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrPercentOutOfRange reports a percentage outside [0, 100].
	ErrPercentOutOfRange = errors.New("percentage must be between 0 and 100")
)

// ParseNumber converts localized decimal text into a decimal value.
//
// Accepted forms include "1.234.567,89" (pt-BR), "1,234,567.89" (en-US),
// "1234.56", "1234,56", and "1 234,56". A leading "R$" and a trailing "%" are
// ignored. When only one kind of separator appears exactly once it is read as
// the decimal mark unless it is followed by exactly three digits and the
// preferred decimal mark is the other separator.
func ParseNumber(raw string, decimalMark rune) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")

	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrMalformedNumber)
	}

	sign := ""
	if s[0] == '-' || s[0] == '+' {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
	}

	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
		}
	}

	intPart, fracPart, err := splitSeparators(s, decimalMark)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrMalformedNumber, raw, err)
	}

	normalized := sign + intPart
	if fracPart != "" {
		normalized += "." + fracPart
	}

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedNumber, raw)
	}
	return value, nil
}

// splitSeparators works out which separator is the decimal mark and returns the
// integer digits (grouping removed) and fractional digits.
func splitSeparators(s string, decimalMark rune) (string, string, error) {
	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")

	var group, mark string
	switch {
	case dots == 0 && commas == 0:
		return s, "", nil
	case dots > 0 && commas > 0:
		// Both present: whichever comes last is the decimal mark
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			group, mark = ".", ","
		} else {
			group, mark = ",", "."
		}
		if strings.Count(s, mark) > 1 {
			return "", "", errors.New("more than one decimal separator")
		}
	case dots > 1:
		group = "."
	case commas > 1:
		group = ","
	default:
		sep := "."
		other := ","
		if commas == 1 {
			sep, other = ",", "."
		}
		idx := strings.Index(s, sep)
		digitsAfter := len(s) - idx - 1
		if digitsAfter == 3 && string(decimalMark) == other && idx > 0 {
			group = sep
		} else {
			mark = sep
		}
	}

	intPart, fracPart := s, ""
	if mark != "" {
		idx := strings.LastIndex(s, mark)
		intPart, fracPart = s[:idx], s[idx+1:]
		if fracPart == "" {
			return "", "", errors.New("missing digits after decimal separator")
		}
	}

	if group != "" {
		if err := checkGrouping(intPart, group); err != nil {
			return "", "", err
		}
		intPart = strings.ReplaceAll(intPart, group, "")
	}

	if intPart == "" {
		intPart = "0"
	}
	return intPart, fracPart, nil
}

// checkGrouping requires thousands groups of exactly three digits after a
// leading group of one to three.
func checkGrouping(intPart, group string) error {
	groups := strings.Split(intPart, group)
	if len(groups[0]) == 0 || len(groups[0]) > 3 {
		return fmt.Errorf("invalid digit grouping in %q", intPart)
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return fmt.Errorf("invalid digit grouping in %q", intPart)
		}
	}
	return nil
}
