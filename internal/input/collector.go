package input

import (
	"fmt"

	"github.com/rgehrsitz/reformcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Field names as shown to users and used in input files.
const (
	FieldPISCOFINS             = "pis_cofins"
	FieldISS                   = "iss"
	FieldAnnualRevenue         = "annual_revenue"
	FieldExemptRevenuePct      = "exempt_revenue_pct"
	FieldOperatingCosts        = "operating_costs"
	FieldSimplifiedSupplierPct = "simplified_supplier_pct"
)

// FieldError ties a validation failure to the input it came from.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s (%q): %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// RawInputs is the unparsed text a user typed for each field.
type RawInputs struct {
	PISCOFINS             string `yaml:"pis_cofins"`
	ISS                   string `yaml:"iss"`
	AnnualRevenue         string `yaml:"annual_revenue"`
	ExemptRevenuePct      string `yaml:"exempt_revenue_pct"`
	OperatingCosts        string `yaml:"operating_costs"`
	SimplifiedSupplierPct string `yaml:"simplified_supplier_pct"`
}

type fieldKind int

const (
	kindAmount fieldKind = iota
	kindPercent
)

type fieldSpec struct {
	name string
	kind fieldKind
	raw  func(*RawInputs) *string
	dst  func(*domain.Inputs) *decimal.Decimal
}

// fields is in form order; collection stops at the first failure.
var fields = []fieldSpec{
	{FieldPISCOFINS, kindAmount,
		func(r *RawInputs) *string { return &r.PISCOFINS },
		func(in *domain.Inputs) *decimal.Decimal { return &in.PISCOFINS }},
	{FieldISS, kindAmount,
		func(r *RawInputs) *string { return &r.ISS },
		func(in *domain.Inputs) *decimal.Decimal { return &in.ISS }},
	{FieldAnnualRevenue, kindAmount,
		func(r *RawInputs) *string { return &r.AnnualRevenue },
		func(in *domain.Inputs) *decimal.Decimal { return &in.AnnualRevenue }},
	{FieldExemptRevenuePct, kindPercent,
		func(r *RawInputs) *string { return &r.ExemptRevenuePct },
		func(in *domain.Inputs) *decimal.Decimal { return &in.ExemptRevenuePct }},
	{FieldOperatingCosts, kindAmount,
		func(r *RawInputs) *string { return &r.OperatingCosts },
		func(in *domain.Inputs) *decimal.Decimal { return &in.OperatingCosts }},
	{FieldSimplifiedSupplierPct, kindPercent,
		func(r *RawInputs) *string { return &r.SimplifiedSupplierPct },
		func(in *domain.Inputs) *decimal.Decimal { return &in.SimplifiedSupplierPct }},
}

// FieldNames lists the inputs in form order.
func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// IsPercentField reports whether the named field is a 0-100 percentage.
func IsPercentField(name string) bool {
	for _, f := range fields {
		if f.name == name {
			return f.kind == kindPercent
		}
	}
	return false
}

// Collector turns user text into engine inputs.
type Collector struct {
	// DecimalMark is the separator users are expected to type for decimals.
	// It only matters for ambiguous text such as "1.234".
	DecimalMark rune
	// EmptyAsZero treats blank fields as 0, like an untouched form field.
	EmptyAsZero bool
}

// NewCollector creates a collector for Brazilian-formatted input.
func NewCollector() *Collector {
	return &Collector{DecimalMark: ','}
}

// Collect parses and validates all six fields. It fails on the first invalid
// field and never returns a partial result.
func (c *Collector) Collect(raw RawInputs) (domain.Inputs, error) {
	var in domain.Inputs
	for _, f := range fields {
		text := *f.raw(&raw)
		value, err := c.parseField(f, text)
		if err != nil {
			return domain.Inputs{}, err
		}
		*f.dst(&in) = value
	}
	return in, nil
}

// ParseField parses and validates a single named field.
func (c *Collector) ParseField(name, text string) (decimal.Decimal, error) {
	for _, f := range fields {
		if f.name == name {
			return c.parseField(f, text)
		}
	}
	return decimal.Zero, fmt.Errorf("unknown field %q", name)
}

func (c *Collector) parseField(f fieldSpec, text string) (decimal.Decimal, error) {
	if c.EmptyAsZero && isBlank(text) {
		return decimal.Zero, nil
	}

	mark := c.DecimalMark
	if mark == 0 {
		mark = ','
	}

	value, err := ParseNumber(text, mark)
	if err != nil {
		return decimal.Zero, &FieldError{Field: f.name, Value: text, Err: err}
	}
	if err := checkRange(f.kind, value); err != nil {
		return decimal.Zero, &FieldError{Field: f.name, Value: text, Err: err}
	}
	return value, nil
}

// Validate applies the same range checks to values that arrived already numeric.
func (c *Collector) Validate(in domain.Inputs) error {
	for _, f := range fields {
		value := *f.dst(&in)
		if err := checkRange(f.kind, value); err != nil {
			return &FieldError{Field: f.name, Value: value.String(), Err: err}
		}
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

func checkRange(kind fieldKind, value decimal.Decimal) error {
	switch kind {
	case kindPercent:
		if value.IsNegative() || value.GreaterThan(hundred) {
			return ErrPercentOutOfRange
		}
	default:
		if value.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
