package input

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		mark     rune
		expected string
	}{
		{"plain integer", "1500", ',', "1500"},
		{"brazilian thousands and decimals", "1.234.567,89", ',', "1234567.89"},
		{"brazilian decimals only", "1234,56", ',', "1234.56"},
		{"brazilian thousands only", "1.234", ',', "1234"},
		{"us thousands and decimals", "1,234,567.89", ',', "1234567.89"},
		{"dot decimal", "1234.56", ',', "1234.56"},
		{"short dot decimal", "1.5", ',', "1.5"},
		{"comma with three digits under pt-BR", "1,234", ',', "1.234"},
		{"comma with three digits under en-US", "1,234", '.', "1234"},
		{"currency prefix", "R$ 1.000,00", ',', "1000"},
		{"percent suffix", "12,5%", ',', "12.5"},
		{"surrounding whitespace", "  42  ", ',', "42"},
		{"space grouping", "1 234,56", ',', "1234.56"},
		{"leading decimal", ",5", ',', "0.5"},
		{"negative", "-10,5", ',', "-10.5"},
		{"explicit plus", "+7", ',', "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := ParseNumber(tt.raw, tt.mark)
			require.NoError(t, err)
			assert.True(t, value.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, value)
		})
	}
}

func TestParseNumber_Malformed(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"abc",
		"12a",
		"1e5",
		"-",
		"R$",
		"1,2,3.4,5",
		"1.234,56,7",
		"12.34.56",
		"1.2345.678",
		"5,",
		"1..2",
		"NaN",
		"Inf",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseNumber(raw, ',')
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedNumber), "unexpected error: %v", err)
		})
	}
}

func validRaw() RawInputs {
	return RawInputs{
		PISCOFINS:             "1.000,00",
		ISS:                   "500",
		AnnualRevenue:         "100.000,00",
		ExemptRevenuePct:      "0",
		OperatingCosts:        "50.000",
		SimplifiedSupplierPct: "20%",
	}
}

func TestCollector_Collect(t *testing.T) {
	c := NewCollector()

	in, err := c.Collect(validRaw())
	require.NoError(t, err)

	assert.True(t, in.PISCOFINS.Equal(decimal.NewFromInt(1000)))
	assert.True(t, in.ISS.Equal(decimal.NewFromInt(500)))
	assert.True(t, in.AnnualRevenue.Equal(decimal.NewFromInt(100000)))
	assert.True(t, in.ExemptRevenuePct.IsZero())
	assert.True(t, in.OperatingCosts.Equal(decimal.NewFromInt(50000)))
	assert.True(t, in.SimplifiedSupplierPct.Equal(decimal.NewFromInt(20)))
}

func TestCollector_Collect_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*RawInputs)
		field    string
		sentinel error
	}{
		{"malformed amount", func(r *RawInputs) { r.ISS = "quinhentos" }, FieldISS, ErrMalformedNumber},
		{"negative amount", func(r *RawInputs) { r.AnnualRevenue = "-1" }, FieldAnnualRevenue, ErrNegativeAmount},
		{"percent above 100", func(r *RawInputs) { r.ExemptRevenuePct = "100,01" }, FieldExemptRevenuePct, ErrPercentOutOfRange},
		{"negative percent", func(r *RawInputs) { r.SimplifiedSupplierPct = "-5" }, FieldSimplifiedSupplierPct, ErrPercentOutOfRange},
		{"blank field", func(r *RawInputs) { r.OperatingCosts = "" }, FieldOperatingCosts, ErrMalformedNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			in, err := NewCollector().Collect(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "unexpected error: %v", err)

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
			assert.Contains(t, err.Error(), tt.field)

			// No partial result on failure
			assert.True(t, in.PISCOFINS.IsZero())
		})
	}
}

func TestCollector_Collect_StopsAtFirstError(t *testing.T) {
	raw := validRaw()
	raw.ISS = "x"
	raw.SimplifiedSupplierPct = "150"

	_, err := NewCollector().Collect(raw)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, FieldISS, fe.Field)
}

func TestCollector_PercentBoundaries(t *testing.T) {
	c := NewCollector()
	for _, text := range []string{"0", "100", "100,00", "0,0"} {
		_, err := c.ParseField(FieldExemptRevenuePct, text)
		assert.NoError(t, err, "percentage %q should be accepted", text)
	}
}

func TestCollector_EmptyAsZero(t *testing.T) {
	c := NewCollector()
	c.EmptyAsZero = true

	in, err := c.Collect(RawInputs{})
	require.NoError(t, err)
	assert.True(t, in.AnnualRevenue.IsZero())
	assert.True(t, in.SimplifiedSupplierPct.IsZero())
}

func TestCollector_ParseField_Unknown(t *testing.T) {
	_, err := NewCollector().ParseField("cofins", "1")
	assert.Error(t, err)
}

func TestCollector_Validate(t *testing.T) {
	c := NewCollector()
	in, err := c.Collect(validRaw())
	require.NoError(t, err)
	assert.NoError(t, c.Validate(in))

	in.ExemptRevenuePct = decimal.NewFromInt(101)
	err = c.Validate(in)
	assert.True(t, errors.Is(err, ErrPercentOutOfRange))

	in.ExemptRevenuePct = decimal.Zero
	in.OperatingCosts = decimal.NewFromInt(-1)
	err = c.Validate(in)
	assert.True(t, errors.Is(err, ErrNegativeAmount))
}

func TestFieldHelpers(t *testing.T) {
	assert.Equal(t, []string{
		FieldPISCOFINS, FieldISS, FieldAnnualRevenue,
		FieldExemptRevenuePct, FieldOperatingCosts, FieldSimplifiedSupplierPct,
	}, FieldNames())

	assert.True(t, IsPercentField(FieldExemptRevenuePct))
	assert.True(t, IsPercentField(FieldSimplifiedSupplierPct))
	assert.False(t, IsPercentField(FieldISS))
	assert.False(t, IsPercentField("unknown"))
}
