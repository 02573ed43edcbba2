package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakEven(t *testing.T) {
	in := inputs("1000", "500", "100000", "0", "50000", "20")

	be := BreakEven(in)

	require.True(t, be.Found)
	assertDecimal(t, "1500", be.CurrentBurden)
	assertDecimal(t, "60000", be.Slope)

	// The burden at the break-even rate matches the current burden
	burden := BurdenAt(in, be.Rate)
	assert.True(t, burden.Sub(be.CurrentBurden).Abs().LessThan(d("0.000001")),
		"burden at break-even rate was %s", burden)
}

func TestBreakEven_FlatBurden(t *testing.T) {
	// Taxable revenue equals non-simplified costs, so rate changes cancel out
	be := BreakEven(inputs("100", "0", "50000", "0", "50000", "0"))

	assert.False(t, be.Found)
	assert.True(t, be.Slope.IsZero())
	assert.True(t, be.Rate.IsZero())
}

func TestBurdenAt_MatchesCandidateScenarios(t *testing.T) {
	in := inputs("10", "20", "5000", "30", "4000", "50")
	result := ComputeScenarios(in)

	for _, rec := range result.Scenarios {
		assert.True(t, BurdenAt(in, rec.Rate).Equal(rec.EstimatedBurden))
	}
}
