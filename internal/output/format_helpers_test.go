package output

import (
	"math"
	"testing"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234.567, "$1,234.57"},
		{0, "$0.00"},
		{-12, "-$12.00"},
		{1234567.891, "$1,234,567.89"},
		{math.NaN(), "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in), "%v", tt.in)
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "12.35%", FormatPercentage(12.3456))
	assert.Equal(t, "4.00%", FormatPercentage(4))
	assert.Equal(t, "n/a", FormatPercentage(math.Inf(1)))
}

func TestFormatFactorAndYears(t *testing.T) {
	assert.Equal(t, "0.500000", FormatFactor(0.5))
	assert.Equal(t, "3.46", FormatYears(3.4567))
	assert.Equal(t, "1234.50", fixed2(1234.5))
	assert.Equal(t, "", fixed2(math.NaN()))
}

func TestRowTotal(t *testing.T) {
	// three rows that each print as $0.01 total $0.03
	assert.Equal(t, 0.03, rowTotal(0.006, 0.006, 0.006))
	assert.Equal(t, 0.0, rowTotal(0.004, 0.004, 0.004))
	assert.Equal(t, 0.0, rowTotal())
	assert.True(t, math.IsNaN(rowTotal(1, math.Inf(-1))))
	assert.Equal(t, "n/a", FormatCurrency(rowTotal(math.NaN())))

	s := domain.Summary{PastLoss: 100.004, FutureLossPV: 200.004, HouseholdPV: 0, LifeCarePV: 0.006}
	assert.Equal(t, 300.01, summaryTotal(s))
}
