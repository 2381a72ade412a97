package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFreqType(t *testing.T) {
	tests := []struct {
		in      string
		want    FreqType
		wantErr bool
	}{
		{"annual", FreqAnnual, false},
		{" Yearly ", FreqAnnual, false},
		{"onetime", FreqOneTime, false},
		{"one-time", FreqOneTime, false},
		{"One_Time", FreqOneTime, false},
		{"recurring", FreqRecurring, false},
		{"weekly", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFreqType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFreqType_IsActive(t *testing.T) {
	activePeriods := func(f FreqType, duration, interval int) []int {
		var out []int
		for period := 0; period < duration; period++ {
			if f.IsActive(period, interval) {
				out = append(out, period)
			}
		}
		return out
	}

	assert.Equal(t, []int{0, 1, 2, 3}, activePeriods(FreqAnnual, 4, 0))
	assert.Equal(t, []int{0}, activePeriods(FreqOneTime, 4, 0))
	assert.Equal(t, []int{0, 2}, activePeriods(FreqRecurring, 4, 2))
	assert.Equal(t, []int{0, 3, 6}, activePeriods(FreqRecurring, 7, 3))
	// An interval below one behaves like every period.
	assert.Equal(t, []int{0, 1, 2}, activePeriods(FreqRecurring, 3, 0))
}

func TestFringeModels(t *testing.T) {
	params := EarningsParams{
		FringeRate:        20,
		Pension:           5000,
		HealthWelfare:     3000,
		Annuity:           1000,
		ClothingAllowance: 500,
		OtherBenefits:     500,
	}

	rate := params.Fringe(false)
	assert.InDelta(t, 1.2, rate.Factor(50000), 1e-12)
	assert.Zero(t, rate.FlatAmount())

	flat := params.Fringe(true)
	assert.Equal(t, 10000.0, flat.FlatAmount())
	assert.InDelta(t, 1.2, flat.Factor(50000), 1e-12)
	assert.Equal(t, 1.0, flat.Factor(0), "zero base earnings must not divide")
}

func TestCase_CloneIsDeep(t *testing.T) {
	c := Case{
		LifeCare:    []LcpItem{{ID: "a", BaseCost: 100}},
		PastActuals: map[int]string{2020: "100"},
		Scenarios:   DefaultScenarioSet(),
	}
	cp := c.Clone()
	cp.LifeCare[0].BaseCost = 999
	cp.PastActuals[2020] = "999"
	*cp.Scenarios[0].WageGrowth = 99

	assert.Equal(t, 100.0, c.LifeCare[0].BaseCost)
	assert.Equal(t, "100", c.PastActuals[2020])
	assert.Equal(t, 2.0, *c.Scenarios[0].WageGrowth)
}

func TestScenarioAssumptions_Apply(t *testing.T) {
	base := EarningsParams{WageGrowth: 3, DiscountRate: 4, WLE: 20, BaseEarnings: 50000}
	sa := ScenarioAssumptions{ID: "x", DiscountRate: Rate(6)}
	got := sa.Apply(base)

	assert.Equal(t, 3.0, got.WageGrowth)
	assert.Equal(t, 6.0, got.DiscountRate)
	assert.Equal(t, 20.0, got.WLE)
	assert.Equal(t, 4.0, base.DiscountRate, "input must not be mutated")
	assert.Equal(t, "discount 6.00%", sa.Describe())
	assert.Equal(t, "case assumptions", ScenarioAssumptions{}.Describe())
}

func TestApplyInclusion(t *testing.T) {
	list := []ScenarioProjection{
		{ID: "a", Included: true},
		{ID: "b", Included: true},
		{ID: "c", Included: true},
	}
	got := ApplyInclusion(list, map[string]bool{"b": false})

	assert.True(t, list[1].Included, "original slice untouched")
	inc := IncludedScenarios(got)
	require.Len(t, inc, 2)
	assert.Equal(t, "a", inc[0].ID)
	assert.Equal(t, "c", inc[1].ID)
}

func TestReport_SelectedScenario(t *testing.T) {
	r := &Report{
		Case:    Case{Earnings: EarningsParams{SelectedScenario: "standard"}},
		Results: Results{Scenarios: []ScenarioProjection{{ID: "conservative"}, {ID: "standard", GrandTotal: 5}}},
	}
	sp, ok := r.SelectedScenario()
	require.True(t, ok)
	assert.Equal(t, 5.0, sp.GrandTotal)

	r.Case.Earnings.SelectedScenario = "missing"
	_, ok = r.SelectedScenario()
	assert.False(t, ok)
}
