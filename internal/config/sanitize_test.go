package config

import (
	"testing"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_Clamps(t *testing.T) {
	c := CreateExampleCase()
	c.Earnings.BaseEarnings = -5
	c.Household.HourlyRate = -1
	c.Info.DOB = "04/12/1978"
	c.Info.DateOfTrial = "soon"
	c.LifeCare = []domain.LcpItem{
		{ID: "", BaseCost: -10, FreqType: "weekly", Duration: 0, StartYear: 0, RecurrenceInterval: 0},
		{ID: "x", BaseCost: 10, FreqType: domain.FreqRecurring, Duration: 3, StartYear: 1, RecurrenceInterval: 0},
		{ID: "x", BaseCost: 10, FreqType: "One Time", Duration: 3, StartYear: 1, RecurrenceInterval: 1},
	}

	out, warnings := Sanitize(c)

	assert.Equal(t, 0.0, out.Earnings.BaseEarnings)
	assert.Equal(t, 0.0, out.Household.HourlyRate)
	assert.Equal(t, "1978-04-12", out.Info.DOB)
	assert.Equal(t, "", out.Info.DateOfTrial)

	first := out.LifeCare[0]
	assert.Len(t, first.ID, 36, "blank ids get a UUID")
	assert.Equal(t, 0.0, first.BaseCost)
	assert.Equal(t, domain.FreqAnnual, first.FreqType)
	assert.Equal(t, 1, first.Duration)
	assert.Equal(t, 1, first.StartYear)
	assert.Equal(t, 1, first.RecurrenceInterval)

	assert.Equal(t, 1, out.LifeCare[1].RecurrenceInterval)
	assert.Equal(t, "x-2", out.LifeCare[2].ID)
	assert.Equal(t, domain.FreqOneTime, out.LifeCare[2].FreqType)

	assert.NotEmpty(t, warnings)
	// input is not modified
	assert.Equal(t, -5.0, c.Earnings.BaseEarnings)
	assert.Equal(t, "", c.LifeCare[0].ID)
}

func TestSanitize_Scenarios(t *testing.T) {
	c := DefaultCase()
	c.Scenarios = domain.ScenarioSet{
		{ID: "a"},
		{ID: "a", WLE: domain.Rate(-3)},
		{},
	}
	out, warnings := Sanitize(c)

	require.Len(t, out.Scenarios, 3)
	assert.Equal(t, "a", out.Scenarios[0].ID)
	assert.Equal(t, "a-2", out.Scenarios[1].ID)
	assert.Nil(t, out.Scenarios[1].WLE)
	assert.Equal(t, "scenario-3", out.Scenarios[2].ID)
	assert.Len(t, warnings, 2)
}

func TestSanitize_Idempotent(t *testing.T) {
	once, _ := Sanitize(CreateExampleCase())
	twice, warnings := Sanitize(once)
	assert.Empty(t, warnings)
	assert.Equal(t, once, twice)
}

func TestSanitize_NilCollections(t *testing.T) {
	out, warnings := Sanitize(domain.Case{})
	assert.Empty(t, warnings)
	assert.NotNil(t, out.LifeCare)
	assert.NotNil(t, out.PastActuals)
	assert.Nil(t, out.Scenarios)
}
