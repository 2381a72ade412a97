package calculation

import (
	"testing"
	"time"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeDateCalc(t *testing.T) {
	info := domain.CaseInfo{
		DOB:           "1980-01-01",
		DateOfInjury:  "2020-01-01",
		DateOfTrial:   "2022-07-01",
		RetirementAge: 67,
	}
	dc := ComputeDateCalc(info, testAsOf)

	// 2020 (366) + 2021 (365) + Jan..Jun 2022 (181)
	assert.InDelta(t, 912.0/365.25, dc.PastYears, 1e-12)
	// 2022-07-01 -> 2023-01-01 (184) + 24 years with 6 leap days
	assert.InDelta(t, 8950.0/365.25, dc.DerivedYFS, 1e-12)
	assert.Equal(t, "40.0", dc.AgeInjury)
	assert.Equal(t, "42.5", dc.AgeTrial)
	assert.Equal(t, "44.4", dc.CurrentAge)
}

func TestComputeDateCalc_FractionalRetirementAge(t *testing.T) {
	info := domain.CaseInfo{DOB: "1980-01-01", DateOfInjury: "2020-01-01", DateOfTrial: "2022-07-01", RetirementAge: 67.5}
	dc := ComputeDateCalc(info, testAsOf)
	assert.InDelta(t, 8950.0/365.25+0.5, dc.DerivedYFS, 1e-9)
}

func TestComputeDateCalc_MissingDates(t *testing.T) {
	full := domain.CaseInfo{DOB: "1980-01-01", DateOfInjury: "2020-01-01", DateOfTrial: "2022-07-01", RetirementAge: 67}
	tests := []struct {
		name   string
		mutate func(*domain.CaseInfo)
	}{
		{"no dob", func(ci *domain.CaseInfo) { ci.DOB = "" }},
		{"no injury", func(ci *domain.CaseInfo) { ci.DateOfInjury = "" }},
		{"no trial", func(ci *domain.CaseInfo) { ci.DateOfTrial = "" }},
		{"garbage trial", func(ci *domain.CaseInfo) { ci.DateOfTrial = "next spring" }},
	}
	want := domain.DateCalc{AgeInjury: "0", AgeTrial: "0", CurrentAge: "0"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := full
			tt.mutate(&info)
			assert.Equal(t, want, ComputeDateCalc(info, testAsOf))
			// idempotent
			assert.Equal(t, want, ComputeDateCalc(info, testAsOf))
		})
	}
}

func TestComputeDateCalc_ClampsNegativeDurations(t *testing.T) {
	info := domain.CaseInfo{
		DOB:           "1950-01-01",
		DateOfInjury:  "2022-07-01",
		DateOfTrial:   "2020-01-01", // trial before injury
		RetirementAge: 60,           // already past retirement at trial
	}
	dc := ComputeDateCalc(info, testAsOf)
	assert.Zero(t, dc.PastYears)
	assert.Zero(t, dc.DerivedYFS)
}

func TestComputeDateCalc_IgnoresTimeOfDay(t *testing.T) {
	info := domain.CaseInfo{DOB: "1980-01-01", DateOfInjury: "2020-01-01", DateOfTrial: "2022-07-01", RetirementAge: 67}
	morning := ComputeDateCalc(info, time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC))
	evening := ComputeDateCalc(info, time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, morning, evening)
}
