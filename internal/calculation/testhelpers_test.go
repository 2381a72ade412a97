package calculation

import (
	"time"

	"github.com/econloss/loss-calculator/internal/domain"
)

var testAsOf = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func sampleCase() domain.Case {
	return domain.Case{
		Info: domain.CaseInfo{
			Plaintiff:     "Jordan Example",
			DOB:           "1980-01-01",
			DateOfInjury:  "2020-01-01",
			DateOfTrial:   "2022-07-01",
			RetirementAge: 67,
		},
		Earnings: domain.EarningsParams{
			BaseEarnings:      60000,
			ResidualEarnings:  25000,
			WLE:               20,
			WageGrowth:        3,
			DiscountRate:      4,
			FringeRate:        20,
			UnemploymentRate:  5,
			UIReplacementRate: 40,
			FedTaxRate:        15,
			StateTaxRate:      5,
		},
		Household: domain.HhServices{
			Active:       true,
			HoursPerWeek: 10,
			HourlyRate:   15,
			GrowthRate:   2,
			DiscountRate: 4,
		},
		LifeCare: []domain.LcpItem{
			{ID: "pt", CategoryID: "therapy", BaseCost: 2400, FreqType: domain.FreqAnnual, Duration: 10, StartYear: 1, CPI: 3},
			{ID: "wheelchair", CategoryID: "equipment", BaseCost: 5000, FreqType: domain.FreqRecurring, Duration: 20, StartYear: 1, CPI: 2, RecurrenceInterval: 5},
			{ID: "surgery", CategoryID: "medical", BaseCost: 40000, FreqType: domain.FreqOneTime, Duration: 1, StartYear: 2, CPI: 4},
		},
		PastActuals: map[int]string{2021: "18000"},
		Scenarios:   domain.DefaultScenarioSet(),
	}
}
