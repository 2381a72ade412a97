package config

import "github.com/econloss/loss-calculator/internal/domain"

// CreateExampleCase returns a complete worked case used by `losscalc example`
// and the integration tests.
func CreateExampleCase() domain.Case {
	return domain.Case{
		Info: domain.CaseInfo{
			Plaintiff:     "Alex Rivera",
			DOB:           "1978-04-12",
			DateOfInjury:  "2021-03-15",
			DateOfTrial:   "2024-09-01",
			RetirementAge: 67,
			Gender:        "female",
			Occupation:    "Journeyman electrician",
			Education:     "High school diploma, apprenticeship",
			Jurisdiction:  "Cook County, IL",
			InjuryNotes:   "Crush injury to dominant hand; unable to return to trade.",
		},
		Earnings: domain.EarningsParams{
			BaseEarnings:      72000,
			ResidualEarnings:  31000,
			WLE:               19.5,
			WageGrowth:        3.0,
			DiscountRate:      4.25,
			FringeRate:        22.0,
			Pension:           6500,
			HealthWelfare:     9800,
			Annuity:           2400,
			ClothingAllowance: 300,
			OtherBenefits:     500,
			UnemploymentRate:  5.2,
			UIReplacementRate: 45,
			FedTaxRate:        12,
			StateTaxRate:      4.95,
			SelectedScenario:  "standard",
		},
		Household: domain.HhServices{
			Active:       true,
			HoursPerWeek: 8,
			HourlyRate:   18.50,
			GrowthRate:   2.5,
			DiscountRate: 4.25,
		},
		LifeCare: []domain.LcpItem{
			{ID: "ot-eval", CategoryID: "therapy", Description: "Occupational therapy", BaseCost: 3200, FreqType: domain.FreqAnnual, Duration: 5, StartYear: 1, CPI: 3.5, RecurrenceInterval: 1},
			{ID: "orthosis", CategoryID: "equipment", Description: "Custom hand orthosis", BaseCost: 1850, FreqType: domain.FreqRecurring, Duration: 24, StartYear: 1, CPI: 2.5, RecurrenceInterval: 3},
			{ID: "tendon-revision", CategoryID: "surgery", Description: "Tendon transfer revision", BaseCost: 38000, FreqType: domain.FreqOneTime, Duration: 1, StartYear: 2, CPI: 4.0, RecurrenceInterval: 1},
			{ID: "pain-mgmt", CategoryID: "medication", Description: "Pain management", BaseCost: 1200, FreqType: domain.FreqAnnual, Duration: 20, StartYear: 1, CPI: 4.5, RecurrenceInterval: 1},
		},
		PastActuals: map[int]string{
			2022: "14500",
			2023: "22750",
		},
		Scenarios: domain.DefaultScenarioSet(),
	}
}
