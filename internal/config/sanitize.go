package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/econloss/loss-calculator/pkg/dateutil"
	"github.com/google/uuid"
)

// DefaultRetirementAge is used when a case does not state one.
const DefaultRetirementAge = 67

// DefaultCase returns the values every missing import field falls back to.
func DefaultCase() domain.Case {
	return domain.Case{
		Info: domain.CaseInfo{RetirementAge: DefaultRetirementAge},
		Earnings: domain.EarningsParams{
			WageGrowth:   3.0,
			DiscountRate: 4.0,
		},
		Household: domain.HhServices{
			GrowthRate:   3.0,
			DiscountRate: 4.0,
		},
		LifeCare:    []domain.LcpItem{},
		PastActuals: map[int]string{},
		Scenarios:   domain.DefaultScenarioSet(),
	}
}

// Sanitize returns a copy of c that the engines can consume without surprises:
// amounts that must be non-negative are clamped to 0, item durations, start
// years and intervals to at least 1, unknown frequencies become annual, item
// and scenario IDs are made present and unique, and unparseable dates are
// cleared. Each adjustment is reported as a warning.
func Sanitize(c domain.Case) (domain.Case, []string) {
	out := c.Clone()
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}
	nonNeg := func(name string, v *float64) {
		if *v < 0 {
			warn("%s was negative (%v), set to 0", name, *v)
			*v = 0
		}
	}

	for _, d := range []struct {
		name string
		v    *string
	}{
		{"dob", &out.Info.DOB},
		{"date_of_injury", &out.Info.DateOfInjury},
		{"date_of_trial", &out.Info.DateOfTrial},
	} {
		if strings.TrimSpace(*d.v) == "" {
			*d.v = ""
			continue
		}
		t, ok := dateutil.ParseDate(*d.v)
		if !ok {
			warn("%s %q is not a date, cleared", d.name, *d.v)
			*d.v = ""
			continue
		}
		*d.v = dateutil.FormatDate(t)
	}
	nonNeg("retirement_age", &out.Info.RetirementAge)

	ep := &out.Earnings
	nonNeg("base_earnings", &ep.BaseEarnings)
	nonNeg("residual_earnings", &ep.ResidualEarnings)
	nonNeg("wle", &ep.WLE)
	nonNeg("pension", &ep.Pension)
	nonNeg("health_welfare", &ep.HealthWelfare)
	nonNeg("annuity", &ep.Annuity)
	nonNeg("clothing_allowance", &ep.ClothingAllowance)
	nonNeg("other_benefits", &ep.OtherBenefits)

	hh := &out.Household
	nonNeg("household_services.hours_per_week", &hh.HoursPerWeek)
	nonNeg("household_services.hourly_rate", &hh.HourlyRate)
	nonNeg("household_services.growth_rate", &hh.GrowthRate)
	nonNeg("household_services.discount_rate", &hh.DiscountRate)

	if out.LifeCare == nil {
		out.LifeCare = []domain.LcpItem{}
	}
	seen := make(map[string]bool, len(out.LifeCare))
	for i := range out.LifeCare {
		item := &out.LifeCare[i]
		prefix := "life_care_plan." + strconv.Itoa(i)
		item.ID = strings.TrimSpace(item.ID)
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if seen[item.ID] {
			orig := item.ID
			item.ID = uniqueID(orig, seen)
			warn("%s: duplicate id %q renamed to %q", prefix, orig, item.ID)
		}
		seen[item.ID] = true

		nonNeg(prefix+".base_cost", &item.BaseCost)
		if item.Duration < 1 {
			warn("%s: duration %d raised to 1", prefix, item.Duration)
			item.Duration = 1
		}
		if item.StartYear < 1 {
			warn("%s: start_year %d raised to 1", prefix, item.StartYear)
			item.StartYear = 1
		}
		if item.RecurrenceInterval < 1 {
			if item.FreqType == domain.FreqRecurring {
				warn("%s: recurrence_interval %d raised to 1", prefix, item.RecurrenceInterval)
			}
			item.RecurrenceInterval = 1
		}
		if ft, err := domain.ParseFreqType(string(item.FreqType)); err != nil {
			if item.FreqType != "" {
				warn("%s: %v, using annual", prefix, err)
			}
			item.FreqType = domain.FreqAnnual
		} else {
			item.FreqType = ft
		}
	}

	if out.PastActuals == nil {
		out.PastActuals = map[int]string{}
	}
	for year, v := range out.PastActuals {
		out.PastActuals[year] = strings.TrimSpace(v)
	}

	ids := make(map[string]bool, len(out.Scenarios))
	for i := range out.Scenarios {
		sa := &out.Scenarios[i]
		sa.ID = strings.TrimSpace(sa.ID)
		if sa.ID == "" {
			sa.ID = "scenario-" + strconv.Itoa(i+1)
		}
		if ids[sa.ID] {
			orig := sa.ID
			sa.ID = uniqueID(orig, ids)
			warn("scenarios.%d: duplicate id %q renamed to %q", i, orig, sa.ID)
		}
		ids[sa.ID] = true
		if sa.WLE != nil && *sa.WLE < 0 {
			warn("scenarios.%d: negative wle override dropped", i)
			sa.WLE = nil
		}
	}

	return out, warnings
}

func uniqueID(base string, taken map[string]bool) string {
	for n := 2; ; n++ {
		id := base + "-" + strconv.Itoa(n)
		if !taken[id] {
			return id
		}
	}
}

// sortedYears returns the past-actual years in ascending order.
func sortedYears(m map[int]string) []int {
	years := make([]int, 0, len(m))
	for y := range m {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
