package config

import (
	"errors"
	"fmt"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/econloss/loss-calculator/pkg/dateutil"
)

// ValidateCase reports inputs that are computable but probably wrong: missing
// or out-of-order dates, rates outside 0-100, no base earnings, residual
// earnings above base, and zero-cost care items. The engine runs on such a case
// regardless; validation is advisory for the CLI and API.
func (ip *InputParser) ValidateCase(c domain.Case) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	dob, okDOB := dateutil.ParseDate(c.Info.DOB)
	injury, okInjury := dateutil.ParseDate(c.Info.DateOfInjury)
	trial, okTrial := dateutil.ParseDate(c.Info.DateOfTrial)
	if !okDOB {
		add("date of birth is required")
	}
	if !okInjury {
		add("date of injury is required")
	}
	if !okTrial {
		add("date of trial is required")
	}
	if okDOB && okInjury && !dob.Before(injury) {
		add("date of birth must precede date of injury")
	}
	if okInjury && okTrial && trial.Before(injury) {
		add("date of trial cannot precede date of injury")
	}
	if c.Info.RetirementAge <= 0 {
		add("retirement age must be positive")
	}

	ep := c.Earnings
	if ep.BaseEarnings <= 0 {
		add("base earnings must be positive")
	}
	if ep.ResidualEarnings > ep.BaseEarnings {
		add("residual earnings exceed base earnings")
	}
	for _, r := range []struct {
		name string
		v    float64
	}{
		{"wage growth", ep.WageGrowth},
		{"discount rate", ep.DiscountRate},
		{"fringe rate", ep.FringeRate},
		{"unemployment rate", ep.UnemploymentRate},
		{"UI replacement rate", ep.UIReplacementRate},
		{"federal tax rate", ep.FedTaxRate},
		{"state tax rate", ep.StateTaxRate},
	} {
		if r.v < 0 || r.v > 100 {
			add("%s %.2f%% is outside 0-100%%", r.name, r.v)
		}
	}
	if ep.SelectedScenario != "" {
		if _, ok := c.Scenarios.Find(ep.SelectedScenario); !ok {
			add("selected scenario %q is not in the scenario table", ep.SelectedScenario)
		}
	}

	if c.Household.Active && (c.Household.HoursPerWeek <= 0 || c.Household.HourlyRate <= 0) {
		add("household services are active but hours or rate is zero")
	}

	ids := make(map[string]bool, len(c.LifeCare))
	for i, item := range c.LifeCare {
		if item.ID != "" && ids[item.ID] {
			add("life care item %d: duplicate id %q", i, item.ID)
		}
		ids[item.ID] = true
		if item.BaseCost <= 0 {
			add("life care item %q has no cost", item.ID)
		}
		if _, err := domain.ParseFreqType(string(item.FreqType)); err != nil {
			add("life care item %q: %v", item.ID, err)
		}
	}

	for _, year := range sortedYears(c.PastActuals) {
		if okInjury && okTrial && (year < injury.Year() || year > trial.Year()) {
			add("past actual for %d is outside the injury-to-trial period", year)
		}
	}

	return errors.Join(errs...)
}
