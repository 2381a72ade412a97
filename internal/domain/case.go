package domain

import (
	"fmt"
	"strings"
)

// CaseInfo holds the plaintiff's biographical dates and narrative fields.
// Dates are ISO strings (YYYY-MM-DD) and may be blank while a case is being entered.
type CaseInfo struct {
	Plaintiff     string  `yaml:"plaintiff" json:"plaintiff"`
	DOB           string  `yaml:"dob" json:"dob"`
	DateOfInjury  string  `yaml:"date_of_injury" json:"date_of_injury"`
	DateOfTrial   string  `yaml:"date_of_trial" json:"date_of_trial"`
	RetirementAge float64 `yaml:"retirement_age" json:"retirement_age"`

	// Narrative fields (not used in calculations)
	Gender       string `yaml:"gender,omitempty" json:"gender,omitempty"`
	Occupation   string `yaml:"occupation,omitempty" json:"occupation,omitempty"`
	Education    string `yaml:"education,omitempty" json:"education,omitempty"`
	Jurisdiction string `yaml:"jurisdiction,omitempty" json:"jurisdiction,omitempty"`
	Attorney     string `yaml:"attorney,omitempty" json:"attorney,omitempty"`
	InjuryNotes  string `yaml:"injury_notes,omitempty" json:"injury_notes,omitempty"`
}

// EarningsParams contains the earnings, growth, discount, fringe, unemployment and tax
// assumptions. All rates are expressed in percent (4.5 means 4.5%).
type EarningsParams struct {
	BaseEarnings     float64 `yaml:"base_earnings" json:"base_earnings"`
	ResidualEarnings float64 `yaml:"residual_earnings" json:"residual_earnings"`
	WLE              float64 `yaml:"wle" json:"wle"`
	WageGrowth       float64 `yaml:"wage_growth" json:"wage_growth"`
	DiscountRate     float64 `yaml:"discount_rate" json:"discount_rate"`
	FringeRate       float64 `yaml:"fringe_rate" json:"fringe_rate"`

	// Union fringe components (annual dollar amounts)
	Pension           float64 `yaml:"pension" json:"pension"`
	HealthWelfare     float64 `yaml:"health_welfare" json:"health_welfare"`
	Annuity           float64 `yaml:"annuity" json:"annuity"`
	ClothingAllowance float64 `yaml:"clothing_allowance" json:"clothing_allowance"`
	OtherBenefits     float64 `yaml:"other_benefits" json:"other_benefits"`

	UnemploymentRate  float64 `yaml:"unemployment_rate" json:"unemployment_rate"`
	UIReplacementRate float64 `yaml:"ui_replacement_rate" json:"ui_replacement_rate"`
	FedTaxRate        float64 `yaml:"fed_tax_rate" json:"fed_tax_rate"`
	StateTaxRate      float64 `yaml:"state_tax_rate" json:"state_tax_rate"`

	// SelectedScenario tags the scenario a report should highlight.
	SelectedScenario string `yaml:"selected_scenario,omitempty" json:"selected_scenario,omitempty"`
}

// UnionFringeTotal returns the sum of the flat union fringe components.
func (ep EarningsParams) UnionFringeTotal() float64 {
	return ep.Pension + ep.HealthWelfare + ep.Annuity + ep.ClothingAllowance + ep.OtherBenefits
}

// Fringe resolves the fringe model for the given mode.
func (ep EarningsParams) Fringe(unionMode bool) FringeModel {
	if unionMode {
		return FlatFringe{Amount: ep.UnionFringeTotal()}
	}
	return RateFringe{Percent: ep.FringeRate}
}

// FringeModel converts a fringe benefit description into a multiplicative factor
// on gross earnings.
type FringeModel interface {
	Factor(baseEarnings float64) float64
	// FlatAmount is the annual dollar amount for flat models and 0 otherwise.
	FlatAmount() float64
}

// RateFringe is a percentage-of-earnings fringe (non-union).
type RateFringe struct {
	Percent float64
}

func (r RateFringe) Factor(float64) float64 { return 1 + r.Percent/100 }
func (r RateFringe) FlatAmount() float64    { return 0 }

// FlatFringe is a fixed annual dollar fringe (union), converted to an effective
// rate against base earnings.
type FlatFringe struct {
	Amount float64
}

func (f FlatFringe) Factor(baseEarnings float64) float64 {
	if baseEarnings > 0 {
		return 1 + f.Amount/baseEarnings
	}
	return 1
}

func (f FlatFringe) FlatAmount() float64 { return f.Amount }

// HhServices describes replacement household services.
type HhServices struct {
	Active       bool    `yaml:"active" json:"active"`
	HoursPerWeek float64 `yaml:"hours_per_week" json:"hours_per_week"`
	HourlyRate   float64 `yaml:"hourly_rate" json:"hourly_rate"`
	GrowthRate   float64 `yaml:"growth_rate" json:"growth_rate"`
	DiscountRate float64 `yaml:"discount_rate" json:"discount_rate"`
}

// FreqType is the frequency policy of a life care plan item.
type FreqType string

const (
	FreqAnnual    FreqType = "annual"
	FreqOneTime   FreqType = "onetime"
	FreqRecurring FreqType = "recurring"
)

// ParseFreqType parses a frequency name. Common spellings ("one-time", "one_time")
// are accepted.
func ParseFreqType(s string) (FreqType, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	switch n {
	case "annual", "annually", "yearly":
		return FreqAnnual, nil
	case "onetime", "once":
		return FreqOneTime, nil
	case "recurring":
		return FreqRecurring, nil
	}
	return "", fmt.Errorf("unknown frequency type %q", s)
}

// IsActive reports whether an item with this frequency incurs cost at period t
// (0-based). interval is only consulted for recurring items; values below 1 act as 1.
func (f FreqType) IsActive(t, interval int) bool {
	switch f {
	case FreqOneTime:
		return t == 0
	case FreqRecurring:
		if interval < 1 {
			interval = 1
		}
		return t%interval == 0
	default:
		return true
	}
}

// LcpItem is one line of a life care plan.
type LcpItem struct {
	ID                 string   `yaml:"id" json:"id"`
	CategoryID         string   `yaml:"category_id" json:"category_id"`
	Description        string   `yaml:"description,omitempty" json:"description,omitempty"`
	BaseCost           float64  `yaml:"base_cost" json:"base_cost"`
	FreqType           FreqType `yaml:"freq_type" json:"freq_type"`
	Duration           int      `yaml:"duration" json:"duration"`
	StartYear          int      `yaml:"start_year" json:"start_year"`
	CPI                float64  `yaml:"cpi" json:"cpi"`
	RecurrenceInterval int      `yaml:"recurrence_interval" json:"recurrence_interval"`
}

// Case bundles every input the engine consumes.
type Case struct {
	Info        CaseInfo       `yaml:"case_info" json:"case_info"`
	Earnings    EarningsParams `yaml:"earnings" json:"earnings"`
	UnionMode   bool           `yaml:"union_mode" json:"union_mode"`
	Household   HhServices     `yaml:"household_services" json:"household_services"`
	LifeCare    []LcpItem      `yaml:"life_care_plan" json:"life_care_plan"`
	PastActuals map[int]string `yaml:"past_actuals,omitempty" json:"past_actuals,omitempty"`
	Scenarios   ScenarioSet    `yaml:"scenarios" json:"scenarios"`
}

// Clone returns a deep copy of the case.
func (c Case) Clone() Case {
	out := c
	if c.LifeCare != nil {
		out.LifeCare = append([]LcpItem(nil), c.LifeCare...)
	}
	if c.PastActuals != nil {
		out.PastActuals = make(map[int]string, len(c.PastActuals))
		for k, v := range c.PastActuals {
			out.PastActuals[k] = v
		}
	}
	out.Scenarios = c.Scenarios.Clone()
	return out
}
