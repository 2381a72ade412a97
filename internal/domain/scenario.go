package domain

import "fmt"

// ScenarioAssumptions overrides a subset of EarningsParams for one named scenario.
// A nil field inherits the case value.
type ScenarioAssumptions struct {
	ID           string   `yaml:"id" json:"id"`
	Label        string   `yaml:"label" json:"label"`
	WageGrowth   *float64 `yaml:"wage_growth,omitempty" json:"wage_growth,omitempty"`
	DiscountRate *float64 `yaml:"discount_rate,omitempty" json:"discount_rate,omitempty"`
	WLE          *float64 `yaml:"wle,omitempty" json:"wle,omitempty"`
}

// Apply returns a copy of params with the overrides substituted.
func (sa ScenarioAssumptions) Apply(params EarningsParams) EarningsParams {
	out := params
	if sa.WageGrowth != nil {
		out.WageGrowth = *sa.WageGrowth
	}
	if sa.DiscountRate != nil {
		out.DiscountRate = *sa.DiscountRate
	}
	if sa.WLE != nil {
		out.WLE = *sa.WLE
	}
	return out
}

// Describe renders the overrides for reports.
func (sa ScenarioAssumptions) Describe() string {
	s := ""
	add := func(name string, v *float64, unit string) {
		if v == nil {
			return
		}
		if s != "" {
			s += ", "
		}
		s += fmt.Sprintf("%s %.2f%s", name, *v, unit)
	}
	add("wage growth", sa.WageGrowth, "%")
	add("discount", sa.DiscountRate, "%")
	add("WLE", sa.WLE, " yrs")
	if s == "" {
		return "case assumptions"
	}
	return s
}

// ScenarioSet is an ordered, read-only table of named assumption overrides.
type ScenarioSet []ScenarioAssumptions

// Clone deep-copies the table including override pointers.
func (ss ScenarioSet) Clone() ScenarioSet {
	if ss == nil {
		return nil
	}
	out := make(ScenarioSet, len(ss))
	for i, sa := range ss {
		out[i] = ScenarioAssumptions{
			ID:           sa.ID,
			Label:        sa.Label,
			WageGrowth:   clonePtr(sa.WageGrowth),
			DiscountRate: clonePtr(sa.DiscountRate),
			WLE:          clonePtr(sa.WLE),
		}
	}
	return out
}

// Find returns the scenario with the given id.
func (ss ScenarioSet) Find(id string) (ScenarioAssumptions, bool) {
	for _, sa := range ss {
		if sa.ID == id {
			return sa, true
		}
	}
	return ScenarioAssumptions{}, false
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Rate is a convenience for building override tables.
func Rate(v float64) *float64 { return &v }

// DefaultScenarioSet returns the standard conservative/standard/aggressive table.
func DefaultScenarioSet() ScenarioSet {
	return ScenarioSet{
		{ID: "conservative", Label: "Conservative", WageGrowth: Rate(2.0), DiscountRate: Rate(5.0)},
		{ID: "standard", Label: "Standard", WageGrowth: Rate(3.0), DiscountRate: Rate(4.0)},
		{ID: "aggressive", Label: "Aggressive", WageGrowth: Rate(4.0), DiscountRate: Rate(3.0)},
	}
}

// ScenarioProjection is the result of re-running the chain under one scenario.
type ScenarioProjection struct {
	ID         string              `json:"id"`
	Label      string              `json:"label"`
	Overrides  ScenarioAssumptions `json:"overrides"`
	Earnings   EarningsParams      `json:"earnings"`
	Algebraic  Algebraic           `json:"algebraic"`
	Projection Projection          `json:"projection"`
	Household  HhsData             `json:"household"`
	LifeCare   LcpData             `json:"life_care"`
	Summary    Summary             `json:"summary"`
	GrandTotal float64             `json:"grand_total"`
	// Included is host-controlled; reports aggregate only included scenarios.
	Included bool `json:"included"`
}

// ApplyInclusion sets Included from the host's selection map. Scenarios absent
// from the map keep their current flag.
func ApplyInclusion(list []ScenarioProjection, included map[string]bool) []ScenarioProjection {
	out := append([]ScenarioProjection(nil), list...)
	for i := range out {
		if v, ok := included[out[i].ID]; ok {
			out[i].Included = v
		}
	}
	return out
}

// IncludedScenarios filters to scenarios flagged as included.
func IncludedScenarios(list []ScenarioProjection) []ScenarioProjection {
	var out []ScenarioProjection
	for _, sp := range list {
		if sp.Included {
			out = append(out, sp)
		}
	}
	return out
}
