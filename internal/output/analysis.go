package output

import (
	"github.com/econloss/loss-calculator/internal/domain"
)

// ScenarioRow is one included scenario's totals measured against the case
// as entered.
type ScenarioRow struct {
	ID            string
	Label         string
	Assumptions   string
	PastLoss      float64
	FutureLossPV  float64
	HouseholdPV   float64
	LifeCarePV    float64
	GrandTotal    float64
	Delta         float64
	PercentChange float64
	Selected      bool
}

// ScenarioAnalysis summarizes the spread of included scenarios.
type ScenarioAnalysis struct {
	CaseTotal float64
	Rows      []ScenarioRow
	Low       ScenarioRow
	High      ScenarioRow
	Spread    float64
}

// AnalyzeScenarios compares included scenarios, in table order, against the
// base grand total and finds the lowest and highest totals. Ties keep the
// earlier scenario.
func AnalyzeScenarios(report *domain.Report) ScenarioAnalysis {
	base := report.Results.GrandTotal
	a := ScenarioAnalysis{CaseTotal: base}
	selected := report.Case.Earnings.SelectedScenario
	for _, sp := range domain.IncludedScenarios(report.Results.Scenarios) {
		row := ScenarioRow{
			ID:           sp.ID,
			Label:        sp.Label,
			Assumptions:  sp.Overrides.Describe(),
			PastLoss:     sp.Summary.PastLoss,
			FutureLossPV: sp.Summary.FutureLossPV,
			HouseholdPV:  sp.Summary.HouseholdPV,
			LifeCarePV:   sp.Summary.LifeCarePV,
			GrandTotal:   sp.GrandTotal,
			Delta:        sp.GrandTotal - base,
			Selected:     selected != "" && sp.ID == selected,
		}
		if base != 0 {
			row.PercentChange = row.Delta / base * 100
		}
		a.Rows = append(a.Rows, row)
	}
	if len(a.Rows) == 0 {
		return a
	}
	a.Low, a.High = a.Rows[0], a.Rows[0]
	for _, row := range a.Rows[1:] {
		if row.GrandTotal < a.Low.GrandTotal {
			a.Low = row
		}
		if row.GrandTotal > a.High.GrandTotal {
			a.High = row
		}
	}
	a.Spread = a.High.GrandTotal - a.Low.GrandTotal
	return a
}
