package output

import (
	"testing"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioReport(base float64, totals map[string]float64, order ...string) *domain.Report {
	r := &domain.Report{Results: domain.Results{GrandTotal: base}}
	for _, id := range order {
		r.Results.Scenarios = append(r.Results.Scenarios, domain.ScenarioProjection{
			ID: id, Label: id, GrandTotal: totals[id], Included: true,
		})
	}
	return r
}

func TestAnalyzeScenarios_RangeAndDeltas(t *testing.T) {
	r := scenarioReport(100, map[string]float64{"a": 100, "b": 50, "c": 150, "d": 50}, "a", "b", "c", "d")
	r.Case.Earnings.SelectedScenario = "c"

	a := AnalyzeScenarios(r)
	require.Len(t, a.Rows, 4)
	assert.Equal(t, 100.0, a.CaseTotal)
	assert.Equal(t, "b", a.Low.ID, "ties keep the earlier scenario")
	assert.Equal(t, "c", a.High.ID)
	assert.Equal(t, 100.0, a.Spread)
	assert.Equal(t, -50.0, a.Rows[1].Delta)
	assert.Equal(t, -50.0, a.Rows[1].PercentChange)
	assert.True(t, a.Rows[2].Selected)
	assert.False(t, a.Rows[0].Selected)
}

func TestAnalyzeScenarios_SkipsExcluded(t *testing.T) {
	r := scenarioReport(0, map[string]float64{"a": 10, "b": 20}, "a", "b")
	r.Results.Scenarios = domain.ApplyInclusion(r.Results.Scenarios, map[string]bool{"b": false})

	a := AnalyzeScenarios(r)
	require.Len(t, a.Rows, 1)
	assert.Equal(t, "a", a.Rows[0].ID)
	assert.Equal(t, 0.0, a.Rows[0].PercentChange, "zero base has no percentage")
	assert.Equal(t, 0.0, a.Spread)
}

func TestAnalyzeScenarios_None(t *testing.T) {
	a := AnalyzeScenarios(&domain.Report{})
	assert.Empty(t, a.Rows)
	assert.Equal(t, ScenarioRow{}, a.High)
}
