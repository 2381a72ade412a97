package calculation

import (
	"math"
	"testing"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectLifeCare_OneTime(t *testing.T) {
	item := domain.LcpItem{ID: "a", BaseCost: 1000, FreqType: domain.FreqOneTime, Duration: 5, StartYear: 1, CPI: 3}
	data := ProjectLifeCare([]domain.LcpItem{item}, 5)

	require.Len(t, data.Items, 1)
	res := data.Items[0]
	require.Len(t, res.Periods, 1)
	assert.InDelta(t, 1000, res.TotalNom, 1e-9)
	assert.InDelta(t, 1000/math.Sqrt(1.05), res.TotalPV, 1e-9)
	assert.Equal(t, "a", res.ID)
}

func TestProjectLifeCare_RecurringEveryOtherYear(t *testing.T) {
	item := domain.LcpItem{ID: "b", BaseCost: 1000, FreqType: domain.FreqRecurring, Duration: 4, StartYear: 1, CPI: 3, RecurrenceInterval: 2}
	data := ProjectLifeCare([]domain.LcpItem{item}, 5)

	res := data.Items[0]
	require.Len(t, res.Periods, 2)
	assert.Equal(t, 0, res.Periods[0].Period)
	assert.Equal(t, 2, res.Periods[1].Period)
	assert.InDelta(t, 1000+1000*1.03*1.03, res.TotalNom, 1e-9)
	wantPV := 1000/math.Pow(1.05, 0.5) + 1000*math.Pow(1.03, 2)/math.Pow(1.05, 2.5)
	assert.InDelta(t, wantPV, res.TotalPV, 1e-9)
}

func TestProjectLifeCare_StartYearOffset(t *testing.T) {
	item := domain.LcpItem{ID: "c", BaseCost: 1000, FreqType: domain.FreqAnnual, Duration: 1, StartYear: 3, CPI: 3}
	data := ProjectLifeCare([]domain.LcpItem{item}, 5)

	res := data.Items[0]
	require.Len(t, res.Periods, 1)
	assert.InDelta(t, 1000*math.Pow(1.03, 2), res.TotalNom, 1e-9)
	assert.InDelta(t, 1000*math.Pow(1.03, 2)/math.Pow(1.05, 2.5), res.TotalPV, 1e-9)
}

func TestProjectLifeCare_Totals(t *testing.T) {
	items := []domain.LcpItem{
		{ID: "a", BaseCost: 100, FreqType: domain.FreqAnnual, Duration: 3, StartYear: 1},
		{ID: "b", BaseCost: 50, FreqType: domain.FreqOneTime, Duration: 3, StartYear: 1},
	}
	data := ProjectLifeCare(items, 0)

	assert.InDelta(t, 350, data.TotalNom, 1e-9)
	assert.InDelta(t, 350, data.TotalPV, 1e-9)
	assert.InDelta(t, 300, data.Items[0].TotalNom, 1e-9)
	assert.InDelta(t, 50, data.Items[1].TotalNom, 1e-9)
}

func TestProjectLifeCare_Empty(t *testing.T) {
	data := ProjectLifeCare(nil, 4)
	assert.Empty(t, data.Items)
	assert.Zero(t, data.TotalNom)
	assert.Zero(t, data.TotalPV)
}
