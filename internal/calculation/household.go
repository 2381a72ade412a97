package calculation

import (
	"math"

	"github.com/econloss/loss-calculator/internal/domain"
)

const weeksPerYear = 52

// ProjectHousehold values replacement household services over the future
// period. Inactive services produce zero totals.
func ProjectHousehold(hh domain.HhServices, derivedYFS float64) domain.HhsData {
	if !hh.Active {
		return domain.HhsData{}
	}

	n := int(math.Ceil(derivedYFS))
	data := domain.HhsData{Schedule: make([]domain.HhsYear, 0, n)}
	for i := 0; i < n; i++ {
		annual := hh.HoursPerWeek * weeksPerYear * hh.HourlyRate * growthFactor(hh.GrowthRate, i)
		pv := annual * midYearDiscount(hh.DiscountRate, float64(i)+0.5)

		data.Schedule = append(data.Schedule, domain.HhsYear{Year: i + 1, AnnualValue: annual, PV: pv})
		data.TotalNom += annual
		data.TotalPV += pv
	}
	return data
}
