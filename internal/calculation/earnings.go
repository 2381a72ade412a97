package calculation

import (
	"math"
	"strconv"
	"strings"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/econloss/loss-calculator/pkg/dateutil"
)

// ProjectEarnings builds the past-loss and future-loss schedules.
//
// Past years run from the injury year for floor(PastYears)+1 entries, the last
// one prorated by the fractional remainder. A non-blank entry in pastActuals for
// a calendar year replaces the residual-earnings estimate with the observed
// gross, scaled by the realized multiplier.
//
// Future years run 1..ceil(DerivedYFS) from the trial date and are discounted
// with the mid-year convention.
func ProjectEarnings(info domain.CaseInfo, params domain.EarningsParams, alg domain.Algebraic, pastActuals map[int]string, dc domain.DateCalc) domain.Projection {
	injury, ok := dateutil.ParseDate(info.DateOfInjury)
	if !ok {
		return domain.Projection{PastSchedule: []domain.PastYear{}, FutureSchedule: []domain.FutureYear{}}
	}

	proj := domain.Projection{
		PastSchedule:   projectPast(injury.Year(), params, alg, pastActuals, dc.PastYears),
		FutureSchedule: projectFuture(params, alg, dc.DerivedYFS),
	}
	for _, py := range proj.PastSchedule {
		proj.TotalPastLoss += py.NetLoss
	}
	for _, fy := range proj.FutureSchedule {
		proj.TotalFutureNominal += fy.NetLoss
		proj.TotalFuturePV += fy.PV
	}
	return proj
}

func projectPast(injuryYear int, params domain.EarningsParams, alg domain.Algebraic, pastActuals map[int]string, pastYears float64) []domain.PastYear {
	whole := math.Floor(pastYears)
	n := int(whole)
	schedule := make([]domain.PastYear, 0, n+1)

	for i := 0; i <= n; i++ {
		fraction := 1.0
		if i == n {
			fraction = pastYears - whole
		}
		if fraction <= 0 {
			continue
		}

		year := injuryYear + i
		growth := growthFactor(params.WageGrowth, i)
		grossBase := params.BaseEarnings * growth * fraction
		netButFor := grossBase * alg.FullMultiplier

		row := domain.PastYear{
			Year:      year,
			Fraction:  fraction,
			GrossBase: grossBase,
			NetButFor: netButFor,
		}
		if actual, ok := parseActual(pastActuals[year]); ok {
			row.GrossActual = actual
			row.NetActual = actual * alg.RealizedMultiplier
			row.IsManual = true
		} else {
			row.GrossActual = params.ResidualEarnings * growth * fraction
			row.NetActual = row.GrossActual * alg.FullMultiplier
		}
		row.NetLoss = row.NetButFor - row.NetActual
		schedule = append(schedule, row)
	}
	return schedule
}

func projectFuture(params domain.EarningsParams, alg domain.Algebraic, derivedYFS float64) []domain.FutureYear {
	n := int(math.Ceil(derivedYFS))
	schedule := make([]domain.FutureYear, 0, n)

	for i := 0; i < n; i++ {
		growth := growthFactor(params.WageGrowth, i)
		discount := midYearDiscount(params.DiscountRate, float64(i)+0.5)

		grossBase := params.BaseEarnings * growth
		grossRes := params.ResidualEarnings * growth
		netButFor := grossBase * alg.FullMultiplier
		// Residual earnings are still projected here, so they take the full
		// multiplier rather than the realized one.
		netActual := grossRes * alg.FullMultiplier
		netLoss := netButFor - netActual

		schedule = append(schedule, domain.FutureYear{
			Year:           i + 1,
			Gross:          grossBase,
			GrossResidual:  grossRes,
			NetButFor:      netButFor,
			NetActual:      netActual,
			NetLoss:        netLoss,
			DiscountFactor: discount,
			PV:             netLoss * discount,
		})
	}
	return schedule
}

// growthFactor returns (1+rate/100)^periods.
func growthFactor(ratePercent float64, periods int) float64 {
	return math.Pow(1+ratePercent/100, float64(periods))
}

// midYearDiscount returns 1/(1+rate/100)^exponent.
func midYearDiscount(ratePercent, exponent float64) float64 {
	return 1 / math.Pow(1+ratePercent/100, exponent)
}

// parseActual reads a user-entered gross amount. Blank or non-numeric entries
// are treated as absent. Currency symbols and thousands separators are ignored.
func parseActual(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
