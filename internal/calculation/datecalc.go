package calculation

import (
	"time"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/econloss/loss-calculator/pkg/dateutil"
)

// ComputeDateCalc derives ages and durations from the case dates. asOf is the
// date used for CurrentAge. If any of the birth, injury or trial dates is
// missing or unparseable, all outputs fall back to zero.
func ComputeDateCalc(info domain.CaseInfo, asOf time.Time) domain.DateCalc {
	zero := domain.DateCalc{AgeInjury: "0", AgeTrial: "0", CurrentAge: "0"}

	dob, okDOB := dateutil.ParseDate(info.DOB)
	injury, okInjury := dateutil.ParseDate(info.DateOfInjury)
	trial, okTrial := dateutil.ParseDate(info.DateOfTrial)
	if !okDOB || !okInjury || !okTrial {
		return zero
	}

	asOf = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	retirementAge := info.RetirementAge
	if retirementAge < 0 {
		retirementAge = 0
	}
	retirement := dateutil.AddFractionalYears(dob, retirementAge)

	return domain.DateCalc{
		AgeInjury:  formatAge(dob, injury),
		AgeTrial:   formatAge(dob, trial),
		CurrentAge: formatAge(dob, asOf),
		PastYears:  clampZero(dateutil.YearsBetween(injury, trial)),
		DerivedYFS: clampZero(dateutil.YearsBetween(trial, retirement)),
	}
}

func formatAge(dob, at time.Time) string {
	return dateutil.FormatYears(clampZero(dateutil.YearsBetween(dob, at)))
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
