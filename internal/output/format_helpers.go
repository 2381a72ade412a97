package output

import (
	"math"
	"strconv"

	"github.com/econloss/loss-calculator/internal/domain"
	money "github.com/econloss/loss-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as grouped USD with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount float64) string {
	if !finite(amount) {
		return "n/a"
	}
	return money.NewMoney(amount).Format()
}

// FormatPercentage formats a percent value (4.5 means 4.5%) with 2 decimals.
func FormatPercentage(pct float64) string {
	if !finite(pct) {
		return "n/a"
	}
	return decimal.NewFromFloat(pct).StringFixed(2) + "%"
}

// FormatFactor formats a multiplier or discount factor with 6 decimals.
func FormatFactor(f float64) string { return formatFixed(f, 6) }

// FormatYears formats a duration in years with 2 decimals.
func FormatYears(y float64) string { return formatFixed(y, 2) }

func formatFixed(v float64, places int32) string {
	if !finite(v) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// fixed2 renders an amount for CSV cells: cent-rounded, no grouping.
func fixed2(v float64) string {
	if !finite(v) {
		return ""
	}
	return money.NewMoney(v).String()
}

// rowTotal adds amounts as they are printed, each rounded to cents first, so
// a total line always equals the sum of the rows above it. Any non-finite
// amount makes the total NaN.
func rowTotal(values ...float64) float64 {
	for _, v := range values {
		if !finite(v) {
			return math.NaN()
		}
	}
	return money.SumFloats(values...).Float64()
}

// summaryTotal is the grand total of the printed summary components.
func summaryTotal(s domain.Summary) float64 {
	return rowTotal(s.PastLoss, s.FutureLossPV, s.HouseholdPV, s.LifeCarePV)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
