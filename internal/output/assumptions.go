package output

import (
	"fmt"

	"github.com/econloss/loss-calculator/internal/domain"
)

// GenerateAssumptions lists the economic assumptions a case is computed under,
// in the order they are rendered in detailed outputs.
func GenerateAssumptions(c domain.Case) []string {
	ep := c.Earnings
	out := []string{
		fmt.Sprintf("Pre-injury earnings: %s annually; residual earning capacity: %s", FormatCurrency(ep.BaseEarnings), FormatCurrency(ep.ResidualEarnings)),
		fmt.Sprintf("Wage growth: %s annually", FormatPercentage(ep.WageGrowth)),
		fmt.Sprintf("Discount rate: %s annually, mid-year convention", FormatPercentage(ep.DiscountRate)),
		fmt.Sprintf("Work-life expectancy: %s years; retirement age %g", FormatYears(ep.WLE), c.Info.RetirementAge),
	}
	if c.UnionMode {
		out = append(out, fmt.Sprintf("Union fringe benefits: %s per year (pension, health & welfare, annuity, clothing, other)", FormatCurrency(ep.UnionFringeTotal())))
	} else {
		out = append(out, fmt.Sprintf("Fringe benefits: %s of earnings", FormatPercentage(ep.FringeRate)))
	}
	out = append(out,
		fmt.Sprintf("Unemployment: %s, offset by UI replacement of %s", FormatPercentage(ep.UnemploymentRate), FormatPercentage(ep.UIReplacementRate)),
		fmt.Sprintf("Taxes: federal %s, state %s", FormatPercentage(ep.FedTaxRate), FormatPercentage(ep.StateTaxRate)),
	)
	if hh := c.Household; hh.Active {
		out = append(out, fmt.Sprintf("Household services: %g hrs/week at %s/hr, growth %s, discount %s",
			hh.HoursPerWeek, FormatCurrency(hh.HourlyRate), FormatPercentage(hh.GrowthRate), FormatPercentage(hh.DiscountRate)))
	}
	if n := len(c.LifeCare); n > 0 {
		out = append(out, fmt.Sprintf("Life care plan: %d items, each escalated at its own CPI and discounted at %s", n, FormatPercentage(ep.DiscountRate)))
	}
	out = append(out, "Durations use a 365.25-day year")
	return out
}
