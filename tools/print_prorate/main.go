// Command print_prorate prints how the past-loss schedule prorates the first
// and last years for the example case at a few trial dates.
package main

import (
	"fmt"
	"time"

	"github.com/econloss/loss-calculator/internal/calculation"
	"github.com/econloss/loss-calculator/internal/config"
)

func main() {
	c := config.CreateExampleCase()
	asOf := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, trial := range []string{"2024-09-01", "2025-01-01", "2025-06-30"} {
		c.Info.DateOfTrial = trial
		dc := calculation.ComputeDateCalc(c.Info, asOf)
		alg := calculation.ComputeAlgebraic(c.Earnings, dc.DerivedYFS, c.UnionMode)
		proj := calculation.ProjectEarnings(c.Info, c.Earnings, alg, c.PastActuals, dc)

		fmt.Printf("injury %s, trial %s: past years %.4f, years to final separation %.4f\n",
			c.Info.DateOfInjury, trial, dc.PastYears, dc.DerivedYFS)
		for _, y := range proj.PastSchedule {
			manual := ""
			if y.IsManual {
				manual = " (manual)"
			}
			fmt.Printf("  %d  fraction=%.4f  gross=%.2f  loss=%.2f%s\n", y.Year, y.Fraction, y.GrossBase, y.NetLoss, manual)
		}
		fmt.Printf("  total past loss %.2f\n\n", proj.TotalPastLoss)
	}
}
