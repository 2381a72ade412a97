package calculation

import "github.com/econloss/loss-calculator/internal/domain"

// GrandTotal sums past loss, present-valued future loss, household services
// (when active) and the life care plan.
func GrandTotal(proj domain.Projection, hh domain.HhServices, hhs domain.HhsData, lcp domain.LcpData) float64 {
	return Summarize(proj, hh, hhs, lcp).GrandTotal
}

// Summarize returns the component breakdown behind GrandTotal.
func Summarize(proj domain.Projection, hh domain.HhServices, hhs domain.HhsData, lcp domain.LcpData) domain.Summary {
	s := domain.Summary{
		PastLoss:        proj.TotalPastLoss,
		FutureLossPV:    proj.TotalFuturePV,
		HouseholdActive: hh.Active,
		LifeCarePV:      lcp.TotalPV,
	}
	if hh.Active {
		s.HouseholdPV = hhs.TotalPV
	}
	s.GrandTotal = s.PastLoss + s.FutureLossPV + s.HouseholdPV + s.LifeCarePV
	return s
}
