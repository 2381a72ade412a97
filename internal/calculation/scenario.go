package calculation

import (
	"runtime"

	"github.com/econloss/loss-calculator/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ScenarioOptions controls how scenario projections are produced.
type ScenarioOptions struct {
	// RerunAncillary re-projects the life care plan with each scenario's
	// discount rate. Household services keep their own discount rate either way.
	RerunAncillary bool
	// Parallel runs scenarios concurrently; output order and values are unchanged.
	Parallel bool
	// MaxWorkers bounds parallel runs (0 means GOMAXPROCS).
	MaxWorkers int
}

// RunScenario re-runs the factor and earnings chain under one assumption set.
// base must be the case's own computed results; its date calc and household
// figures are reused since scenario overrides cannot change them.
func RunScenario(c domain.Case, base domain.Results, sa domain.ScenarioAssumptions, opts ScenarioOptions) domain.ScenarioProjection {
	params := sa.Apply(c.Earnings)
	alg := ComputeAlgebraic(params, base.DateCalc.DerivedYFS, c.UnionMode)
	proj := ProjectEarnings(c.Info, params, alg, c.PastActuals, base.DateCalc)

	lcp := base.LifeCare
	if opts.RerunAncillary {
		lcp = ProjectLifeCare(c.LifeCare, params.DiscountRate)
	}
	summary := Summarize(proj, c.Household, base.Household, lcp)

	label := sa.Label
	if label == "" {
		label = sa.ID
	}
	return domain.ScenarioProjection{
		ID:         sa.ID,
		Label:      label,
		Overrides:  sa,
		Earnings:   params,
		Algebraic:  alg,
		Projection: proj,
		Household:  base.Household,
		LifeCare:   lcp,
		Summary:    summary,
		GrandTotal: summary.GrandTotal,
		Included:   true,
	}
}

// RunScenarios projects every scenario in the set, in table order.
func RunScenarios(c domain.Case, base domain.Results, set domain.ScenarioSet, opts ScenarioOptions) []domain.ScenarioProjection {
	if len(set) == 0 {
		return nil
	}
	out := make([]domain.ScenarioProjection, len(set))
	if !opts.Parallel || len(set) == 1 {
		for i, sa := range set {
			out[i] = RunScenario(c, base, sa, opts)
		}
		return out
	}

	limit := opts.MaxWorkers
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for i, sa := range set {
		i, sa := i, sa
		// each run gets its own copy of the case
		cc := c.Clone()
		g.Go(func() error {
			out[i] = RunScenario(cc, base, sa, opts)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
