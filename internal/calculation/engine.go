package calculation

import (
	"time"

	"github.com/econloss/loss-calculator/internal/domain"
)

// Compute runs the full chain for a case: date calc, algebraic factors,
// earnings projection, household services, life care plan, grand total and
// the case's scenario table. It is a pure function of its arguments.
func Compute(c domain.Case, asOf time.Time) domain.Results {
	return ComputeWithOptions(c, asOf, ScenarioOptions{})
}

// ComputeWithOptions is Compute with explicit scenario options.
func ComputeWithOptions(c domain.Case, asOf time.Time, opts ScenarioOptions) domain.Results {
	res := computeBase(c, asOf)
	res.Scenarios = RunScenarios(c, res, c.Scenarios, opts)
	return res
}

func computeBase(c domain.Case, asOf time.Time) domain.Results {
	dc := ComputeDateCalc(c.Info, asOf)
	alg := ComputeAlgebraic(c.Earnings, dc.DerivedYFS, c.UnionMode)
	proj := ProjectEarnings(c.Info, c.Earnings, alg, c.PastActuals, dc)
	hhs := ProjectHousehold(c.Household, dc.DerivedYFS)
	lcp := ProjectLifeCare(c.LifeCare, c.Earnings.DiscountRate)
	summary := Summarize(proj, c.Household, hhs, lcp)

	return domain.Results{
		DateCalc:   dc,
		Algebraic:  alg,
		Projection: proj,
		Household:  hhs,
		LifeCare:   lcp,
		Summary:    summary,
		GrandTotal: summary.GrandTotal,
	}
}

// CalculationEngine is the host-facing wrapper around Compute: it supplies the
// clock, scenario options and logging.
type CalculationEngine struct {
	Options ScenarioOptions
	Debug   bool // Enable debug output for detailed calculations
	Logger  Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate computes a case as of today.
func (ce *CalculationEngine) Calculate(c domain.Case) domain.Results {
	return ce.CalculateAt(c, nowFunc())
}

// CalculateAt computes a case with an explicit valuation date for current age.
func (ce *CalculationEngine) CalculateAt(c domain.Case, asOf time.Time) domain.Results {
	res := ComputeWithOptions(c, asOf, ce.Options)
	if ce.Debug {
		ce.logResults(c, res)
	}
	return res
}

// RunScenarios projects an explicit scenario table instead of the case's own.
func (ce *CalculationEngine) RunScenarios(c domain.Case, set domain.ScenarioSet, asOf time.Time) []domain.ScenarioProjection {
	base := computeBase(c, asOf)
	list := RunScenarios(c, base, set, ce.Options)
	if ce.Debug {
		for _, sp := range list {
			ce.Logger.Debugf("scenario %s: growth=%.2f%% discount=%.2f%% wle=%.2f total=%.2f",
				sp.ID, sp.Earnings.WageGrowth, sp.Earnings.DiscountRate, sp.Earnings.WLE, sp.GrandTotal)
		}
	}
	return list
}

func (ce *CalculationEngine) logResults(c domain.Case, res domain.Results) {
	l := ce.Logger
	dc, alg, proj := res.DateCalc, res.Algebraic, res.Projection
	l.Debugf("LOSS PROJECTION BREAKDOWN: %s", c.Info.Plaintiff)
	l.Debugf("  Age at injury/trial/now: %s / %s / %s", dc.AgeInjury, dc.AgeTrial, dc.CurrentAge)
	l.Debugf("  Past years: %.4f  YFS: %.4f", dc.PastYears, dc.DerivedYFS)
	l.Debugf("  WLF=%.6f unemp=%.6f afterTax=%.6f fringe=%.6f", alg.WLF, alg.UnempFactor, alg.AfterTaxFactor, alg.FringeFactor)
	l.Debugf("  Full multiplier=%.6f realized multiplier=%.6f", alg.FullMultiplier, alg.RealizedMultiplier)
	l.Debugf("  Past rows=%d total=%.2f", len(proj.PastSchedule), proj.TotalPastLoss)
	l.Debugf("  Future rows=%d nominal=%.2f pv=%.2f", len(proj.FutureSchedule), proj.TotalFutureNominal, proj.TotalFuturePV)
	l.Debugf("  Household active=%t pv=%.2f", c.Household.Active, res.Household.TotalPV)
	l.Debugf("  Life care items=%d pv=%.2f", len(res.LifeCare.Items), res.LifeCare.TotalPV)
	l.Debugf("  GRAND TOTAL: %.2f", res.GrandTotal)
	if len(c.Info.DateOfInjury) == 0 || len(c.Info.DateOfTrial) == 0 || len(c.Info.DOB) == 0 {
		l.Warnf("case %q has blank dates; durations fall back to zero", c.Info.Plaintiff)
	}
}
