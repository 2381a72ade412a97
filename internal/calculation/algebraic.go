package calculation

import "github.com/econloss/loss-calculator/internal/domain"

// ComputeAlgebraic combines the work-life, unemployment, tax and fringe rates
// into the full (but-for) and realized multipliers.
func ComputeAlgebraic(params domain.EarningsParams, derivedYFS float64, unionMode bool) domain.Algebraic {
	wlf := 0.0
	if derivedYFS > 0 {
		wlf = params.WLE / derivedYFS
	}

	unempFactor := 1 - (params.UnemploymentRate/100)*(1-params.UIReplacementRate/100)
	afterTaxFactor := (1 - params.FedTaxRate/100) * (1 - params.StateTaxRate/100)

	fringe := params.Fringe(unionMode)
	fringeFactor := fringe.Factor(params.BaseEarnings)

	return domain.Algebraic{
		WLF:            wlf,
		UnempFactor:    unempFactor,
		AfterTaxFactor: afterTaxFactor,
		FringeFactor:   fringeFactor,
		// but-for capacity carries work-life and unemployment risk
		FullMultiplier: wlf * unempFactor * afterTaxFactor * fringeFactor,
		// observed earnings carry neither
		RealizedMultiplier: afterTaxFactor * fringeFactor,
		CombinedTaxRate:    1 - afterTaxFactor,
		YFS:                derivedYFS,
		FlatFringeAmount:   fringe.FlatAmount(),
		UnionMode:          unionMode,
	}
}
