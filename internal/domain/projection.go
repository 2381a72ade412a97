package domain

import "time"

// DateCalc holds ages and durations derived from the case dates.
type DateCalc struct {
	AgeInjury  string  `json:"age_injury"`
	AgeTrial   string  `json:"age_trial"`
	CurrentAge string  `json:"current_age"`
	PastYears  float64 `json:"past_years"`
	DerivedYFS float64 `json:"derived_yfs"`
}

// Algebraic holds the composite multipliers of the algebraic (AEF) method.
type Algebraic struct {
	WLF                float64 `json:"wlf"`
	UnempFactor        float64 `json:"unemp_factor"`
	AfterTaxFactor     float64 `json:"after_tax_factor"`
	FringeFactor       float64 `json:"fringe_factor"`
	FullMultiplier     float64 `json:"full_multiplier"`
	RealizedMultiplier float64 `json:"realized_multiplier"`
	CombinedTaxRate    float64 `json:"combined_tax_rate"`
	YFS                float64 `json:"yfs"`
	FlatFringeAmount   float64 `json:"flat_fringe_amount"`
	UnionMode          bool    `json:"union_mode"`
}

// PastYear is one calendar year of the past-loss schedule.
type PastYear struct {
	Year        int     `json:"year"`
	Fraction    float64 `json:"fraction"`
	GrossBase   float64 `json:"gross_base"`
	GrossActual float64 `json:"gross_actual"`
	NetButFor   float64 `json:"net_but_for"`
	NetActual   float64 `json:"net_actual"`
	NetLoss     float64 `json:"net_loss"`
	IsManual    bool    `json:"is_manual"`
}

// FutureYear is one year of the future-loss schedule. Year is a 1-based offset
// from the trial date.
type FutureYear struct {
	Year           int     `json:"year"`
	Gross          float64 `json:"gross"`
	GrossResidual  float64 `json:"gross_residual"`
	NetButFor      float64 `json:"net_but_for"`
	NetActual      float64 `json:"net_actual"`
	NetLoss        float64 `json:"net_loss"`
	DiscountFactor float64 `json:"discount_factor"`
	PV             float64 `json:"pv"`
}

// Projection is the full earnings-loss projection.
type Projection struct {
	PastSchedule       []PastYear   `json:"past_schedule"`
	FutureSchedule     []FutureYear `json:"future_schedule"`
	TotalPastLoss      float64      `json:"total_past_loss"`
	TotalFutureNominal float64      `json:"total_future_nominal"`
	TotalFuturePV      float64      `json:"total_future_pv"`
}

// HhsYear is one year of household services replacement value.
type HhsYear struct {
	Year        int     `json:"year"`
	AnnualValue float64 `json:"annual_value"`
	PV          float64 `json:"pv"`
}

// HhsData aggregates household services replacement cost.
type HhsData struct {
	Schedule []HhsYear `json:"schedule,omitempty"`
	TotalNom float64   `json:"total_nom"`
	TotalPV  float64   `json:"total_pv"`
}

// LcpPeriod is one active cost period of a life care item.
type LcpPeriod struct {
	Period   int     `json:"period"`
	Cost     float64 `json:"cost"`
	Discount float64 `json:"discount"`
	PV       float64 `json:"pv"`
}

// LcpItemResult is a life care item augmented with its projected totals.
type LcpItemResult struct {
	LcpItem
	Periods  []LcpPeriod `json:"periods,omitempty"`
	TotalNom float64     `json:"total_nom"`
	TotalPV  float64     `json:"total_pv"`
}

// LcpData aggregates the life care plan.
type LcpData struct {
	Items    []LcpItemResult `json:"items"`
	TotalNom float64         `json:"total_nom"`
	TotalPV  float64         `json:"total_pv"`
}

// Summary breaks the grand total into its components.
type Summary struct {
	PastLoss        float64 `json:"past_loss"`
	FutureLossPV    float64 `json:"future_loss_pv"`
	HouseholdPV     float64 `json:"household_pv"`
	HouseholdActive bool    `json:"household_active"`
	LifeCarePV      float64 `json:"life_care_pv"`
	GrandTotal      float64 `json:"grand_total"`
}

// Results is the complete derived output for one case.
type Results struct {
	DateCalc   DateCalc             `json:"date_calc"`
	Algebraic  Algebraic            `json:"algebraic"`
	Projection Projection           `json:"projection"`
	Household  HhsData              `json:"household"`
	LifeCare   LcpData              `json:"life_care"`
	Summary    Summary              `json:"summary"`
	GrandTotal float64              `json:"grand_total"`
	Scenarios  []ScenarioProjection `json:"scenarios,omitempty"`
}

// Report bundles what the report formatters render.
type Report struct {
	CaseName    string    `json:"case_name"`
	Case        Case      `json:"case"`
	Results     Results   `json:"results"`
	Assumptions []string  `json:"assumptions"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SelectedScenario returns the scenario tagged in the earnings parameters, if any.
func (r *Report) SelectedScenario() (ScenarioProjection, bool) {
	tag := r.Case.Earnings.SelectedScenario
	if tag == "" {
		return ScenarioProjection{}, false
	}
	for _, sp := range r.Results.Scenarios {
		if sp.ID == tag {
			return sp, true
		}
	}
	return ScenarioProjection{}, false
}
