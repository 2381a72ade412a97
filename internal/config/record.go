package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/econloss/loss-calculator/pkg/dateutil"
	"github.com/spf13/cast"
)

// FromRecord converts a decoded structured record (YAML/JSON/flat CSV) into a
// Case. Every field is read independently: a missing field keeps its default
// from DefaultCase and an unreadable one keeps its default and adds a warning.
// Keys match in snake_case or camelCase.
func FromRecord(rec map[string]any) (domain.Case, []string) {
	r := &recordReader{}
	c := DefaultCase()

	if info, ok := r.section(rec, "case_info", "caseInfo"); ok {
		r.readInfo(info, &c.Info)
	}
	if earn, ok := r.section(rec, "earnings", "earningsParams", "earnings_params"); ok {
		r.readEarnings(earn, &c.Earnings)
	}
	c.UnionMode = r.boolean(rec, "union_mode", c.UnionMode, "isUnionMode")
	if hh, ok := r.section(rec, "household_services", "hhServices", "household"); ok {
		r.readHousehold(hh, &c.Household)
	}
	if raw, ok := lookup(rec, "life_care_plan", "lcpItems", "lcp"); ok {
		c.LifeCare = r.readLifeCare(raw)
	}
	if raw, ok := lookup(rec, "past_actuals", "pastActuals"); ok {
		c.PastActuals = r.readPastActuals(raw)
	}
	if raw, ok := lookup(rec, "scenarios"); ok {
		c.Scenarios = r.readScenarios(raw)
	}
	return c, r.warnings
}

type recordReader struct {
	warnings []string
	path     []string
}

func (r *recordReader) warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recordReader) field(key string) string {
	if len(r.path) == 0 {
		return key
	}
	return strings.Join(r.path, ".") + "." + key
}

func (r *recordReader) push(p string) func() {
	r.path = append(r.path, p)
	return func() { r.path = r.path[:len(r.path)-1] }
}

func (r *recordReader) section(m map[string]any, keys ...string) (map[string]any, bool) {
	raw, ok := lookup(m, keys...)
	if !ok || raw == nil {
		return nil, false
	}
	sec, err := cast.ToStringMapE(raw)
	if err != nil {
		r.warnf("%s: expected a mapping, using defaults", keys[0])
		return nil, false
	}
	return sec, true
}

func (r *recordReader) readInfo(m map[string]any, info *domain.CaseInfo) {
	defer r.push("case_info")()
	info.Plaintiff = r.str(m, "plaintiff", info.Plaintiff, "name", "plaintiffName")
	info.DOB = r.date(m, "dob", info.DOB, "dateOfBirth", "date_of_birth")
	info.DateOfInjury = r.date(m, "date_of_injury", info.DateOfInjury)
	info.DateOfTrial = r.date(m, "date_of_trial", info.DateOfTrial)
	info.RetirementAge = r.number(m, "retirement_age", info.RetirementAge)
	info.Gender = r.str(m, "gender", info.Gender)
	info.Occupation = r.str(m, "occupation", info.Occupation)
	info.Education = r.str(m, "education", info.Education)
	info.Jurisdiction = r.str(m, "jurisdiction", info.Jurisdiction)
	info.Attorney = r.str(m, "attorney", info.Attorney)
	info.InjuryNotes = r.str(m, "injury_notes", info.InjuryNotes)
}

func (r *recordReader) readEarnings(m map[string]any, ep *domain.EarningsParams) {
	defer r.push("earnings")()
	ep.BaseEarnings = r.number(m, "base_earnings", ep.BaseEarnings)
	ep.ResidualEarnings = r.number(m, "residual_earnings", ep.ResidualEarnings)
	ep.WLE = r.number(m, "wle", ep.WLE)
	ep.WageGrowth = r.number(m, "wage_growth", ep.WageGrowth)
	ep.DiscountRate = r.number(m, "discount_rate", ep.DiscountRate)
	ep.FringeRate = r.number(m, "fringe_rate", ep.FringeRate)
	ep.Pension = r.number(m, "pension", ep.Pension)
	ep.HealthWelfare = r.number(m, "health_welfare", ep.HealthWelfare)
	ep.Annuity = r.number(m, "annuity", ep.Annuity)
	ep.ClothingAllowance = r.number(m, "clothing_allowance", ep.ClothingAllowance)
	ep.OtherBenefits = r.number(m, "other_benefits", ep.OtherBenefits)
	ep.UnemploymentRate = r.number(m, "unemployment_rate", ep.UnemploymentRate)
	ep.UIReplacementRate = r.number(m, "ui_replacement_rate", ep.UIReplacementRate)
	ep.FedTaxRate = r.number(m, "fed_tax_rate", ep.FedTaxRate)
	ep.StateTaxRate = r.number(m, "state_tax_rate", ep.StateTaxRate)
	ep.SelectedScenario = r.str(m, "selected_scenario", ep.SelectedScenario)
}

func (r *recordReader) readHousehold(m map[string]any, hh *domain.HhServices) {
	defer r.push("household_services")()
	hh.Active = r.boolean(m, "active", hh.Active)
	hh.HoursPerWeek = r.number(m, "hours_per_week", hh.HoursPerWeek)
	hh.HourlyRate = r.number(m, "hourly_rate", hh.HourlyRate)
	hh.GrowthRate = r.number(m, "growth_rate", hh.GrowthRate)
	hh.DiscountRate = r.number(m, "discount_rate", hh.DiscountRate)
}

func (r *recordReader) readLifeCare(raw any) []domain.LcpItem {
	if raw == nil {
		return []domain.LcpItem{}
	}
	list, err := cast.ToSliceE(raw)
	if err != nil {
		r.warnf("life_care_plan: expected a list, ignoring")
		return []domain.LcpItem{}
	}
	items := make([]domain.LcpItem, 0, len(list))
	for i, el := range list {
		m, err := cast.ToStringMapE(el)
		if err != nil {
			r.warnf("life_care_plan.%d: expected a mapping, skipping", i)
			continue
		}
		pop := r.push("life_care_plan." + strconv.Itoa(i))
		item := domain.LcpItem{
			ID:                 r.str(m, "id", ""),
			CategoryID:         r.str(m, "category_id", "", "category"),
			Description:        r.str(m, "description", "", "name"),
			BaseCost:           r.number(m, "base_cost", 0, "cost"),
			Duration:           r.integer(m, "duration", 1),
			StartYear:          r.integer(m, "start_year", 1),
			CPI:                r.number(m, "cpi", 0, "cpi_rate"),
			RecurrenceInterval: r.integer(m, "recurrence_interval", 1, "interval"),
		}
		item.FreqType = r.freq(m, "freq_type", "frequency", "freq")
		pop()
		items = append(items, item)
	}
	return items
}

func (r *recordReader) freq(m map[string]any, key string, aliases ...string) domain.FreqType {
	raw, ok := lookup(m, append([]string{key}, aliases...)...)
	if !ok || raw == nil {
		return domain.FreqAnnual
	}
	s, _ := cast.ToStringE(raw)
	if strings.TrimSpace(s) == "" {
		return domain.FreqAnnual
	}
	ft, err := domain.ParseFreqType(s)
	if err != nil {
		r.warnf("%s: %v, using annual", r.field(key), err)
		return domain.FreqAnnual
	}
	return ft
}

func (r *recordReader) readPastActuals(raw any) map[int]string {
	out := map[int]string{}
	if raw == nil {
		return out
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		r.warnf("past_actuals: expected a mapping of year to amount, ignoring")
		return out
	}
	for k, v := range m {
		year, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			r.warnf("past_actuals: %q is not a calendar year, skipping", k)
			continue
		}
		if v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			r.warnf("past_actuals.%d: unreadable value, skipping", year)
			continue
		}
		out[year] = strings.TrimSpace(s)
	}
	return out
}

func (r *recordReader) readScenarios(raw any) domain.ScenarioSet {
	if raw == nil {
		return domain.ScenarioSet{}
	}
	list, err := cast.ToSliceE(raw)
	if err != nil {
		r.warnf("scenarios: expected a list, using the default table")
		return domain.DefaultScenarioSet()
	}
	set := make(domain.ScenarioSet, 0, len(list))
	for i, el := range list {
		m, err := cast.ToStringMapE(el)
		if err != nil {
			r.warnf("scenarios.%d: expected a mapping, skipping", i)
			continue
		}
		pop := r.push("scenarios." + strconv.Itoa(i))
		set = append(set, domain.ScenarioAssumptions{
			ID:           r.str(m, "id", ""),
			Label:        r.str(m, "label", "", "name"),
			WageGrowth:   r.optional(m, "wage_growth"),
			DiscountRate: r.optional(m, "discount_rate"),
			WLE:          r.optional(m, "wle"),
		})
		pop()
	}
	return set
}

func (r *recordReader) str(m map[string]any, key, def string, aliases ...string) string {
	raw, ok := lookup(m, append([]string{key}, aliases...)...)
	if !ok || raw == nil {
		return def
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		r.warnf("%s: unreadable text, using default", r.field(key))
		return def
	}
	return strings.TrimSpace(s)
}

// date reads a date field as text. Decoders that produce time.Time values are
// rendered back to ISO form.
func (r *recordReader) date(m map[string]any, key, def string, aliases ...string) string {
	raw, ok := lookup(m, append([]string{key}, aliases...)...)
	if !ok || raw == nil {
		return def
	}
	if t, isTime := raw.(time.Time); isTime {
		return dateutil.FormatDate(t)
	}
	return r.str(m, key, def, aliases...)
}

func (r *recordReader) number(m map[string]any, key string, def float64, aliases ...string) float64 {
	raw, ok := lookup(m, append([]string{key}, aliases...)...)
	if !ok || raw == nil {
		return def
	}
	f, ok := toNumber(raw)
	if !ok {
		r.warnf("%s: %v is not a number, using %v", r.field(key), raw, def)
		return def
	}
	return f
}

func (r *recordReader) optional(m map[string]any, key string) *float64 {
	raw, ok := lookup(m, key)
	if !ok || raw == nil {
		return nil
	}
	if s, isStr := raw.(string); isStr && strings.TrimSpace(s) == "" {
		return nil
	}
	f, ok := toNumber(raw)
	if !ok {
		r.warnf("%s: %v is not a number, inheriting the case value", r.field(key), raw)
		return nil
	}
	return domain.Rate(f)
}

func (r *recordReader) integer(m map[string]any, key string, def int, aliases ...string) int {
	raw, ok := lookup(m, append([]string{key}, aliases...)...)
	if !ok || raw == nil {
		return def
	}
	f, ok := toNumber(raw)
	if !ok {
		r.warnf("%s: %v is not a whole number, using %d", r.field(key), raw, def)
		return def
	}
	return int(math.Round(f))
}

func (r *recordReader) boolean(m map[string]any, key string, def bool, aliases ...string) bool {
	raw, ok := lookup(m, append([]string{key}, aliases...)...)
	if !ok || raw == nil {
		return def
	}
	if s, isStr := raw.(string); isStr {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "":
			return def
		case "yes", "y", "on":
			return true
		case "no", "n", "off":
			return false
		}
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		r.warnf("%s: %v is not true/false, using %t", r.field(key), raw, def)
		return def
	}
	return b
}

var numberCleaner = strings.NewReplacer("$", "", ",", "", "%", "", " ", "")

// toNumber coerces numbers and numeric strings. Currency symbols, thousands
// separators and a trailing percent sign are ignored.
func toNumber(raw any) (float64, bool) {
	if s, ok := raw.(string); ok {
		s = numberCleaner.Replace(strings.TrimSpace(s))
		if s == "" {
			return 0, false
		}
		raw = s
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// lookup finds the first of keys in m, matching case- and separator-insensitively.
func lookup(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[normalizeKey(k)] = true
	}
	// deterministic choice when several spellings are present
	candidates := make([]string, 0, len(m))
	for k := range m {
		if want[normalizeKey(k)] {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Strings(candidates)
	return m[candidates[0]], true
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(k))
}
