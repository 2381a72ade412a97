package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/econloss/loss-calculator/internal/domain"
)

// Flat CSV case files hold one "field,value" row per input. Section fields use
// dotted keys (earnings.base_earnings); list entries carry an index
// (lcp.0.base_cost, scenarios.1.discount_rate) and manual actuals a year
// (past_actuals.2021). Undotted keys are routed to their section by name. A
// bare "scenarios" row with a blank value stands for an empty scenario table.

var flatSections = map[string]string{
	"plaintiff":           "case_info",
	"dob":                 "case_info",
	"dateofinjury":        "case_info",
	"dateoftrial":         "case_info",
	"retirementage":       "case_info",
	"gender":              "case_info",
	"occupation":          "case_info",
	"education":           "case_info",
	"jurisdiction":        "case_info",
	"attorney":            "case_info",
	"injurynotes":         "case_info",
	"baseearnings":        "earnings",
	"residualearnings":    "earnings",
	"wle":                 "earnings",
	"wagegrowth":          "earnings",
	"discountrate":        "earnings",
	"fringerate":          "earnings",
	"pension":             "earnings",
	"healthwelfare":       "earnings",
	"annuity":             "earnings",
	"clothingallowance":   "earnings",
	"otherbenefits":       "earnings",
	"unemploymentrate":    "earnings",
	"uireplacementrate":   "earnings",
	"fedtaxrate":          "earnings",
	"statetaxrate":        "earnings",
	"selectedscenario":    "earnings",
	"hoursperweek":        "household_services",
	"hourlyrate":          "household_services",
	"hhsactive":           "household_services",
	"hhsgrowthrate":       "household_services",
	"hhsdiscountrate":     "household_services",
	"householdactive":     "household_services",
	"householdgrowthrate": "household_services",
}

var listSections = map[string]string{
	"lcp":               "life_care_plan",
	"lifecareplan":      "life_care_plan",
	"lcpitems":          "life_care_plan",
	"scenarios":         "scenarios",
	"scenario":          "scenarios",
	"pastactuals":       "past_actuals",
	"pastactual":        "past_actuals",
	"unionmode":         "union_mode",
	"caseinfo":          "case_info",
	"earnings":          "earnings",
	"householdservices": "household_services",
	"household":         "household_services",
}

// ParseFlatCSV reads a flat field/value CSV into a structured record suitable
// for FromRecord. Rows with fewer than two columns, blank keys and an optional
// "field,value" header are skipped.
func ParseFlatCSV(r io.Reader) (map[string]any, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	rec := map[string]any{}
	lists := map[string]map[int]map[string]any{}
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		key, value := strings.TrimSpace(row[0]), row[1]
		if key == "" || (i == 0 && strings.EqualFold(key, "field")) {
			continue
		}
		parts := strings.Split(key, ".")
		head := normalizeKey(parts[0])

		if len(parts) == 1 {
			if sec, ok := flatSections[head]; ok {
				setIn(rec, sec, flatFieldName(head), value)
				continue
			}
			if sec, ok := listSections[head]; ok && sec == "union_mode" {
				rec["union_mode"] = value
				continue
			}
			if sec, ok := listSections[head]; ok && sec == "scenarios" {
				// a bare "scenarios" row marks an explicitly empty table;
				// indexed rows for the same list replace it below
				rec[sec] = []any{}
				continue
			}
			rec[key] = value
			continue
		}

		sec, ok := listSections[head]
		if !ok {
			sec = parts[0]
		}
		switch sec {
		case "life_care_plan", "scenarios":
			if len(parts) != 3 {
				continue
			}
			idx, err := strconv.Atoi(parts[1])
			if err != nil || idx < 0 {
				continue
			}
			if lists[sec] == nil {
				lists[sec] = map[int]map[string]any{}
			}
			if lists[sec][idx] == nil {
				lists[sec][idx] = map[string]any{}
			}
			lists[sec][idx][parts[2]] = value
		default:
			setIn(rec, sec, strings.Join(parts[1:], "."), value)
		}
	}

	for sec, byIndex := range lists {
		idxs := make([]int, 0, len(byIndex))
		for idx := range byIndex {
			idxs = append(idxs, idx)
		}
		sort.Ints(idxs)
		list := make([]any, 0, len(idxs))
		for _, idx := range idxs {
			list = append(list, byIndex[idx])
		}
		rec[sec] = list
	}
	return rec, nil
}

// flatFieldName maps household-prefixed aliases to their field names.
func flatFieldName(norm string) string {
	switch norm {
	case "hhsactive", "householdactive":
		return "active"
	case "hhsgrowthrate", "householdgrowthrate":
		return "growth_rate"
	case "hhsdiscountrate":
		return "discount_rate"
	}
	return norm
}

func setIn(rec map[string]any, section, field, value string) {
	m, ok := rec[section].(map[string]any)
	if !ok {
		m = map[string]any{}
		rec[section] = m
	}
	m[field] = value
}

// WriteFlatCSV writes c in the flat field/value layout ParseFlatCSV reads.
func WriteFlatCSV(w io.Writer, c domain.Case) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"field", "value"}}
	add := func(k, v string) { rows = append(rows, []string{k, v}) }
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	info := c.Info
	add("case_info.plaintiff", info.Plaintiff)
	add("case_info.dob", info.DOB)
	add("case_info.date_of_injury", info.DateOfInjury)
	add("case_info.date_of_trial", info.DateOfTrial)
	add("case_info.retirement_age", num(info.RetirementAge))
	for _, f := range []struct{ k, v string }{
		{"gender", info.Gender},
		{"occupation", info.Occupation},
		{"education", info.Education},
		{"jurisdiction", info.Jurisdiction},
		{"attorney", info.Attorney},
		{"injury_notes", info.InjuryNotes},
	} {
		if f.v != "" {
			add("case_info."+f.k, f.v)
		}
	}

	ep := c.Earnings
	add("earnings.base_earnings", num(ep.BaseEarnings))
	add("earnings.residual_earnings", num(ep.ResidualEarnings))
	add("earnings.wle", num(ep.WLE))
	add("earnings.wage_growth", num(ep.WageGrowth))
	add("earnings.discount_rate", num(ep.DiscountRate))
	add("earnings.fringe_rate", num(ep.FringeRate))
	add("earnings.pension", num(ep.Pension))
	add("earnings.health_welfare", num(ep.HealthWelfare))
	add("earnings.annuity", num(ep.Annuity))
	add("earnings.clothing_allowance", num(ep.ClothingAllowance))
	add("earnings.other_benefits", num(ep.OtherBenefits))
	add("earnings.unemployment_rate", num(ep.UnemploymentRate))
	add("earnings.ui_replacement_rate", num(ep.UIReplacementRate))
	add("earnings.fed_tax_rate", num(ep.FedTaxRate))
	add("earnings.state_tax_rate", num(ep.StateTaxRate))
	if ep.SelectedScenario != "" {
		add("earnings.selected_scenario", ep.SelectedScenario)
	}
	add("union_mode", strconv.FormatBool(c.UnionMode))

	hh := c.Household
	add("household_services.active", strconv.FormatBool(hh.Active))
	add("household_services.hours_per_week", num(hh.HoursPerWeek))
	add("household_services.hourly_rate", num(hh.HourlyRate))
	add("household_services.growth_rate", num(hh.GrowthRate))
	add("household_services.discount_rate", num(hh.DiscountRate))

	for i, item := range c.LifeCare {
		p := "lcp." + strconv.Itoa(i) + "."
		add(p+"id", item.ID)
		add(p+"category_id", item.CategoryID)
		if item.Description != "" {
			add(p+"description", item.Description)
		}
		add(p+"base_cost", num(item.BaseCost))
		add(p+"freq_type", string(item.FreqType))
		add(p+"duration", strconv.Itoa(item.Duration))
		add(p+"start_year", strconv.Itoa(item.StartYear))
		add(p+"cpi", num(item.CPI))
		add(p+"recurrence_interval", strconv.Itoa(item.RecurrenceInterval))
	}

	for _, year := range sortedYears(c.PastActuals) {
		add("past_actuals."+strconv.Itoa(year), c.PastActuals[year])
	}

	if len(c.Scenarios) == 0 {
		add("scenarios", "")
	}
	for i, sa := range c.Scenarios {
		p := "scenarios." + strconv.Itoa(i) + "."
		add(p+"id", sa.ID)
		add(p+"label", sa.Label)
		for _, o := range []struct {
			k string
			v *float64
		}{{"wage_growth", sa.WageGrowth}, {"discount_rate", sa.DiscountRate}, {"wle", sa.WLE}} {
			if o.v != nil {
				add(p+o.k, num(*o.v))
			}
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
