package output

import (
	"bytes"
	"encoding/csv"

	"github.com/econloss/loss-calculator/internal/domain"
)

// CSVSummarizer implements the summary CSV output: the case as entered, then
// one row per included scenario in table order.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Label", "WageGrowth", "DiscountRate", "WLE", "PastLoss", "FutureLossPV", "HouseholdPV", "LifeCarePV", "GrandTotal", "ChangeVsCase", "Selected"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	ep := report.Case.Earnings
	s := report.Results.Summary
	base := []string{
		"case", "As entered",
		floatCell(ep.WageGrowth), floatCell(ep.DiscountRate), floatCell(ep.WLE),
		fixed2(s.PastLoss), fixed2(s.FutureLossPV), fixed2(s.HouseholdPV), fixed2(s.LifeCarePV),
		fixed2(summaryTotal(s)), fixed2(0), boolToString(false),
	}
	if err := w.Write(base); err != nil {
		return nil, err
	}

	a := AnalyzeScenarios(report)
	for _, sp := range domain.IncludedScenarios(report.Results.Scenarios) {
		row := rowFor(a, sp.ID)
		rec := []string{
			sp.ID, sp.Label,
			floatCell(sp.Earnings.WageGrowth), floatCell(sp.Earnings.DiscountRate), floatCell(sp.Earnings.WLE),
			fixed2(row.PastLoss), fixed2(row.FutureLossPV), fixed2(row.HouseholdPV), fixed2(row.LifeCarePV),
			fixed2(rowTotal(row.PastLoss, row.FutureLossPV, row.HouseholdPV, row.LifeCarePV)), fixed2(row.Delta), boolToString(row.Selected),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rowFor(a ScenarioAnalysis, id string) ScenarioRow {
	for _, row := range a.Rows {
		if row.ID == id {
			return row
		}
	}
	return ScenarioRow{}
}
