package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/econloss/loss-calculator/internal/domain"
)

// CSVDetailedExporter provides raw schedule detail: past and future earnings
// rows for the case and each included scenario, then household and life care
// rows for the case.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

var detailedHeader = []string{"Scenario", "Schedule", "Item", "Year", "Fraction", "Gross", "GrossActual", "NetButFor", "NetActual", "NetLoss", "DiscountFactor", "PV", "Manual"}

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(detailedHeader); err != nil {
		return nil, err
	}

	var rows [][]string
	rows = append(rows, projectionRows("case", report.Results.Projection)...)
	for _, sp := range domain.IncludedScenarios(report.Results.Scenarios) {
		rows = append(rows, projectionRows(sp.ID, sp.Projection)...)
	}
	for _, y := range report.Results.Household.Schedule {
		rows = append(rows, []string{"case", "household", "", intToString(y.Year), "", fixed2(y.AnnualValue), "", "", "", "", "", fixed2(y.PV), ""})
	}
	for _, item := range report.Results.LifeCare.Items {
		for _, p := range item.Periods {
			rows = append(rows, []string{"case", "life_care", item.ID, intToString(p.Period + item.StartYear), "", fixed2(p.Cost), "", "", "", "", floatCell(p.Discount), fixed2(p.PV), ""})
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func projectionRows(scenario string, proj domain.Projection) [][]string {
	rows := make([][]string, 0, len(proj.PastSchedule)+len(proj.FutureSchedule))
	for _, y := range proj.PastSchedule {
		rows = append(rows, []string{
			scenario, "past", "", intToString(y.Year), floatCell(y.Fraction),
			fixed2(y.GrossBase), fixed2(y.GrossActual), fixed2(y.NetButFor), fixed2(y.NetActual), fixed2(y.NetLoss),
			"", "", boolToString(y.IsManual),
		})
	}
	for _, y := range proj.FutureSchedule {
		rows = append(rows, []string{
			scenario, "future", "", intToString(y.Year), "",
			fixed2(y.Gross), fixed2(y.GrossResidual), fixed2(y.NetButFor), fixed2(y.NetActual), fixed2(y.NetLoss),
			floatCell(y.DiscountFactor), fixed2(y.PV), "",
		})
	}
	return rows
}

// floatCell writes a rate or factor at full precision.
func floatCell(v float64) string {
	if !finite(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
