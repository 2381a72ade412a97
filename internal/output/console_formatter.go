package output

import (
	"bytes"
	"fmt"

	"github.com/econloss/loss-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	s := report.Results.Summary
	fmt.Fprintf(&buf, "ECONOMIC LOSS SUMMARY: %s\n", report.CaseName)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Past Lost Earnings:     %s\n", FormatCurrency(s.PastLoss))
	fmt.Fprintf(&buf, "Future Lost Earnings:   %s (PV)\n", FormatCurrency(s.FutureLossPV))
	if s.HouseholdActive {
		fmt.Fprintf(&buf, "Household Services:     %s (PV)\n", FormatCurrency(s.HouseholdPV))
	} else {
		fmt.Fprintln(&buf, "Household Services:     not claimed")
	}
	fmt.Fprintf(&buf, "Life Care Plan:         %s (PV)\n", FormatCurrency(s.LifeCarePV))
	fmt.Fprintf(&buf, "GRAND TOTAL:            %s\n", FormatCurrency(summaryTotal(s)))

	a := AnalyzeScenarios(report)
	if len(a.Rows) == 0 {
		return buf.Bytes(), nil
	}
	fmt.Fprintln(&buf)
	for _, row := range a.Rows {
		marker := ""
		if row.Selected {
			marker = " *"
		}
		fmt.Fprintf(&buf, "%s%s: Total=%s Change=%s (%s)\n", row.ID, marker,
			FormatCurrency(row.GrandTotal), FormatCurrency(row.Delta), FormatPercentage(row.PercentChange))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Range: %s (%s) to %s (%s)\n", FormatCurrency(a.Low.GrandTotal), a.Low.ID, FormatCurrency(a.High.GrandTotal), a.High.ID)
	return buf.Bytes(), nil
}
