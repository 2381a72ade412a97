package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/econloss/loss-calculator/internal/domain"
)

const rule = "================================================================================="

// ConsoleVerboseFormatter renders the full schedules report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	res := report.Results
	info := report.Case.Info

	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "ECONOMIC LOSS ANALYSIS: %s\n", report.CaseName)
	fmt.Fprintln(&buf, rule)
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "CASE INFORMATION:")
	fmt.Fprintf(&buf, "  Plaintiff:              %s\n", info.Plaintiff)
	fmt.Fprintf(&buf, "  Date of Birth:          %s\n", info.DOB)
	fmt.Fprintf(&buf, "  Date of Injury:         %s (age %s)\n", info.DateOfInjury, res.DateCalc.AgeInjury)
	fmt.Fprintf(&buf, "  Date of Trial:          %s (age %s)\n", info.DateOfTrial, res.DateCalc.AgeTrial)
	fmt.Fprintf(&buf, "  Current Age:            %s\n", res.DateCalc.CurrentAge)
	fmt.Fprintf(&buf, "  Past Period:            %s years\n", FormatYears(res.DateCalc.PastYears))
	fmt.Fprintf(&buf, "  Years to Retirement:    %s years\n", FormatYears(res.DateCalc.DerivedYFS))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = GenerateAssumptions(report.Case)
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeAlgebraic(&buf, res.Algebraic)
	writePastSchedule(&buf, res.Projection)
	writeFutureSchedule(&buf, res.Projection)
	writeHousehold(&buf, report.Case.Household, res.Household)
	writeLifeCare(&buf, res.LifeCare)

	fmt.Fprintln(&buf, "SUMMARY OF LOSSES")
	fmt.Fprintln(&buf, "=================")
	s := res.Summary
	fmt.Fprintf(&buf, "  %-32s %18s\n", "Past lost earnings", FormatCurrency(s.PastLoss))
	fmt.Fprintf(&buf, "  %-32s %18s\n", "Future lost earnings (PV)", FormatCurrency(s.FutureLossPV))
	if s.HouseholdActive {
		fmt.Fprintf(&buf, "  %-32s %18s\n", "Household services (PV)", FormatCurrency(s.HouseholdPV))
	}
	fmt.Fprintf(&buf, "  %-32s %18s\n", "Life care plan (PV)", FormatCurrency(s.LifeCarePV))
	fmt.Fprintln(&buf, "  "+strings.Repeat("-", 51))
	fmt.Fprintf(&buf, "  %-32s %18s\n", "GRAND TOTAL", FormatCurrency(summaryTotal(s)))
	fmt.Fprintln(&buf)

	writeScenarioComparison(&buf, report)
	return buf.Bytes(), nil
}

func writeAlgebraic(buf *bytes.Buffer, alg domain.Algebraic) {
	fmt.Fprintln(buf, "ADJUSTED EARNINGS FACTORS")
	fmt.Fprintln(buf, "=========================")
	fmt.Fprintf(buf, "  Work-life factor:       %s\n", FormatFactor(alg.WLF))
	fmt.Fprintf(buf, "  Unemployment factor:    %s\n", FormatFactor(alg.UnempFactor))
	fmt.Fprintf(buf, "  After-tax factor:       %s (combined tax %s)\n", FormatFactor(alg.AfterTaxFactor), FormatPercentage(alg.CombinedTaxRate*100))
	if alg.UnionMode {
		fmt.Fprintf(buf, "  Fringe factor:          %s (flat %s)\n", FormatFactor(alg.FringeFactor), FormatCurrency(alg.FlatFringeAmount))
	} else {
		fmt.Fprintf(buf, "  Fringe factor:          %s\n", FormatFactor(alg.FringeFactor))
	}
	fmt.Fprintf(buf, "  Full multiplier:        %s\n", FormatFactor(alg.FullMultiplier))
	fmt.Fprintf(buf, "  Realized multiplier:    %s\n", FormatFactor(alg.RealizedMultiplier))
	fmt.Fprintln(buf)
}

func writePastSchedule(buf *bytes.Buffer, proj domain.Projection) {
	fmt.Fprintln(buf, "PAST LOSS SCHEDULE (injury to trial)")
	fmt.Fprintln(buf, strings.Repeat("-", 92))
	fmt.Fprintf(buf, "%-6s %8s %15s %15s %15s %15s %15s\n", "YEAR", "FRACTION", "GROSS BASE", "GROSS ACTUAL", "NET BUT-FOR", "NET ACTUAL", "NET LOSS")
	for _, y := range proj.PastSchedule {
		year := intToString(y.Year)
		if y.IsManual {
			year += "*"
		}
		fmt.Fprintf(buf, "%-6s %8s %15s %15s %15s %15s %15s\n", year, formatFixed(y.Fraction, 4),
			FormatCurrency(y.GrossBase), FormatCurrency(y.GrossActual), FormatCurrency(y.NetButFor), FormatCurrency(y.NetActual), FormatCurrency(y.NetLoss))
	}
	fmt.Fprintln(buf, strings.Repeat("-", 92))
	losses := make([]float64, len(proj.PastSchedule))
	for i, y := range proj.PastSchedule {
		losses[i] = y.NetLoss
	}
	fmt.Fprintf(buf, "%-76s %15s\n", "TOTAL PAST LOSS", FormatCurrency(rowTotal(losses...)))
	if hasManual(proj.PastSchedule) {
		fmt.Fprintln(buf, "* actual earnings entered manually")
	}
	fmt.Fprintln(buf)
}

func hasManual(rows []domain.PastYear) bool {
	for _, y := range rows {
		if y.IsManual {
			return true
		}
	}
	return false
}

func writeFutureSchedule(buf *bytes.Buffer, proj domain.Projection) {
	fmt.Fprintln(buf, "FUTURE LOSS SCHEDULE (trial to retirement)")
	fmt.Fprintln(buf, strings.Repeat("-", 106))
	fmt.Fprintf(buf, "%-5s %15s %15s %15s %15s %15s %9s %15s\n", "YEAR", "GROSS", "RESIDUAL", "NET BUT-FOR", "NET ACTUAL", "NET LOSS", "DISCOUNT", "PRESENT VALUE")
	for _, y := range proj.FutureSchedule {
		fmt.Fprintf(buf, "%-5d %15s %15s %15s %15s %15s %9s %15s\n", y.Year,
			FormatCurrency(y.Gross), FormatCurrency(y.GrossResidual), FormatCurrency(y.NetButFor), FormatCurrency(y.NetActual),
			FormatCurrency(y.NetLoss), formatFixed(y.DiscountFactor, 6), FormatCurrency(y.PV))
	}
	fmt.Fprintln(buf, strings.Repeat("-", 106))
	nominal := make([]float64, len(proj.FutureSchedule))
	pv := make([]float64, len(proj.FutureSchedule))
	for i, y := range proj.FutureSchedule {
		nominal[i], pv[i] = y.NetLoss, y.PV
	}
	fmt.Fprintf(buf, "%-74s %15s\n", "TOTAL FUTURE LOSS (nominal)", FormatCurrency(rowTotal(nominal...)))
	fmt.Fprintf(buf, "%-74s %15s\n", "TOTAL FUTURE LOSS (present value)", FormatCurrency(rowTotal(pv...)))
	fmt.Fprintln(buf)
}

func writeHousehold(buf *bytes.Buffer, hh domain.HhServices, data domain.HhsData) {
	fmt.Fprintln(buf, "HOUSEHOLD SERVICES")
	fmt.Fprintln(buf, "==================")
	if !hh.Active {
		fmt.Fprintln(buf, "  Not claimed.")
		fmt.Fprintln(buf)
		return
	}
	fmt.Fprintf(buf, "  %g hours/week at %s/hour\n", hh.HoursPerWeek, FormatCurrency(hh.HourlyRate))
	fmt.Fprintf(buf, "  Total nominal:          %s\n", FormatCurrency(data.TotalNom))
	fmt.Fprintf(buf, "  Total present value:    %s\n", FormatCurrency(data.TotalPV))
	fmt.Fprintln(buf)
}

func writeLifeCare(buf *bytes.Buffer, lcp domain.LcpData) {
	fmt.Fprintln(buf, "LIFE CARE PLAN")
	fmt.Fprintln(buf, "==============")
	if len(lcp.Items) == 0 {
		fmt.Fprintln(buf, "  No items.")
		fmt.Fprintln(buf)
		return
	}
	fmt.Fprintf(buf, "%-18s %-12s %-10s %5s %5s %8s %15s %15s\n", "ITEM", "CATEGORY", "FREQUENCY", "YEARS", "START", "CPI", "NOMINAL", "PRESENT VALUE")
	for _, item := range lcp.Items {
		freq := string(item.FreqType)
		if item.FreqType == domain.FreqRecurring {
			freq = fmt.Sprintf("every %d", item.RecurrenceInterval)
		}
		fmt.Fprintf(buf, "%-18s %-12s %-10s %5d %5d %8s %15s %15s\n", truncate(item.ID, 18), truncate(item.CategoryID, 12), freq,
			item.Duration, item.StartYear, FormatPercentage(item.CPI), FormatCurrency(item.TotalNom), FormatCurrency(item.TotalPV))
	}
	fmt.Fprintln(buf, strings.Repeat("-", 96))
	nominal := make([]float64, len(lcp.Items))
	pv := make([]float64, len(lcp.Items))
	for i, item := range lcp.Items {
		nominal[i], pv[i] = item.TotalNom, item.TotalPV
	}
	fmt.Fprintf(buf, "%-64s %15s %15s\n", "TOTAL", FormatCurrency(rowTotal(nominal...)), FormatCurrency(rowTotal(pv...)))
	fmt.Fprintln(buf)
}

func writeScenarioComparison(buf *bytes.Buffer, report *domain.Report) {
	a := AnalyzeScenarios(report)
	if len(a.Rows) == 0 {
		return
	}
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, "===================")
	fmt.Fprintf(buf, "%-16s %-44s %15s %15s %10s\n", "SCENARIO", "ASSUMPTIONS", "FUTURE PV", "GRAND TOTAL", "CHANGE")
	for _, row := range a.Rows {
		id := row.ID
		if row.Selected {
			id += " *"
		}
		fmt.Fprintf(buf, "%-16s %-44s %15s %15s %10s\n", truncate(id, 16), truncate(row.Assumptions, 44),
			FormatCurrency(row.FutureLossPV), FormatCurrency(row.GrandTotal), FormatPercentage(row.PercentChange))
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Case as entered:  %s\n", FormatCurrency(a.CaseTotal))
	fmt.Fprintf(buf, "Lowest:           %s (%s)\n", FormatCurrency(a.Low.GrandTotal), a.Low.Label)
	fmt.Fprintf(buf, "Highest:          %s (%s)\n", FormatCurrency(a.High.GrandTotal), a.High.Label)
	fmt.Fprintf(buf, "Spread:           %s\n", FormatCurrency(a.Spread))
	if report.Case.Earnings.SelectedScenario != "" {
		fmt.Fprintln(buf, "* selected scenario")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
