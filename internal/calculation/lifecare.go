package calculation

import "github.com/econloss/loss-calculator/internal/domain"

// ProjectLifeCare escalates and discounts every care item.
//
// For period t (0-based) of an active item, the escalated cost is
// baseCost*(1+cpi)^(t+startYear-1) and the discount factor is
// 1/(1+discountRate)^(t+startYear-0.5). startYear is 1-indexed: 1 means the
// first period begins at the valuation date.
func ProjectLifeCare(items []domain.LcpItem, discountRate float64) domain.LcpData {
	data := domain.LcpData{Items: make([]domain.LcpItemResult, 0, len(items))}

	for _, item := range items {
		res := projectItem(item, discountRate)
		data.Items = append(data.Items, res)
		data.TotalNom += res.TotalNom
		data.TotalPV += res.TotalPV
	}
	return data
}

func projectItem(item domain.LcpItem, discountRate float64) domain.LcpItemResult {
	res := domain.LcpItemResult{LcpItem: item}

	for t := 0; t < item.Duration; t++ {
		if !item.FreqType.IsActive(t, item.RecurrenceInterval) {
			continue
		}
		offset := t + item.StartYear
		cost := item.BaseCost * growthFactor(item.CPI, offset-1)
		disc := midYearDiscount(discountRate, float64(offset)-0.5)
		pv := cost * disc

		res.Periods = append(res.Periods, domain.LcpPeriod{Period: t, Cost: cost, Discount: disc, PV: pv})
		res.TotalNom += cost
		res.TotalPV += pv
	}
	return res
}
