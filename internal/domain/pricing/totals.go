package pricing

import "tovyalla_billing/internal/domain/entities"

// Totals aggregates a schedule's internal cost, billed price and the profit
// between them.
type Totals struct {
	TotalCost          float64
	TotalCustomerPrice float64
	Profit             float64
}

// Margin is the profit as a percentage of cost, 0 when there is no cost.
// Display-only; it is derived and never persisted.
func (t Totals) Margin() float64 {
	if t.TotalCost > 0 {
		return t.Profit / t.TotalCost * 100
	}
	return 0
}

// ComputeTotals sums the schedule. Change orders only count the initial fee
// milestone (missing means zero) plus the line items; every other document
// counts the full milestone set.
func ComputeTotals(
	milestones []entities.Milestone,
	items []entities.ChangeOrderLineItem,
	docType entities.DocumentType,
) Totals {
	var t Totals
	if docType == entities.DocumentTypeChangeOrder {
		if initial, ok := initialFeeMilestone(milestones); ok {
			t.TotalCost = initial.CostAmount
			t.TotalCustomerPrice = initial.CustomerPrice
		}
		for _, it := range items {
			t.TotalCost += it.CostAmount
			t.TotalCustomerPrice += it.CustomerPrice
		}
	} else {
		for _, m := range milestones {
			t.TotalCost += m.CostAmount
			t.TotalCustomerPrice += m.CustomerPrice
		}
	}
	t.Profit = t.TotalCustomerPrice - t.TotalCost
	return t
}

func initialFeeMilestone(milestones []entities.Milestone) (entities.Milestone, bool) {
	for _, m := range milestones {
		if m.MilestoneType == entities.MilestoneTypeInitialFee {
			return m, true
		}
	}
	return entities.Milestone{}, false
}
