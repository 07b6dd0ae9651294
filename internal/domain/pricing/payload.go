package pricing

import (
	"sort"

	"tovyalla_billing/internal/domain/entities"
)

// ScheduleLine is one row of the customer payment schedule handed to
// document rendering.
type ScheduleLine struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// RenderPayload is the schedule a document template renders, plus the grand
// total shown to the customer.
type RenderPayload struct {
	Schedule   []ScheduleLine `json:"schedule"`
	GrandTotal float64        `json:"grand_total"`
}

// ToRecords serializes the session's schedule into the persisted record set.
// Callers must persist the result as a full replacement of the project's
// milestone records, never as a merge.
func ToRecords(
	milestones []entities.Milestone,
	items []entities.ChangeOrderLineItem,
	docType entities.DocumentType,
) []entities.MilestoneRecord {
	if docType == entities.DocumentTypeChangeOrder {
		var records []entities.MilestoneRecord
		if initial, ok := initialFeeMilestone(milestones); ok {
			records = append(records, entities.MilestoneRecord{
				MilestoneType: entities.MilestoneTypeInitialFee,
				Name:          initial.Name,
				Cost:          initial.CostAmount,
				CustomerPrice: amountPtr(initial.CustomerPrice),
			})
		}
		for _, it := range items {
			name := it.Name
			if name == "" {
				name = defaultLineItemName
			}
			records = append(records, entities.MilestoneRecord{
				MilestoneType: entities.MilestoneTypeChangeOrderItem,
				Name:          name,
				Description:   it.Description,
				Cost:          it.CostAmount,
				CustomerPrice: amountPtr(it.CustomerPrice),
			})
		}
		return records
	}

	ordered := sortedBySortOrder(milestones)
	records := make([]entities.MilestoneRecord, 0, len(ordered))
	for _, m := range ordered {
		var feeID *string
		if m.SubcontractorFeeID != "" {
			id := m.SubcontractorFeeID
			feeID = &id
		}
		records = append(records, entities.MilestoneRecord{
			MilestoneType:      m.MilestoneType,
			SubcontractorFeeID: feeID,
			Name:               m.Name,
			Cost:               m.CostAmount,
			CustomerPrice:      amountPtr(m.CustomerPrice),
		})
	}
	return records
}

// BuildRenderPayload assembles the payment schedule for one document type.
// Proposals show only the initial fee plus a balance note while still
// totalling the full underlying schedule; change orders list their priced,
// named line items; contracts list every milestone.
func BuildRenderPayload(
	milestones []entities.Milestone,
	items []entities.ChangeOrderLineItem,
	docType entities.DocumentType,
) RenderPayload {
	switch docType {
	case entities.DocumentTypeProposal:
		return RenderPayload{
			Schedule: []ScheduleLine{
				initialFeeLine(milestones, nameInitialSignFee),
				{Description: balanceMessage, Amount: 0},
			},
			GrandTotal: ComputeTotals(milestones, nil, docType).TotalCustomerPrice,
		}

	case entities.DocumentTypeChangeOrder:
		initial := initialFeeLine(milestones, nameInitialFee)
		schedule := []ScheduleLine{initial}
		grand := initial.Amount
		for _, it := range items {
			grand += it.CustomerPrice
			if it.Name == "" || it.CustomerPrice == 0 {
				continue
			}
			schedule = append(schedule, ScheduleLine{Description: it.Name, Amount: it.CustomerPrice})
		}
		schedule = append(schedule, ScheduleLine{Description: balanceMessage, Amount: 0})
		return RenderPayload{Schedule: schedule, GrandTotal: grand}
	}

	ordered := sortedBySortOrder(milestones)
	schedule := make([]ScheduleLine, 0, len(ordered))
	for _, m := range ordered {
		schedule = append(schedule, ScheduleLine{Description: m.Name, Amount: m.CustomerPrice})
	}
	return RenderPayload{
		Schedule:   schedule,
		GrandTotal: ComputeTotals(milestones, nil, docType).TotalCustomerPrice,
	}
}

// initialFeeLine degrades to a zero amount under the canonical name when the
// schedule has no initial fee milestone.
func initialFeeLine(milestones []entities.Milestone, fallbackName string) ScheduleLine {
	if initial, ok := initialFeeMilestone(milestones); ok {
		return ScheduleLine{Description: initial.Name, Amount: initial.CustomerPrice}
	}
	return ScheduleLine{Description: fallbackName, Amount: 0}
}

func sortedBySortOrder(milestones []entities.Milestone) []entities.Milestone {
	out := make([]entities.Milestone, len(milestones))
	copy(out, milestones)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

func amountPtr(v float64) *float64 {
	return &v
}
