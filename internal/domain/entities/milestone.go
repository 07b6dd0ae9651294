package entities

import "strings"

// MilestoneType identifies what a billable milestone covers.
//
// Domain notes:
//   - initial_fee and final_inspection bracket every contract schedule and
//     carry no internal cost of their own.
//   - subcontractor milestones map 1:1 to subcontractor fee records.
//   - equipment/materials/additional aggregate whole expense categories.
//   - change_order_item only ever appears on change-order documents.

type MilestoneType string

const (
	MilestoneTypeInitialFee      MilestoneType = "initial_fee"
	MilestoneTypeSubcontractor   MilestoneType = "subcontractor"
	MilestoneTypeEquipment       MilestoneType = "equipment"
	MilestoneTypeMaterials       MilestoneType = "materials"
	MilestoneTypeAdditional      MilestoneType = "additional"
	MilestoneTypeFinalInspection MilestoneType = "final_inspection"
	MilestoneTypeChangeOrderItem MilestoneType = "change_order_item"
)

// ParseMilestoneType normalizes a raw value into a MilestoneType. The second
// return is false for values outside the known set.
func ParseMilestoneType(raw string) (MilestoneType, bool) {
	switch MilestoneType(strings.ToLower(strings.TrimSpace(raw))) {
	case MilestoneTypeInitialFee:
		return MilestoneTypeInitialFee, true
	case MilestoneTypeSubcontractor:
		return MilestoneTypeSubcontractor, true
	case MilestoneTypeEquipment:
		return MilestoneTypeEquipment, true
	case MilestoneTypeMaterials:
		return MilestoneTypeMaterials, true
	case MilestoneTypeAdditional:
		return MilestoneTypeAdditional, true
	case MilestoneTypeFinalInspection:
		return MilestoneTypeFinalInspection, true
	case MilestoneTypeChangeOrderItem:
		return MilestoneTypeChangeOrderItem, true
	}
	return "", false
}

// Milestone is one billable schedule line derived for a preview session.
// CostAmount always comes from the expense records and is never user-edited;
// only CustomerPrice is. SortOrder is dense and strictly increasing in the
// order milestones were emitted, and defines both the persisted and the
// rendered order.
type Milestone struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	CostAmount         float64       `json:"cost_amount"`
	CustomerPrice      float64       `json:"customer_price"`
	MilestoneType      MilestoneType `json:"milestone_type"`
	SubcontractorFeeID string        `json:"subcontractor_fee_id,omitempty"`
	SortOrder          int           `json:"sort_order"`
}

// MilestoneRecord is the persisted form of a milestone. Records are always
// written as a whole set per project (full replace, never merged).
//
// CustomerPrice is a pointer: nil means the stored value was absent or not a
// number, which on rebuild falls back to the computed default. A stored zero
// is a real price and round-trips as such.
//
// Storage model (DynamoDB):
//   - PK: project_id
//   - SK: sort_key (zero-padded position)
type MilestoneRecord struct {
	MilestoneType      MilestoneType `json:"milestone_type"`
	SubcontractorFeeID *string       `json:"subcontractor_fee_id"`
	Name               string        `json:"name"`
	Description        string        `json:"description,omitempty"`
	Cost               float64       `json:"cost"`
	CustomerPrice      *float64      `json:"customer_price"`
}

// ChangeOrderLineItem is a free-form priced line on a change-order document.
// IDs are generated once and never reused after removal within a session.
type ChangeOrderLineItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	CostAmount    float64 `json:"cost_amount"`
	CustomerPrice float64 `json:"customer_price"`
}
