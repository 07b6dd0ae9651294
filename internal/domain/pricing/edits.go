package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tovyalla_billing/internal/domain/entities"
)

// SetCustomerPrice returns a copy of the schedule with the customer price of
// the milestone matching id replaced. The raw value parses as a float with 0
// substituted on failure; every other milestone is untouched.
func SetCustomerPrice(milestones []entities.Milestone, id, raw string) []entities.Milestone {
	out := make([]entities.Milestone, len(milestones))
	copy(out, milestones)
	for i := range out {
		if out[i].ID == id {
			out[i].CustomerPrice = parseAmount(raw)
		}
	}
	return out
}

// AddLineItem appends an empty line item with a fresh id. Ids are never
// reused within a session, even after removal.
func AddLineItem(items []entities.ChangeOrderLineItem) []entities.ChangeOrderLineItem {
	out := make([]entities.ChangeOrderLineItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, entities.ChangeOrderLineItem{ID: freshLineItemID()})
}

// RemoveLineItem drops the line item matching id. Removing an id that is not
// present is a no-op.
func RemoveLineItem(items []entities.ChangeOrderLineItem, id string) []entities.ChangeOrderLineItem {
	out := make([]entities.ChangeOrderLineItem, 0, len(items))
	for _, it := range items {
		if it.ID == id {
			continue
		}
		out = append(out, it)
	}
	return out
}

// UpdateLineItem sets one field of the line item matching id. Name and
// description store the raw string; the amount fields parse as floats with 0
// substituted on failure.
func UpdateLineItem(items []entities.ChangeOrderLineItem, id, field, raw string) []entities.ChangeOrderLineItem {
	out := make([]entities.ChangeOrderLineItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		switch field {
		case "name":
			out[i].Name = raw
		case "description":
			out[i].Description = raw
		case "cost_amount":
			out[i].CostAmount = parseAmount(raw)
		case "customer_price":
			out[i].CustomerPrice = parseAmount(raw)
		}
	}
	return out
}

func freshLineItemID() string {
	return uuid.NewString()
}

// parseAmount is the parse-or-default used for every user-edited amount.
func parseAmount(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}
