// Package pricing derives priced milestone schedules for contracts, proposals
// and change orders from a project's expense records, carrying previously
// saved customer prices forward. It is pure computation: no I/O, inputs are
// never mutated, and malformed numeric input degrades to defaults instead of
// failing.
package pricing

import (
	"strconv"

	"tovyalla_billing/internal/domain/entities"
)

const (
	nameInitialFee         = "Initial Fee"
	nameInitialSignFee     = "Initial Sign Fee"
	nameInitialContractFee = "Initial Contract Fee"
	nameEquipmentOrder     = "Equipment Order"
	nameMaterialOrder      = "Material Order"
	nameAdditionalFees     = "Additional Fees"
	nameFinalInspection    = "Final Inspection"

	defaultLineItemName = "Change Order Item"
	balanceMessage      = "Balance of schedule will be provided with contract"
)

const (
	defaultInitialFee = 1000
	defaultFinalFee   = 1000
)

// Engine builds milestone schedules. The default initial/final fees apply
// whenever a project has no saved price for those milestones yet.
type Engine struct {
	initialFee float64
	finalFee   float64
}

// NewEngine returns an engine with the standard 1000/1000 default fees.
func NewEngine() *Engine {
	return NewEngineWithDefaults(defaultInitialFee, defaultFinalFee)
}

// NewEngineWithDefaults returns an engine with company-specific default fees.
func NewEngineWithDefaults(initialFee, finalFee float64) *Engine {
	return &Engine{initialFee: initialFee, finalFee: finalFee}
}

// Build derives the full milestone schedule (and, for change orders, the
// line-item set) for one document. The schedule is rebuilt from scratch on
// every call: costs always reflect the current expense records, while
// customer prices are carried forward from saved records matched on
// milestone type (plus fee id for subcontractor milestones).
func (e *Engine) Build(
	set entities.ExpenseSet,
	saved []entities.MilestoneRecord,
	docType entities.DocumentType,
) ([]entities.Milestone, []entities.ChangeOrderLineItem) {
	if docType == entities.DocumentTypeChangeOrder {
		return e.buildChangeOrder(saved)
	}
	return e.buildSchedule(set, saved, docType), nil
}

// buildChangeOrder emits the single initial-fee milestone plus one line item
// per saved change_order_item, in saved order. No other milestone types ever
// appear on a change order.
func (e *Engine) buildChangeOrder(saved []entities.MilestoneRecord) ([]entities.Milestone, []entities.ChangeOrderLineItem) {
	initialPrice := 0.0
	if p, ok := savedPrice(saved, entities.MilestoneTypeInitialFee, ""); ok {
		initialPrice = p
	}
	milestones := []entities.Milestone{{
		ID:            milestoneID(entities.MilestoneTypeInitialFee, "", 0),
		Name:          nameInitialFee,
		CostAmount:    0,
		CustomerPrice: initialPrice,
		MilestoneType: entities.MilestoneTypeInitialFee,
		SortOrder:     0,
	}}

	var items []entities.ChangeOrderLineItem
	for _, rec := range saved {
		if rec.MilestoneType != entities.MilestoneTypeChangeOrderItem {
			continue
		}
		price := 0.0
		if rec.CustomerPrice != nil {
			price = *rec.CustomerPrice
		}
		items = append(items, entities.ChangeOrderLineItem{
			ID:            freshLineItemID(),
			Name:          rec.Name,
			Description:   rec.Description,
			CostAmount:    rec.Cost,
			CustomerPrice: price,
		})
	}
	return milestones, items
}

// buildSchedule emits the contract/proposal milestone set in its fixed order:
// initial fee, one per subcontractor fee, equipment, materials, additional,
// final inspection. Conditional milestones are skipped without leaving gaps
// in the sort order.
func (e *Engine) buildSchedule(
	set entities.ExpenseSet,
	saved []entities.MilestoneRecord,
	docType entities.DocumentType,
) []entities.Milestone {
	var milestones []entities.Milestone
	emit := func(typ entities.MilestoneType, name string, cost, price float64, feeID string) {
		milestones = append(milestones, entities.Milestone{
			ID:                 milestoneID(typ, feeID, len(milestones)),
			Name:               name,
			CostAmount:         cost,
			CustomerPrice:      price,
			MilestoneType:      typ,
			SubcontractorFeeID: feeID,
			SortOrder:          len(milestones),
		})
	}

	initialName := nameInitialContractFee
	if docType == entities.DocumentTypeProposal {
		initialName = nameInitialSignFee
	}
	emit(entities.MilestoneTypeInitialFee, initialName, 0,
		priceOr(saved, entities.MilestoneTypeInitialFee, "", e.initialFee), "")

	for _, fee := range set.SubcontractorFees {
		emit(entities.MilestoneTypeSubcontractor, fee.Name, fee.Cost,
			priceOr(saved, entities.MilestoneTypeSubcontractor, fee.ID, fee.Cost), fee.ID)
	}

	if len(set.Equipment) > 0 {
		cost := sumCosts(set.Equipment)
		emit(entities.MilestoneTypeEquipment, nameEquipmentOrder, cost,
			priceOr(saved, entities.MilestoneTypeEquipment, "", cost), "")
	}

	if len(set.Materials) > 0 {
		cost := sumCosts(set.Materials)
		emit(entities.MilestoneTypeMaterials, nameMaterialOrder, cost,
			priceOr(saved, entities.MilestoneTypeMaterials, "", cost), "")
	}

	if cost := sumCosts(set.Additional); cost > 0 {
		emit(entities.MilestoneTypeAdditional, nameAdditionalFees, cost,
			priceOr(saved, entities.MilestoneTypeAdditional, "", cost), "")
	}

	emit(entities.MilestoneTypeFinalInspection, nameFinalInspection, 0,
		priceOr(saved, entities.MilestoneTypeFinalInspection, "", e.finalFee), "")

	return milestones
}

// savedPrice finds the first saved record of the given type and returns its
// customer price. For subcontractor milestones with a known fee id the record
// must reference the same fee. A stored zero is a real price; only a missing
// record or an absent/unparseable stored value reports no price.
func savedPrice(saved []entities.MilestoneRecord, typ entities.MilestoneType, feeID string) (float64, bool) {
	for _, rec := range saved {
		if rec.MilestoneType != typ {
			continue
		}
		if typ == entities.MilestoneTypeSubcontractor && feeID != "" {
			if rec.SubcontractorFeeID == nil || *rec.SubcontractorFeeID != feeID {
				continue
			}
		}
		if rec.CustomerPrice == nil {
			return 0, false
		}
		return *rec.CustomerPrice, true
	}
	return 0, false
}

func priceOr(saved []entities.MilestoneRecord, typ entities.MilestoneType, feeID string, fallback float64) float64 {
	if p, ok := savedPrice(saved, typ, feeID); ok {
		return p
	}
	return fallback
}

func sumCosts(lines []entities.CostLine) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Cost
	}
	return total
}

// milestoneID is deterministic per build so clients can address milestones
// across rebuilds. Singleton types use the type name alone; subcontractor
// milestones append the fee id (or the position when the fee has none).
func milestoneID(typ entities.MilestoneType, feeID string, position int) string {
	if typ != entities.MilestoneTypeSubcontractor {
		return string(typ)
	}
	if feeID != "" {
		return string(typ) + "-" + feeID
	}
	return string(typ) + "-" + strconv.Itoa(position)
}
