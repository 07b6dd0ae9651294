package pricing

import (
	"testing"

	"tovyalla_billing/internal/domain/entities"
)

func feeID(id string) *string { return &id }

func price(v float64) *float64 { return &v }

func TestEngine_BuildContractEmissionOrder(t *testing.T) {
	eng := NewEngine()

	set := entities.ExpenseSet{
		SubcontractorFees: []entities.SubcontractorFee{
			{ID: "fee-1", Name: "Excavation", Cost: 2000},
			{ID: "fee-2", Name: "Plumbing", Cost: 1500},
		},
		Equipment:  []entities.CostLine{{ID: "eq-1", Cost: 500}},
		Materials:  []entities.CostLine{{ID: "mat-1", Cost: 300}},
		Additional: []entities.CostLine{{ID: "add-1", Cost: 100}},
	}

	milestones, items := eng.Build(set, nil, entities.DocumentTypeContract)
	if items != nil {
		t.Fatalf("expected no line items for contract, got %v", items)
	}

	wantTypes := []entities.MilestoneType{
		entities.MilestoneTypeInitialFee,
		entities.MilestoneTypeSubcontractor,
		entities.MilestoneTypeSubcontractor,
		entities.MilestoneTypeEquipment,
		entities.MilestoneTypeMaterials,
		entities.MilestoneTypeAdditional,
		entities.MilestoneTypeFinalInspection,
	}
	if len(milestones) != len(wantTypes) {
		t.Fatalf("expected %d milestones, got %d", len(wantTypes), len(milestones))
	}
	for i, m := range milestones {
		if m.MilestoneType != wantTypes[i] {
			t.Fatalf("position %d: expected %s, got %s", i, wantTypes[i], m.MilestoneType)
		}
		if m.SortOrder != i {
			t.Fatalf("position %d: expected dense sort order %d, got %d", i, i, m.SortOrder)
		}
	}
	if milestones[0].Name != "Initial Contract Fee" {
		t.Fatalf("unexpected initial fee name %q", milestones[0].Name)
	}
	if milestones[1].SubcontractorFeeID != "fee-1" || milestones[2].SubcontractorFeeID != "fee-2" {
		t.Fatalf("subcontractor milestones not in fee order: %+v", milestones[1:3])
	}
}

func TestEngine_BuildSkipsConditionalMilestonesWithoutGaps(t *testing.T) {
	eng := NewEngine()

	// No equipment, no materials, additional sums to zero.
	set := entities.ExpenseSet{
		SubcontractorFees: []entities.SubcontractorFee{{ID: "fee-1", Name: "Decking", Cost: 800}},
		Additional:        []entities.CostLine{{ID: "add-1", Cost: 0}},
	}

	milestones, _ := eng.Build(set, nil, entities.DocumentTypeContract)

	wantTypes := []entities.MilestoneType{
		entities.MilestoneTypeInitialFee,
		entities.MilestoneTypeSubcontractor,
		entities.MilestoneTypeFinalInspection,
	}
	if len(milestones) != len(wantTypes) {
		t.Fatalf("expected %d milestones, got %d: %+v", len(wantTypes), len(milestones), milestones)
	}
	for i, m := range milestones {
		if m.MilestoneType != wantTypes[i] || m.SortOrder != i {
			t.Fatalf("position %d: got type=%s sort=%d", i, m.MilestoneType, m.SortOrder)
		}
	}
}

func TestEngine_BuildProposalInitialFeeName(t *testing.T) {
	eng := NewEngine()
	milestones, _ := eng.Build(entities.ExpenseSet{}, nil, entities.DocumentTypeProposal)
	if milestones[0].Name != "Initial Sign Fee" {
		t.Fatalf("expected Initial Sign Fee, got %q", milestones[0].Name)
	}
}

func TestEngine_PriceCarryForward(t *testing.T) {
	eng := NewEngine()

	set := entities.ExpenseSet{
		SubcontractorFees: []entities.SubcontractorFee{{ID: "fee-x", Name: "Tile", Cost: 2000}},
	}
	saved := []entities.MilestoneRecord{
		{MilestoneType: entities.MilestoneTypeSubcontractor, SubcontractorFeeID: feeID("fee-x"), Name: "Tile", CustomerPrice: price(500)},
	}

	milestones, _ := eng.Build(set, saved, entities.DocumentTypeContract)
	sub := milestones[1]
	if sub.CustomerPrice != 500 {
		t.Fatalf("expected saved price 500 carried forward, got %v", sub.CustomerPrice)
	}
	if sub.CostAmount != 2000 {
		t.Fatalf("cost must always track the expense records, got %v", sub.CostAmount)
	}
}

func TestEngine_PriceCarryForwardRequiresMatchingFeeID(t *testing.T) {
	eng := NewEngine()

	set := entities.ExpenseSet{
		SubcontractorFees: []entities.SubcontractorFee{{ID: "fee-b", Name: "Coping", Cost: 900}},
	}
	saved := []entities.MilestoneRecord{
		{MilestoneType: entities.MilestoneTypeSubcontractor, SubcontractorFeeID: feeID("fee-a"), CustomerPrice: price(123)},
	}

	milestones, _ := eng.Build(set, saved, entities.DocumentTypeContract)
	if milestones[1].CustomerPrice != 900 {
		t.Fatalf("record for another fee must not match; expected cost fallback 900, got %v", milestones[1].CustomerPrice)
	}
}

func TestEngine_SavedZeroPriceIsPreserved(t *testing.T) {
	eng := NewEngine()

	saved := []entities.MilestoneRecord{
		{MilestoneType: entities.MilestoneTypeInitialFee, CustomerPrice: price(0)},
	}

	milestones, _ := eng.Build(entities.ExpenseSet{}, saved, entities.DocumentTypeContract)
	if milestones[0].CustomerPrice != 0 {
		t.Fatalf("a saved 0 is a real price; expected 0, got %v", milestones[0].CustomerPrice)
	}
}

func TestEngine_NilSavedPriceFallsBackToDefault(t *testing.T) {
	eng := NewEngineWithDefaults(1500, 750)

	saved := []entities.MilestoneRecord{
		{MilestoneType: entities.MilestoneTypeInitialFee, CustomerPrice: nil},
	}

	milestones, _ := eng.Build(entities.ExpenseSet{}, saved, entities.DocumentTypeContract)
	if milestones[0].CustomerPrice != 1500 {
		t.Fatalf("absent stored value must fall back to the default, got %v", milestones[0].CustomerPrice)
	}
	last := milestones[len(milestones)-1]
	if last.CustomerPrice != 750 {
		t.Fatalf("expected final inspection default 750, got %v", last.CustomerPrice)
	}
}

func TestEngine_EquipmentCostIsStraightSum(t *testing.T) {
	eng := NewEngine()

	set := entities.ExpenseSet{
		Equipment: []entities.CostLine{{ID: "eq-1", Cost: 500}, {ID: "eq-2", Cost: 250.5}},
	}

	milestones, _ := eng.Build(set, nil, entities.DocumentTypeContract)
	var equip *entities.Milestone
	for i := range milestones {
		if milestones[i].MilestoneType == entities.MilestoneTypeEquipment {
			equip = &milestones[i]
		}
	}
	if equip == nil {
		t.Fatalf("expected equipment milestone")
	}
	if equip.CostAmount != 750.5 {
		t.Fatalf("expected summed cost 750.5, got %v", equip.CostAmount)
	}
	if equip.Name != "Equipment Order" {
		t.Fatalf("unexpected name %q", equip.Name)
	}
}

func TestEngine_ChangeOrderIsolation(t *testing.T) {
	eng := NewEngine()

	// A fully loaded expense set must not leak into a change order.
	set := entities.ExpenseSet{
		SubcontractorFees: []entities.SubcontractorFee{{ID: "fee-1", Name: "Excavation", Cost: 2000}},
		Equipment:         []entities.CostLine{{ID: "eq-1", Cost: 500}},
		Materials:         []entities.CostLine{{ID: "mat-1", Cost: 300}},
		Additional:        []entities.CostLine{{ID: "add-1", Cost: 100}},
	}

	milestones, _ := eng.Build(set, nil, entities.DocumentTypeChangeOrder)
	if len(milestones) != 1 {
		t.Fatalf("expected only the initial fee milestone, got %d", len(milestones))
	}
	if milestones[0].MilestoneType != entities.MilestoneTypeInitialFee {
		t.Fatalf("expected initial_fee, got %s", milestones[0].MilestoneType)
	}
	if milestones[0].Name != "Initial Fee" || milestones[0].CustomerPrice != 0 {
		t.Fatalf("change-order initial fee defaults to 0, got %+v", milestones[0])
	}
}

func TestEngine_ChangeOrderLoadsSavedLineItems(t *testing.T) {
	eng := NewEngine()

	saved := []entities.MilestoneRecord{
		{MilestoneType: entities.MilestoneTypeChangeOrderItem, Name: "Extra tile", Description: "Glass tile upgrade", Cost: 300, CustomerPrice: price(450)},
		{MilestoneType: entities.MilestoneTypeChangeOrderItem, Name: "Heater", Cost: 900, CustomerPrice: price(1200)},
	}

	milestones, items := eng.Build(entities.ExpenseSet{}, saved, entities.DocumentTypeChangeOrder)
	if len(milestones) != 1 {
		t.Fatalf("expected only the initial fee milestone, got %d", len(milestones))
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}
	first := items[0]
	if first.Name != "Extra tile" || first.Description != "Glass tile upgrade" || first.CostAmount != 300 || first.CustomerPrice != 450 {
		t.Fatalf("unexpected line item: %+v", first)
	}
	if items[0].ID == "" || items[1].ID == "" || items[0].ID == items[1].ID {
		t.Fatalf("line items need unique non-empty ids: %q %q", items[0].ID, items[1].ID)
	}
}

func TestEngine_SaveReloadRoundTrip(t *testing.T) {
	eng := NewEngine()

	set := entities.ExpenseSet{
		SubcontractorFees: []entities.SubcontractorFee{{ID: "fee-1", Name: "Excavation", Cost: 2000}},
		Equipment:         []entities.CostLine{{ID: "eq-1", Cost: 500}},
		Materials:         []entities.CostLine{{ID: "mat-1", Cost: 300}},
	}

	milestones, _ := eng.Build(set, nil, entities.DocumentTypeContract)
	milestones = SetCustomerPrice(milestones, "equipment", "725.25")

	records := ToRecords(milestones, nil, entities.DocumentTypeContract)
	rebuilt, _ := eng.Build(set, records, entities.DocumentTypeContract)

	if len(rebuilt) != len(milestones) {
		t.Fatalf("expected %d milestones after reload, got %d", len(milestones), len(rebuilt))
	}
	for i := range milestones {
		if rebuilt[i].CustomerPrice != milestones[i].CustomerPrice {
			t.Fatalf("milestone %s: price %v did not survive save/reload, got %v",
				milestones[i].MilestoneType, milestones[i].CustomerPrice, rebuilt[i].CustomerPrice)
		}
	}
}

func TestEngine_ScenarioContract(t *testing.T) {
	eng := NewEngine()

	set := entities.ExpenseSet{
		SubcontractorFees: []entities.SubcontractorFee{{ID: "fee-1", Name: "Excavation", Cost: 2000}},
		Equipment:         []entities.CostLine{{ID: "eq-1", Cost: 500}},
	}

	milestones, _ := eng.Build(set, nil, entities.DocumentTypeContract)

	want := []struct {
		typ  entities.MilestoneType
		cost float64
		cp   float64
	}{
		{entities.MilestoneTypeInitialFee, 0, 1000},
		{entities.MilestoneTypeSubcontractor, 2000, 2000},
		{entities.MilestoneTypeEquipment, 500, 500},
		{entities.MilestoneTypeFinalInspection, 0, 1000},
	}
	if len(milestones) != len(want) {
		t.Fatalf("expected %d milestones, got %d: %+v", len(want), len(milestones), milestones)
	}
	for i, w := range want {
		m := milestones[i]
		if m.MilestoneType != w.typ || m.CostAmount != w.cost || m.CustomerPrice != w.cp {
			t.Fatalf("position %d: expected %s cost=%v cp=%v, got %+v", i, w.typ, w.cost, w.cp, m)
		}
	}

	totals := ComputeTotals(milestones, nil, entities.DocumentTypeContract)
	if totals.TotalCost != 2500 || totals.TotalCustomerPrice != 4500 || totals.Profit != 2000 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}

func TestEngine_ScenarioChangeOrder(t *testing.T) {
	eng := NewEngine()

	saved := []entities.MilestoneRecord{
		{MilestoneType: entities.MilestoneTypeChangeOrderItem, Name: "Extra tile", Cost: 300, CustomerPrice: price(450)},
	}

	milestones, items := eng.Build(entities.ExpenseSet{}, saved, entities.DocumentTypeChangeOrder)
	if len(milestones) != 1 || milestones[0].CustomerPrice != 0 {
		t.Fatalf("expected single zero-priced initial fee, got %+v", milestones)
	}
	if len(items) != 1 || items[0].Name != "Extra tile" || items[0].CostAmount != 300 || items[0].CustomerPrice != 450 {
		t.Fatalf("unexpected line items: %+v", items)
	}

	totals := ComputeTotals(milestones, items, entities.DocumentTypeChangeOrder)
	if totals.TotalCustomerPrice != 450 || totals.TotalCost != 300 || totals.Profit != 150 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}
