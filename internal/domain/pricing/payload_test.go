package pricing

import (
	"testing"

	"tovyalla_billing/internal/domain/entities"
)

func TestComputeTotals_ProfitConsistencyAndMargin(t *testing.T) {
	ms := []entities.Milestone{
		{MilestoneType: entities.MilestoneTypeInitialFee, CostAmount: 0, CustomerPrice: 1000},
		{MilestoneType: entities.MilestoneTypeSubcontractor, CostAmount: 2000, CustomerPrice: 2600},
	}

	totals := ComputeTotals(ms, nil, entities.DocumentTypeContract)
	if totals.Profit != totals.TotalCustomerPrice-totals.TotalCost {
		t.Fatalf("profit must equal price minus cost: %+v", totals)
	}
	if got := totals.Margin(); got != 30 {
		t.Fatalf("expected margin 30, got %v", got)
	}

	zero := ComputeTotals(nil, nil, entities.DocumentTypeContract)
	if got := zero.Margin(); got != 0 {
		t.Fatalf("margin must be 0 when there is no cost, got %v", got)
	}
}

func TestComputeTotals_ChangeOrderMissingInitialFee(t *testing.T) {
	items := []entities.ChangeOrderLineItem{{ID: "a", CostAmount: 300, CustomerPrice: 450}}

	totals := ComputeTotals(nil, items, entities.DocumentTypeChangeOrder)
	if totals.TotalCost != 300 || totals.TotalCustomerPrice != 450 || totals.Profit != 150 {
		t.Fatalf("missing initial fee must count as zero: %+v", totals)
	}
}

func TestToRecords_Contract(t *testing.T) {
	ms := []entities.Milestone{
		{MilestoneType: entities.MilestoneTypeFinalInspection, Name: "Final Inspection", CustomerPrice: 1000, SortOrder: 2},
		{MilestoneType: entities.MilestoneTypeInitialFee, Name: "Initial Contract Fee", CustomerPrice: 1000, SortOrder: 0},
		{MilestoneType: entities.MilestoneTypeSubcontractor, SubcontractorFeeID: "fee-1", Name: "Excavation", CostAmount: 2000, CustomerPrice: 2500, SortOrder: 1},
	}

	records := ToRecords(ms, nil, entities.DocumentTypeContract)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].MilestoneType != entities.MilestoneTypeInitialFee ||
		records[1].MilestoneType != entities.MilestoneTypeSubcontractor ||
		records[2].MilestoneType != entities.MilestoneTypeFinalInspection {
		t.Fatalf("records must follow sort order: %+v", records)
	}
	sub := records[1]
	if sub.SubcontractorFeeID == nil || *sub.SubcontractorFeeID != "fee-1" {
		t.Fatalf("expected fee id pointer, got %+v", sub.SubcontractorFeeID)
	}
	if records[0].SubcontractorFeeID != nil {
		t.Fatalf("non-subcontractor records carry a nil fee id")
	}
	if sub.CustomerPrice == nil || *sub.CustomerPrice != 2500 {
		t.Fatalf("expected customer price 2500, got %+v", sub.CustomerPrice)
	}
}

func TestToRecords_ChangeOrder(t *testing.T) {
	ms := []entities.Milestone{
		{MilestoneType: entities.MilestoneTypeInitialFee, Name: "Initial Fee", CustomerPrice: 200},
	}
	items := []entities.ChangeOrderLineItem{
		{ID: "a", Name: "Extra tile", Description: "Glass", CostAmount: 300, CustomerPrice: 450},
		{ID: "b", Name: "", CostAmount: 10, CustomerPrice: 20},
	}

	records := ToRecords(ms, items, entities.DocumentTypeChangeOrder)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].MilestoneType != entities.MilestoneTypeInitialFee {
		t.Fatalf("first record must be the initial fee: %+v", records[0])
	}
	if records[1].Name != "Extra tile" || records[1].Description != "Glass" {
		t.Fatalf("unexpected record: %+v", records[1])
	}
	if records[2].Name != "Change Order Item" {
		t.Fatalf("unnamed items get the fallback name, got %q", records[2].Name)
	}
	for _, r := range records[1:] {
		if r.MilestoneType != entities.MilestoneTypeChangeOrderItem {
			t.Fatalf("expected change_order_item, got %s", r.MilestoneType)
		}
	}
}

func TestBuildRenderPayload_Contract(t *testing.T) {
	ms := []entities.Milestone{
		{MilestoneType: entities.MilestoneTypeFinalInspection, Name: "Final Inspection", CustomerPrice: 1000, SortOrder: 1},
		{MilestoneType: entities.MilestoneTypeInitialFee, Name: "Initial Contract Fee", CustomerPrice: 1000, SortOrder: 0},
	}

	p := BuildRenderPayload(ms, nil, entities.DocumentTypeContract)
	if len(p.Schedule) != 2 {
		t.Fatalf("expected 2 schedule lines, got %d", len(p.Schedule))
	}
	if p.Schedule[0].Description != "Initial Contract Fee" || p.Schedule[1].Description != "Final Inspection" {
		t.Fatalf("schedule must follow sort order: %+v", p.Schedule)
	}
	if p.GrandTotal != 2000 {
		t.Fatalf("expected grand total 2000, got %v", p.GrandTotal)
	}
}

func TestBuildRenderPayload_ProposalShowsOnlyInitialFee(t *testing.T) {
	eng := NewEngine()

	set := entities.ExpenseSet{
		SubcontractorFees: []entities.SubcontractorFee{{ID: "fee-1", Name: "Excavation", Cost: 2000}},
		Equipment:         []entities.CostLine{{ID: "eq-1", Cost: 500}},
	}
	milestones, _ := eng.Build(set, nil, entities.DocumentTypeProposal)

	p := BuildRenderPayload(milestones, nil, entities.DocumentTypeProposal)
	if len(p.Schedule) != 2 {
		t.Fatalf("expected initial fee + balance line, got %+v", p.Schedule)
	}
	if p.Schedule[0].Description != "Initial Sign Fee" || p.Schedule[0].Amount != 1000 {
		t.Fatalf("unexpected first line: %+v", p.Schedule[0])
	}
	if p.Schedule[1].Description != "Balance of schedule will be provided with contract" || p.Schedule[1].Amount != 0 {
		t.Fatalf("unexpected balance line: %+v", p.Schedule[1])
	}
	// Grand total still reflects the full underlying schedule.
	if p.GrandTotal != 4500 {
		t.Fatalf("expected grand total 4500, got %v", p.GrandTotal)
	}
}

func TestBuildRenderPayload_ChangeOrderFiltersUnnamedAndUnpriced(t *testing.T) {
	ms := []entities.Milestone{
		{MilestoneType: entities.MilestoneTypeInitialFee, Name: "Initial Fee", CustomerPrice: 100},
	}
	items := []entities.ChangeOrderLineItem{
		{ID: "a", Name: "Extra tile", CustomerPrice: 450},
		{ID: "b", Name: "", CustomerPrice: 20},
		{ID: "c", Name: "Heater", CustomerPrice: 0},
	}

	p := BuildRenderPayload(ms, items, entities.DocumentTypeChangeOrder)
	// initial fee + only the named, priced item + balance line
	if len(p.Schedule) != 3 {
		t.Fatalf("expected 3 schedule lines, got %+v", p.Schedule)
	}
	if p.Schedule[1].Description != "Extra tile" || p.Schedule[1].Amount != 450 {
		t.Fatalf("unexpected line: %+v", p.Schedule[1])
	}
	// Grand total counts every item, filtered or not.
	if p.GrandTotal != 570 {
		t.Fatalf("expected grand total 570, got %v", p.GrandTotal)
	}
}

func TestBuildRenderPayload_MissingInitialFeeDegrades(t *testing.T) {
	p := BuildRenderPayload(nil, nil, entities.DocumentTypeChangeOrder)
	if p.Schedule[0].Amount != 0 || p.GrandTotal != 0 {
		t.Fatalf("missing initial fee must degrade to zero: %+v", p)
	}
}
