package pricing

import (
	"testing"

	"tovyalla_billing/internal/domain/entities"
)

func TestSetCustomerPrice(t *testing.T) {
	ms := []entities.Milestone{
		{ID: "initial_fee", CustomerPrice: 1000},
		{ID: "equipment", CustomerPrice: 500},
	}

	t.Run("replaces only the target", func(t *testing.T) {
		out := SetCustomerPrice(ms, "equipment", "650.75")
		if out[1].CustomerPrice != 650.75 {
			t.Fatalf("expected 650.75, got %v", out[1].CustomerPrice)
		}
		if out[0].CustomerPrice != 1000 {
			t.Fatalf("non-targeted milestone changed: %v", out[0].CustomerPrice)
		}
		if ms[1].CustomerPrice != 500 {
			t.Fatalf("input slice mutated: %v", ms[1].CustomerPrice)
		}
	})

	t.Run("unparseable value becomes zero", func(t *testing.T) {
		out := SetCustomerPrice(ms, "equipment", "abc")
		if out[1].CustomerPrice != 0 {
			t.Fatalf("expected 0, got %v", out[1].CustomerPrice)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		out := SetCustomerPrice(ms, "missing", "99")
		for i := range ms {
			if out[i] != ms[i] {
				t.Fatalf("milestone %d changed: %+v", i, out[i])
			}
		}
	})
}

func TestLineItemCRUD(t *testing.T) {
	t.Run("add appends a fresh empty item", func(t *testing.T) {
		items := AddLineItem(nil)
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		it := items[0]
		if it.ID == "" || it.Name != "" || it.Description != "" || it.CostAmount != 0 || it.CustomerPrice != 0 {
			t.Fatalf("unexpected fresh item: %+v", it)
		}
	})

	t.Run("ids stay unique across add and remove", func(t *testing.T) {
		items := AddLineItem(AddLineItem(nil))
		first := items[0].ID
		items = RemoveLineItem(items, first)
		items = AddLineItem(items)
		seen := map[string]bool{}
		for _, it := range items {
			if it.ID == first || seen[it.ID] {
				t.Fatalf("id reused: %q", it.ID)
			}
			seen[it.ID] = true
		}
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		items := AddLineItem(nil)
		id := items[0].ID
		items = RemoveLineItem(items, id)
		items = RemoveLineItem(items, id)
		if len(items) != 0 {
			t.Fatalf("expected empty set, got %d", len(items))
		}
	})

	t.Run("update string and numeric fields", func(t *testing.T) {
		items := AddLineItem(nil)
		id := items[0].ID

		items = UpdateLineItem(items, id, "name", "Extra tile")
		items = UpdateLineItem(items, id, "description", " glass ")
		items = UpdateLineItem(items, id, "cost_amount", "300")
		items = UpdateLineItem(items, id, "customer_price", "not-a-number")

		it := items[0]
		if it.Name != "Extra tile" || it.Description != " glass " {
			t.Fatalf("string fields must store raw input: %+v", it)
		}
		if it.CostAmount != 300 {
			t.Fatalf("expected cost 300, got %v", it.CostAmount)
		}
		if it.CustomerPrice != 0 {
			t.Fatalf("unparseable amount must become 0, got %v", it.CustomerPrice)
		}
	})
}
