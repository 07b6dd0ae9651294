package request

import (
	"encoding/json"
	"strings"
)

// PriceEditRequest replaces one milestone's customer price. The value stays a
// raw string end to end; pricing substitutes 0 for anything unparseable.
type PriceEditRequest struct {
	MilestoneID   string `json:"milestone_id" binding:"required"`
	CustomerPrice string `json:"customer_price"`
}

// LineItemRequest is one change-order line item as edited in the session.
type LineItemRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	CostAmount    string `json:"cost_amount"`
	CustomerPrice string `json:"customer_price"`
}

// DocumentPreviewRequest carries the session's pending edits into a preview.
// A present line_items array replaces the set derived from the saved records;
// an absent one keeps it.
type DocumentPreviewRequest struct {
	PriceEdits []PriceEditRequest `json:"price_edits"`
	LineItems  []LineItemRequest  `json:"line_items"`
}

// DocumentGenerateRequest is the full generate payload. `context` is the
// opaque render context (company identity, project address) passed through
// to the document renderer as-is.
type DocumentGenerateRequest struct {
	PriceEdits     []PriceEditRequest `json:"price_edits"`
	LineItems      []LineItemRequest  `json:"line_items"`
	DocumentNumber string             `json:"document_number" binding:"required"`
	Context        json.RawMessage    `json:"context"`
}

func (r DocumentGenerateRequest) ResolveDocumentNumber() string {
	return strings.TrimSpace(r.DocumentNumber)
}
