package entities

import (
	"strings"
	"time"
)

// DocumentType selects which customer-facing document a milestone schedule is
// built for. Contracts and proposals share the full schedule; change orders
// carry only the initial fee plus free-form line items.

type DocumentType string

const (
	DocumentTypeContract    DocumentType = "contract"
	DocumentTypeProposal    DocumentType = "proposal"
	DocumentTypeChangeOrder DocumentType = "change_order"
)

// ParseDocumentType normalizes a raw value into a DocumentType. The second
// return is false for values outside the known set.
func ParseDocumentType(raw string) (DocumentType, bool) {
	switch DocumentType(strings.ToLower(strings.TrimSpace(raw))) {
	case DocumentTypeContract:
		return DocumentTypeContract, true
	case DocumentTypeProposal:
		return DocumentTypeProposal, true
	case DocumentTypeChangeOrder:
		return DocumentTypeChangeOrder, true
	}
	return "", false
}

// GeneratedDocument records one rendered contract/proposal/change order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (project_id-index): project_id
type GeneratedDocument struct {
	ID             string       `json:"id"`
	ProjectID      string       `json:"project_id"`
	DocumentType   DocumentType `json:"document_type"`
	DocumentNumber string       `json:"document_number"`
	FileURL        string       `json:"file_url"`
	GrandTotal     float64      `json:"grand_total"`
	CreatedAt      time.Time    `json:"created_at"`
}
