package entities

import "encoding/json"

// The expense API stores costs under different field names per category
// (expected_value, flat_fee, expected_price, actual_price, amount). The
// expense adapter resolves those into the normalized shapes below, so pricing
// only ever sees a cost per line.

// SubcontractorFee is one normalized subcontractor fee record.
type SubcontractorFee struct {
	ID   string
	Name string
	Cost float64
}

// CostLine is one normalized equipment/materials/additional expense record.
// Cost is the stored extended total for the line, not a unit price.
type CostLine struct {
	ID   string
	Cost float64
}

// ExpenseSet holds a project's normalized expense records, in API order.
type ExpenseSet struct {
	SubcontractorFees []SubcontractorFee
	Equipment         []CostLine
	Materials         []CostLine
	Additional        []CostLine
}

// ProjectExpenses is what the expense source returns for a project: the
// normalized expense records plus the raw project blob (address, customer,
// company fields) passed through opaquely to document rendering.
type ProjectExpenses struct {
	Expenses ExpenseSet
	Project  json.RawMessage
}
