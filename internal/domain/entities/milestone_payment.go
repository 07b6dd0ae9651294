package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// MilestonePayment is a customer payment collected against one milestone of a
// project's schedule (typically the initial fee deposit).
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (project_milestone-index): project_milestone = "<project_id>#<milestone_type>"
//
// Provider payload:
//   - ProviderPayloadRaw keeps the original body (JSON) for traceability/audit.
//   - ProviderPayload is an optional parsed representation, useful for
//     querying/debugging. Both are persisted because provider schemas vary.

type MilestonePayment struct {
	ID            string        `json:"id"`
	ProjectID     string        `json:"project_id"`
	MilestoneType MilestoneType `json:"milestone_type"`
	Date          time.Time     `json:"date"`
	Status        PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
