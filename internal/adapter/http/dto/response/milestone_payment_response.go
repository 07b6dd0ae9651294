package response

import (
	"time"

	"tovyalla_billing/internal/domain/entities"
)

type MilestonePaymentResponse struct {
	PaymentID     string    `json:"payment_id"`
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	MilestoneType string    `json:"milestone_type"`
	PaymentDate   time.Time `json:"payment_date"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromMilestonePayment(p entities.MilestonePayment) MilestonePaymentResponse {
	return MilestonePaymentResponse{
		PaymentID:          p.ID,
		ID:                 p.ID,
		ProjectID:          p.ProjectID,
		MilestoneType:      string(p.MilestoneType),
		PaymentDate:        p.Date,
		Date:               p.Date,
		Status:             string(p.Status),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		ProviderPayload:    p.ProviderPayload,
	}
}
