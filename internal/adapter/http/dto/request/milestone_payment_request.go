package request

import "encoding/json"

// MilestonePaymentCreateRequest is the payload for collecting a milestone
// deposit.
//
// `provider_payload` is stored as-is (raw JSON) to support varying payment
// provider schemas.

type MilestonePaymentCreateRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
