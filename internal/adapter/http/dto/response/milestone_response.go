package response

import (
	"tovyalla_billing/internal/domain/entities"
)

type MilestoneRecordResponse struct {
	MilestoneType      string   `json:"milestone_type"`
	SubcontractorFeeID *string  `json:"subcontractor_fee_id,omitempty"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	Cost               float64  `json:"cost"`
	CustomerPrice      *float64 `json:"customer_price"`
}

type MilestoneListResponse struct {
	ProjectID  string                    `json:"project_id"`
	Milestones []MilestoneRecordResponse `json:"milestones"`
}

func FromMilestoneRecords(projectID string, records []entities.MilestoneRecord) MilestoneListResponse {
	out := make([]MilestoneRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, MilestoneRecordResponse{
			MilestoneType:      string(r.MilestoneType),
			SubcontractorFeeID: r.SubcontractorFeeID,
			Name:               r.Name,
			Description:        r.Description,
			Cost:               r.Cost,
			CustomerPrice:      r.CustomerPrice,
		})
	}
	return MilestoneListResponse{ProjectID: projectID, Milestones: out}
}
