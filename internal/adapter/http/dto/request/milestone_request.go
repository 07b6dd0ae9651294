package request

import (
	"tovyalla_billing/internal/domain/entities"
)

// MilestoneRecordRequest is one persisted milestone record as accepted by the
// replace endpoint. CustomerPrice is a pointer on purpose: null means "no
// saved price", while 0 is a real price that survives rebuilds.
type MilestoneRecordRequest struct {
	MilestoneType      string   `json:"milestone_type" binding:"required"`
	SubcontractorFeeID *string  `json:"subcontractor_fee_id"`
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Cost               float64  `json:"cost"`
	CustomerPrice      *float64 `json:"customer_price"`
}

// MilestonesReplaceRequest is the PUT body that fully overwrites a project's
// saved milestone set.
type MilestonesReplaceRequest struct {
	Milestones []MilestoneRecordRequest `json:"milestones" binding:"required"`
}

func (r MilestonesReplaceRequest) ResolveRecords() []entities.MilestoneRecord {
	records := make([]entities.MilestoneRecord, 0, len(r.Milestones))
	for _, m := range r.Milestones {
		records = append(records, entities.MilestoneRecord{
			MilestoneType:      entities.MilestoneType(m.MilestoneType),
			SubcontractorFeeID: m.SubcontractorFeeID,
			Name:               m.Name,
			Description:        m.Description,
			Cost:               m.Cost,
			CustomerPrice:      m.CustomerPrice,
		})
	}
	return records
}
