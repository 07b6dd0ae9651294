package interfaces

import (
	"context"
	"tovyalla_billing/internal/domain/entities"
)

// IMilestoneRepository abstracts DynamoDB persistence for MilestoneRecord.
//
// Records are always written as a whole set per project: ReplaceForProject is
// a total overwrite of whatever was stored before, never a merge. That is the
// contract the pricing rebuild relies on.

type IMilestoneRepository interface {
	ListByProjectID(ctx context.Context, projectID string) ([]entities.MilestoneRecord, error)
	ReplaceForProject(ctx context.Context, projectID string, records []entities.MilestoneRecord) error
}
