package interfaces

import (
	"context"
	"tovyalla_billing/internal/domain/entities"
)

// IMilestonePaymentRepository abstracts DynamoDB persistence for MilestonePayment.

type IMilestonePaymentRepository interface {
	Create(ctx context.Context, p entities.MilestonePayment) (entities.MilestonePayment, error)
	GetByID(ctx context.Context, id string) (entities.MilestonePayment, error)
	ListByProjectMilestone(ctx context.Context, projectID string, milestoneType entities.MilestoneType) ([]entities.MilestonePayment, error)
}
