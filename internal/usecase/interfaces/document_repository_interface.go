package interfaces

import (
	"context"
	"tovyalla_billing/internal/domain/entities"
)

// IDocumentRepository abstracts DynamoDB persistence for GeneratedDocument.

type IDocumentRepository interface {
	Create(ctx context.Context, d entities.GeneratedDocument) (entities.GeneratedDocument, error)
	ListByProjectID(ctx context.Context, projectID string) ([]entities.GeneratedDocument, error)
}
