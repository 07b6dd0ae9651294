package interfaces

import (
	"context"
	"tovyalla_billing/internal/domain/entities"
)

// IExpenseSource abstracts the project-management API that owns expense
// records. The adapter behind it normalizes the API's loosely shaped JSON
// (expected_value vs flat_fee vs expected_price vs amount) into ExpenseSet,
// so pricing only ever sees a cost per line.
type IExpenseSource interface {
	FetchProjectExpenses(ctx context.Context, projectID string) (entities.ProjectExpenses, error)
}
