package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetBudgetInput represents the input for retrieving a budget document.
type GetBudgetInput struct {
	UserID uuid.UUID
}

// GetBudgetOutput represents the output of retrieving a budget document.
type GetBudgetOutput struct {
	Document *entity.BudgetDocument
}

// GetBudgetUseCase loads a user's budget document, seeding the default on
// first access.
type GetBudgetUseCase struct {
	store adapter.BudgetStore
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(store adapter.BudgetStore) *GetBudgetUseCase {
	return &GetBudgetUseCase{store: store}
}

// Execute performs the document load.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	doc, err := loadOrSeed(ctx, uc.store, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetBudgetOutput{Document: doc}, nil
}
