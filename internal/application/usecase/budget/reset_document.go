package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ResetDocumentInput represents the input for resetting a budget document.
type ResetDocumentInput struct {
	UserID uuid.UUID
}

// ResetDocumentOutput represents the output of resetting a budget document.
type ResetDocumentOutput struct {
	Document *entity.BudgetDocument
}

// ResetDocumentUseCase replaces the whole document with a fresh default seed.
// There is no partial delete.
type ResetDocumentUseCase struct {
	store adapter.BudgetStore
	cache adapter.SummaryCache
}

// NewResetDocumentUseCase creates a new ResetDocumentUseCase instance.
func NewResetDocumentUseCase(store adapter.BudgetStore, cache adapter.SummaryCache) *ResetDocumentUseCase {
	return &ResetDocumentUseCase{store: store, cache: cache}
}

// Execute performs the reset.
func (uc *ResetDocumentUseCase) Execute(ctx context.Context, input ResetDocumentInput) (*ResetDocumentOutput, error) {
	doc := entity.NewBudgetDocument()

	if err := uc.store.PutNow(ctx, input.UserID, doc); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, uc.cache, input.UserID)

	return &ResetDocumentOutput{Document: doc}, nil
}
