package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID string
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct{}

// DeleteCategoryUseCase removes a category and every expense it recorded.
type DeleteCategoryUseCase struct {
	store adapter.BudgetStore
	cache adapter.SummaryCache
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(store adapter.BudgetStore, cache adapter.SummaryCache) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{store: store, cache: cache}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	doc, err := loadOrSeed(ctx, uc.store, input.UserID)
	if err != nil {
		return nil, err
	}

	if !doc.RemoveCategory(input.CategoryID) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if err := uc.store.PutNow(ctx, input.UserID, doc); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, uc.cache, input.UserID)

	return &DeleteCategoryOutput{}, nil
}
