package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID string
	Name       string
	Type       string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category entity.Category
}

// UpdateCategoryUseCase handles renaming and regrouping a category.
type UpdateCategoryUseCase struct {
	store adapter.BudgetStore
	cache adapter.SummaryCache
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(store adapter.BudgetStore, cache adapter.SummaryCache) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{store: store, cache: cache}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	doc, err := loadOrSeed(ctx, uc.store, input.UserID)
	if err != nil {
		return nil, err
	}

	category, ok := doc.CategoryByID(input.CategoryID)
	if !ok {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	name, err := validateCategoryName(doc, input.Name, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := validateGroup(doc, input.Type); err != nil {
		return nil, err
	}

	category.Name = name
	category.Type = input.Type
	doc.SortCategories()

	if err := uc.store.PutNow(ctx, input.UserID, doc); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, uc.cache, input.UserID)

	updated, _ := doc.CategoryByID(input.CategoryID)
	return &UpdateCategoryOutput{Category: *updated}, nil
}
