package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
	Type   string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category entity.Category
}

// CreateCategoryUseCase handles category creation logic, including the
// free-tier quota.
type CreateCategoryUseCase struct {
	store    adapter.BudgetStore
	userRepo adapter.UserRepository
	cache    adapter.SummaryCache
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(
	store adapter.BudgetStore,
	userRepo adapter.UserRepository,
	cache adapter.SummaryCache,
) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		store:    store,
		userRepo: userRepo,
		cache:    cache,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	doc, err := loadOrSeed(ctx, uc.store, input.UserID)
	if err != nil {
		return nil, err
	}

	// Free accounts are capped; the quota check runs before any validation so
	// the limit message wins over name errors.
	if !user.IsPremium && len(doc.Categories) >= entity.FreeCategoryLimit {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeCategoryQuotaExceeded,
			fmt.Sprintf("free accounts are limited to %d categories", entity.FreeCategoryLimit),
			domainerror.ErrCategoryQuotaExceeded,
		)
	}

	name, err := validateCategoryName(doc, input.Name, "")
	if err != nil {
		return nil, err
	}
	if err := validateGroup(doc, input.Type); err != nil {
		return nil, err
	}

	category := entity.NewCategory(name, input.Type)
	doc.Categories = append(doc.Categories, category)
	doc.SortCategories()

	if err := uc.store.PutNow(ctx, input.UserID, doc); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, uc.cache, input.UserID)

	return &CreateCategoryOutput{Category: category}, nil
}
