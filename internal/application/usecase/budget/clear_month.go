package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ClearMonthInput represents the input for the bulk-zero month operation.
type ClearMonthInput struct {
	UserID     uuid.UUID
	MonthIndex int
}

// ClearMonthOutput represents the output of the clear-month operation.
type ClearMonthOutput struct{}

// ClearMonthUseCase zeroes a whole month. Premium-only.
type ClearMonthUseCase struct {
	store    adapter.BudgetStore
	userRepo adapter.UserRepository
	cache    adapter.SummaryCache
}

// NewClearMonthUseCase creates a new ClearMonthUseCase instance.
func NewClearMonthUseCase(
	store adapter.BudgetStore,
	userRepo adapter.UserRepository,
	cache adapter.SummaryCache,
) *ClearMonthUseCase {
	return &ClearMonthUseCase{store: store, userRepo: userRepo, cache: cache}
}

// Execute performs the clear-month operation.
func (uc *ClearMonthUseCase) Execute(ctx context.Context, input ClearMonthInput) (*ClearMonthOutput, error) {
	if input.MonthIndex < 0 || input.MonthIndex >= entity.MonthCount {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonthIndex,
			"month index must be between 0 and 11",
			domainerror.ErrInvalidMonthIndex,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsPremium {
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodePremiumRequired,
			"clearing a whole month requires a premium account",
			domainerror.ErrPremiumRequired,
		)
	}

	doc, err := loadOrSeed(ctx, uc.store, input.UserID)
	if err != nil {
		return nil, err
	}

	doc.ClearMonth(input.MonthIndex)

	if err := uc.store.PutNow(ctx, input.UserID, doc); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, uc.cache, input.UserID)

	return &ClearMonthOutput{}, nil
}
