package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
)

// SetCellValueInput represents the input for a single cell edit. An empty
// CategoryID addresses the month's income cell.
type SetCellValueInput struct {
	UserID     uuid.UUID
	MonthIndex int
	CategoryID string
	RawValue   string
}

// SetCellValueOutput represents the output of a cell edit.
type SetCellValueOutput struct {
	ParsedValue float64
}

// SetCellValueUseCase parses and stores one income or expense cell. The
// resulting write is debounced: bursts of edits collapse into one save.
type SetCellValueUseCase struct {
	store adapter.BudgetStore
	cache adapter.SummaryCache
}

// NewSetCellValueUseCase creates a new SetCellValueUseCase instance.
func NewSetCellValueUseCase(store adapter.BudgetStore, cache adapter.SummaryCache) *SetCellValueUseCase {
	return &SetCellValueUseCase{store: store, cache: cache}
}

// Execute performs the cell edit.
func (uc *SetCellValueUseCase) Execute(ctx context.Context, input SetCellValueInput) (*SetCellValueOutput, error) {
	if input.MonthIndex < 0 || input.MonthIndex >= entity.MonthCount {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonthIndex,
			"month index must be between 0 and 11",
			domainerror.ErrInvalidMonthIndex,
		)
	}

	doc, err := loadOrSeed(ctx, uc.store, input.UserID)
	if err != nil {
		return nil, err
	}

	parsed := valueobject.ParseAmount(input.RawValue)

	if input.CategoryID == "" {
		doc.Months[input.MonthIndex].Income = parsed
	} else {
		if _, ok := doc.CategoryByID(input.CategoryID); !ok {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		doc.Months[input.MonthIndex].Expenses[input.CategoryID] = parsed
	}

	if err := uc.store.Put(ctx, input.UserID, doc); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, uc.cache, input.UserID)

	return &SetCellValueOutput{ParsedValue: parsed}, nil
}
