package preset

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// ToggleGroupTotalInput represents the input for toggling a group's subtotal
// column.
type ToggleGroupTotalInput struct {
	UserID uuid.UUID
	Label  string
	Show   bool
}

// ToggleGroupTotalOutput represents the output of the toggle.
type ToggleGroupTotalOutput struct {
	ShowTotals map[string]bool
}

// ToggleGroupTotalUseCase flips whether a synthetic subtotal column is
// rendered for a group. Orphaned group labels may be toggled too; the setting
// keys on the literal label.
type ToggleGroupTotalUseCase struct {
	store adapter.BudgetStore
	cache adapter.SummaryCache
}

// NewToggleGroupTotalUseCase creates a new ToggleGroupTotalUseCase instance.
func NewToggleGroupTotalUseCase(store adapter.BudgetStore, cache adapter.SummaryCache) *ToggleGroupTotalUseCase {
	return &ToggleGroupTotalUseCase{store: store, cache: cache}
}

// Execute performs the toggle.
func (uc *ToggleGroupTotalUseCase) Execute(ctx context.Context, input ToggleGroupTotalInput) (*ToggleGroupTotalOutput, error) {
	doc, err := loadOrSeed(ctx, uc.store, input.UserID)
	if err != nil {
		return nil, err
	}

	doc.Settings.ShowTotals[input.Label] = input.Show

	if err := uc.store.PutNow(ctx, input.UserID, doc); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, input.UserID); err != nil {
			slog.Warn("summary cache invalidation failed", "user_id", input.UserID, "error", err)
		}
	}

	return &ToggleGroupTotalOutput{ShowTotals: doc.Settings.ShowTotals}, nil
}
