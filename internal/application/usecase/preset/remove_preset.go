package preset

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// RemovePresetInput represents the input for removing a group label.
type RemovePresetInput struct {
	UserID uuid.UUID
	Label  string
}

// RemovePresetOutput represents the output of removing a group label.
type RemovePresetOutput struct {
	Presets []string
}

// RemovePresetUseCase removes a label from the preset vocabulary. Labels
// still referenced by a category cannot be removed; labels removed earlier
// keep working as orphaned groups.
type RemovePresetUseCase struct {
	store adapter.BudgetStore
}

// NewRemovePresetUseCase creates a new RemovePresetUseCase instance.
func NewRemovePresetUseCase(store adapter.BudgetStore) *RemovePresetUseCase {
	return &RemovePresetUseCase{store: store}
}

// Execute performs the preset removal.
func (uc *RemovePresetUseCase) Execute(ctx context.Context, input RemovePresetInput) (*RemovePresetOutput, error) {
	doc, err := loadOrSeed(ctx, uc.store, input.UserID)
	if err != nil {
		return nil, err
	}

	if doc.IsPresetInUse(input.Label) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodePresetInUse,
			"preset is still used by a category",
			domainerror.ErrPresetInUse,
		)
	}

	if !doc.RemovePreset(input.Label) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodePresetNotFound,
			"preset not found",
			domainerror.ErrPresetNotFound,
		)
	}

	if err := uc.store.PutNow(ctx, input.UserID, doc); err != nil {
		return nil, err
	}

	return &RemovePresetOutput{Presets: doc.Presets}, nil
}
