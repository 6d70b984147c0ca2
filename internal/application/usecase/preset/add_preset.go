// Package preset contains group-label registry use cases.
package preset

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// loadOrSeed mirrors the budget package helper: first access creates the
// default document.
func loadOrSeed(ctx context.Context, store adapter.BudgetStore, userID uuid.UUID) (*entity.BudgetDocument, error) {
	doc, err := store.Get(ctx, userID)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, err
	}
	doc = entity.NewBudgetDocument()
	if err := store.PutNow(ctx, userID, doc); err != nil {
		slog.Warn("failed to persist seed document", "user_id", userID, "error", err)
	}
	return doc, nil
}

// AddPresetInput represents the input for adding a group label.
type AddPresetInput struct {
	UserID uuid.UUID
	Label  string
}

// AddPresetOutput represents the output of adding a group label.
type AddPresetOutput struct {
	// Added is false when the call was a no-op (empty or duplicate label).
	Added   bool
	Presets []string
}

// AddPresetUseCase appends a label to the preset vocabulary. An empty or
// already-present label is a silent no-op, not an error.
type AddPresetUseCase struct {
	store adapter.BudgetStore
}

// NewAddPresetUseCase creates a new AddPresetUseCase instance.
func NewAddPresetUseCase(store adapter.BudgetStore) *AddPresetUseCase {
	return &AddPresetUseCase{store: store}
}

// Execute performs the preset addition.
func (uc *AddPresetUseCase) Execute(ctx context.Context, input AddPresetInput) (*AddPresetOutput, error) {
	doc, err := loadOrSeed(ctx, uc.store, input.UserID)
	if err != nil {
		return nil, err
	}

	label := strings.TrimSpace(input.Label)
	// Duplicate detection is case-sensitive on purpose: grouping compares
	// literal type strings, so "Lazer" and "lazer" are distinct groups.
	if label == "" || doc.HasPreset(label) {
		return &AddPresetOutput{Added: false, Presets: doc.Presets}, nil
	}

	doc.Presets = append(doc.Presets, label)

	if err := uc.store.PutNow(ctx, input.UserID, doc); err != nil {
		return nil, err
	}

	return &AddPresetOutput{Added: true, Presets: doc.Presets}, nil
}
