// Package budget contains budget-document use cases: category CRUD, cell
// edits, month clearing, and document reset.
package budget

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

// loadOrSeed returns the user's document, creating and persisting the default
// seed the first time a user has no stored document.
func loadOrSeed(ctx context.Context, store adapter.BudgetStore, userID uuid.UUID) (*entity.BudgetDocument, error) {
	doc, err := store.Get(ctx, userID)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, err
	}

	doc = entity.NewBudgetDocument()
	// Seeding is best effort; the in-memory default serves until a later save
	// succeeds.
	if err := store.PutNow(ctx, userID, doc); err != nil {
		slog.Warn("failed to persist seed document", "user_id", userID, "error", err)
	}
	return doc, nil
}

// validateCategoryName applies the shared name rules: trimmed, non-empty, at
// most MaxCategoryNameLength characters, unique among categories
// case-insensitively (excludeID skips the category being edited).
func validateCategoryName(doc *entity.BudgetDocument, name, excludeID string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name must not be empty",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if len([]rune(trimmed)) > entity.MaxCategoryNameLength {
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeCategoryNameTooLong,
			"category name must not exceed 50 characters",
			domainerror.ErrCategoryNameTooLong,
		)
	}
	if doc.HasCategoryName(trimmed, excludeID) {
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}
	return trimmed, nil
}

// validateGroup checks that the label is a selectable preset. Existing
// categories may reference removed presets; new and edited ones may not.
func validateGroup(doc *entity.BudgetDocument, label string) error {
	if !doc.HasPreset(label) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeUnknownGroup,
			"group label is not one of the presets",
			domainerror.ErrUnknownGroup,
		)
	}
	return nil
}

// invalidateSummary drops the cached summary after a mutation. The cache is
// optional and advisory.
func invalidateSummary(ctx context.Context, cache adapter.SummaryCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("summary cache invalidation failed", "user_id", userID, "error", err)
	}
}
