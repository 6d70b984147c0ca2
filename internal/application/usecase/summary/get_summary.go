package summary

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// GetSummaryInput represents the input for computing the yearly summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// GetSummaryOutput represents the output of the summary computation.
type GetSummaryOutput struct {
	Summary *YearSummary
}

// GetSummaryUseCase serves the full yearly aggregate, cached per user. The
// cache is read-through; structural and cell mutations invalidate it.
type GetSummaryUseCase struct {
	store adapter.BudgetStore
	cache adapter.SummaryCache
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(store adapter.BudgetStore, cache adapter.SummaryCache) *GetSummaryUseCase {
	return &GetSummaryUseCase{store: store, cache: cache}
}

// Execute computes the summary, consulting the cache first. Cache failures
// degrade to a fresh computation.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	if uc.cache != nil {
		payload, err := uc.cache.Get(ctx, input.UserID)
		if err != nil {
			slog.Warn("summary cache read failed", "user_id", input.UserID, "error", err)
		} else if payload != nil {
			var cached YearSummary
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &GetSummaryOutput{Summary: &cached}, nil
			}
			slog.Warn("summary cache entry corrupt", "user_id", input.UserID)
		}
	}

	doc, err := uc.store.Get(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, err
		}
		doc = entity.NewBudgetDocument()
	}

	result := Compute(doc)

	if uc.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := uc.cache.Set(ctx, input.UserID, payload); err != nil {
				slog.Warn("summary cache write failed", "user_id", input.UserID, "error", err)
			}
		}
	}

	return &GetSummaryOutput{Summary: result}, nil
}
