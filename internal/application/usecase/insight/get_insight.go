// Package insight contains the AI-assisted yearly commentary use case.
package insight

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/summary"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// GetInsightInput represents the input for the yearly insight.
type GetInsightInput struct {
	UserID uuid.UUID
}

// GetInsightOutput represents the output of the yearly insight.
type GetInsightOutput struct {
	Insight string
}

// GetInsightUseCase turns the yearly aggregate into a short natural-language
// commentary. Premium only.
type GetInsightUseCase struct {
	store    adapter.BudgetStore
	userRepo adapter.UserRepository
	insights adapter.InsightService
}

// NewGetInsightUseCase creates a new GetInsightUseCase instance.
func NewGetInsightUseCase(store adapter.BudgetStore, userRepo adapter.UserRepository, insights adapter.InsightService) *GetInsightUseCase {
	return &GetInsightUseCase{store: store, userRepo: userRepo, insights: insights}
}

// Execute performs the insight generation.
func (uc *GetInsightUseCase) Execute(ctx context.Context, input GetInsightInput) (*GetInsightOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsPremium {
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodePremiumRequired,
			"yearly insights require a premium account",
			domainerror.ErrPremiumRequired,
		)
	}
	if uc.insights == nil || !uc.insights.IsAvailable() {
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodeInsightUnavailable,
			"insight service is not configured",
			domainerror.ErrInsightUnavailable,
		)
	}

	doc, err := uc.store.Get(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, err
		}
		doc = entity.NewBudgetDocument()
	}

	year := summary.Compute(doc)
	groupTotals := make(map[string]float64)
	for _, month := range year.Months {
		for label, total := range month.GroupTotals {
			groupTotals[label] += total
		}
	}

	text, err := uc.insights.YearInsight(ctx, adapter.YearFigures{
		TotalIncome:    year.TotalIncome,
		TotalExpense:   year.TotalExpense,
		ActiveMonths:   year.ActiveMonths,
		AverageBalance: year.AverageBalance,
		AveragePercent: year.AveragePercent,
		GroupTotals:    groupTotals,
	})
	if err != nil {
		return nil, domainerror.NewPremiumError(
			domainerror.ErrCodeInsightUnavailable,
			"insight generation failed",
			err,
		)
	}

	return &GetInsightOutput{Insight: text}, nil
}
