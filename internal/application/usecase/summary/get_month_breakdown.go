package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// groupColors maps the default group labels to their chart colors. Labels
// outside the map draw from a deterministic fallback palette.
var groupColors = map[string]string{
	"Fixa":              "#0ea5e9",
	"Variável":          "#8b5cf6",
	"Lazer":             "#ec4899",
	"Saúde":             "#10b981",
	"Moradia":           "#f59e0b",
	"Transporte":        "#3b82f6",
	"Cartão de Crédito": "#ef4444",
	"Outros":            "#64748b",
}

var fallbackPalette = []string{
	"#14b8a6", "#f97316", "#a855f7", "#84cc16", "#06b6d4", "#e11d48",
}

// BreakdownSlice is one group's share of a month's spending.
type BreakdownSlice struct {
	Type  string  `json:"type"`
	Total float64 `json:"total"`
	Color string  `json:"color"`
}

// GetMonthBreakdownInput represents the input for the per-month breakdown.
type GetMonthBreakdownInput struct {
	UserID     uuid.UUID
	MonthIndex int
}

// GetMonthBreakdownOutput represents the output of the per-month breakdown.
type GetMonthBreakdownOutput struct {
	MonthIndex int
	Income     float64
	Total      float64
	Slices     []BreakdownSlice
}

// GetMonthBreakdownUseCase produces the pie-chart view of one month: the
// per-group totals that are strictly positive, in canonical group order.
type GetMonthBreakdownUseCase struct {
	store adapter.BudgetStore
}

// NewGetMonthBreakdownUseCase creates a new GetMonthBreakdownUseCase instance.
func NewGetMonthBreakdownUseCase(store adapter.BudgetStore) *GetMonthBreakdownUseCase {
	return &GetMonthBreakdownUseCase{store: store}
}

// Execute performs the breakdown.
func (uc *GetMonthBreakdownUseCase) Execute(ctx context.Context, input GetMonthBreakdownInput) (*GetMonthBreakdownOutput, error) {
	if input.MonthIndex < 0 || input.MonthIndex >= entity.MonthCount {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonthIndex,
			fmt.Sprintf("month index must be between 0 and %d", entity.MonthCount-1),
			domainerror.ErrInvalidMonthIndex,
		)
	}

	doc, err := uc.store.Get(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, err
		}
		doc = entity.NewBudgetDocument()
	}

	year := Compute(doc)
	month := year.Months[input.MonthIndex]

	out := &GetMonthBreakdownOutput{
		MonthIndex: input.MonthIndex,
		Income:     month.Income,
		Total:      month.Total,
	}

	fallback := 0
	seen := make(map[string]bool)
	for _, group := range year.Groups {
		if seen[group.Type] {
			continue
		}
		seen[group.Type] = true

		total := month.GroupTotals[group.Type]
		if total <= 0 {
			continue
		}
		color, ok := groupColors[group.Type]
		if !ok {
			color = fallbackPalette[fallback%len(fallbackPalette)]
			fallback++
		}
		out.Slices = append(out.Slices, BreakdownSlice{
			Type:  group.Type,
			Total: total,
			Color: color,
		})
	}

	return out, nil
}
