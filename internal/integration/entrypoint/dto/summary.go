package dto

import (
	"github.com/budget-tracker/backend/internal/application/usecase/summary"
)

// MonthSummaryResponse represents one month's derived figures.
type MonthSummaryResponse struct {
	Income       float64            `json:"income"`
	Total        float64            `json:"total"`
	Balance      float64            `json:"balance"`
	UsagePercent float64            `json:"usage_percent"`
	BarPercent   float64            `json:"bar_percent"`
	Warning      bool               `json:"warning"`
	GroupTotals  map[string]float64 `json:"group_totals"`
}

// GroupColumnResponse represents one group run in the canonical order.
type GroupColumnResponse struct {
	Type      string `json:"type"`
	Start     int    `json:"start"`
	Span      int    `json:"span"`
	ShowTotal bool   `json:"show_total"`
}

// YearSummaryResponse represents the full yearly aggregate.
type YearSummaryResponse struct {
	Months         []MonthSummaryResponse `json:"months"`
	Groups         []GroupColumnResponse  `json:"groups"`
	TotalIncome    float64                `json:"total_income"`
	TotalExpense   float64                `json:"total_expense"`
	ActiveMonths   int                    `json:"active_months"`
	AverageBalance float64                `json:"average_balance"`
	AveragePercent float64                `json:"average_percent"`
}

// BreakdownSliceResponse represents one group's share of a month.
type BreakdownSliceResponse struct {
	Type  string  `json:"type"`
	Total float64 `json:"total"`
	Color string  `json:"color"`
}

// MonthBreakdownResponse represents the pie-chart view of one month.
type MonthBreakdownResponse struct {
	MonthIndex int                      `json:"month_index"`
	Income     float64                  `json:"income"`
	Total      float64                  `json:"total"`
	Slices     []BreakdownSliceResponse `json:"slices"`
}

// InsightResponse represents the yearly AI commentary.
type InsightResponse struct {
	Insight string `json:"insight"`
}

// ToYearSummaryResponse converts a computed YearSummary to its DTO.
func ToYearSummaryResponse(year *summary.YearSummary) YearSummaryResponse {
	months := make([]MonthSummaryResponse, 0, len(year.Months))
	for _, month := range year.Months {
		months = append(months, MonthSummaryResponse{
			Income:       month.Income,
			Total:        month.Total,
			Balance:      month.Balance,
			UsagePercent: month.UsagePercent,
			BarPercent:   month.BarPercent,
			Warning:      month.Warning,
			GroupTotals:  month.GroupTotals,
		})
	}

	groups := make([]GroupColumnResponse, 0, len(year.Groups))
	for _, group := range year.Groups {
		groups = append(groups, GroupColumnResponse{
			Type:      group.Type,
			Start:     group.Start,
			Span:      group.Span,
			ShowTotal: group.ShowTotal,
		})
	}

	return YearSummaryResponse{
		Months:         months,
		Groups:         groups,
		TotalIncome:    year.TotalIncome,
		TotalExpense:   year.TotalExpense,
		ActiveMonths:   year.ActiveMonths,
		AverageBalance: year.AverageBalance,
		AveragePercent: year.AveragePercent,
	}
}

// ToMonthBreakdownResponse converts a breakdown output to its DTO.
func ToMonthBreakdownResponse(out *summary.GetMonthBreakdownOutput) MonthBreakdownResponse {
	slices := make([]BreakdownSliceResponse, 0, len(out.Slices))
	for _, slice := range out.Slices {
		slices = append(slices, BreakdownSliceResponse{
			Type:  slice.Type,
			Total: slice.Total,
			Color: slice.Color,
		})
	}
	return MonthBreakdownResponse{
		MonthIndex: out.MonthIndex,
		Income:     out.Income,
		Total:      out.Total,
		Slices:     slices,
	}
}
