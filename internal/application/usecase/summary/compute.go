// Package summary contains the aggregation engine: it derives every monthly
// and yearly figure from a budget document. Computation is pure — it never
// mutates the document and never fails; a missing or empty document yields
// all-zero aggregates.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// MonthSummary holds the derived figures of one month.
type MonthSummary struct {
	Income  float64 `json:"income"`
	Total   float64 `json:"total"`
	Balance float64 `json:"balance"`
	// UsagePercent is the raw expenses/income ratio, uncapped.
	UsagePercent float64 `json:"usage_percent"`
	// BarPercent is UsagePercent capped at 100 for the progress indicator.
	BarPercent float64 `json:"bar_percent"`
	// Warning flags months that spent more than they earned.
	Warning     bool               `json:"warning"`
	GroupTotals map[string]float64 `json:"group_totals"`
}

// GroupColumn describes one contiguous run of same-group category columns in
// the canonical order.
type GroupColumn struct {
	Type      string `json:"type"`
	Start     int    `json:"start"`
	Span      int    `json:"span"`
	ShowTotal bool   `json:"show_total"`
}

// YearSummary holds every derived figure of a document.
type YearSummary struct {
	Months         [entity.MonthCount]MonthSummary `json:"months"`
	Groups         []GroupColumn                   `json:"groups"`
	TotalIncome    float64                         `json:"total_income"`
	TotalExpense   float64                         `json:"total_expense"`
	ActiveMonths   int                             `json:"active_months"`
	AverageBalance float64                         `json:"average_balance"`
	AveragePercent float64                         `json:"average_percent"`
}

// Compute recomputes every derived figure from the document. Accumulation
// runs on decimals so long columns of currency values sum without float
// drift; the outputs are plain float64.
func Compute(doc *entity.BudgetDocument) *YearSummary {
	out := &YearSummary{
		Groups: groupColumns(doc),
	}

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero

	for m := 0; m < entity.MonthCount; m++ {
		income := decimal.NewFromFloat(doc.Months[m].Income)
		monthTotal := decimal.Zero
		groupTotals := make(map[string]float64)
		groupAcc := make(map[string]decimal.Decimal)

		for i := range doc.Categories {
			cat := &doc.Categories[i]
			expense := decimal.NewFromFloat(doc.Months[m].Expenses[cat.ID])
			monthTotal = monthTotal.Add(expense)
			groupAcc[cat.Type] = groupAcc[cat.Type].Add(expense)
		}
		for label, acc := range groupAcc {
			groupTotals[label], _ = acc.Float64()
		}

		ms := &out.Months[m]
		ms.Income, _ = income.Float64()
		ms.Total, _ = monthTotal.Float64()
		ms.Balance, _ = income.Sub(monthTotal).Float64()
		ms.GroupTotals = groupTotals

		if income.IsPositive() {
			ms.UsagePercent, _ = monthTotal.Mul(hundred).Div(income).Float64()
		}
		ms.BarPercent = ms.UsagePercent
		if ms.BarPercent > 100 {
			ms.BarPercent = 100
		}
		ms.Warning = ms.UsagePercent > 100

		if income.IsPositive() || monthTotal.IsPositive() {
			out.ActiveMonths++
		}

		totalIncome = totalIncome.Add(income)
		totalExpense = totalExpense.Add(monthTotal)
	}

	out.TotalIncome, _ = totalIncome.Float64()
	out.TotalExpense, _ = totalExpense.Float64()

	activeMonths := out.ActiveMonths
	if activeMonths < 1 {
		activeMonths = 1
	}
	out.AverageBalance, _ = totalIncome.Sub(totalExpense).
		Div(decimal.NewFromInt(int64(activeMonths))).Float64()

	if totalIncome.IsPositive() {
		out.AveragePercent, _ = totalExpense.Mul(hundred).Div(totalIncome).Float64()
	}

	return out
}

// groupColumns partitions the canonical category order into contiguous runs
// by group label. The order is already sorted by type on structural change,
// so runs line up with visual groups; orphaned labels form runs like any
// other.
func groupColumns(doc *entity.BudgetDocument) []GroupColumn {
	columns := []GroupColumn{}
	for i := range doc.Categories {
		label := doc.Categories[i].Type
		if n := len(columns); n > 0 && columns[n-1].Type == label {
			columns[n-1].Span++
			continue
		}
		columns = append(columns, GroupColumn{
			Type:      label,
			Start:     i,
			Span:      1,
			ShowTotal: doc.Settings.ShowTotals[label],
		})
	}
	return columns
}
