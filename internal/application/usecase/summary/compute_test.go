package summary

import (
	"math"
	"testing"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func docWithCategories(types ...string) (*entity.BudgetDocument, []entity.Category) {
	doc := entity.NewBudgetDocument()
	cats := make([]entity.Category, 0, len(types))
	for i, groupType := range types {
		cat := entity.NewCategory("cat"+string(rune('A'+i)), groupType)
		doc.Categories = append(doc.Categories, cat)
		cats = append(cats, cat)
	}
	return doc, cats
}

func TestComputeEmptyDocument(t *testing.T) {
	out := Compute(entity.NewBudgetDocument())

	if out.TotalIncome != 0 || out.TotalExpense != 0 {
		t.Errorf("expected zero totals, got income=%v expense=%v", out.TotalIncome, out.TotalExpense)
	}
	if out.ActiveMonths != 0 {
		t.Errorf("expected no active months, got %d", out.ActiveMonths)
	}
	if out.AverageBalance != 0 || out.AveragePercent != 0 {
		t.Errorf("expected zero averages, got balance=%v percent=%v", out.AverageBalance, out.AveragePercent)
	}
	for i, month := range out.Months {
		if month.UsagePercent != 0 || month.Warning {
			t.Errorf("month %d: expected zero usage and no warning", i)
		}
	}
	if len(out.Groups) != 0 {
		t.Errorf("expected no group columns, got %d", len(out.Groups))
	}
}

func TestComputeMonthFigures(t *testing.T) {
	doc, cats := docWithCategories("Fixa", "Variável")
	doc.Months[0].Income = 5000
	doc.Months[0].Expenses[cats[0].ID] = 1500
	doc.Months[0].Expenses[cats[1].ID] = 2000

	out := Compute(doc)
	month := out.Months[0]

	if !almostEqual(month.Total, 3500) {
		t.Errorf("expected total 3500, got %v", month.Total)
	}
	if !almostEqual(month.Balance, 1500) {
		t.Errorf("expected balance 1500, got %v", month.Balance)
	}
	if !almostEqual(month.UsagePercent, 70) {
		t.Errorf("expected usage 70%%, got %v", month.UsagePercent)
	}
	if month.Warning {
		t.Error("expected no overspend warning")
	}
	if !almostEqual(month.GroupTotals["Fixa"], 1500) {
		t.Errorf("expected Fixa subtotal 1500, got %v", month.GroupTotals["Fixa"])
	}
	if !almostEqual(month.GroupTotals["Variável"], 2000) {
		t.Errorf("expected Variável subtotal 2000, got %v", month.GroupTotals["Variável"])
	}
}

func TestComputeZeroIncomeUsage(t *testing.T) {
	doc, cats := docWithCategories("Fixa")
	doc.Months[2].Expenses[cats[0].ID] = 800

	out := Compute(doc)
	month := out.Months[2]

	if month.UsagePercent != 0 {
		t.Errorf("expected zero usage with no income, got %v", month.UsagePercent)
	}
	if month.Warning {
		t.Error("expected no warning with no income")
	}
	if !almostEqual(month.Balance, -800) {
		t.Errorf("expected balance -800, got %v", month.Balance)
	}
	// Spending without income still counts as movement.
	if out.ActiveMonths != 1 {
		t.Errorf("expected one active month, got %d", out.ActiveMonths)
	}
}

func TestComputeOverspendWarning(t *testing.T) {
	doc, cats := docWithCategories("Fixa")
	doc.Months[0].Income = 1000
	doc.Months[0].Expenses[cats[0].ID] = 1500

	out := Compute(doc)
	month := out.Months[0]

	if !almostEqual(month.UsagePercent, 150) {
		t.Errorf("expected raw usage 150%%, got %v", month.UsagePercent)
	}
	if month.BarPercent != 100 {
		t.Errorf("expected bar capped at 100, got %v", month.BarPercent)
	}
	if !month.Warning {
		t.Error("expected overspend warning")
	}
}

func TestComputeMonthTotalEqualsGroupSum(t *testing.T) {
	doc, cats := docWithCategories("Fixa", "Lazer", "Fixa", "Outros")
	doc.Months[4].Income = 4000
	for i, cat := range cats {
		doc.Months[4].Expenses[cat.ID] = float64((i + 1)) * 110.11
	}

	out := Compute(doc)
	month := out.Months[4]

	var groupSum float64
	for _, total := range month.GroupTotals {
		groupSum += total
	}
	if !almostEqual(month.Total, groupSum) {
		t.Errorf("month total %v does not equal group sum %v", month.Total, groupSum)
	}
}

func TestComputeDecimalAccumulation(t *testing.T) {
	// 0.1 added ten times is exactly 1.0 under decimal accumulation.
	doc, cats := docWithCategories("Fixa", "Fixa", "Fixa", "Fixa", "Fixa",
		"Fixa", "Fixa", "Fixa", "Fixa", "Fixa")
	doc.Months[0].Income = 1
	for _, cat := range cats {
		doc.Months[0].Expenses[cat.ID] = 0.1
	}

	out := Compute(doc)

	if out.Months[0].Total != 1.0 {
		t.Errorf("expected exact total 1.0, got %v", out.Months[0].Total)
	}
	if out.Months[0].UsagePercent != 100 {
		t.Errorf("expected exact usage 100, got %v", out.Months[0].UsagePercent)
	}
	if out.Months[0].Warning {
		t.Error("expected no warning at exactly 100%")
	}
}

func TestComputeYearAggregates(t *testing.T) {
	doc, cats := docWithCategories("Fixa")
	doc.Months[0].Income = 3000
	doc.Months[0].Expenses[cats[0].ID] = 1000
	doc.Months[1].Income = 3000
	doc.Months[1].Expenses[cats[0].ID] = 2000
	// Remaining ten months untouched.

	out := Compute(doc)

	if out.ActiveMonths != 2 {
		t.Errorf("expected 2 active months, got %d", out.ActiveMonths)
	}
	if !almostEqual(out.TotalIncome, 6000) {
		t.Errorf("expected total income 6000, got %v", out.TotalIncome)
	}
	if !almostEqual(out.TotalExpense, 3000) {
		t.Errorf("expected total expense 3000, got %v", out.TotalExpense)
	}
	// (6000 - 3000) / 2 active months.
	if !almostEqual(out.AverageBalance, 1500) {
		t.Errorf("expected average balance 1500, got %v", out.AverageBalance)
	}
	if !almostEqual(out.AveragePercent, 50) {
		t.Errorf("expected average percent 50, got %v", out.AveragePercent)
	}
}

func TestGroupColumns(t *testing.T) {
	doc, _ := docWithCategories("Fixa", "Fixa", "Lazer", "Orfão")
	doc.Settings.ShowTotals["Fixa"] = true

	out := Compute(doc)

	if len(out.Groups) != 3 {
		t.Fatalf("expected 3 group runs, got %d", len(out.Groups))
	}

	first := out.Groups[0]
	if first.Type != "Fixa" || first.Start != 0 || first.Span != 2 || !first.ShowTotal {
		t.Errorf("unexpected first group run: %+v", first)
	}
	second := out.Groups[1]
	if second.Type != "Lazer" || second.Start != 2 || second.Span != 1 || second.ShowTotal {
		t.Errorf("unexpected second group run: %+v", second)
	}
	// Orphaned labels form runs like any preset.
	third := out.Groups[2]
	if third.Type != "Orfão" || third.Start != 3 || third.Span != 1 {
		t.Errorf("unexpected orphan group run: %+v", third)
	}
}

func TestComputeDoesNotMutateDocument(t *testing.T) {
	doc, cats := docWithCategories("Fixa")
	doc.Months[0].Income = 100
	doc.Months[0].Expenses[cats[0].ID] = 50

	before := doc.Clone()
	Compute(doc)

	if doc.Months[0].Income != before.Months[0].Income {
		t.Error("compute mutated income")
	}
	if len(doc.Categories) != len(before.Categories) {
		t.Error("compute mutated categories")
	}
}
