package entity

import "testing"

func TestNewBudgetDocument(t *testing.T) {
	doc := NewBudgetDocument()

	if len(doc.Presets) != len(DefaultPresets) {
		t.Errorf("expected %d default presets, got %d", len(DefaultPresets), len(doc.Presets))
	}
	if len(doc.Categories) != 0 {
		t.Errorf("expected no categories, got %d", len(doc.Categories))
	}
	for i := range doc.Months {
		if doc.Months[i].Income != 0 {
			t.Errorf("month %d: expected zero income", i)
		}
		if doc.Months[i].Expenses == nil {
			t.Errorf("month %d: expected initialized expenses map", i)
		}
	}
	if doc.Settings.ShowTotals == nil {
		t.Error("expected initialized show totals map")
	}
}

func TestEnsureDefaults(t *testing.T) {
	doc := &BudgetDocument{}
	doc.EnsureDefaults()

	if len(doc.Presets) != len(DefaultPresets) {
		t.Errorf("expected default presets to be seeded, got %v", doc.Presets)
	}
	if doc.Categories == nil {
		t.Error("expected categories slice to be initialized")
	}
	for i := range doc.Months {
		if doc.Months[i].Expenses == nil {
			t.Errorf("month %d: expected expenses map to be initialized", i)
		}
	}
	if doc.Settings.ShowTotals == nil {
		t.Error("expected show totals map to be initialized")
	}
}

func TestHasCategoryName(t *testing.T) {
	doc := NewBudgetDocument()
	cat := NewCategory("Aluguel", "Moradia")
	doc.Categories = append(doc.Categories, cat)

	t.Run("matches case-insensitively", func(t *testing.T) {
		if !doc.HasCategoryName("ALUGUEL", "") {
			t.Error("expected case-insensitive match")
		}
		if !doc.HasCategoryName("aluguel", "") {
			t.Error("expected lowercase match")
		}
	})

	t.Run("excludes the given id", func(t *testing.T) {
		if doc.HasCategoryName("Aluguel", cat.ID) {
			t.Error("expected category to be able to keep its own name")
		}
	})

	t.Run("no match for unknown name", func(t *testing.T) {
		if doc.HasCategoryName("Mercado", "") {
			t.Error("unexpected match")
		}
	})
}

func TestSortCategories(t *testing.T) {
	doc := NewBudgetDocument()
	doc.Categories = []Category{
		NewCategory("Cinema", "Lazer"),
		NewCategory("Aluguel", "Moradia"),
		NewCategory("Luz", "Fixa"),
		NewCategory("Bar", "Lazer"),
	}

	doc.SortCategories()

	wantTypes := []string{"Fixa", "Lazer", "Lazer", "Moradia"}
	for i, want := range wantTypes {
		if doc.Categories[i].Type != want {
			t.Fatalf("position %d: expected type %s, got %s", i, want, doc.Categories[i].Type)
		}
	}

	// Stable: same-group categories keep their insertion order.
	if doc.Categories[1].Name != "Cinema" || doc.Categories[2].Name != "Bar" {
		t.Errorf("expected stable order within group, got %s then %s",
			doc.Categories[1].Name, doc.Categories[2].Name)
	}
}

func TestRemoveCategory(t *testing.T) {
	doc := NewBudgetDocument()
	cat := NewCategory("Mercado", "Variável")
	doc.Categories = append(doc.Categories, cat)
	doc.Months[0].Expenses[cat.ID] = 150
	doc.Months[5].Expenses[cat.ID] = 300

	if !doc.RemoveCategory(cat.ID) {
		t.Fatal("expected removal to succeed")
	}
	if len(doc.Categories) != 0 {
		t.Error("expected category list to be empty")
	}
	for i := range doc.Months {
		if _, ok := doc.Months[i].Expenses[cat.ID]; ok {
			t.Errorf("month %d: expected expense entry to be deleted", i)
		}
	}

	if doc.RemoveCategory("missing") {
		t.Error("expected removal of unknown id to fail")
	}
}

func TestPresetHelpers(t *testing.T) {
	doc := NewBudgetDocument()

	t.Run("matching is case-sensitive", func(t *testing.T) {
		if !doc.HasPreset("Lazer") {
			t.Error("expected Lazer preset")
		}
		if doc.HasPreset("lazer") {
			t.Error("expected lowercase label not to match")
		}
	})

	t.Run("remove drops only the label", func(t *testing.T) {
		if !doc.RemovePreset("Lazer") {
			t.Fatal("expected removal to succeed")
		}
		if doc.HasPreset("Lazer") {
			t.Error("expected label to be gone")
		}
		if doc.RemovePreset("Lazer") {
			t.Error("expected second removal to fail")
		}
	})

	t.Run("in-use detection keys on category type", func(t *testing.T) {
		doc.Categories = append(doc.Categories, NewCategory("Luz", "Fixa"))
		if !doc.IsPresetInUse("Fixa") {
			t.Error("expected Fixa to be in use")
		}
		if doc.IsPresetInUse("Moradia") {
			t.Error("expected Moradia to be unused")
		}
	})
}

func TestClearMonth(t *testing.T) {
	doc := NewBudgetDocument()
	cat := NewCategory("Mercado", "Variável")
	doc.Categories = append(doc.Categories, cat)
	doc.Months[3].Income = 5000
	doc.Months[3].Expenses[cat.ID] = 900

	doc.ClearMonth(3)

	if doc.Months[3].Income != 0 {
		t.Error("expected income to be zeroed")
	}
	if len(doc.Months[3].Expenses) != 0 {
		t.Error("expected expenses to be cleared")
	}
	// The category itself survives.
	if len(doc.Categories) != 1 {
		t.Error("expected category to remain")
	}
}

func TestClone(t *testing.T) {
	doc := NewBudgetDocument()
	cat := NewCategory("Mercado", "Variável")
	doc.Categories = append(doc.Categories, cat)
	doc.Months[0].Income = 1000
	doc.Months[0].Expenses[cat.ID] = 250
	doc.Settings.ShowTotals["Variável"] = true

	clone := doc.Clone()

	clone.Months[0].Income = 9999
	clone.Months[0].Expenses[cat.ID] = 1
	clone.Settings.ShowTotals["Variável"] = false
	clone.Presets = append(clone.Presets, "Nova")

	if doc.Months[0].Income != 1000 {
		t.Error("clone mutation leaked into original income")
	}
	if doc.Months[0].Expenses[cat.ID] != 250 {
		t.Error("clone mutation leaked into original expenses")
	}
	if !doc.Settings.ShowTotals["Variável"] {
		t.Error("clone mutation leaked into original settings")
	}
	if len(doc.Presets) != len(DefaultPresets) {
		t.Error("clone mutation leaked into original presets")
	}
}
