// Package entity defines the core business entities for the domain layer.
package entity

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MonthCount is the fixed number of months in a budget document.
const MonthCount = 12

// MaxCellValue is the inclusive upper bound for income and expense values.
const MaxCellValue = 999_999_999

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// FreeCategoryLimit is the number of categories a non-premium account may hold.
const FreeCategoryLimit = 3

// DefaultPresets is the starter group vocabulary seeded into new documents.
var DefaultPresets = []string{
	"Fixa", "Variável", "Lazer", "Saúde",
	"Moradia", "Transporte", "Cartão de Crédito", "Outros",
}

// typeCollator orders group labels the way pt-BR users expect
// (accent- and case-aware, matching the web client's localeCompare).
var typeCollator = collate.New(language.BrazilianPortuguese)

// Category is a named expense line belonging to a group label, tracked monthly.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// NewCategory creates a new Category with a fresh stable id.
func NewCategory(name, groupType string) Category {
	return Category{
		ID:   uuid.NewString(),
		Name: name,
		Type: groupType,
	}
}

// MonthRecord holds one calendar month's income and per-category expenses.
// A category with no entry is worth zero, not "missing".
type MonthRecord struct {
	Income   float64            `json:"income"`
	Expenses map[string]float64 `json:"expenses"`
}

// Settings holds per-document display settings.
type Settings struct {
	// ShowTotals maps a group label to whether its subtotal column is shown.
	ShowTotals map[string]bool `json:"showTotals"`
}

// BudgetDocument is the canonical per-user budget: twelve months crossed with
// user-defined categories grouped by preset labels. Field names mirror the
// stored document shape and must stay stable for previously saved documents.
type BudgetDocument struct {
	Presets    []string                `json:"presets"`
	Categories []Category              `json:"categories"`
	Months     [MonthCount]MonthRecord `json:"data"`
	Settings   Settings                `json:"settings"`
}

// NewBudgetDocument creates the default seed document: starter presets, zero
// categories, twelve zeroed months.
func NewBudgetDocument() *BudgetDocument {
	doc := &BudgetDocument{
		Presets:    append([]string(nil), DefaultPresets...),
		Categories: []Category{},
		Settings:   Settings{ShowTotals: map[string]bool{}},
	}
	for i := range doc.Months {
		doc.Months[i].Expenses = map[string]float64{}
	}
	return doc
}

// EnsureDefaults repairs a document loaded from storage: any missing field
// falls back to its default seed value. A partial stored document is never a
// fatal read error.
func (d *BudgetDocument) EnsureDefaults() {
	if d.Presets == nil {
		d.Presets = append([]string(nil), DefaultPresets...)
	}
	if d.Categories == nil {
		d.Categories = []Category{}
	}
	for i := range d.Months {
		if d.Months[i].Expenses == nil {
			d.Months[i].Expenses = map[string]float64{}
		}
	}
	if d.Settings.ShowTotals == nil {
		d.Settings.ShowTotals = map[string]bool{}
	}
}

// CategoryByID returns the category with the given id, if present.
func (d *BudgetDocument) CategoryByID(id string) (*Category, bool) {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return &d.Categories[i], true
		}
	}
	return nil, false
}

// HasCategoryName reports whether another category already uses the given
// name, compared case-insensitively. excludeID is skipped so a category can
// keep its own name on update.
func (d *BudgetDocument) HasCategoryName(name, excludeID string) bool {
	for i := range d.Categories {
		if d.Categories[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(d.Categories[i].Name, name) {
			return true
		}
	}
	return false
}

// SortCategories re-establishes the canonical category order: a stable sort
// by group label. Called on structural change only; the order is persisted,
// not re-derived on every recompute.
func (d *BudgetDocument) SortCategories() {
	sort.SliceStable(d.Categories, func(i, j int) bool {
		return typeCollator.CompareString(d.Categories[i].Type, d.Categories[j].Type) < 0
	})
}

// RemoveCategory deletes the category and its expense entries from every
// month, so no orphan values are retained. Returns false if the id is unknown.
func (d *BudgetDocument) RemoveCategory(id string) bool {
	idx := -1
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	d.Categories = append(d.Categories[:idx], d.Categories[idx+1:]...)
	for i := range d.Months {
		delete(d.Months[i].Expenses, id)
	}
	return true
}

// HasPreset reports whether the label is currently a selectable preset.
// Matching is case-sensitive by decision: grouping is case-sensitive, so the
// registry is too.
func (d *BudgetDocument) HasPreset(label string) bool {
	for _, p := range d.Presets {
		if p == label {
			return true
		}
	}
	return false
}

// RemovePreset drops the label from the preset vocabulary. Categories that
// already reference it keep functioning as orphaned-group members.
func (d *BudgetDocument) RemovePreset(label string) bool {
	for i, p := range d.Presets {
		if p == label {
			d.Presets = append(d.Presets[:i], d.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// IsPresetInUse reports whether any category references the label as its type.
func (d *BudgetDocument) IsPresetInUse(label string) bool {
	for i := range d.Categories {
		if d.Categories[i].Type == label {
			return true
		}
	}
	return false
}

// ClearMonth zeroes the income and every expense entry of one month.
func (d *BudgetDocument) ClearMonth(monthIndex int) {
	d.Months[monthIndex].Income = 0
	d.Months[monthIndex].Expenses = map[string]float64{}
}

// Clone returns a deep copy of the document. The debounced saver hands copies
// around so a pending write is never mutated behind its back.
func (d *BudgetDocument) Clone() *BudgetDocument {
	out := &BudgetDocument{
		Presets:    append([]string(nil), d.Presets...),
		Categories: append([]Category(nil), d.Categories...),
		Settings:   Settings{ShowTotals: make(map[string]bool, len(d.Settings.ShowTotals))},
	}
	for k, v := range d.Settings.ShowTotals {
		out.Settings.ShowTotals[k] = v
	}
	for i := range d.Months {
		out.Months[i].Income = d.Months[i].Income
		out.Months[i].Expenses = make(map[string]float64, len(d.Months[i].Expenses))
		for k, v := range d.Months[i].Expenses {
			out.Months[i].Expenses[k] = v
		}
	}
	return out
}
