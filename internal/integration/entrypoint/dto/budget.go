package dto

import (
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// UpdateCategoryRequest represents the request body for updating a category.
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// SetCellValueRequest represents the request body for a cell edit. Value
// arrives as raw text; the server parses currency formatting.
type SetCellValueRequest struct {
	MonthIndex int    `json:"month_index"`
	CategoryID string `json:"category_id"`
	Value      string `json:"value"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// MonthResponse represents one month's raw values in API responses.
type MonthResponse struct {
	Income   float64            `json:"income"`
	Expenses map[string]float64 `json:"expenses"`
}

// BudgetDocumentResponse represents the full budget document.
type BudgetDocumentResponse struct {
	Presets    []string           `json:"presets"`
	Categories []CategoryResponse `json:"categories"`
	Data       []MonthResponse    `json:"data"`
	Settings   SettingsResponse   `json:"settings"`
}

// SettingsResponse represents document display settings.
type SettingsResponse struct {
	ShowTotals map[string]bool `json:"show_totals"`
}

// CellValueResponse represents the outcome of a cell edit.
type CellValueResponse struct {
	MonthIndex  int     `json:"month_index"`
	CategoryID  string  `json:"category_id,omitempty"`
	ParsedValue float64 `json:"parsed_value"`
}

// ToCategoryResponse converts a domain Category to its DTO.
func ToCategoryResponse(cat entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:   cat.ID,
		Name: cat.Name,
		Type: cat.Type,
	}
}

// ToBudgetDocumentResponse converts a domain BudgetDocument to its DTO.
func ToBudgetDocumentResponse(doc *entity.BudgetDocument) BudgetDocumentResponse {
	categories := make([]CategoryResponse, 0, len(doc.Categories))
	for _, cat := range doc.Categories {
		categories = append(categories, ToCategoryResponse(cat))
	}

	months := make([]MonthResponse, 0, entity.MonthCount)
	for _, month := range doc.Months {
		expenses := make(map[string]float64, len(month.Expenses))
		for id, value := range month.Expenses {
			expenses[id] = value
		}
		months = append(months, MonthResponse{
			Income:   month.Income,
			Expenses: expenses,
		})
	}

	return BudgetDocumentResponse{
		Presets:    doc.Presets,
		Categories: categories,
		Data:       months,
		Settings:   SettingsResponse{ShowTotals: doc.Settings.ShowTotals},
	}
}
