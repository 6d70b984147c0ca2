package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// BudgetDocumentModel represents the budget_documents table. The document
// sections are stored as JSON columns so the whole budget stays one row per
// user and schema changes inside a section never need a migration.
type BudgetDocumentModel struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Presets    []byte    `gorm:"type:jsonb;column:presets"`
	Categories []byte    `gorm:"type:jsonb;column:categories"`
	Data       []byte    `gorm:"type:jsonb;column:data"`
	Settings   []byte    `gorm:"type:jsonb;column:settings"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetDocumentModel.
func (BudgetDocumentModel) TableName() string {
	return "budget_documents"
}

// ToEntity converts a BudgetDocumentModel to a domain BudgetDocument entity.
func (m *BudgetDocumentModel) ToEntity() (*entity.BudgetDocument, error) {
	doc := &entity.BudgetDocument{}
	sections := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"presets", m.Presets, &doc.Presets},
		{"categories", m.Categories, &doc.Categories},
		{"data", m.Data, &doc.Months},
		{"settings", m.Settings, &doc.Settings},
	}
	for _, s := range sections {
		if len(s.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(s.raw, s.dst); err != nil {
			return nil, fmt.Errorf("failed to decode budget %s: %w", s.name, err)
		}
	}
	doc.EnsureDefaults()
	return doc, nil
}

// BudgetFromEntity creates a BudgetDocumentModel from a domain BudgetDocument.
func BudgetFromEntity(userID uuid.UUID, doc *entity.BudgetDocument) (*BudgetDocumentModel, error) {
	presets, err := json.Marshal(doc.Presets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode budget presets: %w", err)
	}
	categories, err := json.Marshal(doc.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode budget categories: %w", err)
	}
	data, err := json.Marshal(doc.Months)
	if err != nil {
		return nil, fmt.Errorf("failed to encode budget data: %w", err)
	}
	settings, err := json.Marshal(doc.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to encode budget settings: %w", err)
	}
	return &BudgetDocumentModel{
		UserID:     userID,
		Presets:    presets,
		Categories: categories,
		Data:       data,
		Settings:   settings,
	}, nil
}
