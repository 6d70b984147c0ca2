// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Load retrieves the user's budget document.
func (r *budgetRepository) Load(ctx context.Context, userID uuid.UUID) (*entity.BudgetDocument, error) {
	var docModel model.BudgetDocumentModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&docModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return docModel.ToEntity()
}

// Save persists the document as an upsert on the user's single row. With
// merge set, only the document sections are assigned on conflict, so columns
// added later survive a save from an older snapshot.
func (r *budgetRepository) Save(ctx context.Context, userID uuid.UUID, doc *entity.BudgetDocument, merge bool) error {
	docModel, err := model.BudgetFromEntity(userID, doc)
	if err != nil {
		return err
	}

	var onConflict clause.Expression
	if merge {
		onConflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"presets", "categories", "data", "settings", "updated_at"}),
		}
	} else {
		onConflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}
	}

	result := r.db.WithContext(ctx).Clauses(onConflict).Create(docModel)
	return result.Error
}
