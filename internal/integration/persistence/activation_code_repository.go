package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

// activationCodeRepository implements the adapter.ActivationCodeRepository interface.
type activationCodeRepository struct {
	db *gorm.DB
}

// NewActivationCodeRepository creates a new activation code repository instance.
func NewActivationCodeRepository(db *gorm.DB) adapter.ActivationCodeRepository {
	return &activationCodeRepository{
		db: db,
	}
}

// Create stores a freshly generated code.
func (r *activationCodeRepository) Create(ctx context.Context, code *entity.ActivationCode) error {
	codeModel := model.ActivationCodeFromEntity(code)
	result := r.db.WithContext(ctx).Create(codeModel)
	return result.Error
}

// FindByCode retrieves a code by its exact value. Unknown codes are not an
// error; redemption falls through to the payment gateway.
func (r *activationCodeRepository) FindByCode(ctx context.Context, code string) (*entity.ActivationCode, error) {
	var codeModel model.ActivationCodeModel
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&codeModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return codeModel.ToEntity(), nil
}

// MarkUsed records a redemption. The use counter moves in SQL so two
// concurrent redemptions cannot both read zero.
func (r *activationCodeRepository) MarkUsed(ctx context.Context, code, usedBy string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.ActivationCodeModel{}).
		Where("code = ?", code).
		Updates(map[string]any{
			"used":         true,
			"used_by":      usedBy,
			"used_at":      at,
			"current_uses": gorm.Expr("current_uses + 1"),
			"updated_at":   at,
		})
	return result.Error
}
