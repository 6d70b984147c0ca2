package premium

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

// GetStatusInput represents the input for reading a user's entitlement.
type GetStatusInput struct {
	UserID uuid.UUID
}

// GetStatusOutput represents the output of the entitlement read.
type GetStatusOutput struct {
	IsPremium          bool
	ActivationMethod   entity.ActivationMethod
	PremiumActivatedAt *time.Time
	CategoryLimit      int
}

// GetStatusUseCase reports the entitlement state and the effective category
// limit (0 meaning unlimited).
type GetStatusUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetStatusUseCase creates a new GetStatusUseCase instance.
func NewGetStatusUseCase(userRepo adapter.UserRepository) *GetStatusUseCase {
	return &GetStatusUseCase{userRepo: userRepo}
}

// Execute performs the read.
func (uc *GetStatusUseCase) Execute(ctx context.Context, input GetStatusInput) (*GetStatusOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	limit := entity.FreeCategoryLimit
	if user.IsPremium {
		limit = 0
	}

	return &GetStatusOutput{
		IsPremium:          user.IsPremium,
		ActivationMethod:   user.ActivationMethod,
		PremiumActivatedAt: user.PremiumActivatedAt,
		CategoryLimit:      limit,
	}, nil
}
