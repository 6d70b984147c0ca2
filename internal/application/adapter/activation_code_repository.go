package adapter

import (
	"context"
	"time"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// ActivationCodeRepository defines persistence for premium activation codes.
type ActivationCodeRepository interface {
	// Create stores a freshly generated code.
	Create(ctx context.Context, code *entity.ActivationCode) error

	// FindByCode retrieves a code by its exact value. Returns (nil, nil) when
	// the code is unknown, so callers can fall back to other lookups.
	FindByCode(ctx context.Context, code string) (*entity.ActivationCode, error)

	// MarkUsed records a redemption. Best effort: a failure here must not
	// block the activation that already happened.
	MarkUsed(ctx context.Context, code, usedBy string, at time.Time) error
}
