package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SummaryCache caches serialized year summaries per user. A nil byte slice
// from Get means a miss. Cache failures are advisory; callers degrade to a
// recompute, never to an error.
type SummaryCache interface {
	Get(ctx context.Context, userID uuid.UUID) ([]byte, error)
	Set(ctx context.Context, userID uuid.UUID, data []byte) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
