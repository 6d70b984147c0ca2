// Package cache implements the summary cache on Redis.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// summaryCache implements the adapter.SummaryCache interface.
type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new Redis-backed summary cache.
func NewSummaryCache(client *redis.Client, ttl time.Duration) adapter.SummaryCache {
	return &summaryCache{
		client: client,
		ttl:    ttl,
	}
}

func summaryKey(userID uuid.UUID) string {
	return "summary:" + userID.String()
}

// Get returns the cached summary payload, or nil on a miss.
func (c *summaryCache) Get(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	data, err := c.client.Get(ctx, summaryKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Set stores the summary payload with the configured TTL.
func (c *summaryCache) Set(ctx context.Context, userID uuid.UUID, data []byte) error {
	return c.client.Set(ctx, summaryKey(userID), data, c.ttl).Err()
}

// Invalidate drops the user's cached summary.
func (c *summaryCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, summaryKey(userID)).Err()
}
