package repository

import (
	"context"
	"time"
)

// CacheRepository is a byte-level cache used for the public status-polling
// hot path. Implementations must treat every failure as a miss; the store of
// record is always consulted on a miss.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
