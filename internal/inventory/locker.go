package inventory

import (
	"context"
	"time"
)

// Locker serializes stock adjustments on the same product. Backed by
// Redis SetNX in production.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
