package shared

import (
	"context"
	"time"
)

// RunGuard serializes engine passes over overlapping key ranges.
// Each batch operation does read-then-upsert without optimistic locking, so
// two concurrent passes over the same warehouse can race and leave a stale
// write. Callers acquire the warehouse-scoped guard before starting a pass
// and release it when the pass finishes.
type RunGuard interface {
	// Acquire attempts to take the guard for the given key with a TTL that
	// bounds how long a crashed pass can hold it.
	// Returns true if the guard was taken, false if another pass holds it.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees the guard for the given key
	Release(ctx context.Context, key string) error

	// Close releases any resources held by the guard implementation
	Close() error
}

// RunGuardConfig holds configuration for engine pass serialization
type RunGuardConfig struct {
	// TTL bounds how long a guard stays held if a pass never releases it
	// Default: 15 minutes
	TTL time.Duration
}

// DefaultRunGuardConfig returns the default run guard configuration
func DefaultRunGuardConfig() RunGuardConfig {
	return RunGuardConfig{
		TTL: 15 * time.Minute,
	}
}
