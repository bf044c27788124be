package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wms/backend/internal/domain/shared"
)

// releaseScript deletes a run key only when it still holds the token
// this instance acquired with. A guard whose TTL lapsed mid-run must
// not free the hold a newer run has since taken.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisRunGuard implements shared.RunGuard using Redis.
// This is suitable for distributed deployments where multiple instances
// must not run the same recompute or ledger generation concurrently.
type RedisRunGuard struct {
	client    *redis.Client
	keyPrefix string

	mu     sync.Mutex
	tokens map[string]string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisRunGuard creates a new Redis-backed run guard
func NewRedisRunGuard(cfg RedisConfig) (*RedisRunGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisRunGuardWithClient(client, ""), nil
}

// NewRedisRunGuardWithClient creates a guard with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisRunGuardWithClient(client *redis.Client, keyPrefix string) *RedisRunGuard {
	if keyPrefix == "" {
		keyPrefix = "wms:run:"
	}
	return &RedisRunGuard{
		client:    client,
		keyPrefix: keyPrefix,
		tokens:    make(map[string]string),
	}
}

// Acquire takes the hold for the given run key with a TTL.
// Returns true if the hold was newly taken, false if another run holds it.
// The hold value is a per-acquisition token, so only the acquirer can
// release it later.
func (g *RedisRunGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, g.keyPrefix+key, token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire run hold: %w", err)
	}
	if ok {
		g.mu.Lock()
		g.tokens[key] = token
		g.mu.Unlock()
	}
	return ok, nil
}

// Release drops the hold for the given run key, but only when this
// instance still owns it. Releasing a key that is not held, or that a
// newer run has taken over after TTL expiry, is not an error.
func (g *RedisRunGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	token, owned := g.tokens[key]
	delete(g.tokens, key)
	g.mu.Unlock()

	if !owned {
		return nil
	}

	if err := releaseScript.Run(ctx, g.client, []string{g.keyPrefix + key}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release run hold: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (g *RedisRunGuard) Close() error {
	return g.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (g *RedisRunGuard) GetClient() *redis.Client {
	return g.client
}

// Ensure RedisRunGuard implements RunGuard
var _ shared.RunGuard = (*RedisRunGuard)(nil)
