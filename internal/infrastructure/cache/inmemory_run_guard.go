package cache

import (
	"context"
	"sync"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// hold represents an acquired run key with expiration
type hold struct {
	expiresAt time.Time
}

// InMemoryRunGuard implements shared.RunGuard using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryRunGuard struct {
	mu        sync.RWMutex
	holds     map[string]hold
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryRunGuard creates a new in-memory run guard.
// It starts a background goroutine to clean up expired holds.
func NewInMemoryRunGuard() *InMemoryRunGuard {
	guard := &InMemoryRunGuard{
		holds:    make(map[string]hold),
		stopChan: make(chan struct{}),
	}

	guard.wg.Add(1)
	go guard.cleanupLoop()

	return guard
}

// Acquire takes the hold for the given run key with a TTL.
// Returns true if the hold was newly taken, false if another run holds it.
func (g *InMemoryRunGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if h, exists := g.holds[key]; exists {
		if time.Now().Before(h.expiresAt) {
			return false, nil // Already held
		}
		// Hold exists but expired, will be overwritten
	}

	g.holds[key] = hold{
		expiresAt: time.Now().Add(ttl),
	}

	return true, nil
}

// Release drops the hold for the given run key.
// Releasing a key that is not held is not an error.
func (g *InMemoryRunGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.holds, key)
	return nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (g *InMemoryRunGuard) Close() error {
	g.closeOnce.Do(func() {
		close(g.stopChan)
		g.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired holds
func (g *InMemoryRunGuard) cleanupLoop() {
	defer g.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			return
		case <-ticker.C:
			g.cleanup()
		}
	}
}

// cleanup removes expired holds from the guard
func (g *InMemoryRunGuard) cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	for key, h := range g.holds {
		if now.After(h.expiresAt) {
			delete(g.holds, key)
		}
	}
}

// Size returns the number of holds in the guard (for testing/monitoring)
func (g *InMemoryRunGuard) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.holds)
}

// Ensure InMemoryRunGuard implements RunGuard
var _ shared.RunGuard = (*InMemoryRunGuard)(nil)
