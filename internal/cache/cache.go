// Package cache provides the in-memory lookup result cache, write-through
// backed by the persistent store.
package cache

import (
	"context"
	"sync"

	"github.com/emilyynorton/NotreDameRMP/internal/domain"
	"github.com/emilyynorton/NotreDameRMP/internal/store"
)

// Backend is the persistence layer behind the cache.
type Backend interface {
	GetOutcome(ctx context.Context, fullName string) (*store.CachedOutcome, error)
	SetOutcome(ctx context.Context, fullName string, outcome domain.MatchOutcome) error
	DeleteOutcome(ctx context.Context, fullName string) error
}

// ResultCache keeps match outcomes keyed by canonical full name, exactly as
// scraped. Case and accent variants are distinct instructors as far as the
// cache is concerned. Entries are populated lazily from the backend on first
// access and written through on Put.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]domain.MatchOutcome
	backend Backend
}

// New creates a ResultCache over the given backend.
func New(backend Backend) *ResultCache {
	return &ResultCache{
		entries: make(map[string]domain.MatchOutcome),
		backend: backend,
	}
}

// Get returns the cached outcome for an instructor name, or false if the
// name has never been resolved (in memory or in the backend).
func (c *ResultCache) Get(ctx context.Context, fullName string) (domain.MatchOutcome, bool, error) {
	c.mu.RLock()
	outcome, ok := c.entries[fullName]
	c.mu.RUnlock()
	if ok {
		return outcome, true, nil
	}

	cached, err := c.backend.GetOutcome(ctx, fullName)
	if err != nil {
		return domain.MatchOutcome{}, false, err
	}
	if cached == nil {
		return domain.MatchOutcome{}, false, nil
	}

	c.mu.Lock()
	c.entries[fullName] = cached.Outcome
	c.mu.Unlock()

	return cached.Outcome, true, nil
}

// Put stores an outcome for an instructor name. Transient failures are
// rejected so a later lookup can retry.
func (c *ResultCache) Put(ctx context.Context, fullName string, outcome domain.MatchOutcome) error {
	if !outcome.Cacheable() {
		return nil
	}

	if err := c.backend.SetOutcome(ctx, fullName, outcome); err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[fullName] = outcome
	c.mu.Unlock()

	return nil
}

// Invalidate drops an entry from memory and the backend.
func (c *ResultCache) Invalidate(ctx context.Context, fullName string) error {
	c.mu.Lock()
	delete(c.entries, fullName)
	c.mu.Unlock()

	return c.backend.DeleteOutcome(ctx, fullName)
}
