package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pointdesk/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// TeamAliasCache caches the team alias table with a time-to-live. The
// clock is injected so staleness is controllable in tests, and
// Invalidate forces a reload without waiting for expiry.
type TeamAliasCache struct {
	uowFactory interfaces.UnitOfWorkFactory
	clock      interfaces.Clock
	ttl        time.Duration

	mu       sync.Mutex
	aliases  map[string][]string
	loadedAt time.Time
}

// NewTeamAliasCache creates a new team alias cache
func NewTeamAliasCache(uowFactory interfaces.UnitOfWorkFactory, clock interfaces.Clock, ttl time.Duration) *TeamAliasCache {
	return &TeamAliasCache{
		uowFactory: uowFactory,
		clock:      clock,
		ttl:        ttl,
	}
}

// Get returns the alias map, reloading it when stale. A failed reload
// falls back to the previously cached data when available.
func (c *TeamAliasCache) Get(ctx context.Context) (map[string][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.aliases != nil && c.clock.Now().Sub(c.loadedAt) < c.ttl {
		return c.aliases, nil
	}

	aliases, err := c.load(ctx)
	if err != nil {
		if c.aliases != nil {
			log.WithError(err).Warn("Team alias reload failed, serving stale data")
			return c.aliases, nil
		}
		return nil, err
	}

	c.aliases = aliases
	c.loadedAt = c.clock.Now()
	return c.aliases, nil
}

// Invalidate discards the cached data so the next Get reloads
func (c *TeamAliasCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases = nil
	c.loadedAt = time.Time{}
}

func (c *TeamAliasCache) load(ctx context.Context) (map[string][]string, error) {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	aliases, err := uow.TeamAliasRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load team aliases: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return aliases, nil
}
