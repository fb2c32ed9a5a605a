package tracking

import (
	"log"
	"sync"
	"time"

	"agiliza_backend/internal/model"
)

// Source is where the tracking configuration lives. Satisfied by the
// settings repository.
type Source interface {
	Get() (model.SiteSettings, error)
}

// Cache hands out the current tracking configuration without hitting the
// store on every page render. Fetched on boot, refreshed after the TTL,
// and invalidated explicitly when the admin saves the settings form.
type Cache struct {
	source Source
	ttl    time.Duration

	mu        sync.Mutex
	current   model.SiteSettings
	fetchedAt time.Time
}

func NewCache(source Source, ttl time.Duration) *Cache {
	return &Cache{source: source, ttl: ttl}
}

// Current returns the cached settings, refreshing when stale. A failing
// refresh logs and keeps the last known value, so page rendering never
// fails on a tracking lookup.
func (c *Cache) Current() model.SiteSettings {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		return c.current
	}

	settings, err := c.source.Get()
	if err != nil {
		log.Printf("tracking: could not refresh settings, keeping last known: %v", err)
		return c.current
	}

	c.current = settings
	c.fetchedAt = time.Now()
	return c.current
}

// Invalidate forces the next Current call to re-read the store.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
