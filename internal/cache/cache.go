// Package cache implements the two-tier query cache: an in-memory tier
// consulted first, backed by a persistent tier that survives restarts.
package cache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL governs catalog browse/discover/search queries.
const DefaultTTL = 30 * time.Minute

// FeedTTL governs the proxied trending/new-releases/top-rated feeds.
const FeedTTL = 5 * time.Minute

// Entry is a stored value with its expiry bookkeeping.
type Entry struct {
	Key      string
	Value    []byte
	StoredAt time.Time
	TTL      time.Duration
}

// Expired reports whether the entry's TTL has elapsed at the given time.
func (e Entry) Expired(now time.Time) bool {
	return now.Sub(e.StoredAt) >= e.TTL
}

// PersistentStore is the durable second tier. Get returns the entry even
// when expired (the Cache decides freshness), or nil when absent.
type PersistentStore interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, e Entry) error
	Delete(ctx context.Context, key string) error
	Prune(ctx context.Context, now time.Time) (int64, error)
	Clear(ctx context.Context) error
}

// Cache is safe for concurrent use. Entries may disappear between check
// and use; callers treat that as a miss, not an error.
type Cache struct {
	memory     *memoryTier
	persistent PersistentStore
	group      singleflight.Group
	clock      func() time.Time
	logger     *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock substitutes the time source (for tests).
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

// New creates a cache over the given persistent tier. The persistent
// store may be nil, leaving only the in-memory tier.
func New(persistent PersistentStore, logger *slog.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cache{
		memory:     newMemoryTier(),
		persistent: persistent,
		clock:      time.Now,
		logger:     logger.With("component", "cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key, consulting the in-memory tier
// first and repopulating it from the persistent tier on a miss. Expired
// entries are treated as absent but not removed: GetStale must still be
// able to serve them, so removal is left to Prune and to overwrites.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	now := c.clock()

	if value, ok := c.memory.get(key, now); ok {
		return value, true
	}

	if c.persistent == nil {
		return nil, false
	}
	entry, err := c.persistent.Get(ctx, key)
	if err != nil {
		c.logger.Warn("persistent tier read failed", "key", key, "error", err)
		return nil, false
	}
	if entry == nil || entry.Expired(now) {
		return nil, false
	}

	c.memory.put(*entry)
	return entry.Value, true
}

// GetStale returns the cached value regardless of age. Used by the feed
// path's stale-on-error fallback.
func (c *Cache) GetStale(ctx context.Context, key string) ([]byte, bool) {
	if value, ok := c.memory.getAny(key); ok {
		return value, true
	}
	if c.persistent == nil {
		return nil, false
	}
	entry, err := c.persistent.Get(ctx, key)
	if err != nil || entry == nil {
		return nil, false
	}
	return entry.Value, true
}

// Set writes both tiers. A persistent-tier failure degrades to
// memory-only caching with a logged warning.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	entry := Entry{Key: key, Value: value, StoredAt: c.clock(), TTL: ttl}
	c.memory.put(entry)

	if c.persistent == nil {
		return
	}
	if err := c.persistent.Put(ctx, entry); err != nil {
		c.logger.Warn("persistent tier write failed", "key", key, "error", err)
	}
}

// GetOrFill returns the cached value or computes it with fill, caching
// the result. Concurrent calls for the same key share one fill.
func (c *Cache) GetOrFill(ctx context.Context, key string, ttl time.Duration, fill func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check: another flight may have filled it between the miss
		// and acquiring the flight.
		if value, ok := c.Get(ctx, key); ok {
			return value, nil
		}
		value, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(ctx, key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

// Invalidate removes the entry from both tiers.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	c.memory.delete(key)
	if c.persistent == nil {
		return
	}
	if err := c.persistent.Delete(ctx, key); err != nil {
		c.logger.Warn("persistent tier delete failed", "key", key, "error", err)
	}
}

// Clear empties both tiers.
func (c *Cache) Clear(ctx context.Context) {
	c.memory.clear()
	if c.persistent == nil {
		return
	}
	if err := c.persistent.Clear(ctx); err != nil {
		c.logger.Warn("persistent tier clear failed", "error", err)
	}
}

// Prune removes expired entries from the persistent tier.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	if c.persistent == nil {
		return 0, nil
	}
	return c.persistent.Prune(ctx, c.clock())
}
