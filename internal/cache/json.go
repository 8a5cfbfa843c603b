package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// GetJSON decodes a cached JSON value. A decode failure is a miss.
func GetJSON[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var v T
	raw, ok := c.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		c.Invalidate(ctx, key)
		return v, false
	}
	return v, true
}

// SetJSON encodes and stores a value. Encode failures are dropped; the
// next read simply misses.
func SetJSON[T any](ctx context.Context, c *Cache, key string, v T, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, raw, ttl)
}

// FillJSON is GetOrFill over JSON-encoded values.
func FillJSON[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fill func(ctx context.Context) (T, error)) (T, error) {
	var v T
	raw, err := c.GetOrFill(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		filled, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(filled)
	})
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	return v, nil
}
