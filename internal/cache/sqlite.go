package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteStore is the persistent cache tier, backed by the query_cache
// table. Entries store their own TTL so freshness survives restarts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the persistent tier over an already-migrated
// database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the entry for key, expired or not, or nil when absent.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*Entry, error) {
	var e Entry
	var storedAtMs, ttlMs int64

	err := s.db.QueryRowContext(ctx,
		"SELECT key, value, stored_at_ms, ttl_ms FROM query_cache WHERE key = ?", key,
	).Scan(&e.Key, &e.Value, &storedAtMs, &ttlMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	e.StoredAt = time.UnixMilli(storedAtMs)
	e.TTL = time.Duration(ttlMs) * time.Millisecond
	return &e, nil
}

// Put upserts the entry.
func (s *SQLiteStore) Put(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_cache (key, value, stored_at_ms, ttl_ms)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value,
		     stored_at_ms = excluded.stored_at_ms, ttl_ms = excluded.ttl_ms`,
		e.Key, e.Value, e.StoredAt.UnixMilli(), e.TTL.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Delete removes a single entry.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM query_cache WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Prune removes all expired entries. Returns the number removed.
func (s *SQLiteStore) Prune(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM query_cache WHERE stored_at_ms + ttl_ms <= ?", now.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// Clear empties the tier.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM query_cache")
	if err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}
