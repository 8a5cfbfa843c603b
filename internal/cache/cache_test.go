package cache

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE query_cache (
    key          TEXT PRIMARY KEY,
    value        BLOB NOT NULL,
    stored_at_ms INTEGER NOT NULL,
    ttl_ms       INTEGER NOT NULL
);`

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return NewSQLiteStore(db)
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(t *testing.T, clock *fakeClock) *Cache {
	t.Helper()
	return New(setupStore(t), testLogger(), WithClock(clock.Now))
}

func TestCache_SetThenGet(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, newFakeClock())

	c.Set(ctx, "search-matrix", []byte(`["a"]`), DefaultTTL)

	got, ok := c.Get(ctx, "search-matrix")
	require.True(t, ok)
	assert.Equal(t, []byte(`["a"]`), got)
}

func TestCache_TTLBoundary(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := newTestCache(t, clock)

	c.Set(ctx, "k", []byte("v"), 300_000*time.Millisecond)

	clock.Advance(299_999 * time.Millisecond)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok, "present just before expiry")

	clock.Advance(2 * time.Millisecond)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok, "absent just after expiry")
}

func TestCache_ExpiredEntrySurvivesReads(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := setupStore(t)
	c := New(store, testLogger(), WithClock(clock.Now))

	c.Set(ctx, "k", []byte("v"), time.Minute)
	clock.Advance(2 * time.Minute)

	// Misses for normal reads, but the entry stays in both tiers so
	// the stale fallback can still reach it.
	_, ok := c.Get(ctx, "k")
	require.False(t, ok)

	entry, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, entry)

	got, ok := c.GetStale(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	// Only the sweep removes it.
	removed, err := c.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	entry, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestCache_PersistentTierRepopulatesMemory(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := setupStore(t)

	// Simulate a restart: entry exists only in the persistent tier.
	first := New(store, testLogger(), WithClock(clock.Now))
	first.Set(ctx, "k", []byte("v"), DefaultTTL)

	second := New(store, testLogger(), WithClock(clock.Now))
	got, ok := second.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	// Now served from memory even if the persistent tier loses it.
	require.NoError(t, store.Delete(ctx, "k"))
	_, ok = second.Get(ctx, "k")
	assert.True(t, ok)
}

func TestCache_GetStaleIgnoresExpiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := newTestCache(t, clock)

	c.Set(ctx, "trending-page-1", []byte("stale"), FeedTTL)
	clock.Advance(400_000 * time.Millisecond)

	_, ok := c.Get(ctx, "trending-page-1")
	require.False(t, ok, "expired for normal reads")

	got, ok := c.GetStale(ctx, "trending-page-1")
	require.True(t, ok, "still served for stale fallback")
	assert.Equal(t, []byte("stale"), got)
}

func TestCache_GetOrFill_SharesConcurrentFills(t *testing.T) {
	ctx := context.Background()
	c := New(nil, testLogger())

	var calls atomic.Int32
	release := make(chan struct{})

	fill := func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("v"), nil
	}

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.GetOrFill(ctx, "k", DefaultTTL, fill)
			assert.NoError(t, err)
			assert.Equal(t, []byte("v"), got)
		}()
	}

	// Give the goroutines time to coalesce on the flight before release.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent identical queries share one fetch")
}

func TestCache_GetOrFill_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := New(nil, testLogger())

	fillErr := errors.New("upstream down")
	_, err := c.GetOrFill(ctx, "k", DefaultTTL, func(ctx context.Context) ([]byte, error) {
		return nil, fillErr
	})
	require.ErrorIs(t, err, fillErr)

	got, err := c.GetOrFill(ctx, "k", DefaultTTL, func(ctx context.Context) ([]byte, error) {
		return []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), got)
}

func TestCache_InvalidateAndClear(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, newFakeClock())

	c.Set(ctx, "a", []byte("1"), DefaultTTL)
	c.Set(ctx, "b", []byte("2"), DefaultTTL)

	c.Invalidate(ctx, "a")
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "b")
	assert.True(t, ok)

	c.Clear(ctx)
	_, ok = c.Get(ctx, "b")
	assert.False(t, ok)
}

func TestSQLiteStore_Prune(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := setupStore(t)

	now := clock.Now()
	require.NoError(t, store.Put(ctx, Entry{Key: "old", Value: []byte("x"), StoredAt: now.Add(-time.Hour), TTL: time.Minute}))
	require.NoError(t, store.Put(ctx, Entry{Key: "fresh", Value: []byte("y"), StoredAt: now, TTL: time.Hour}))

	removed, err := store.Prune(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	entry, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, entry)
}
