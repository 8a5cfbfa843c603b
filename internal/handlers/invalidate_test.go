package handlers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/internal/events"
)

type recordingInvalidator struct {
	mu  sync.Mutex
	ids []catalog.ID
}

func (r *recordingInvalidator) InvalidateFor(_ context.Context, id catalog.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

func (r *recordingInvalidator) seen() []catalog.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]catalog.ID(nil), r.ids...)
}

func TestInvalidationHandler_WatchlistChange(t *testing.T) {
	bus := events.NewBus(nil)
	defer bus.Close()

	rec := &recordingInvalidator{}
	h := NewInvalidationHandler(bus, rec, nil)
	require.Equal(t, "invalidation", h.Name())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- h.Start(ctx) }()

	// Give Start time to subscribe before publishing
	time.Sleep(20 * time.Millisecond)

	bus.Publish(ctx, events.NewWatchlistChanged(1, "tmdb-603", events.ActionAdded))
	bus.Publish(ctx, events.NewReviewPosted(1, "tt0133093", 9))

	require.Eventually(t, func() bool {
		return len(rec.seen()) == 2
	}, time.Second, 10*time.Millisecond)

	ids := rec.seen()
	assert.Equal(t, catalog.TMDBID(603), ids[0])
	assert.Equal(t, catalog.IMDBID("tt0133093"), ids[1])

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("handler did not stop")
	}
}

func TestInvalidationHandler_BadIDIgnored(t *testing.T) {
	bus := events.NewBus(nil)
	defer bus.Close()

	rec := &recordingInvalidator{}
	h := NewInvalidationHandler(bus, rec, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = h.Start(ctx) }()
	time.Sleep(20 * time.Millisecond)

	bus.Publish(ctx, events.NewWatchlistChanged(1, "", events.ActionRemoved))
	bus.Publish(ctx, events.NewWatchlistChanged(1, "tmdb-550", events.ActionRemoved))

	require.Eventually(t, func() bool {
		return len(rec.seen()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, catalog.TMDBID(550), rec.seen()[0])
}
