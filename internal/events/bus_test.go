package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	// Subscribe before publishing
	ch := bus.Subscribe(TypeWatchlistChanged, 10)

	bus.Publish(context.Background(), NewWatchlistChanged(1, "tmdb-603", ActionAdded))

	select {
	case received := <-ch:
		assert.Equal(t, TypeWatchlistChanged, received.EventType())
		changed, ok := received.(WatchlistChanged)
		assert.True(t, ok)
		assert.Equal(t, "tmdb-603", changed.MovieID)
		assert.Equal(t, ActionAdded, changed.Action)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestBus_TypeFiltering(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.Subscribe(TypeReviewPosted, 10)

	bus.Publish(context.Background(), NewWatchlistChanged(1, "tmdb-603", ActionRemoved))

	select {
	case e := <-ch:
		t.Fatalf("unexpected event %q on review subscription", e.EventType())
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.SubscribeAll(10)

	bus.Publish(context.Background(), NewWatchlistChanged(1, "tmdb-603", ActionAdded))
	bus.Publish(context.Background(), NewReviewPosted(1, "tmdb-603", 9))

	received := make([]Event, 0, 2)
	timeout := time.After(time.Second)
	for i := 0; i < 2; i++ {
		select {
		case e := <-ch:
			received = append(received, e)
		case <-timeout:
			t.Fatalf("timeout waiting for event %d", i+1)
		}
	}

	assert.Len(t, received, 2)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.Subscribe(TypeWatchlistChanged, 10)
	bus.Unsubscribe(ch)

	// Publish should not block even with no subscribers.
	bus.Publish(context.Background(), NewWatchlistChanged(1, "tmdb-603", ActionAdded))

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	default:
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	ch := bus.SubscribeAll(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			bus.Publish(context.Background(), NewWatchlistChanged(int64(n), "tmdb-603", ActionAdded))
		}(i)
	}

	wg.Wait()

	count := 0
	timeout := time.After(time.Second)
loop:
	for {
		select {
		case <-ch:
			count++
			if count == 10 {
				break loop
			}
		case <-timeout:
			break loop
		}
	}

	assert.Equal(t, 10, count)
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(nil)
	ch := bus.Subscribe(TypeWatchlistChanged, 1)

	require.NoError(t, bus.Close())

	// Publishing after close is a no-op.
	bus.Publish(context.Background(), NewWatchlistChanged(1, "tmdb-603", ActionAdded))

	_, open := <-ch
	assert.False(t, open, "channel should be closed")
}
