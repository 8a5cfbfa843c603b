package handlers

import (
	"context"
	"log/slog"

	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/internal/events"
)

// Invalidator is the slice of the recommendation engine this handler
// drives.
type Invalidator interface {
	InvalidateFor(ctx context.Context, id catalog.ID)
}

// InvalidationHandler drops cached recommendation entries when the
// activity they were derived from changes. A watchlist mutation or a
// fresh review makes the movie's cascade entry stale.
type InvalidationHandler struct {
	bus    *events.Bus
	engine Invalidator
	logger *slog.Logger
}

// NewInvalidationHandler creates an invalidation handler.
func NewInvalidationHandler(bus *events.Bus, engine Invalidator, logger *slog.Logger) *InvalidationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvalidationHandler{
		bus:    bus,
		engine: engine,
		logger: logger,
	}
}

// Name returns the handler name.
func (h *InvalidationHandler) Name() string {
	return "invalidation"
}

// Start begins processing events (blocking).
func (h *InvalidationHandler) Start(ctx context.Context) error {
	watchlistChanged := h.bus.Subscribe(events.TypeWatchlistChanged, 100)
	reviewPosted := h.bus.Subscribe(events.TypeReviewPosted, 100)

	for {
		select {
		case e, ok := <-watchlistChanged:
			if !ok {
				return nil
			}
			if changed, isChange := e.(events.WatchlistChanged); isChange {
				h.invalidate(ctx, changed.MovieID, changed.EventType())
			}
		case e, ok := <-reviewPosted:
			if !ok {
				return nil
			}
			if posted, isPost := e.(events.ReviewPosted); isPost {
				h.invalidate(ctx, posted.MovieID, posted.EventType())
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *InvalidationHandler) invalidate(ctx context.Context, movieID, eventType string) {
	id, err := catalog.ParseID(movieID)
	if err != nil {
		h.logger.Warn("unparseable movie id in event", "movie_id", movieID, "event", eventType)
		return
	}
	h.engine.InvalidateFor(ctx, id)
	h.logger.Debug("invalidated recommendations", "movie_id", movieID, "event", eventType)
}
