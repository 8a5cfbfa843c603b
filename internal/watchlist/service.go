package watchlist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/moviemuse/moviemuse/internal/events"
)

// Service wraps the store with domain rules and event publication.
// Every mutation returns the full resulting list; the server copy is
// authoritative and clients render exactly what they receive.
type Service struct {
	store  *Store
	bus    *events.Bus
	logger *slog.Logger
}

// NewService creates a watchlist service. The bus may be nil.
func NewService(store *Store, bus *events.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  store,
		bus:    bus,
		logger: logger.With("component", "watchlist"),
	}
}

// List returns the user's watchlist, oldest first.
func (s *Service) List(ctx context.Context, userID int64) ([]Entry, error) {
	return s.store.List(ctx, userID)
}

// Add upserts an entry and returns the updated list.
func (s *Service) Add(ctx context.Context, userID int64, e Entry) ([]Entry, error) {
	if !e.Movie.Valid() {
		return nil, fmt.Errorf("movie is missing id, title, or poster")
	}
	if e.UserRating != nil && (*e.UserRating < 1 || *e.UserRating > 10) {
		return nil, fmt.Errorf("rating must be between 1 and 10")
	}

	if err := s.store.Add(ctx, userID, e); err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewWatchlistChanged(userID, e.Movie.ID.String(), events.ActionAdded))
	s.logger.Info("watchlist entry added", "user_id", userID, "movie", e.Movie.ID.String())

	return s.store.List(ctx, userID)
}

// Remove deletes an entry and returns the updated list.
func (s *Service) Remove(ctx context.Context, userID int64, movieID string) ([]Entry, error) {
	if err := s.store.Remove(ctx, userID, movieID); err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewWatchlistChanged(userID, movieID, events.ActionRemoved))
	s.logger.Info("watchlist entry removed", "user_id", userID, "movie", movieID)

	return s.store.List(ctx, userID)
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if s.bus != nil {
		s.bus.Publish(ctx, e)
	}
}
