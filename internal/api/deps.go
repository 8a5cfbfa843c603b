package api

import (
	"context"
	"errors"

	"github.com/moviemuse/moviemuse/internal/auth"
	"github.com/moviemuse/moviemuse/internal/cache"
	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/internal/reviews"
	"github.com/moviemuse/moviemuse/internal/watchlist"
)

// Authenticator handles signup, login, and token validation.
type Authenticator interface {
	Signup(ctx context.Context, username, password string) (*auth.User, error)
	Login(ctx context.Context, username, password string) (*auth.Session, error)
	Authenticate(token string) (*auth.Claims, error)
}

// WatchlistService mutates and lists per-user watchlists. Mutations
// return the full resulting list.
type WatchlistService interface {
	List(ctx context.Context, userID int64) ([]watchlist.Entry, error)
	Add(ctx context.Context, userID int64, e watchlist.Entry) ([]watchlist.Entry, error)
	Remove(ctx context.Context, userID int64, movieID string) ([]watchlist.Entry, error)
}

// ReviewService reads and upserts per-movie reviews.
type ReviewService interface {
	ForMovie(ctx context.Context, movieID string) ([]reviews.Review, error)
	Upsert(ctx context.Context, movieID string, userID int64, rating int, comment string) (*reviews.Review, error)
}

// FeedService serves the curated feeds.
type FeedService interface {
	Fetch(ctx context.Context, feed string, page int) ([]catalog.Movie, error)
}

// Searcher performs title searches. Upstream failures surface as empty
// results, never as errors.
type Searcher interface {
	Search(ctx context.Context, title string, year int) []catalog.Movie
}

// Detailer resolves a movie id to its detail record, or nil.
type Detailer interface {
	Details(ctx context.Context, id catalog.ID) *catalog.Detail
}

// Recommender produces suggestions for a watchlist.
type Recommender interface {
	ForWatchlist(ctx context.Context, activeQuery string, watchlist []catalog.Movie) []catalog.Movie
}

// ServerDeps contains all dependencies for the API server.
type ServerDeps struct {
	// Required dependencies
	Auth      Authenticator
	Watchlist WatchlistService
	Reviews   ReviewService
	Feeds     FeedService
	Searcher  Searcher
	Detailer  Detailer

	// Optional dependencies (nil disables the feature)
	Recommender Recommender
	Cache       *cache.Cache
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Auth == nil {
		return errors.New("auth service is required")
	}
	if d.Watchlist == nil {
		return errors.New("watchlist service is required")
	}
	if d.Reviews == nil {
		return errors.New("review service is required")
	}
	if d.Feeds == nil {
		return errors.New("feed service is required")
	}
	if d.Searcher == nil {
		return errors.New("searcher is required")
	}
	if d.Detailer == nil {
		return errors.New("detailer is required")
	}
	return nil
}
