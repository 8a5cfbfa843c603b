// Package feeds serves the curated movie lists (trending, new
// releases, top rated) with a short cache and a stale-on-error
// fallback.
package feeds

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"

	"github.com/moviemuse/moviemuse/internal/cache"
	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/internal/tmdb"
)

// Feed names.
const (
	Trending    = "trending"
	NewReleases = "new-releases"
	TopRated    = "top-rated"
)

// ErrUnknownFeed indicates a feed name outside the known set.
var ErrUnknownFeed = errors.New("unknown feed")

// Lister is the slice of the catalog client feeds consume. Unlike the
// adapter, these calls surface errors so the stale fallback can react
// to them.
type Lister interface {
	Trending(ctx context.Context, pageNum int) ([]tmdb.Movie, error)
	DiscoverNewReleases(ctx context.Context, pageNum int) ([]tmdb.Movie, error)
	TopRated(ctx context.Context, pageNum int) ([]tmdb.Movie, error)
}

// Service fetches feeds through the query cache. Entries live for
// cache.FeedTTL; when a live fetch fails, an expired entry of any age
// is served instead of the error.
type Service struct {
	lister Lister
	cache  *cache.Cache
	logger *slog.Logger
}

// NewService creates a feed service.
func NewService(lister Lister, queryCache *cache.Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		lister: lister,
		cache:  queryCache,
		logger: logger.With("component", "feeds"),
	}
}

// Fetch returns one page of the named feed. Pages below 1 are clamped
// to 1.
func (s *Service) Fetch(ctx context.Context, feed string, page int) ([]catalog.Movie, error) {
	var fetch func(context.Context, int) ([]tmdb.Movie, error)
	switch feed {
	case Trending:
		fetch = s.lister.Trending
	case NewReleases:
		fetch = s.lister.DiscoverNewReleases
	case TopRated:
		fetch = s.lister.TopRated
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeed, feed)
	}

	if page < 1 {
		page = 1
	}
	key := cache.KeyFeed(feed, page)

	if raw, ok := s.cache.Get(ctx, key); ok {
		return decode(raw)
	}

	upstream, err := fetch(ctx, page)
	if err != nil {
		// Serve a stale entry of any age before giving up.
		if raw, ok := s.cache.GetStale(ctx, key); ok {
			s.logger.Warn("feed fetch failed, serving stale entry",
				"feed", feed, "page", page, "error", err)
			return decode(raw)
		}
		return nil, fmt.Errorf("fetch %s feed: %w", feed, err)
	}

	movies := catalog.FilterValid(catalog.FromTMDBList(upstream))
	if raw, err := json.Marshal(movies); err == nil {
		s.cache.Set(ctx, key, raw, cache.FeedTTL)
	}
	return movies, nil
}

func decode(raw []byte) ([]catalog.Movie, error) {
	var movies []catalog.Movie
	if err := json.Unmarshal(raw, &movies); err != nil {
		return nil, fmt.Errorf("decode cached feed: %w", err)
	}
	return movies, nil
}
