// Package recommend produces watchlist-driven movie suggestions by
// cascading through per-movie catalog recommendations and a genre
// discovery fallback.
package recommend

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/moviemuse/moviemuse/internal/cache"
	"github.com/moviemuse/moviemuse/internal/catalog"
)

//go:generate mockgen -source=engine.go -destination=mocks/catalog.go -package=mocks

// Catalog is the slice of the catalog adapter the engine consumes.
type Catalog interface {
	Recommendations(ctx context.Context, id catalog.ID) []catalog.Movie
	DiscoverByGenre(ctx context.Context, genreID int) []catalog.Movie
}

const (
	// seedWindow is how many of the most recent watchlist entries
	// seed the per-movie cascade.
	seedWindow = 3

	// minCandidates is the threshold below which the genre fallback
	// kicks in.
	minCandidates = 3

	// maxResults caps the final suggestion list.
	maxResults = 10
)

// Engine computes recommendations for a watchlist. Safe for concurrent
// use.
type Engine struct {
	catalog Catalog
	cache   *cache.Cache
	logger  *slog.Logger
	pick    func(n int) int
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenrePicker overrides the random genre selection, for tests.
func WithGenrePicker(pick func(n int) int) Option {
	return func(e *Engine) {
		e.pick = pick
	}
}

func NewEngine(cat Catalog, queryCache *cache.Cache, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		catalog: cat,
		cache:   queryCache,
		logger:  logger.With("component", "recommend"),
		pick:    rand.IntN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ForWatchlist produces up to maxResults suggestions for the given
// watchlist, ordered by add time. Suggestions are suppressed entirely
// while a search query is active, and an empty watchlist yields nil
// without any catalog traffic. No suggestion shares a normalized id
// with a watchlist entry or with another suggestion.
func (e *Engine) ForWatchlist(ctx context.Context, activeQuery string, watchlist []catalog.Movie) []catalog.Movie {
	if strings.TrimSpace(activeQuery) != "" {
		return nil
	}
	if len(watchlist) == 0 {
		return nil
	}

	owned := make(map[string]struct{}, len(watchlist))
	for _, m := range watchlist {
		owned[m.ID.Normalized()] = struct{}{}
	}

	seeds := watchlist
	if len(seeds) > seedWindow {
		seeds = seeds[len(seeds)-seedWindow:]
	}

	// Fetch every seed's recommendations in parallel; merge order
	// stays deterministic because each seed writes its own slot.
	perSeed := make([][]catalog.Movie, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	for i, seed := range seeds {
		g.Go(func() error {
			perSeed[i] = e.seedRecommendations(gctx, seed.ID)
			return nil
		})
	}
	g.Wait()

	seen := owned
	var out []catalog.Movie
	for _, recs := range perSeed {
		out = appendUnseen(out, recs, seen)
	}

	if len(out) < minCandidates {
		out = appendUnseen(out, e.discoverFallback(ctx, watchlist), seen)
	}

	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

// InvalidateFor drops the cached per-movie recommendation entry for a
// movie that was just added to or removed from a watchlist, so stale
// suggestions cannot resurface.
func (e *Engine) InvalidateFor(ctx context.Context, id catalog.ID) {
	if e.cache == nil {
		return
	}
	e.cache.Invalidate(ctx, cache.KeyRecommendations(id.String()))
}

func (e *Engine) seedRecommendations(ctx context.Context, id catalog.ID) []catalog.Movie {
	if e.cache == nil {
		return catalog.FilterValid(e.catalog.Recommendations(ctx, id))
	}
	results, err := cache.FillJSON(ctx, e.cache, cache.KeyRecommendations(id.String()), cache.DefaultTTL,
		func(ctx context.Context) ([]catalog.Movie, error) {
			return catalog.FilterValid(e.catalog.Recommendations(ctx, id)), nil
		})
	if err != nil {
		e.logger.Warn("seed recommendations unavailable", "movie", id.String(), "error", err)
		return nil
	}
	return results
}

// discoverFallback picks one genre from the union of genres across the
// watchlist and fetches a popularity-sorted discover list for it.
func (e *Engine) discoverFallback(ctx context.Context, watchlist []catalog.Movie) []catalog.Movie {
	genres := genreUnion(watchlist)
	if len(genres) == 0 {
		return nil
	}
	name := genres[e.pick(len(genres))]
	genreID := catalog.ResolveGenreID(name)
	e.logger.Debug("genre discovery fallback", "genre", name, "genre_id", genreID)

	if e.cache == nil {
		return catalog.FilterValid(e.catalog.DiscoverByGenre(ctx, genreID))
	}
	results, err := cache.FillJSON(ctx, e.cache, cache.KeyGenre(genreID), cache.DefaultTTL,
		func(ctx context.Context) ([]catalog.Movie, error) {
			return catalog.FilterValid(e.catalog.DiscoverByGenre(ctx, genreID)), nil
		})
	if err != nil {
		e.logger.Warn("genre discovery unavailable", "genre", name, "error", err)
		return nil
	}
	return results
}

// appendUnseen appends movies whose normalized id is not yet in seen,
// recording each accepted id.
func appendUnseen(out, movies []catalog.Movie, seen map[string]struct{}) []catalog.Movie {
	for _, m := range movies {
		key := m.ID.Normalized()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

// genreUnion returns the distinct genre names across the watchlist in
// first-seen order.
func genreUnion(watchlist []catalog.Movie) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, m := range watchlist {
		for _, g := range m.Genres {
			key := strings.ToLower(g)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			genres = append(genres, g)
		}
	}
	return genres
}
