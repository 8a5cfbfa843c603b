package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/moviemuse/moviemuse/internal/omdb"
	"github.com/moviemuse/moviemuse/internal/tmdb"
)

// Adapter normalizes the third-party catalog services into the canonical
// record shape. Upstream failures are absorbed at this boundary: list
// operations return an empty slice and Details returns nil, so callers
// need no per-call error handling.
type Adapter struct {
	tmdb   *tmdb.Client
	omdb   *omdb.Client
	logger *slog.Logger
}

// NewAdapter creates a catalog adapter. The OMDB client may be nil; the
// detail path then serves TMDB data only.
func NewAdapter(tmdbClient *tmdb.Client, omdbClient *omdb.Client, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		tmdb:   tmdbClient,
		omdb:   omdbClient,
		logger: logger.With("component", "catalog"),
	}
}

// Search looks up movies by title, optionally constrained to a year.
// Results are filtered to displayable records and ordered by title
// similarity to the query.
func (a *Adapter) Search(ctx context.Context, title string, year int) []Movie {
	raw, err := a.tmdb.SearchMovies(ctx, title, year)
	if err != nil {
		a.absorb(ctx, "search", err, "query", title)
		return nil
	}
	movies := FromTMDBList(raw)
	rankBySimilarity(movies, title)
	return movies
}

// Details fetches the full record for a movie. Returns nil when the
// movie cannot be resolved, for any reason.
func (a *Adapter) Details(ctx context.Context, id ID) *Detail {
	switch id.Source {
	case SourceTMDB:
		return a.tmdbDetails(ctx, id)
	case SourceIMDB:
		// Prefer TMDB's richer record when the external id resolves.
		if tmdbID, ok := a.resolveIMDB(ctx, id.Native); ok {
			if d := a.tmdbDetails(ctx, TMDBID(tmdbID)); d != nil {
				return d
			}
		}
		if a.omdb == nil {
			return nil
		}
		d, err := a.omdb.ByIMDBID(ctx, id.Native)
		if err != nil {
			a.absorb(ctx, "details", err, "id", id.String())
			return nil
		}
		return detailFromOMDB(d)
	default:
		return nil
	}
}

func (a *Adapter) tmdbDetails(ctx context.Context, id ID) *Detail {
	native, ok := nativeTMDB(id)
	if !ok {
		return nil
	}
	d, err := a.tmdb.GetMovie(ctx, native)
	if err != nil {
		a.absorb(ctx, "details", err, "id", id.String())
		return nil
	}
	return detailFromTMDB(d)
}

// Similar returns movies similar to the given one.
func (a *Adapter) Similar(ctx context.Context, id ID) []Movie {
	return a.relatedList(ctx, id, "similar", a.tmdb.Similar)
}

// Recommendations returns the catalog's recommendations for a movie.
func (a *Adapter) Recommendations(ctx context.Context, id ID) []Movie {
	return a.relatedList(ctx, id, "recommendations", a.tmdb.Recommendations)
}

func (a *Adapter) relatedList(ctx context.Context, id ID, op string, fetch func(context.Context, int64) ([]tmdb.Movie, error)) []Movie {
	native, ok := a.toTMDBNative(ctx, id)
	if !ok {
		return nil
	}
	raw, err := fetch(ctx, native)
	if err != nil {
		a.absorb(ctx, op, err, "id", id.String())
		return nil
	}
	return FromTMDBList(raw)
}

// DiscoverByGenre returns a popularity-sorted discover page for a genre.
func (a *Adapter) DiscoverByGenre(ctx context.Context, genreID int) []Movie {
	raw, err := a.tmdb.DiscoverByGenre(ctx, genreID)
	if err != nil {
		a.absorb(ctx, "discover", err, "genre", genreID)
		return nil
	}
	return FromTMDBList(raw)
}

// toTMDBNative resolves any source id to a native TMDB id, using the
// find-by-external-id endpoint for IMDB ids.
func (a *Adapter) toTMDBNative(ctx context.Context, id ID) (int64, bool) {
	switch id.Source {
	case SourceTMDB:
		return nativeTMDB(id)
	case SourceIMDB:
		return a.resolveIMDB(ctx, id.Native)
	default:
		return 0, false
	}
}

func (a *Adapter) resolveIMDB(ctx context.Context, imdbID string) (int64, bool) {
	found, err := a.tmdb.FindByIMDBID(ctx, imdbID)
	if err != nil {
		a.absorb(ctx, "find", err, "imdb_id", imdbID)
		return 0, false
	}
	if len(found) == 0 {
		return 0, false
	}
	return found[0].ID, true
}

func nativeTMDB(id ID) (int64, bool) {
	var n int64
	for _, r := range id.Native {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int64(r-'0')
	}
	return n, !id.IsZero()
}

// absorb logs an upstream failure that will surface to the caller as an
// empty result. Context cancellation is the caller's doing, not worth a log.
func (a *Adapter) absorb(ctx context.Context, op string, err error, args ...any) {
	if ctx.Err() != nil {
		return
	}
	a.logger.Warn("upstream catalog call failed", append([]any{"op", op, "error", err}, args...)...)
}

// rankBySimilarity orders records by Jaro-Winkler similarity between
// their title and the query, preserving upstream order among ties.
func rankBySimilarity(movies []Movie, query string) {
	q := strings.ToLower(query)
	sort.SliceStable(movies, func(i, j int) bool {
		si := edlib.JaroWinklerSimilarity(strings.ToLower(movies[i].Title), q)
		sj := edlib.JaroWinklerSimilarity(strings.ToLower(movies[j].Title), q)
		return si > sj
	})
}
