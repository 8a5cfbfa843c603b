package catalog

import "strings"

// defaultGenreID is Drama, used when a name doesn't resolve.
const defaultGenreID = 18

// tmdbGenres is TMDB's static movie genre table.
var tmdbGenres = map[string]int{
	"Action":          28,
	"Adventure":       12,
	"Animation":       16,
	"Comedy":          35,
	"Crime":           80,
	"Documentary":     99,
	"Drama":           18,
	"Family":          10751,
	"Fantasy":         14,
	"History":         36,
	"Horror":          27,
	"Music":           10402,
	"Mystery":         9648,
	"Romance":         10749,
	"Science Fiction": 878,
	"TV Movie":        10770,
	"Thriller":        53,
	"War":             10752,
	"Western":         37,
}

var genreNames = func() map[int]string {
	names := make(map[int]string, len(tmdbGenres))
	for name, id := range tmdbGenres {
		names[id] = name
	}
	return names
}()

// ResolveGenreID maps a genre name to its catalog id by exact
// case-insensitive match. Unknown names fall back to Drama; this never fails.
func ResolveGenreID(name string) int {
	for known, id := range tmdbGenres {
		if strings.EqualFold(known, name) {
			return id
		}
	}
	return defaultGenreID
}

// GenreName returns the display name for a catalog genre id, or "" if
// the id is not in the static table.
func GenreName(id int) string {
	return genreNames[id]
}
