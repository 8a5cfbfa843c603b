package cache

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key construction is a pure function of the logical query, so identical
// queries always collide on the same entry regardless of call order.

// KeySearch builds the key for a title search.
func KeySearch(title string) string {
	return "search-" + NormalizeTitle(title)
}

// KeyGenre builds the key for a genre discover query.
func KeyGenre(genreID int) string {
	return fmt.Sprintf("genre-%d", genreID)
}

// KeyFeed builds the key for a proxied feed page.
func KeyFeed(feed string, page int) string {
	return fmt.Sprintf("%s-page-%d", feed, page)
}

// KeyRecommendations builds the per-source-movie recommendations key.
func KeyRecommendations(movieID string) string {
	return "recs-" + movieID
}

// KeySimilar builds the similar-movies key.
func KeySimilar(movieID string) string {
	return "similar-" + movieID
}

// KeyDetail builds the detail-view key.
func KeyDetail(movieID string) string {
	return "detail-" + movieID
}

// NormalizeTitle lowercases, strips accents, and collapses whitespace so
// "Amélie", "amelie " and "AMELIE" hit the same entry.
func NormalizeTitle(title string) string {
	s := removeAccents(strings.ToLower(title))
	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
