package cache

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKeyDeterminism(t *testing.T) {
	assert.Equal(t, KeySearch("Matrix"), KeySearch("Matrix"))
	assert.Equal(t, "search-matrix", KeySearch("Matrix"))
	assert.Equal(t, "genre-18", KeyGenre(18))
	assert.Equal(t, "trending-page-2", KeyFeed("trending", 2))
	assert.Equal(t, "recs-tmdb-603", KeyRecommendations("tmdb-603"))
	assert.Equal(t, "detail-tt0133093", KeyDetail("tt0133093"))
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "amelie", NormalizeTitle("Amélie"))
	assert.Equal(t, "amelie", NormalizeTitle("  AMELIE "))
	assert.Equal(t, "the matrix", NormalizeTitle("The   Matrix"))
	assert.Equal(t, KeySearch("Amélie"), KeySearch("amelie"), "equal logical queries collide")
}
