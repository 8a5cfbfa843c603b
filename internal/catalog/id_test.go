package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{in: "tmdb-603", want: ID{Source: SourceTMDB, Native: "603"}},
		{in: "603", want: ID{Source: SourceTMDB, Native: "603"}},
		{in: "tt0133093", want: ID{Source: SourceIMDB, Native: "tt0133093"}},
		{in: "", wantErr: true},
		{in: "tmdb-", wantErr: true},
		{in: "blu-ray", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestID_String_RoundTrip(t *testing.T) {
	for _, id := range []ID{TMDBID(603), IMDBID("tt0133093")} {
		parsed, err := ParseID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
}

func TestID_Normalized(t *testing.T) {
	assert.Equal(t, "603", TMDBID(603).Normalized())
	assert.Equal(t, "tt0133093", IMDBID("tt0133093").Normalized())
}

func TestID_SourcesNeverCollide(t *testing.T) {
	a := ID{Source: SourceTMDB, Native: "12345"}
	b := ID{Source: SourceIMDB, Native: "12345"}
	assert.NotEqual(t, a, b)
	assert.Equal(t, a.Normalized(), b.Normalized(), "normalized ids intentionally drop the source")
}

func TestMovie_Valid(t *testing.T) {
	valid := Movie{ID: TMDBID(603), Title: "The Matrix", PosterURL: "https://img/poster.jpg"}
	assert.True(t, valid.Valid())

	assert.False(t, Movie{Title: "The Matrix", PosterURL: "https://img/p.jpg"}.Valid(), "missing id")
	assert.False(t, Movie{ID: TMDBID(603), PosterURL: "https://img/p.jpg"}.Valid(), "missing title")
	assert.False(t, Movie{ID: TMDBID(603), Title: "The Matrix", PosterURL: NoPoster}.Valid(), "sentinel poster")
	assert.False(t, Movie{ID: TMDBID(603), Title: "The Matrix"}.Valid(), "empty poster")
}

func TestResolveGenreID(t *testing.T) {
	assert.Equal(t, 878, ResolveGenreID("Science Fiction"))
	assert.Equal(t, 878, ResolveGenreID("science fiction"))
	assert.Equal(t, 27, ResolveGenreID("HORROR"))
	assert.Equal(t, 18, ResolveGenreID("Not A Genre"), "falls back to Drama")
	assert.Equal(t, 18, ResolveGenreID(""))
}
