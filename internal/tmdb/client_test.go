package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		assert.Equal(t, "The Matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "1999", r.URL.Query().Get("year"))

		resp := page{Results: []Movie{
			{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", PosterPath: "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg"},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movies, err := client.SearchMovies(context.Background(), "The Matrix", 1999)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(603), movies[0].ID)
	assert.Equal(t, 1999, movies[0].Year())
}

func TestClient_GetMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/movie/603", r.URL.Path)
		assert.Equal(t, "credits,external_ids", r.URL.Query().Get("append_to_response"))

		resp := MovieDetail{
			ID:          603,
			IMDBID:      "tt0133093",
			Title:       "The Matrix",
			ReleaseDate: "1999-03-30",
			Runtime:     136,
			Genres:      []Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
			Credits: &Credits{
				Cast: []CastMember{{Name: "Keanu Reeves", Character: "Neo", Order: 0}},
				Crew: []CrewMember{{Name: "Lana Wachowski", Job: "Director"}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	detail, err := client.GetMovie(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, "tt0133093", detail.IMDBID)
	assert.Equal(t, 136, detail.Runtime)
	assert.Equal(t, 1999, detail.Year())
	require.NotNil(t, detail.Credits)
	assert.Equal(t, "Neo", detail.Credits.Cast[0].Character)
}

func TestClient_GetMovie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	detail, err := client.GetMovie(context.Background(), 99999999)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_DiscoverByGenre(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/discover/movie", r.URL.Path)
		assert.Equal(t, "18", r.URL.Query().Get("with_genres"))
		assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))

		_ = json.NewEncoder(w).Encode(page{Results: []Movie{{ID: 278, Title: "The Shawshank Redemption"}}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movies, err := client.DiscoverByGenre(context.Background(), 18)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "The Shawshank Redemption", movies[0].Title)
}

func TestClient_FindByIMDBID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/find/tt0133093", r.URL.Path)
		assert.Equal(t, "imdb_id", r.URL.Query().Get("external_source"))

		_ = json.NewEncoder(w).Encode(findResult{MovieResults: []Movie{{ID: 603, Title: "The Matrix"}}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	movies, err := client.FindByIMDBID(context.Background(), "tt0133093")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(603), movies[0].ID)
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.Trending(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, 1999, yearOf("1999-03-30"))
	assert.Equal(t, 0, yearOf(""))
	assert.Equal(t, 0, yearOf("19"))
	assert.Equal(t, 0, yearOf("n/a-00-00"))
}
