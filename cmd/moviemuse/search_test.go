package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/pkg/client"
)

func TestRemoteSearcher_Converts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"tmdb-603","title":"The Matrix","year":"1999","posterUrl":"http://p/1.jpg"},
			{"id":"","title":"Broken","year":"2000","posterUrl":"http://p/2.jpg"}
		]`))
	}))
	defer srv.Close()

	s := &remoteSearcher{c: client.New(srv.URL)}
	results := s.Search(context.Background(), "matrix", 0)

	// The record with an unparseable id is dropped
	require.Len(t, results, 1)
	assert.Equal(t, catalog.TMDBID(603), results[0].ID)
	assert.Equal(t, "The Matrix", results[0].Title)
	assert.Equal(t, "1999", results[0].Year)
}

func TestRemoteSearcher_ErrorReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom","code":"UPSTREAM_UNAVAILABLE"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	s := &remoteSearcher{c: client.New(srv.URL)}
	assert.Nil(t, s.Search(context.Background(), "matrix", 0))
}
