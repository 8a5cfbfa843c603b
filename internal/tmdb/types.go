// Package tmdb provides a client for The Movie Database API.
package tmdb

import "strconv"

// Movie represents TMDB movie metadata as returned by list endpoints.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"` // "2024-03-01"
	PosterPath  string  `json:"poster_path"`  // "/abc123.jpg"
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	GenreIDs    []int   `json:"genre_ids"`
	Popularity  float64 `json:"popularity"`
}

// MovieDetail is the full detail response with credits and external ids appended.
type MovieDetail struct {
	ID          int64        `json:"id"`
	IMDBID      string       `json:"imdb_id"` // e.g., "tt0133093"
	Title       string       `json:"title"`
	Overview    string       `json:"overview"`
	ReleaseDate string       `json:"release_date"`
	PosterPath  string       `json:"poster_path"`
	VoteAverage float64      `json:"vote_average"`
	VoteCount   int          `json:"vote_count"`
	Runtime     int          `json:"runtime"` // minutes
	Genres      []Genre      `json:"genres"`
	Credits     *Credits     `json:"credits,omitempty"`
	ExternalIDs *ExternalIDs `json:"external_ids,omitempty"`
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Credits holds the cast and crew for a movie.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is a single cast credit.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

// CrewMember is a single crew credit.
type CrewMember struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// ExternalIDs holds cross-catalog identifiers.
type ExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}

// page is the envelope all TMDB list endpoints share.
type page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// findResult is the envelope for /find/{external_id}.
type findResult struct {
	MovieResults []Movie `json:"movie_results"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	return yearOf(m.ReleaseDate)
}

// Year extracts the year from ReleaseDate.
func (d *MovieDetail) Year() int {
	return yearOf(d.ReleaseDate)
}

func yearOf(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// PosterURL returns the full poster image URL.
// Size can be: w92, w154, w185, w342, w500, w780, original
func PosterURL(posterPath, size string) string {
	if posterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/" + size + posterPath
}
