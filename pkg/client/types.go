package client

import "time"

// API types (mirror server types).

// Movie is the canonical record served by the daemon.
type Movie struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Year      string   `json:"year"`
	PosterURL string   `json:"posterUrl"`
	Genres    []string `json:"genres,omitempty"`
}

// MovieDetail extends Movie with detail-view fields.
type MovieDetail struct {
	Movie
	Overview       string   `json:"overview,omitempty"`
	RuntimeMinutes int      `json:"runtimeMinutes,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	ReleaseDate    string   `json:"releaseDate,omitempty"`
	Cast           []string `json:"cast,omitempty"`
	Director       string   `json:"director,omitempty"`
	Writers        []string `json:"writers,omitempty"`
}

// WatchlistEntry is a movie on the caller's watchlist.
type WatchlistEntry struct {
	Movie      Movie     `json:"movie"`
	UserRating *int      `json:"userRating,omitempty"`
	UserReview string    `json:"userReview,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Review is one user's rating and comment for a movie.
type Review struct {
	ID        int64     `json:"id"`
	MovieID   string    `json:"movieId"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is an issued bearer token.
type Session struct {
	Token         string `json:"token"`
	Username      string `json:"username"`
	TokenExpiryMs int64  `json:"tokenExpiryMs"`
}

// Health reports daemon liveness.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type addWatchlistRequest struct {
	Movie      Movie  `json:"movie"`
	UserRating *int   `json:"userRating,omitempty"`
	UserReview string `json:"userReview,omitempty"`
}

type postReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type postReviewResponse struct {
	Review  *Review `json:"review"`
	Message string  `json:"message"`
}
