package api

import (
	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/internal/reviews"
)

// AuthHeader carries the bearer token on authenticated calls.
const AuthHeader = "X-Auth-Token"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupResponse acknowledges a created account.
type SignupResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// LoginResponse carries the issued session token. Expiry is epoch
// milliseconds so clients can persist it directly.
type LoginResponse struct {
	Token         string `json:"token"`
	Username      string `json:"username"`
	TokenExpiryMs int64  `json:"tokenExpiryMs"`
}

// AddWatchlistRequest is the POST /api/watchlist/add body.
type AddWatchlistRequest struct {
	Movie      catalog.Movie `json:"movie"`
	UserRating *int          `json:"userRating,omitempty"`
	UserReview string        `json:"userReview,omitempty"`
}

// PostReviewRequest is the POST /api/reviews/{movieId} body.
type PostReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// PostReviewResponse wraps the stored review.
type PostReviewResponse struct {
	Review  *reviews.Review `json:"review"`
	Message string          `json:"message"`
}

// HealthResponse reports daemon liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
