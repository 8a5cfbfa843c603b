// Package client is a REST client for a moviemused server. Mutating
// watchlist calls return the server's full resulting list; the server
// copy is authoritative and callers render exactly what they receive.
// Retry and backoff are the caller's concern.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// AuthHeader carries the bearer token on authenticated calls.
const AuthHeader = "X-Auth-Token"

// APIError is a rejected operation with the server-supplied message.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("server error %d", e.StatusCode)
}

// Client wraps HTTP calls to the moviemused server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken sets the bearer token for authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for the server at serverURL.
func New(serverURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, typically after Login.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(AuthHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// Signup registers an account.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/signup", body, nil)
}

// Login authenticates and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body := map[string]string{"username": username, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &session); err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// Watchlist returns the caller's watchlist.
func (c *Client) Watchlist(ctx context.Context) ([]WatchlistEntry, error) {
	var entries []WatchlistEntry
	if err := c.do(ctx, http.MethodGet, "/api/watchlist", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddToWatchlist upserts an entry and returns the updated list.
func (c *Client) AddToWatchlist(ctx context.Context, movie Movie, rating *int, review string) ([]WatchlistEntry, error) {
	body := addWatchlistRequest{Movie: movie, UserRating: rating, UserReview: review}
	var entries []WatchlistEntry
	if err := c.do(ctx, http.MethodPost, "/api/watchlist/add", body, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveFromWatchlist deletes an entry and returns the updated list.
func (c *Client) RemoveFromWatchlist(ctx context.Context, movieID string) ([]WatchlistEntry, error) {
	var entries []WatchlistEntry
	path := "/api/watchlist/remove/" + url.PathEscape(movieID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Feed returns one page of a curated feed ("trending", "new-releases",
// "top-rated").
func (c *Client) Feed(ctx context.Context, feed string, page int) ([]Movie, error) {
	path := "/api/movies/" + url.PathEscape(feed)
	if page > 1 {
		path += "?page=" + strconv.Itoa(page)
	}
	var movies []Movie
	if err := c.do(ctx, http.MethodGet, path, nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Search searches the catalog by title. Year 0 means any year.
func (c *Client) Search(ctx context.Context, query string, year int) ([]Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	if year != 0 {
		params.Set("year", strconv.Itoa(year))
	}
	var movies []Movie
	if err := c.do(ctx, http.MethodGet, "/api/search?"+params.Encode(), nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Details fetches the detail record for a movie.
func (c *Client) Details(ctx context.Context, movieID string) (*MovieDetail, error) {
	var detail MovieDetail
	path := "/api/details/" + url.PathEscape(movieID)
	if err := c.do(ctx, http.MethodGet, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Reviews lists all reviews for a movie.
func (c *Client) Reviews(ctx context.Context, movieID string) ([]Review, error) {
	var all []Review
	path := "/api/reviews/" + url.PathEscape(movieID)
	if err := c.do(ctx, http.MethodGet, path, nil, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// PostReview creates or replaces the caller's review for a movie.
func (c *Client) PostReview(ctx context.Context, movieID string, rating int, comment string) (*Review, error) {
	body := postReviewRequest{Rating: rating, Comment: comment}
	var resp postReviewResponse
	path := "/api/reviews/" + url.PathEscape(movieID)
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return nil, err
	}
	return resp.Review, nil
}

// Recommendations returns suggestions for the caller's watchlist.
func (c *Client) Recommendations(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.do(ctx, http.MethodGet, "/api/recommendations", nil, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// Health checks daemon liveness.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var health Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
