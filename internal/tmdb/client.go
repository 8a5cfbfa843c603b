package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultLanguage = "en-US"

// TMDB allows ~50 req/s per key; stay well under it.
const defaultRateLimit = rate.Limit(20)

// ErrNotFound is returned when a movie doesn't exist in TMDB.
var ErrNotFound = errors.New("movie not found")

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit overrides the requests-per-second budget.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// WithLanguage sets the locale parameter sent on every call.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		language: defaultLanguage,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(defaultRateLimit, int(defaultRateLimit)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a rate-limited GET against a TMDB endpoint and decodes into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// SearchMovies searches TMDB by title, optionally constrained to a release year.
func (c *Client) SearchMovies(ctx context.Context, title string, year int) ([]Movie, error) {
	params := url.Values{"query": {title}}
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	var p page
	if err := c.get(ctx, "/3/search/movie", params, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// GetMovie fetches full movie detail with credits and external ids appended.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*MovieDetail, error) {
	params := url.Values{"append_to_response": {"credits,external_ids"}}
	var d MovieDetail
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", tmdbID), params, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Similar fetches the first page of movies similar to the given one.
func (c *Client) Similar(ctx context.Context, tmdbID int64) ([]Movie, error) {
	var p page
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d/similar", tmdbID), url.Values{"page": {"1"}}, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// Recommendations fetches the first page of TMDB's recommendations for a movie.
func (c *Client) Recommendations(ctx context.Context, tmdbID int64) ([]Movie, error) {
	var p page
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d/recommendations", tmdbID), url.Values{"page": {"1"}}, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// DiscoverByGenre fetches a popularity-sorted discover page for a genre.
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int) ([]Movie, error) {
	params := url.Values{
		"with_genres": {strconv.Itoa(genreID)},
		"sort_by":     {"popularity.desc"},
		"page":        {"1"},
	}
	var p page
	if err := c.get(ctx, "/3/discover/movie", params, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// DiscoverNewReleases fetches movies released in the last month, newest first.
func (c *Client) DiscoverNewReleases(ctx context.Context, pageNum int) ([]Movie, error) {
	now := time.Now()
	params := url.Values{
		"primary_release_date.gte": {now.AddDate(0, -1, 0).Format("2006-01-02")},
		"primary_release_date.lte": {now.Format("2006-01-02")},
		"sort_by":                  {"release_date.desc"},
		"page":                     {strconv.Itoa(pageNum)},
	}
	var p page
	if err := c.get(ctx, "/3/discover/movie", params, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// Trending fetches this week's trending movies.
func (c *Client) Trending(ctx context.Context, pageNum int) ([]Movie, error) {
	var p page
	if err := c.get(ctx, "/3/trending/movie/week", url.Values{"page": {strconv.Itoa(pageNum)}}, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// TopRated fetches the all-time top rated chart.
func (c *Client) TopRated(ctx context.Context, pageNum int) ([]Movie, error) {
	var p page
	if err := c.get(ctx, "/3/movie/top_rated", url.Values{"page": {strconv.Itoa(pageNum)}}, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

// FindByIMDBID resolves an IMDB id ("tt0133093") to TMDB movie records.
func (c *Client) FindByIMDBID(ctx context.Context, imdbID string) ([]Movie, error) {
	params := url.Values{"external_source": {"imdb_id"}}
	var f findResult
	if err := c.get(ctx, "/3/find/"+url.PathEscape(imdbID), params, &f); err != nil {
		return nil, err
	}
	return f.MovieResults, nil
}
