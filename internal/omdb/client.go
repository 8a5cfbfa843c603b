// Package omdb provides a client for the OMDB API.
//
// OMDB reports failures in-band: HTTP 200 with Response:"False" and an
// Error message instead of a non-2xx status.
package omdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

const defaultBaseURL = "https://www.omdbapi.com"

// ErrNotFound is returned when OMDB has no record for the query.
var ErrNotFound = errors.New("movie not found")

// Client is an OMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
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

// NewClient creates a new OMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ByIMDBID fetches full detail for a single title by its IMDB id.
func (c *Client) ByIMDBID(ctx context.Context, imdbID string) (*Detail, error) {
	var d Detail
	if err := c.get(ctx, url.Values{"i": {imdbID}, "plot": {"full"}}, &d); err != nil {
		return nil, err
	}
	if d.Response == "False" {
		if d.Error == "Incorrect IMDb ID." || d.Error == "Error getting data." {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("OMDB: %s", d.Error)
	}
	return &d, nil
}

// Search performs a title search. Returns ErrNotFound when OMDB reports
// "Movie not found!".
func (c *Client) Search(ctx context.Context, title string) ([]SearchItem, error) {
	var r SearchResult
	if err := c.get(ctx, url.Values{"s": {title}, "type": {"movie"}}, &r); err != nil {
		return nil, err
	}
	if r.Response == "False" {
		if r.Error == "Movie not found!" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("OMDB: %s", r.Error)
	}
	return r.Search, nil
}
