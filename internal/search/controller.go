// Package search implements the interactive search controller: debounced
// input, cancellation of superseded requests, and the session state the
// UI renders from.
package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/moviemuse/moviemuse/internal/cache"
	"github.com/moviemuse/moviemuse/internal/catalog"
)

const (
	defaultDebounce     = 500 * time.Millisecond
	defaultSpinnerDelay = 150 * time.Millisecond
	defaultMinQueryLen  = 3
)

// ErrNoResults is the message shown when a search settles empty.
const ErrNoResults = "no results found"

// Searcher is the slice of the catalog adapter the controller needs.
type Searcher interface {
	Search(ctx context.Context, title string, year int) []catalog.Movie
}

// State is a snapshot of the search session.
type State struct {
	Query   string
	Results []catalog.Movie
	Loading bool
	Err     string
}

// Controller owns a single query string and its lifecycle:
// Idle -> Debouncing -> Fetching -> Settled/Cancelled/Failed.
// Only the response belonging to the current generation may write state;
// everything else is dropped silently. Two responses for the same query
// text carry the same supersession guarantee against *other* queries,
// but race last-writer-wins against each other.
type Controller struct {
	searcher Searcher
	cache    *cache.Cache
	logger   *slog.Logger

	debounce     time.Duration
	spinnerDelay time.Duration
	minQueryLen  int

	mu            sync.Mutex
	state         State
	generation    uint64
	cancelFetch   context.CancelFunc
	debounceTimer *time.Timer
	spinnerTimer  *time.Timer
	updates       chan struct{}
	closed        bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithSpinnerDelay overrides the loading-flag delay.
func WithSpinnerDelay(d time.Duration) Option {
	return func(c *Controller) { c.spinnerDelay = d }
}

// WithMinQueryLen overrides the short-query cutoff.
func WithMinQueryLen(n int) Option {
	return func(c *Controller) { c.minQueryLen = n }
}

// NewController creates a controller. The cache may be nil to disable
// query memoization.
func NewController(searcher Searcher, queryCache *cache.Cache, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		searcher:     searcher,
		cache:        queryCache,
		logger:       logger.With("component", "search"),
		debounce:     defaultDebounce,
		spinnerDelay: defaultSpinnerDelay,
		minQueryLen:  defaultMinQueryLen,
		updates:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates signals whenever the state changes. Notifications coalesce;
// consumers re-read Snapshot.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// SetQuery reacts to a keystroke. A changed query cancels any in-flight
// request, rearms the debounce window, and resets it on further input.
// Queries shorter than the minimum length short-circuit to an empty
// result set without touching the network.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || query == c.state.Query {
		return
	}

	c.supersedeLocked()
	c.state.Query = query

	if len(query) < c.minQueryLen {
		c.state.Results = nil
		c.state.Loading = false
		c.state.Err = ""
		c.notifyLocked()
		return
	}

	gen := c.generation
	c.debounceTimer = time.AfterFunc(c.debounce, func() {
		c.fetch(gen, query)
	})
	c.notifyLocked()
}

// Submit forces an immediate search of the current query, bypassing both
// the debounce window and the minimum-length cutoff.
func (c *Controller) Submit() {
	c.mu.Lock()
	if c.closed || c.state.Query == "" {
		c.mu.Unlock()
		return
	}
	c.supersedeLocked()
	gen, query := c.generation, c.state.Query
	c.mu.Unlock()

	go c.fetch(gen, query)
}

// Close cancels all pending work. The controller is unusable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supersedeLocked()
	c.closed = true
}

// supersedeLocked invalidates the active generation: the debounce timer
// is disarmed and any in-flight request is cancelled. Its response, if
// one ever arrives, fails the generation check and is ignored.
func (c *Controller) supersedeLocked() {
	c.generation++
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	if c.spinnerTimer != nil {
		c.spinnerTimer.Stop()
		c.spinnerTimer = nil
	}
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
}

func (c *Controller) fetch(gen uint64, query string) {
	ctx := context.Background()

	// Cache hit settles immediately, no spinner.
	if c.cache != nil {
		if results, ok := cache.GetJSON[[]catalog.Movie](ctx, c.cache, cache.KeySearch(query)); ok {
			c.settle(gen, results)
			return
		}
	}

	c.mu.Lock()
	if gen != c.generation || c.closed {
		c.mu.Unlock()
		return
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel

	// The loading flag flips only if the fetch is still outstanding when
	// the delay fires, so fast responses never flicker a spinner.
	c.spinnerTimer = time.AfterFunc(c.spinnerDelay, func() {
		c.markLoading(gen)
	})
	c.mu.Unlock()

	results := c.searcher.Search(fetchCtx, query, 0)
	if fetchCtx.Err() != nil {
		return // superseded; dropped silently
	}

	if c.cache != nil && len(results) > 0 {
		cache.SetJSON(ctx, c.cache, cache.KeySearch(query), results, cache.DefaultTTL)
	}
	c.settle(gen, results)
}

func (c *Controller) markLoading(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.closed {
		return
	}
	c.state.Loading = true
	c.notifyLocked()
}

func (c *Controller) settle(gen uint64, results []catalog.Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.closed {
		return
	}

	if c.spinnerTimer != nil {
		c.spinnerTimer.Stop()
		c.spinnerTimer = nil
	}
	c.cancelFetch = nil

	c.state.Loading = false
	if len(results) == 0 {
		c.state.Results = nil
		c.state.Err = ErrNoResults
	} else {
		c.state.Results = results
		c.state.Err = ""
	}
	c.notifyLocked()
}

func (c *Controller) notifyLocked() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
