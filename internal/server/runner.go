// Package server wires the daemon's components together and manages
// their lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/moviemuse/moviemuse/internal/api"
	"github.com/moviemuse/moviemuse/internal/auth"
	"github.com/moviemuse/moviemuse/internal/cache"
	"github.com/moviemuse/moviemuse/internal/catalog"
	"github.com/moviemuse/moviemuse/internal/config"
	"github.com/moviemuse/moviemuse/internal/events"
	"github.com/moviemuse/moviemuse/internal/feeds"
	"github.com/moviemuse/moviemuse/internal/handlers"
	"github.com/moviemuse/moviemuse/internal/omdb"
	"github.com/moviemuse/moviemuse/internal/recommend"
	"github.com/moviemuse/moviemuse/internal/reviews"
	"github.com/moviemuse/moviemuse/internal/store"
	"github.com/moviemuse/moviemuse/internal/tmdb"
	"github.com/moviemuse/moviemuse/internal/watchlist"
)

const shutdownTimeout = 10 * time.Second

// Runner owns the daemon's component graph.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	version string
}

// NewRunner creates a runner for the given configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger, version string) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger, version: version}
}

// Run wires all components and serves until the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	db, err := store.Open(r.cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	bus := events.NewBus(r.logger.With("component", "bus"))
	defer bus.Close()

	queryCache := cache.New(cache.NewSQLiteStore(db), r.logger)

	var tmdbOpts []tmdb.Option
	if r.cfg.TMDB.RatePerSec > 0 {
		tmdbOpts = append(tmdbOpts, tmdb.WithRateLimit(r.cfg.TMDB.RatePerSec))
	}
	if r.cfg.TMDB.Language != "" {
		tmdbOpts = append(tmdbOpts, tmdb.WithLanguage(r.cfg.TMDB.Language))
	}
	tmdbClient := tmdb.NewClient(r.cfg.TMDB.APIKey, tmdbOpts...)

	var omdbClient *omdb.Client
	if r.cfg.OMDB != nil {
		omdbClient = omdb.NewClient(r.cfg.OMDB.APIKey)
	}

	adapter := catalog.NewAdapter(tmdbClient, omdbClient, r.logger)
	engine := recommend.NewEngine(adapter, queryCache, r.logger)

	tokens, err := auth.NewTokenManager(r.cfg.Auth.TokenSecret, r.cfg.Auth.TokenTTL.Duration)
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	deps := api.ServerDeps{
		Auth:        auth.NewService(auth.NewUserStore(db), tokens, r.logger),
		Watchlist:   watchlist.NewService(watchlist.NewStore(db), bus, r.logger),
		Reviews:     reviews.NewService(db, bus, r.logger),
		Feeds:       feeds.NewService(tmdbClient, queryCache, r.logger),
		Searcher:    adapter,
		Detailer:    adapter,
		Recommender: engine,
		Cache:       queryCache,
	}
	apiServer, err := api.NewServer(deps, r.logger, r.version)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(r.cfg.Server.Host, strconv.Itoa(r.cfg.Server.Port))
	httpServer := &http.Server{
		Addr:    addr,
		Handler: apiServer.Routes(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("server listening", "addr", addr, "version", r.version)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	invalidation := handlers.NewInvalidationHandler(bus, engine, r.logger.With("component", "invalidation"))
	g.Go(func() error {
		err := invalidation.Start(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		return r.pruneLoop(ctx, queryCache)
	})

	return g.Wait()
}

// pruneLoop sweeps expired persistent cache entries on an interval.
func (r *Runner) pruneLoop(ctx context.Context, queryCache *cache.Cache) error {
	interval := r.cfg.Cache.PruneInterval.Duration
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			removed, err := queryCache.Prune(ctx)
			if err != nil {
				r.logger.Warn("cache prune failed", "error", err)
				continue
			}
			if removed > 0 {
				r.logger.Debug("cache pruned", "removed", removed)
			}
		}
	}
}
