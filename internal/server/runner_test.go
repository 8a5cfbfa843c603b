package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moviemuse/moviemuse/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Database.Path = filepath.Join(t.TempDir(), "moviemuse.db")
	cfg.TMDB.APIKey = "test-key"
	cfg.Auth.TokenSecret = "0123456789abcdef0123456789abcdef"
	cfg.Auth.TokenTTL.Duration = time.Hour
	cfg.Cache.PruneInterval.Duration = 50 * time.Millisecond
	return cfg
}

func TestRunner_StartsAndStops(t *testing.T) {
	runner := NewRunner(testConfig(t), nil, "test")

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx)
	}()

	// Let the listener and prune loop spin up
	time.Sleep(100 * time.Millisecond)

	cancel()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for runner to stop")
	}
}

func TestNewRunner_DefaultLogger(t *testing.T) {
	runner := NewRunner(testConfig(t), nil, "test")
	require.NotNil(t, runner)
	require.NotNil(t, runner.logger)
}

func TestRunner_ShortTokenSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.TokenSecret = "too-short"

	err := NewRunner(cfg, nil, "test").Run(context.Background())
	require.Error(t, err)
}
