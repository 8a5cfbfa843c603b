// Package handlers hosts the daemon's event subscribers.
package handlers

import "context"

// Handler processes events of specific types.
type Handler interface {
	// Start begins processing events (blocking).
	Start(ctx context.Context) error

	// Name returns handler name for logging.
	Name() string
}
