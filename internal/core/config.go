package core

import (
	"context"

	"github.com/coregx/sqlkit/internal/logger"
	"github.com/coregx/sqlkit/internal/tracer"
)

// Config describes one backend for a driver. Exactly one of the pool pair
// (Pool or PoolFactory) or the client pair (Client or ClientFactory) must
// be set; the choice fixes the driver's mode for its whole lifetime. The
// configuration is read once at construction and never mutated afterwards.
type Config struct {
	// Pool is a ready connection pool (pool mode).
	Pool Pool
	// PoolFactory lazily produces the pool; invoked at most once, by Init
	// or the first acquisition.
	PoolFactory func(ctx context.Context) (Pool, error)

	// Client is a ready standalone connection (single-client mode).
	Client SingleClient
	// ClientFactory lazily produces the client; invoked at most once, on
	// first acquisition.
	ClientFactory func(ctx context.Context) (SingleClient, error)

	// Cursors enables StreamQuery. Without it streaming fails with
	// ErrStreamingNotSupported.
	Cursors CursorFactory

	// OnConnectionCreated runs at most once per distinct native handle,
	// right after its wrapper is first created. A returned error aborts the
	// acquisition.
	OnConnectionCreated func(ctx context.Context, conn *Connection) error
}

// Option is a functional option for configuring a Driver.
type Option func(*Driver)

// WithLogger sets the structured logger used for query logging.
func WithLogger(l logger.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// WithTracer sets the tracer used to span query execution.
func WithTracer(t tracer.Tracer) Option {
	return func(d *Driver) {
		d.tracer = t
	}
}

// WithQueryHook sets a callback invoked after every executed statement.
func WithQueryHook(hook QueryHook) Option {
	return func(d *Driver) {
		d.queryHook = hook
	}
}

// WithSanitizer sets the sanitizer that masks sensitive parameter values
// before they reach the logs.
func WithSanitizer(s *logger.Sanitizer) Option {
	return func(d *Driver) {
		d.sanitizer = s
	}
}
