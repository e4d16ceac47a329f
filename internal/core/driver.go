// Package core implements the execution core of sqlkit: the driver owning
// connection and transaction lifecycle for one configured backend, the
// connection wrapper that executes compiled statements, and chunked result
// streaming over server-side cursors.
package core

import (
	"context"
	"strings"
	"sync"

	"github.com/coregx/sqlkit/internal/compiler"
	"github.com/coregx/sqlkit/internal/logger"
	"github.com/coregx/sqlkit/internal/tracer"
)

// mode is decided once from the configuration and never changes.
type mode int

const (
	modePool mode = iota + 1
	modeSingle
)

// IsolationLevel selects the isolation of a transaction begun through
// BeginTransaction. The zero value keeps the database default.
type IsolationLevel int

const (
	IsolationDefault IsolationLevel = iota
	LevelReadUncommitted
	LevelReadCommitted
	LevelRepeatableRead
	LevelSerializable
)

// String returns the SQL spelling of the isolation level.
func (l IsolationLevel) String() string {
	switch l {
	case LevelReadUncommitted:
		return "read uncommitted"
	case LevelReadCommitted:
		return "read committed"
	case LevelRepeatableRead:
		return "repeatable read"
	case LevelSerializable:
		return "serializable"
	default:
		return "default"
	}
}

// TxOptions represents transaction options including isolation level.
type TxOptions struct {
	Isolation IsolationLevel
	ReadOnly  bool
}

// Driver owns the connection lifecycle for one configured backend: pool
// mode hands out one wrapper per distinct native handle; single-client mode
// maintains exactly one wrapper. The driver does not track transaction
// state; the database is the source of truth.
type Driver struct {
	cfg       Config
	mode      mode
	logger    logger.Logger
	tracer    tracer.Tracer
	sanitizer *logger.Sanitizer
	queryHook QueryHook

	mu        sync.Mutex
	pool      Pool         // resolved pool (pool mode)
	client    SingleClient // resolved client (single-client mode)
	single    *Connection
	wrappers  map[any]*Connection // native handle identity -> wrapper
	destroyed bool
}

// NewDriver validates the configuration and creates a driver in the mode it
// implies. No connection is opened yet.
func NewDriver(cfg Config, opts ...Option) (*Driver, error) {
	poolMode := cfg.Pool != nil || cfg.PoolFactory != nil
	singleMode := cfg.Client != nil || cfg.ClientFactory != nil
	switch {
	case poolMode && singleMode:
		return nil, ErrAmbiguousBackend
	case !poolMode && !singleMode:
		return nil, ErrNoBackendConfigured
	}

	d := &Driver{
		cfg:       cfg,
		mode:      modeSingle,
		logger:    &logger.NoopLogger{},
		tracer:    &tracer.NoopTracer{},
		sanitizer: logger.NewSanitizer(nil),
		wrappers:  make(map[any]*Connection),
	}
	if poolMode {
		d.mode = modePool
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Init prepares the driver for use. In pool mode it resolves the pool
// handle, invoking a lazy factory at most once; in single-client mode
// resolution is deferred to the first acquisition. Calling Init more than
// once is harmless.
func (d *Driver) Init(ctx context.Context) error {
	if d.mode != modePool {
		return nil
	}
	_, err := d.resolvedPool(ctx)
	return err
}

// resolvedPool memoizes pool resolution. The mutex makes concurrent
// first-use callers converge on a single factory invocation.
func (d *Driver) resolvedPool(ctx context.Context) (Pool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return nil, ErrDriverDestroyed
	}
	if d.pool != nil {
		return d.pool, nil
	}
	if d.cfg.Pool != nil {
		d.pool = d.cfg.Pool
		return d.pool, nil
	}
	pool, err := d.cfg.PoolFactory(ctx)
	if err != nil {
		return nil, WrapError(err, "core: resolve pool")
	}
	d.pool = pool
	return d.pool, nil
}

// AcquireConnection returns a connection wrapper ready for query execution.
//
// In single-client mode the first call resolves the client (invoking a lazy
// factory exactly once) and caches the one wrapper for all subsequent
// calls. In pool mode it checks a connection out of the pool, which may
// block until one is available, and reuses the wrapper previously
// registered for the same native handle.
//
// The configured OnConnectionCreated hook fires at most once per distinct
// native handle for the lifetime of the driver.
func (d *Driver) AcquireConnection(ctx context.Context) (*Connection, error) {
	switch d.mode {
	case modeSingle:
		return d.acquireSingle(ctx)
	default:
		return d.acquirePooled(ctx)
	}
}

func (d *Driver) acquireSingle(ctx context.Context) (*Connection, error) {
	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		return nil, ErrDriverDestroyed
	}
	if d.single != nil {
		conn := d.single
		d.mu.Unlock()
		return conn, nil
	}
	if d.client == nil {
		if d.cfg.Client != nil {
			d.client = d.cfg.Client
		} else {
			client, err := d.cfg.ClientFactory(ctx)
			if err != nil {
				d.mu.Unlock()
				return nil, WrapError(err, "core: resolve client")
			}
			d.client = client
		}
	}
	conn := newConnection(d, d.client, false)
	d.single = conn
	d.mu.Unlock()

	if hook := d.cfg.OnConnectionCreated; hook != nil {
		if err := hook(ctx, conn); err != nil {
			d.mu.Lock()
			d.single = nil
			d.mu.Unlock()
			return nil, WrapError(err, "core: connection-created hook")
		}
	}
	return conn, nil
}

func (d *Driver) acquirePooled(ctx context.Context) (*Connection, error) {
	pool, err := d.resolvedPool(ctx)
	if err != nil {
		return nil, err
	}

	// May suspend until the pool has a free connection.
	pc, err := pool.Acquire(ctx)
	if err != nil {
		return nil, WrapError(err, "core: acquire connection")
	}

	key := pc.Handle()
	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		pc.Release()
		return nil, ErrDriverDestroyed
	}
	if conn, ok := d.wrappers[key]; ok {
		conn.attach(pc)
		d.mu.Unlock()
		return conn, nil
	}
	conn := newConnection(d, pc, true)
	d.wrappers[key] = conn
	d.mu.Unlock()

	if hook := d.cfg.OnConnectionCreated; hook != nil {
		if err := hook(ctx, conn); err != nil {
			d.mu.Lock()
			delete(d.wrappers, key)
			d.mu.Unlock()
			pc.Release()
			return nil, WrapError(err, "core: connection-created hook")
		}
	}
	d.logger.Debug("connection created", "pooled", true)
	return conn, nil
}

// ReleaseConnection returns a pool-mode connection to its pool. It is a
// no-op for the single-client connection, which is never released
// individually.
func (d *Driver) ReleaseConnection(conn *Connection) error {
	if conn == nil || !conn.pooled {
		return nil
	}
	conn.release()
	return nil
}

// BeginTransaction issues a begin statement on the connection. When the
// options request an isolation level or read-only access, a single combined
// "start transaction ..." statement is issued instead of plain "begin".
// Nesting and savepoints are not supported.
func (d *Driver) BeginTransaction(ctx context.Context, conn *Connection, opts *TxOptions) error {
	sql := "begin"
	if opts != nil {
		var settings []string
		if opts.Isolation != IsolationDefault {
			settings = append(settings, "isolation level "+opts.Isolation.String())
		}
		if opts.ReadOnly {
			settings = append(settings, "read only")
		}
		if len(settings) > 0 {
			sql = "start transaction " + strings.Join(settings, ", ")
		}
	}
	_, err := conn.ExecuteQuery(ctx, &compiler.CompiledQuery{SQL: sql, Params: []any{}})
	return err
}

// CommitTransaction commits the transaction open on the connection. The
// caller is responsible for pairing exactly one commit or rollback with
// each begin.
func (d *Driver) CommitTransaction(ctx context.Context, conn *Connection) error {
	_, err := conn.ExecuteQuery(ctx, &compiler.CompiledQuery{SQL: "commit", Params: []any{}})
	return err
}

// RollbackTransaction rolls back the transaction open on the connection.
func (d *Driver) RollbackTransaction(ctx context.Context, conn *Connection) error {
	_, err := conn.ExecuteQuery(ctx, &compiler.CompiledQuery{SQL: "rollback", Params: []any{}})
	return err
}

// Destroy releases the backend: the single client is closed, or the pool is
// closed after the driver's reference to it is cleared, so a second Destroy
// is a no-op.
func (d *Driver) Destroy(ctx context.Context) error {
	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		return nil
	}
	d.destroyed = true
	pool := d.pool
	client := d.client
	// A caller-provided backend is closed even if it was never used.
	if pool == nil {
		pool = d.cfg.Pool
	}
	if client == nil {
		client = d.cfg.Client
	}
	d.pool = nil
	d.client = nil
	d.single = nil
	d.wrappers = make(map[any]*Connection)
	d.mu.Unlock()

	if pool != nil {
		return pool.Close(ctx)
	}
	if client != nil {
		return client.Close(ctx)
	}
	return nil
}
