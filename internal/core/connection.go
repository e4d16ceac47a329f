package core

import (
	"context"
	"sync"
	"time"

	"github.com/coregx/sqlkit/internal/compiler"
	"github.com/coregx/sqlkit/internal/tracer"
)

// Connection associates one native client handle with one long-lived
// wrapper. In pool mode the wrapper outlives individual checkouts: whenever
// the pool hands the same physical connection back, the driver re-attaches
// it to this wrapper.
type Connection struct {
	driver *Driver
	pooled bool // recorded at creation; release never re-probes the handle

	mu     sync.Mutex
	native NativeConn
}

func newConnection(d *Driver, native NativeConn, pooled bool) *Connection {
	return &Connection{driver: d, pooled: pooled, native: native}
}

// attach binds the wrapper to a freshly checked-out native connection.
func (c *Connection) attach(native NativeConn) {
	c.mu.Lock()
	c.native = native
	c.mu.Unlock()
}

// release returns the native connection to its pool and detaches it from
// the wrapper until the next checkout.
func (c *Connection) release() {
	c.mu.Lock()
	native := c.native
	c.native = nil
	c.mu.Unlock()
	if pc, ok := native.(PooledConn); ok {
		pc.Release()
	}
}

func (c *Connection) current() (NativeConn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.native == nil {
		return nil, ErrConnectionDetached
	}
	return c.native, nil
}

// ExecuteQuery sends a compiled statement to the native client and
// normalizes the outcome: mutating commands carry the affected-row count,
// everything else carries only the returned row set. Native failures are
// wrapped with this call site's context and propagated unchanged, never
// swallowed or retried.
func (c *Connection) ExecuteQuery(ctx context.Context, query *compiler.CompiledQuery) (*Result, error) {
	native, err := c.current()
	if err != nil {
		return nil, err
	}
	d := c.driver

	ctx, span := d.tracer.StartSpan(ctx, "sqlkit.query")
	defer span.End()

	start := time.Now()
	res, err := native.Query(ctx, query.SQL, query.Params)
	elapsed := time.Since(start)

	event := QueryEvent{
		SQL:      query.SQL,
		Params:   query.Params,
		Duration: elapsed,
		Err:      err,
		Command:  DetectCommand(query.SQL),
	}
	if res != nil {
		event.Command = res.Command
		event.RowsAffected = res.RowsAffected
	}
	d.invokeHook(ctx, event)
	tracer.AddQueryAttributes(span, &tracer.QueryMetadata{
		SQL:          query.SQL,
		Duration:     elapsed,
		RowsAffected: event.RowsAffected,
		Error:        err,
		Operation:    string(event.Command),
	})

	masked := d.sanitizer.FormatParams(d.sanitizer.MaskParams(query.SQL, query.Params))
	if err != nil {
		d.logger.Error("query execution failed",
			"sql", query.SQL,
			"params", masked,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return nil, WrapError(err, "core: execute query")
	}
	d.logger.Debug("query executed",
		"sql", query.SQL,
		"params", masked,
		"duration_ms", elapsed.Milliseconds(),
		"command", string(event.Command),
	)

	out := &Result{Command: res.Command, Rows: res.Rows}
	if out.Rows == nil {
		out.Rows = []Row{}
	}
	switch res.Command {
	case CommandInsert, CommandUpdate, CommandDelete:
		out.RowsAffected = res.RowsAffected
	}
	return out, nil
}
