// Package pgxclient binds the jackc/pgx client library to the core
// driver's native-client contracts: a pooled backend over pgxpool, a
// standalone client over pgx.Conn, and a streaming cursor that reads rows
// incrementally off the wire.
package pgxclient

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coregx/sqlkit/internal/core"
)

// Pool adapts a pgxpool.Pool to the core Pool contract.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool wraps an existing pgx connection pool.
func NewPool(pool *pgxpool.Pool) *Pool {
	return &Pool{pool: pool}
}

// Connect creates a pool from a connection string.
func Connect(ctx context.Context, dsn string) (*Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Pool{pool: pool}, nil
}

// Acquire checks a connection out of the pool, blocking until one is
// available.
func (p *Pool) Acquire(ctx context.Context) (core.PooledConn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pooledConn{conn: conn}, nil
}

// Close closes the pool and all its connections.
func (p *Pool) Close(_ context.Context) error {
	p.pool.Close()
	return nil
}

type pooledConn struct {
	conn *pgxpool.Conn
}

func (c *pooledConn) Query(ctx context.Context, sql string, params []any) (*core.Result, error) {
	return runQuery(ctx, c.conn, sql, params)
}

// Handle identifies the physical connection. pgxpool hands out a fresh
// checkout wrapper on every Acquire, so the underlying pgx.Conn is the
// stable identity the driver's wrapper registry needs.
func (c *pooledConn) Handle() any {
	return c.conn.Conn()
}

func (c *pooledConn) Release() {
	c.conn.Release()
}

func (c *pooledConn) rows(ctx context.Context, sql string, params []any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, params...)
}

// Client adapts a single pgx.Conn to the core SingleClient contract.
type Client struct {
	conn *pgx.Conn
}

// NewClient wraps an existing standalone connection.
func NewClient(conn *pgx.Conn) *Client {
	return &Client{conn: conn}
}

// ConnectClient opens a standalone connection from a connection string.
func ConnectClient(ctx context.Context, dsn string) (*Client, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Query(ctx context.Context, sql string, params []any) (*core.Result, error) {
	return runQuery(ctx, c.conn, sql, params)
}

func (c *Client) Handle() any {
	return c.conn
}

func (c *Client) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

func (c *Client) rows(ctx context.Context, sql string, params []any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, params...)
}

// querier is the pgx behavior shared by pooled and standalone connections.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func runQuery(ctx context.Context, q querier, sql string, params []any) (*core.Result, error) {
	rows, err := q.Query(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	// The command tag is valid once the rows are fully consumed.
	tag := rows.CommandTag()
	return &core.Result{
		Command:      commandOf(tag),
		RowsAffected: tag.RowsAffected(),
		Rows:         out,
	}, nil
}

func collectRows(rows pgx.Rows) ([]core.Row, error) {
	fields := rows.FieldDescriptions()
	out := make([]core.Row, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(core.Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func commandOf(tag pgconn.CommandTag) core.CommandType {
	switch {
	case tag.Select():
		return core.CommandSelect
	case tag.Insert():
		return core.CommandInsert
	case tag.Update():
		return core.CommandUpdate
	case tag.Delete():
		return core.CommandDelete
	default:
		return core.CommandUnknown
	}
}

// rowSource is implemented by both connection flavors for streaming.
type rowSource interface {
	rows(ctx context.Context, sql string, params []any) (pgx.Rows, error)
}

// CursorFactory opens a streaming cursor over a statement. pgx reads result
// rows lazily from the socket, so draining in chunks never materializes the
// whole result set. Wire it into the driver configuration's Cursors field.
func CursorFactory(ctx context.Context, conn core.NativeConn, sql string, params []any) (core.Cursor, error) {
	src, ok := conn.(rowSource)
	if !ok {
		return nil, fmt.Errorf("pgxclient: %T is not a pgx connection", conn)
	}
	rows, err := src.rows(ctx, sql, params)
	if err != nil {
		return nil, err
	}
	return &cursor{rows: rows}, nil
}

type cursor struct {
	rows   pgx.Rows
	fields []pgconn.FieldDescription
	done   bool
}

func (c *cursor) Read(_ context.Context, count int) ([]core.Row, error) {
	if c.done {
		return nil, nil
	}
	if c.fields == nil {
		c.fields = c.rows.FieldDescriptions()
	}
	out := make([]core.Row, 0, count)
	for len(out) < count && c.rows.Next() {
		values, err := c.rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(core.Row, len(c.fields))
		for i, fd := range c.fields {
			row[fd.Name] = values[i]
		}
		out = append(out, row)
	}
	if len(out) < count {
		c.done = true
		if err := c.rows.Err(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *cursor) Close(_ context.Context) error {
	c.rows.Close()
	return nil
}
