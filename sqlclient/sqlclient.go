// Package sqlclient binds database/sql to the core driver's native-client
// contracts, so any database/sql driver (lib/pq, go-sql-driver/mysql,
// mattn/go-sqlite3, modernc.org/sqlite) can back a sqlkit driver. The pool
// contract maps onto sql.DB's built-in pool via dedicated sql.Conn
// checkouts; the cursor drains a live sql.Rows in chunks.
package sqlclient

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/coregx/sqlkit/internal/core"
)

// Pool adapts a sql.DB to the core Pool contract. Acquire pins a dedicated
// connection so sequential statements (and transactions) share one session.
type Pool struct {
	db *sql.DB
}

// NewPool wraps an existing sql.DB.
func NewPool(db *sql.DB) *Pool {
	return &Pool{db: db}
}

// Open creates a pool for the named database/sql driver.
func Open(driverName, dsn string) (*Pool, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return &Pool{db: db}, nil
}

// Acquire checks a dedicated connection out of the sql.DB pool.
//
// database/sql hides physical connection identity, so every checkout is a
// distinct native handle to the driver: wrappers are not reused across
// checkouts and the connection-created hook runs per checkout.
func (p *Pool) Acquire(ctx context.Context) (core.PooledConn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &pooledConn{conn: conn}, nil
}

// Close closes the sql.DB and its pool.
func (p *Pool) Close(_ context.Context) error {
	return p.db.Close()
}

type pooledConn struct {
	conn *sql.Conn
}

func (c *pooledConn) Query(ctx context.Context, sqlText string, params []any) (*core.Result, error) {
	return runQuery(ctx, c.conn, sqlText, params)
}

func (c *pooledConn) Handle() any {
	return c.conn
}

func (c *pooledConn) Release() {
	_ = c.conn.Close()
}

func (c *pooledConn) rows(ctx context.Context, sqlText string, params []any) (*sql.Rows, error) {
	return c.conn.QueryContext(ctx, sqlText, params...)
}

// Client adapts a sql.DB restricted to one connection to the core
// SingleClient contract.
type Client struct {
	db *sql.DB
}

// NewClient wraps an existing sql.DB. The caller should cap it at one open
// connection so transaction statements share a session.
func NewClient(db *sql.DB) *Client {
	return &Client{db: db}
}

// OpenClient creates a single-connection client for the named database/sql
// driver.
func OpenClient(driverName, dsn string) (*Client, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &Client{db: db}, nil
}

func (c *Client) Query(ctx context.Context, sqlText string, params []any) (*core.Result, error) {
	return runQuery(ctx, c.db, sqlText, params)
}

func (c *Client) Handle() any {
	return c.db
}

func (c *Client) Close(_ context.Context) error {
	return c.db.Close()
}

func (c *Client) rows(ctx context.Context, sqlText string, params []any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, sqlText, params...)
}

// executor is the database/sql behavior shared by sql.DB and sql.Conn.
type executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// runQuery routes a statement through Query or Exec. database/sql cannot
// return rows and an affected count from one call, so row-producing
// statements (SELECT, or anything with RETURNING) go through QueryContext
// and everything else through ExecContext.
func runQuery(ctx context.Context, ex executor, sqlText string, params []any) (*core.Result, error) {
	command := core.DetectCommand(sqlText)
	returning := hasReturning(sqlText)
	if command == core.CommandSelect || returning {
		rows, err := ex.QueryContext(ctx, sqlText, params...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		out, err := scanRows(rows)
		if err != nil {
			return nil, err
		}
		res := &core.Result{Command: command, Rows: out}
		if returning && command != core.CommandSelect {
			// One returned row per affected row.
			res.RowsAffected = int64(len(out))
		}
		return res, nil
	}

	result, err := ex.ExecContext(ctx, sqlText, params...)
	if err != nil {
		return nil, err
	}
	res := &core.Result{Command: command, Rows: []core.Row{}}
	switch command {
	case core.CommandInsert, core.CommandUpdate, core.CommandDelete:
		if n, err := result.RowsAffected(); err == nil {
			res.RowsAffected = n
		}
	}
	return res, nil
}

func hasReturning(sqlText string) bool {
	return strings.Contains(strings.ToUpper(sqlText), " RETURNING ")
}

func scanRows(rows *sql.Rows) ([]core.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	out := make([]core.Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(core.Row, len(cols))
		for i, col := range cols {
			row[col] = normalize(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// normalize folds driver-specific byte slices into strings so result rows
// compare predictably across backends.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// rowSource is implemented by both connection flavors for streaming.
type rowSource interface {
	rows(ctx context.Context, sqlText string, params []any) (*sql.Rows, error)
}

// CursorFactory opens a streaming cursor over a statement by holding a live
// sql.Rows open and draining it in chunks. Wire it into the driver
// configuration's Cursors field.
func CursorFactory(ctx context.Context, conn core.NativeConn, sqlText string, params []any) (core.Cursor, error) {
	src, ok := conn.(rowSource)
	if !ok {
		return nil, fmt.Errorf("sqlclient: %T is not a database/sql connection", conn)
	}
	rows, err := src.rows(ctx, sqlText, params)
	if err != nil {
		return nil, err
	}
	cols, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, err
	}
	return &cursor{rows: rows, cols: cols}, nil
}

type cursor struct {
	rows *sql.Rows
	cols []string
	done bool
}

func (c *cursor) Read(_ context.Context, count int) ([]core.Row, error) {
	if c.done {
		return nil, nil
	}
	out := make([]core.Row, 0, count)
	for len(out) < count && c.rows.Next() {
		values := make([]any, len(c.cols))
		ptrs := make([]any, len(c.cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := c.rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(core.Row, len(c.cols))
		for i, col := range c.cols {
			row[col] = normalize(values[i])
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
	return c.rows.Close()
}
