package core

import "context"

// This file defines the boundary contracts the driver expects from a native
// database client. The core never speaks a wire protocol itself; adapters
// (pgxclient, sqlclient) bind real client libraries to these interfaces.

// CommandType classifies a statement by the command the server reported.
type CommandType string

const (
	CommandSelect  CommandType = "SELECT"
	CommandInsert  CommandType = "INSERT"
	CommandUpdate  CommandType = "UPDATE"
	CommandDelete  CommandType = "DELETE"
	CommandUnknown CommandType = "UNKNOWN"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Result is the normalized outcome of one statement round-trip. For
// mutating commands RowsAffected carries the server-reported count (64-bit:
// affected-row counts can exceed 32-bit range); for everything else only
// Rows is meaningful.
type Result struct {
	Command      CommandType
	RowsAffected int64
	Rows         []Row
}

// NativeConn is one live client connection. Handle returns a comparable
// value identifying the underlying physical connection; the driver keys its
// wrapper association on it, so it must be stable for the connection's
// lifetime.
type NativeConn interface {
	Query(ctx context.Context, sql string, params []any) (*Result, error)
	Handle() any
}

// PooledConn is a NativeConn checked out of a pool. Release returns it; the
// value must not be used afterwards.
type PooledConn interface {
	NativeConn
	Release()
}

// Pool hands out pooled connections. Acquire may block until a connection
// is available; back-pressure on pool exhaustion is the pool's concern.
type Pool interface {
	Acquire(ctx context.Context) (PooledConn, error)
	Close(ctx context.Context) error
}

// SingleClient is one standalone, persistent connection.
type SingleClient interface {
	NativeConn
	Close(ctx context.Context) error
}

// Cursor reads a result set in chunks. Read returns up to count rows; an
// empty result signals exhaustion. Close must be safe to call after any
// Read outcome.
type Cursor interface {
	Read(ctx context.Context, count int) ([]Row, error)
	Close(ctx context.Context) error
}

// CursorFactory opens a server-side cursor over a statement on the given
// connection. Supplying one in the driver configuration enables streaming.
type CursorFactory func(ctx context.Context, conn NativeConn, sql string, params []any) (Cursor, error)
