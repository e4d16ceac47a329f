package core

import (
	"context"
	"fmt"

	"github.com/coregx/sqlkit/internal/compiler"
	"github.com/coregx/sqlkit/internal/logger"
)

// StreamQuery opens a server-side cursor over the statement and returns a
// lazy, finite, non-restartable stream of result batches. Both
// preconditions are checked before any native call: a cursor factory must
// be configured, and chunkSize must be positive.
//
// Iterate with Next/Batch and always defer Close; the cursor is closed
// exactly once whether the stream is exhausted, abandoned early, or a read
// fails.
func (c *Connection) StreamQuery(ctx context.Context, query *compiler.CompiledQuery, chunkSize int) (*ResultStream, error) {
	d := c.driver
	if d.cfg.Cursors == nil {
		return nil, ErrStreamingNotSupported
	}
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidChunkSize, chunkSize)
	}
	native, err := c.current()
	if err != nil {
		return nil, err
	}
	cursor, err := d.cfg.Cursors(ctx, native, query.SQL, query.Params)
	if err != nil {
		return nil, WrapError(err, "core: open cursor")
	}
	return &ResultStream{cursor: cursor, chunkSize: chunkSize, logger: d.logger}, nil
}

// ResultStream iterates a streamed result set in chunks, in the style of
// sql.Rows:
//
//	stream, err := conn.StreamQuery(ctx, query, 100)
//	if err != nil { ... }
//	defer stream.Close(ctx)
//	for stream.Next(ctx) {
//	    batch := stream.Batch()
//	    ...
//	}
//	if err := stream.Err(); err != nil { ... }
type ResultStream struct {
	cursor    Cursor
	chunkSize int
	logger    logger.Logger

	batch  *Result
	err    error
	closed bool
}

// Next reads the next batch of up to chunkSize rows. It returns false when
// the result set is exhausted or a read fails; either way the cursor is
// closed before Next returns.
func (s *ResultStream) Next(ctx context.Context) bool {
	if s.closed {
		return false
	}
	rows, err := s.cursor.Read(ctx, s.chunkSize)
	if err != nil {
		s.err = WrapError(err, "core: cursor read")
		s.shutdown(ctx)
		return false
	}
	if len(rows) == 0 {
		s.shutdown(ctx)
		return false
	}
	s.batch = &Result{Command: CommandSelect, Rows: rows}
	return true
}

// Batch returns the batch produced by the last successful Next.
func (s *ResultStream) Batch() *Result {
	return s.batch
}

// Err returns the first error encountered while reading or closing.
func (s *ResultStream) Err() error {
	return s.err
}

// Close terminates the stream early. It is safe to call after exhaustion
// and is idempotent; the error returned mirrors Err.
func (s *ResultStream) Close(ctx context.Context) error {
	s.shutdown(ctx)
	return s.err
}

// shutdown closes the cursor at most once. Cleanup runs on every exit path;
// when a read error and a close error compete, the read error wins and the
// close failure is only logged.
func (s *ResultStream) shutdown(ctx context.Context) {
	if s.closed {
		return
	}
	s.closed = true
	s.batch = nil
	if cerr := s.cursor.Close(ctx); cerr != nil {
		if s.err == nil {
			s.err = WrapError(cerr, "core: cursor close")
		} else {
			s.logger.Warn("cursor close failed after stream error", "error", cerr)
		}
	}
}
