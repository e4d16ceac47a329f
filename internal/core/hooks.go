package core

import (
	"context"
	"strings"
	"time"
)

// QueryEvent contains information about an executed statement. It is passed
// to QueryHook callbacks for logging, metrics, or tracing.
type QueryEvent struct {
	// SQL is the executed SQL text
	SQL string
	// Params are the bound parameter values
	Params []any
	// Duration is how long the round-trip took
	Duration time.Duration
	// RowsAffected is the server-reported count for mutating commands
	RowsAffected int64
	// Err is any error that occurred during execution (nil on success)
	Err error
	// Command is the classified command type
	Command CommandType
}

// QueryHook is a callback invoked after each statement execution. Use it
// for logging, metrics, distributed tracing, or debugging.
type QueryHook func(ctx context.Context, event QueryEvent)

// DetectCommand classifies SQL text by its leading keyword. It is a
// fallback for clients that do not report a command tag.
func DetectCommand(sql string) CommandType {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	if strings.HasPrefix(sql, "SELECT") || strings.HasPrefix(sql, "WITH") {
		return CommandSelect
	}
	if strings.HasPrefix(sql, "INSERT") {
		return CommandInsert
	}
	if strings.HasPrefix(sql, "UPDATE") {
		return CommandUpdate
	}
	if strings.HasPrefix(sql, "DELETE") {
		return CommandDelete
	}
	return CommandUnknown
}

// invokeHook calls the query hook if set.
func (d *Driver) invokeHook(ctx context.Context, event QueryEvent) {
	if d.queryHook != nil {
		d.queryHook(ctx, event)
	}
}
