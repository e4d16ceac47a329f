package core

import "errors"

// Predefined errors returned by driver and connection operations.
var (
	// ErrStreamingNotSupported is returned by StreamQuery when the driver
	// configuration carries no cursor factory.
	ErrStreamingNotSupported = errors.New("streaming requires a cursor factory in the driver configuration")
	// ErrInvalidChunkSize is returned by StreamQuery for a chunk size below 1.
	ErrInvalidChunkSize = errors.New("chunk size must be a positive integer")
	// ErrDriverDestroyed is returned when operating on a destroyed driver.
	ErrDriverDestroyed = errors.New("driver has been destroyed")
	// ErrNoBackendConfigured is returned when a configuration supplies
	// neither a pool nor a single client.
	ErrNoBackendConfigured = errors.New("driver configuration requires a pool or a single client")
	// ErrAmbiguousBackend is returned when a configuration supplies both a
	// pool and a single client.
	ErrAmbiguousBackend = errors.New("driver configuration cannot combine pool and single client")
	// ErrConnectionDetached is returned when executing on a connection whose
	// native handle has been released back to the pool.
	ErrConnectionDetached = errors.New("connection has been released")
)

// WrapError wraps an error with the originating call site's context so a
// failure surfacing from deep inside a native client stays traceable. The
// underlying error is preserved for errors.Is/As.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
