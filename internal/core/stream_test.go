package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCursor struct {
	batches  [][]Row
	reads    int
	readErr  error
	errAfter int // fail the read at this index (0-based) when readErr is set
	closed   int
	closeErr error
}

func (c *fakeCursor) Read(_ context.Context, _ int) ([]Row, error) {
	i := c.reads
	c.reads++
	if c.readErr != nil && i == c.errAfter {
		return nil, c.readErr
	}
	if i >= len(c.batches) {
		return nil, nil
	}
	return c.batches[i], nil
}

func (c *fakeCursor) Close(_ context.Context) error {
	c.closed++
	return c.closeErr
}

func streamingDriver(t *testing.T, cursor *fakeCursor) *Connection {
	t.Helper()
	client := &fakeClient{fakeConn: &fakeConn{handle: "c"}}
	d, err := NewDriver(Config{
		Client: client,
		Cursors: func(context.Context, NativeConn, string, []any) (Cursor, error) {
			return cursor, nil
		},
	})
	require.NoError(t, err)
	conn, err := d.AcquireConnection(context.Background())
	require.NoError(t, err)
	return conn
}

func rowBatch(ids ...int) []Row {
	batch := make([]Row, len(ids))
	for i, id := range ids {
		batch[i] = Row{"id": id}
	}
	return batch
}

func TestStreamQuery_PreconditionsCheckedBeforeAnyNativeCall(t *testing.T) {
	ctx := context.Background()

	t.Run("no cursor factory", func(t *testing.T) {
		client := &fakeClient{fakeConn: &fakeConn{handle: "c"}}
		d, err := NewDriver(Config{Client: client})
		require.NoError(t, err)
		conn, err := d.AcquireConnection(ctx)
		require.NoError(t, err)

		_, err = conn.StreamQuery(ctx, query("select 1"), 10)
		assert.ErrorIs(t, err, ErrStreamingNotSupported)
		assert.Empty(t, client.sqls, "no statement reaches the native client")
	})

	t.Run("invalid chunk size", func(t *testing.T) {
		cursor := &fakeCursor{}
		conn := streamingDriver(t, cursor)

		for _, size := range []int{0, -1, -100} {
			_, err := conn.StreamQuery(ctx, query("select 1"), size)
			assert.ErrorIs(t, err, ErrInvalidChunkSize)
		}
		assert.Equal(t, 0, cursor.reads)
	})
}

func TestStreamQuery_IteratesInChunks(t *testing.T) {
	ctx := context.Background()
	cursor := &fakeCursor{batches: [][]Row{
		rowBatch(1, 2),
		rowBatch(3, 4),
		rowBatch(5),
	}}
	conn := streamingDriver(t, cursor)

	stream, err := conn.StreamQuery(ctx, query("select id from big"), 2)
	require.NoError(t, err)
	defer stream.Close(ctx)

	var sizes []int
	for stream.Next(ctx) {
		batch := stream.Batch()
		require.NotNil(t, batch)
		assert.Equal(t, CommandSelect, batch.Command)
		sizes = append(sizes, len(batch.Rows))
	}
	require.NoError(t, stream.Err())
	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.Equal(t, 1, cursor.closed, "exhaustion closes the cursor")

	assert.False(t, stream.Next(ctx), "stream does not restart")
	assert.NoError(t, stream.Close(ctx))
	assert.Equal(t, 1, cursor.closed, "close after exhaustion is idempotent")
}

func TestStreamQuery_ReadErrorClosesCursor(t *testing.T) {
	ctx := context.Background()
	readErr := errors.New("connection lost")
	cursor := &fakeCursor{
		batches:  [][]Row{rowBatch(1, 2)},
		readErr:  readErr,
		errAfter: 1,
	}
	conn := streamingDriver(t, cursor)

	stream, err := conn.StreamQuery(ctx, query("select id from big"), 2)
	require.NoError(t, err)

	require.True(t, stream.Next(ctx))
	assert.False(t, stream.Next(ctx))
	assert.ErrorIs(t, stream.Err(), readErr)
	assert.Equal(t, 1, cursor.closed)
	assert.Nil(t, stream.Batch(), "no partial batch after a failed read")
}

func TestStreamQuery_EarlyCloseReleasesCursorOnce(t *testing.T) {
	ctx := context.Background()
	cursor := &fakeCursor{batches: [][]Row{rowBatch(1, 2), rowBatch(3, 4)}}
	conn := streamingDriver(t, cursor)

	stream, err := conn.StreamQuery(ctx, query("select id from big"), 2)
	require.NoError(t, err)

	require.True(t, stream.Next(ctx))
	require.NoError(t, stream.Close(ctx))
	assert.Equal(t, 1, cursor.closed)

	assert.False(t, stream.Next(ctx), "closed stream yields no more batches")
	require.NoError(t, stream.Close(ctx))
	assert.Equal(t, 1, cursor.closed)
}

func TestStreamQuery_ReadErrorWinsOverCloseError(t *testing.T) {
	ctx := context.Background()
	readErr := errors.New("read failed")
	closeErr := errors.New("close failed")
	cursor := &fakeCursor{readErr: readErr, errAfter: 0, closeErr: closeErr}
	conn := streamingDriver(t, cursor)

	stream, err := conn.StreamQuery(ctx, query("select 1"), 1)
	require.NoError(t, err)

	assert.False(t, stream.Next(ctx))
	assert.ErrorIs(t, stream.Err(), readErr)
	assert.NotErrorIs(t, stream.Err(), closeErr)
}

func TestStreamQuery_CloseErrorSurfacesWhenReadsSucceeded(t *testing.T) {
	ctx := context.Background()
	closeErr := errors.New("close failed")
	cursor := &fakeCursor{batches: [][]Row{rowBatch(1)}, closeErr: closeErr}
	conn := streamingDriver(t, cursor)

	stream, err := conn.StreamQuery(ctx, query("select 1"), 5)
	require.NoError(t, err)

	require.True(t, stream.Next(ctx))
	assert.False(t, stream.Next(ctx))
	assert.ErrorIs(t, stream.Err(), closeErr)
	assert.ErrorIs(t, stream.Close(ctx), closeErr)
}

func TestStreamQuery_CursorFactoryErrorIsWrapped(t *testing.T) {
	ctx := context.Background()
	factoryErr := errors.New("cursor refused")
	client := &fakeClient{fakeConn: &fakeConn{handle: "c"}}
	d, err := NewDriver(Config{
		Client: client,
		Cursors: func(context.Context, NativeConn, string, []any) (Cursor, error) {
			return nil, factoryErr
		},
	})
	require.NoError(t, err)
	conn, err := d.AcquireConnection(ctx)
	require.NoError(t, err)

	_, err = conn.StreamQuery(ctx, query("select 1"), 10)
	assert.ErrorIs(t, err, factoryErr)
}
