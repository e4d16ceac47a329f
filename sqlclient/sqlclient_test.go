package sqlclient

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/coregx/sqlkit/internal/core"
)

func mockClient(t *testing.T) (*Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewClient(db), mock
}

func TestQuery_SelectGoesThroughQueryPath(t *testing.T) {
	client, mock := mockClient(t)
	mock.ExpectQuery("SELECT id, name FROM users WHERE id = ?").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "alice"))

	res, err := client.Query(context.Background(), "SELECT id, name FROM users WHERE id = ?", []any{7})
	require.NoError(t, err)
	assert.Equal(t, core.CommandSelect, res.Command)
	assert.Equal(t, int64(0), res.RowsAffected)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "alice", res.Rows[0]["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_MutationGoesThroughExecPath(t *testing.T) {
	client, mock := mockClient(t)
	mock.ExpectExec("UPDATE users SET active = ? WHERE city = ?").
		WithArgs(false, "Berlin").
		WillReturnResult(sqlmock.NewResult(0, 3))

	res, err := client.Query(context.Background(),
		"UPDATE users SET active = ? WHERE city = ?", []any{false, "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, core.CommandUpdate, res.Command)
	assert.Equal(t, int64(3), res.RowsAffected)
	assert.NotNil(t, res.Rows)
	assert.Empty(t, res.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_ReturningMutationGoesThroughQueryPath(t *testing.T) {
	client, mock := mockClient(t)
	mock.ExpectQuery("DELETE FROM sessions WHERE expired = ? RETURNING id").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	res, err := client.Query(context.Background(),
		"DELETE FROM sessions WHERE expired = ? RETURNING id", []any{true})
	require.NoError(t, err)
	assert.Equal(t, core.CommandDelete, res.Command)
	assert.Equal(t, int64(2), res.RowsAffected, "one returned row per affected row")
	assert.Len(t, res.Rows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_ByteSlicesNormalizedToStrings(t *testing.T) {
	client, mock := mockClient(t)
	mock.ExpectQuery("SELECT name FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow([]byte("alice")))

	res, err := client.Query(context.Background(), "SELECT name FROM users", []any{})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Rows[0]["name"])
}

func TestQuery_NativeErrorPropagates(t *testing.T) {
	client, mock := mockClient(t)
	mock.ExpectQuery("SELECT 1").WillReturnError(fmt.Errorf("connection refused"))

	_, err := client.Query(context.Background(), "SELECT 1", []any{})
	assert.EqualError(t, err, "connection refused")
}

// Round trip against a real in-process database.
func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, err := OpenClient("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(ctx) })

	_, err = client.Query(ctx,
		"CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)", []any{})
	require.NoError(t, err)

	res, err := client.Query(ctx,
		"INSERT INTO users (name) VALUES (?), (?)", []any{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, core.CommandInsert, res.Command)
	assert.Equal(t, int64(2), res.RowsAffected)

	res, err = client.Query(ctx,
		"SELECT name FROM users ORDER BY name", []any{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "alice", res.Rows[0]["name"])
	assert.Equal(t, "bob", res.Rows[1]["name"])
}

func TestCursorFactory_DrainsInChunks(t *testing.T) {
	ctx := context.Background()
	client, err := OpenClient("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(ctx) })

	_, err = client.Query(ctx, "CREATE TABLE nums (n INTEGER)", []any{})
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		_, err = client.Query(ctx, "INSERT INTO nums (n) VALUES (?)", []any{i})
		require.NoError(t, err)
	}

	cursor, err := CursorFactory(ctx, client, "SELECT n FROM nums ORDER BY n", []any{})
	require.NoError(t, err)

	var sizes []int
	for {
		rows, err := cursor.Read(ctx, 2)
		require.NoError(t, err)
		if len(rows) == 0 {
			break
		}
		sizes = append(sizes, len(rows))
	}
	assert.Equal(t, []int{2, 2, 1}, sizes)
	assert.NoError(t, cursor.Close(ctx))
}

func TestCursorFactory_RejectsForeignConnections(t *testing.T) {
	_, err := CursorFactory(context.Background(), nil, "SELECT 1", nil)
	assert.Error(t, err)
}

func TestPool_AcquireHandsOutDistinctHandles(t *testing.T) {
	ctx := context.Background()
	pool, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close(ctx) })

	first, err := pool.Acquire(ctx)
	require.NoError(t, err)
	second, err := pool.Acquire(ctx)
	require.NoError(t, err)

	// database/sql hides physical identity; each checkout is its own handle.
	assert.NotEqual(t, first.Handle(), second.Handle())
	first.Release()
	second.Release()
}
