package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/fluentdb/query/builder"
	"github.com/satishbabariya/fluentdb/query/sqlgen"
)

// openSQLite returns a client over an in-memory SQLite database with a users
// table ready for fixtures.
func openSQLite(t *testing.T) *Client {
	t.Helper()
	c, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Disconnect() })

	_, err = c.db.Exec(`CREATE TABLE users (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		email  TEXT NOT NULL,
		status TEXT NOT NULL,
		score  INTEGER NOT NULL DEFAULT 0
	)`)
	require.NoError(t, err)
	return c
}

func TestRoundTripInsertAndFilter(t *testing.T) {
	c := openSQLite(t)
	ctx := context.Background()
	users := c.Table("users")

	created, err := users.Create(ctx, Row{"email": "a@x.com", "status": "active"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", created["email"])
	assert.NotNil(t, created["id"])

	rows, err := users.Where(map[string]any{"status": "active"}).FindMany(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a@x.com", rows[0]["email"])

	rows, err = users.Where(map[string]any{"status": "inactive"}).FindMany(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSortOrderScenario(t *testing.T) {
	c := openSQLite(t)
	ctx := context.Background()
	users := c.Table("users")

	_, err := users.CreateMany(ctx, []Row{
		{"email": "a@x.com", "status": "active", "score": 10},
		{"email": "b@x.com", "status": "active", "score": 20},
		{"email": "c@x.com", "status": "active", "score": 30},
	})
	require.NoError(t, err)

	rows, err := users.OrderBy(builder.OrderDesc("score")).FindMany(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(30), rows[0]["score"])
	assert.Equal(t, int64(20), rows[1]["score"])
	assert.Equal(t, int64(10), rows[2]["score"])
}

func TestPaginationScenario(t *testing.T) {
	c := openSQLite(t)
	ctx := context.Background()
	users := c.Table("users")

	batch := make([]Row, 5)
	for i := range batch {
		batch[i] = Row{"email": "u@x.com", "status": "active", "score": i + 1}
	}
	_, err := users.CreateMany(ctx, batch)
	require.NoError(t, err)

	rows, err := users.OrderBy(builder.OrderAsc("id")).Skip(2).Take(2).FindMany(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(3), rows[0]["id"])
	assert.Equal(t, int64(4), rows[1]["id"])
}

func TestFindUniqueFixtures(t *testing.T) {
	c := openSQLite(t)
	ctx := context.Background()
	users := c.Table("users")

	row, err := users.Where(map[string]any{"email": "missing@x.com"}).FindUnique(ctx)
	require.NoError(t, err)
	assert.Nil(t, row)

	_, err = users.Create(ctx, Row{"email": "one@x.com", "status": "active"})
	require.NoError(t, err)
	row, err = users.Where(map[string]any{"email": "one@x.com"}).FindUnique(ctx)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "one@x.com", row["email"])

	_, err = users.Create(ctx, Row{"email": "one@x.com", "status": "active"})
	require.NoError(t, err)
	_, err = users.Where(map[string]any{"email": "one@x.com"}).FindUnique(ctx)
	assert.ErrorIs(t, err, ErrNotUnique)
}

func TestCountZeroMatches(t *testing.T) {
	c := openSQLite(t)
	n, err := c.Table("users").Where(map[string]any{"status": "nope"}).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

// A LIKE value containing wildcard characters must match only the literal
// substring, never act as a wildcard.
func TestLikeEscapingEndToEnd(t *testing.T) {
	c := openSQLite(t)
	ctx := context.Background()
	users := c.Table("users")

	_, err := users.CreateMany(ctx, []Row{
		{"email": "done", "status": "100%_done"},
		{"email": "decoy", "status": "100x_done"},
	})
	require.NoError(t, err)

	rows, err := users.WhereConds(builder.Like("status", "100%_done", sqlgen.PatternContains)).FindMany(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "done", rows[0]["email"])
}

func TestUpdateAndDeleteEndToEnd(t *testing.T) {
	c := openSQLite(t)
	ctx := context.Background()
	users := c.Table("users")

	_, err := users.CreateMany(ctx, []Row{
		{"email": "a@x.com", "status": "active"},
		{"email": "b@x.com", "status": "idle"},
	})
	require.NoError(t, err)

	updated, err := users.Where(map[string]any{"status": "idle"}).Update(ctx, Row{"status": "active"})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "active", updated[0]["status"])

	n, err := users.Where(map[string]any{"status": "active"}).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	deleted, err := users.Where(map[string]any{"email": "a@x.com"}).Delete(ctx)
	require.NoError(t, err)
	assert.Len(t, deleted, 1)

	n, err = users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestProjectionEndToEnd(t *testing.T) {
	c := openSQLite(t)
	ctx := context.Background()
	users := c.Table("users")

	_, err := users.Create(ctx, Row{"email": "a@x.com", "status": "active"})
	require.NoError(t, err)

	rows, err := users.Select("email").FindMany(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"email": "a@x.com"}, rows[0])
}
