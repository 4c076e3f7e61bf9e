package schema

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/fluentdb/query/builder"
	"github.com/satishbabariya/fluentdb/query/sqlgen"
	"github.com/satishbabariya/fluentdb/runtime/client"
)

func newOverlay(t *testing.T) (*Table, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := client.NewClient(db, sqlgen.Postgres{})
	_, s := MustParseModel(`model users {
		id     Int
		email  String
		status String
		bio    String?
	}`)
	return Wrap(c.Table("users"), s), mock
}

func TestOverlayDelegatesValidWhere(t *testing.T) {
	users, mock := newOverlay(t)
	mock.ExpectQuery(`SELECT * FROM "users" WHERE "status" = $1`).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(int64(1), "active"))

	rows, err := users.Where(map[string]any{"status": "active"}).FindMany(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverlayRejectsUnknownWhereField(t *testing.T) {
	users, mock := newOverlay(t)

	_, err := users.Where(map[string]any{"nope": 1}).FindMany(context.Background())
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "nope", verr.Fields[0].Path)
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing must reach the engine")
}

func TestOverlayRejectsBadWhereValueShape(t *testing.T) {
	users, mock := newOverlay(t)

	_, err := users.WhereConds(builder.GreaterThan("id", "ten")).Count(context.Background())
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverlayStickyErrorSurvivesChaining(t *testing.T) {
	users, mock := newOverlay(t)

	bad := users.Where(map[string]any{"nope": 1}).OrderBy(builder.OrderAsc("id")).Take(5)
	_, err := bad.FindFirst(context.Background())
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverlayCreateValidatesFullSchema(t *testing.T) {
	users, mock := newOverlay(t)

	// Missing required fields never reaches the engine.
	_, err := users.Create(context.Background(), client.Row{"email": "a@x.com"})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(`INSERT INTO "users" ("email", "id", "status") VALUES ($1, $2, $3) RETURNING *`).
		WithArgs("a@x.com", 1, "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "status"}).
			AddRow(int64(1), "a@x.com", "active"))

	row, err := users.Create(context.Background(), client.Row{"id": 1, "email": "a@x.com", "status": "active"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", row["email"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverlayCreateManyValidatesEveryRecord(t *testing.T) {
	users, mock := newOverlay(t)

	_, err := users.CreateMany(context.Background(), []client.Row{
		{"id": 1, "email": "a@x.com", "status": "active"},
		{"id": 2, "email": 42, "status": "active"},
	})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Fields[0].Path)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverlayUpdateValidatesPartial(t *testing.T) {
	users, mock := newOverlay(t)

	// A subset of fields is fine for update.
	mock.ExpectQuery(`UPDATE "users" SET "status" = $1 WHERE "id" = $2 RETURNING *`).
		WithArgs("idle", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(int64(1), "idle"))

	rows, err := users.Where(map[string]any{"id": 1}).Update(context.Background(), client.Row{"status": "idle"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// Present fields must still be individually valid.
	_, err = users.Where(map[string]any{"id": 1}).Update(context.Background(), client.Row{"status": 9})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverlayDeleteStillRequiresWhere(t *testing.T) {
	users, mock := newOverlay(t)

	_, err := users.Delete(context.Background())
	require.Error(t, err)
	var qerr *sqlgen.QueryError
	require.ErrorAs(t, err, &qerr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModelBindsTableAndSchema(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	c := client.NewClient(db, sqlgen.Postgres{})

	users, err := Model(c, `model users { id Int email String }`)
	require.NoError(t, err)
	require.Len(t, users.Schema(), 2)

	mock.ExpectQuery(`SELECT COUNT(*) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	n, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = Model(c, `model users { id Serial }`)
	require.Error(t, err)
}
