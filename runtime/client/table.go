package client

import (
	"context"
	"fmt"
	"sort"

	"github.com/satishbabariya/fluentdb/internal/debug"
	"github.com/satishbabariya/fluentdb/query/builder"
	"github.com/satishbabariya/fluentdb/query/sqlgen"
)

// ErrNotUnique is returned by FindUnique when the filter matches more than
// one row.
var ErrNotUnique = &sqlgen.QueryError{Op: "findUnique", Reason: "query matched more than one row"}

// ErrNoRowReturned is returned when an insert completes without the engine
// returning the inserted row; a create must never report success with no
// payload.
var ErrNoRowReturned = &sqlgen.QueryError{Op: "create", Reason: "insert returned no row"}

// Table is a handle on one table: an immutable builder snapshot plus the
// client to dispatch through. Chain methods return a new handle; terminal
// methods compile the snapshot and issue exactly one engine call.
type Table struct {
	client *Client
	b      builder.Builder
}

// Table returns a handle on the named table. The name must be a strict SQL
// identifier, optionally schema-qualified; violations surface from the first
// terminal call.
func (c *Client) Table(name string) *Table {
	return &Table{client: c, b: builder.New(name)}
}

// Builder returns the underlying builder snapshot.
func (t *Table) Builder() builder.Builder { return t.b }

func (t *Table) derive(b builder.Builder) *Table {
	return &Table{client: t.client, b: b}
}

// Select returns a handle projecting the given columns.
func (t *Table) Select(columns ...string) *Table { return t.derive(t.b.Select(columns...)) }

// Where returns a handle filtered by an equality map.
func (t *Table) Where(eq map[string]any) *Table { return t.derive(t.b.Where(eq)) }

// WhereConds returns a handle filtered by typed operator conditions.
func (t *Table) WhereConds(conds ...sqlgen.Cond) *Table { return t.derive(t.b.WhereConds(conds...)) }

// OrderBy returns a handle sorted by the given terms.
func (t *Table) OrderBy(orders ...sqlgen.Order) *Table { return t.derive(t.b.OrderBy(orders...)) }

// Skip returns a handle that skips the first n rows.
func (t *Table) Skip(n int) *Table { return t.derive(t.b.Skip(n)) }

// Take returns a handle capped at n rows.
func (t *Table) Take(n int) *Table { return t.derive(t.b.Take(n)) }

func (t *Table) dispatch(ctx context.Context, q *sqlgen.Query) ([]Row, error) {
	debug.Debug("dispatching query", "table", t.b.Table(), "sql", q.SQL, "args", len(q.Args))
	rows, err := t.client.engine.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

func (t *Table) compileSelect(b builder.Builder) (*sqlgen.Query, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	return sqlgen.Select(t.client.dialect, b.Table(), b.Columns(), b.WhereSpec(), b.Orders(), b.TakeValue(), b.SkipValue())
}

// FindMany runs the query and returns every matching row.
func (t *Table) FindMany(ctx context.Context) ([]Row, error) {
	q, err := t.compileSelect(t.b)
	if err != nil {
		return nil, err
	}
	return t.dispatch(ctx, q)
}

// FindFirst runs the query capped at one row and returns it, or nil when
// nothing matches. Zero or many matches are both fine; only the first row is
// requested.
func (t *Table) FindFirst(ctx context.Context) (Row, error) {
	q, err := t.compileSelect(t.b.WithTake(1))
	if err != nil {
		return nil, err
	}
	rows, err := t.dispatch(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FindUnique runs the query expecting at most one match: it returns the row
// for exactly one match, nil for zero, and ErrNotUnique for two or more. The
// query is capped at two rows so a second match is detected without ever
// silently returning the first of several.
func (t *Table) FindUnique(ctx context.Context) (Row, error) {
	q, err := t.compileSelect(t.b.WithTake(2))
	if err != nil {
		return nil, err
	}
	rows, err := t.dispatch(ctx, q)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, fmt.Errorf("table %q: %w", t.b.Table(), ErrNotUnique)
	}
}

// Count returns the number of matching rows. An empty aggregate result
// counts as zero.
func (t *Table) Count(ctx context.Context) (int64, error) {
	if err := t.b.Err(); err != nil {
		return 0, err
	}
	q, err := sqlgen.SelectCount(t.client.dialect, t.b.Table(), t.b.WhereSpec())
	if err != nil {
		return 0, err
	}
	debug.Debug("dispatching count", "table", t.b.Table(), "sql", q.SQL, "args", len(q.Args))
	rows, err := t.client.engine.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	return scanCount(rows)
}

// requireReturning guards row-returning mutations on providers without
// RETURNING support.
func (t *Table) requireReturning(op string) error {
	if t.client.dialect.Returning() {
		return nil
	}
	return &sqlgen.QueryError{
		Op:     op,
		Reason: fmt.Sprintf("provider %s does not support RETURNING; row-returning mutations are unavailable", t.client.dialect.Name()),
	}
}

// sortedColumns returns the record's column names in deterministic order.
func sortedColumns(record Row) []string {
	cols := make([]string, 0, len(record))
	for col := range record {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Create inserts one record and returns the inserted row per the current
// projection. An empty record is rejected, and an engine that returns no row
// is an error, never a silent success.
func (t *Table) Create(ctx context.Context, record Row) (Row, error) {
	if err := t.b.Err(); err != nil {
		return nil, err
	}
	if len(record) == 0 {
		return nil, &sqlgen.QueryError{Op: "create", Reason: "record must not be empty"}
	}
	if err := t.requireReturning("create"); err != nil {
		return nil, err
	}

	cols := sortedColumns(record)
	values := make([]any, len(cols))
	for i, col := range cols {
		values[i] = record[col]
	}

	q, err := sqlgen.Insert(t.client.dialect, t.b.Table(), cols, [][]any{values}, t.b.Columns())
	if err != nil {
		return nil, err
	}
	rows, err := t.dispatch(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("table %q: %w", t.b.Table(), ErrNoRowReturned)
	}
	return rows[0], nil
}

// CreateMany inserts a batch of records in one statement and returns the
// inserted rows. The batch must be non-empty and every record must declare
// exactly the same column set as the first; anything else risks silently
// dropping or misaligning columns.
func (t *Table) CreateMany(ctx context.Context, records []Row) ([]Row, error) {
	if err := t.b.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &sqlgen.QueryError{Op: "createMany", Reason: "batch must not be empty"}
	}
	if err := t.requireReturning("createMany"); err != nil {
		return nil, err
	}

	cols := sortedColumns(records[0])
	if len(cols) == 0 {
		return nil, &sqlgen.QueryError{Op: "createMany", Reason: "record 0 must not be empty"}
	}

	values := make([][]any, len(records))
	for i, record := range records {
		if len(record) != len(cols) {
			return nil, &sqlgen.QueryError{
				Op:     "createMany",
				Reason: fmt.Sprintf("record %d has %d columns, record 0 has %d; all records must declare the same columns", i, len(record), len(cols)),
			}
		}
		row := make([]any, len(cols))
		for j, col := range cols {
			v, ok := record[col]
			if !ok {
				return nil, &sqlgen.QueryError{
					Op:     "createMany",
					Reason: fmt.Sprintf("record %d is missing column %q declared by record 0", i, col),
				}
			}
			row[j] = v
		}
		values[i] = row
	}

	q, err := sqlgen.Insert(t.client.dialect, t.b.Table(), cols, values, t.b.Columns())
	if err != nil {
		return nil, err
	}
	return t.dispatch(ctx, q)
}

// Update applies a partial record to every matching row and returns the
// affected rows per the current projection. A non-empty filter and a
// non-empty payload are both required.
func (t *Table) Update(ctx context.Context, patch Row) ([]Row, error) {
	if err := t.b.Err(); err != nil {
		return nil, err
	}
	if t.b.WhereSpec().Empty() {
		return nil, &sqlgen.QueryError{Op: "update", Reason: "refusing to update without a WHERE clause"}
	}
	if len(patch) == 0 {
		return nil, &sqlgen.QueryError{Op: "update", Reason: "update payload must not be empty"}
	}
	if err := t.requireReturning("update"); err != nil {
		return nil, err
	}

	set := make([]sqlgen.Assign, 0, len(patch))
	for _, col := range sortedColumns(patch) {
		set = append(set, sqlgen.Assign{Column: col, Value: patch[col]})
	}

	q, err := sqlgen.Update(t.client.dialect, t.b.Table(), set, t.b.WhereSpec(), t.b.Columns())
	if err != nil {
		return nil, err
	}
	return t.dispatch(ctx, q)
}

// Delete removes every matching row and returns the deleted rows per the
// current projection. A non-empty filter is required.
func (t *Table) Delete(ctx context.Context) ([]Row, error) {
	if err := t.b.Err(); err != nil {
		return nil, err
	}
	if t.b.WhereSpec().Empty() {
		return nil, &sqlgen.QueryError{Op: "delete", Reason: "refusing to delete without a WHERE clause"}
	}
	if err := t.requireReturning("delete"); err != nil {
		return nil, err
	}

	q, err := sqlgen.Delete(t.client.dialect, t.b.Table(), t.b.WhereSpec(), t.b.Columns())
	if err != nil {
		return nil, err
	}
	return t.dispatch(ctx, q)
}
