package schema

import (
	"context"

	"github.com/satishbabariya/fluentdb/query/sqlgen"
	"github.com/satishbabariya/fluentdb/runtime/client"
)

// Table wraps a client table handle 1:1 and mirrors its chain and terminal
// surface. Filter and mutation-payload inputs are validated against the
// schema before they reach the underlying builder; like the builder itself,
// a failed chain call records a sticky error surfaced by the first terminal
// call, and nothing is delegated past a failed validation.
type Table struct {
	inner  *client.Table
	schema Schema
	err    error
}

// Wrap overlays the schema on a table handle.
func Wrap(t *client.Table, s Schema) *Table {
	return &Table{inner: t, schema: s}
}

// Model parses a model declaration and returns a validated handle on the
// declared table.
func Model(c *client.Client, declaration string) (*Table, error) {
	name, s, err := ParseModel(declaration)
	if err != nil {
		return nil, err
	}
	return Wrap(c.Table(name), s), nil
}

// Schema returns the schema descriptor bound at construction.
func (t *Table) Schema() Schema { return t.schema }

func (t *Table) derive(inner *client.Table) *Table {
	return &Table{inner: inner, schema: t.schema, err: t.err}
}

func (t *Table) failed(err error) *Table {
	next := t.derive(t.inner)
	if next.err == nil {
		next.err = err
	}
	return next
}

// Select passes the projection through unchanged; column existence in the
// projection is the compiler's concern, value shapes are this overlay's.
func (t *Table) Select(columns ...string) *Table {
	return t.derive(t.inner.Select(columns...))
}

// Where validates an equality filter against the schema, then delegates.
func (t *Table) Where(eq map[string]any) *Table {
	if err := ValidateWhere(t.schema, sqlgen.Eq(eq)); err != nil {
		return t.failed(err)
	}
	return t.derive(t.inner.Where(eq))
}

// WhereConds validates operator conditions against the schema, then
// delegates.
func (t *Table) WhereConds(conds ...sqlgen.Cond) *Table {
	if err := ValidateWhere(t.schema, sqlgen.Conds(conds...)); err != nil {
		return t.failed(err)
	}
	return t.derive(t.inner.WhereConds(conds...))
}

// OrderBy delegates unchanged.
func (t *Table) OrderBy(orders ...sqlgen.Order) *Table {
	return t.derive(t.inner.OrderBy(orders...))
}

// Skip delegates unchanged.
func (t *Table) Skip(n int) *Table { return t.derive(t.inner.Skip(n)) }

// Take delegates unchanged.
func (t *Table) Take(n int) *Table { return t.derive(t.inner.Take(n)) }

// FindMany runs the query and returns every matching row.
func (t *Table) FindMany(ctx context.Context) ([]client.Row, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.inner.FindMany(ctx)
}

// FindFirst returns the first matching row, or nil when nothing matches.
func (t *Table) FindFirst(ctx context.Context) (client.Row, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.inner.FindFirst(ctx)
}

// FindUnique returns the single matching row, nil for no match, and an error
// when the filter matches more than one row.
func (t *Table) FindUnique(ctx context.Context) (client.Row, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.inner.FindUnique(ctx)
}

// Count returns the number of matching rows.
func (t *Table) Count(ctx context.Context) (int64, error) {
	if t.err != nil {
		return 0, t.err
	}
	return t.inner.Count(ctx)
}

// Create validates the full record against the schema, then inserts it.
func (t *Table) Create(ctx context.Context, record client.Row) (client.Row, error) {
	if t.err != nil {
		return nil, t.err
	}
	if err := ValidateRecord(t.schema, record, false); err != nil {
		return nil, err
	}
	return t.inner.Create(ctx, record)
}

// CreateMany validates every record fully against the schema, then inserts
// the batch.
func (t *Table) CreateMany(ctx context.Context, records []client.Row) ([]client.Row, error) {
	if t.err != nil {
		return nil, t.err
	}
	for _, record := range records {
		if err := ValidateRecord(t.schema, record, false); err != nil {
			return nil, err
		}
	}
	return t.inner.CreateMany(ctx, records)
}

// Update validates the payload against a partial relaxation of the schema
// (any subset of fields, each individually valid), then applies it.
func (t *Table) Update(ctx context.Context, patch client.Row) ([]client.Row, error) {
	if t.err != nil {
		return nil, t.err
	}
	if err := ValidateRecord(t.schema, patch, true); err != nil {
		return nil, err
	}
	return t.inner.Update(ctx, patch)
}

// Delete removes every matching row.
func (t *Table) Delete(ctx context.Context) ([]client.Row, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.inner.Delete(ctx)
}
