// Package builder provides the immutable query-builder state machine behind
// the fluent API. Every chain call returns a new Builder value with exactly
// one field replaced; a Builder is never mutated, so a shared base can fan
// out into divergent queries safely, including across goroutines.
package builder

import (
	"github.com/satishbabariya/fluentdb/query/sqlgen"
)

// Builder is an immutable snapshot of query state: table, projection,
// filter, sort, and pagination. The zero value is not usable; construct
// with New.
//
// Input violations detected at a chain call (bad pagination bounds, bad
// table name) are recorded as the builder's sticky error: the first error
// wins, every later snapshot carries it, and terminal operations surface it
// before anything is compiled or dispatched.
type Builder struct {
	table   string
	columns []string
	where   *sqlgen.Where
	orderBy []sqlgen.Order
	skip    *int
	take    *int
	err     error
}

// New creates a builder for the given table. The table name must be a strict
// SQL identifier, optionally schema-qualified.
func New(table string) Builder {
	b := Builder{table: table}
	if err := sqlgen.ValidateIdent(table, sqlgen.IdentOpts{Strict: true, AllowQualifier: true}); err != nil {
		b.err = err
	}
	return b
}

// Select returns a new builder projecting the given columns. No columns
// means all columns.
func (b Builder) Select(columns ...string) Builder {
	next := b
	next.columns = append([]string(nil), columns...)
	return next
}

// Where returns a new builder filtered by the given equality map. Each entry
// means field = value, or field IS NULL for a nil value. An empty map means
// no filter.
func (b Builder) Where(eq map[string]any) Builder {
	next := b
	next.where = sqlgen.Eq(eq)
	return next
}

// WhereConds returns a new builder filtered by the given operator
// conditions, AND-joined in order.
func (b Builder) WhereConds(conds ...sqlgen.Cond) Builder {
	next := b
	next.where = sqlgen.Conds(conds...)
	return next
}

// OrderBy returns a new builder with the given sort terms; list order is
// sort precedence.
func (b Builder) OrderBy(orders ...sqlgen.Order) Builder {
	next := b
	next.orderBy = append([]sqlgen.Order(nil), orders...)
	return next
}

// Skip returns a new builder that skips the first n rows. n must not be
// negative.
func (b Builder) Skip(n int) Builder {
	next := b
	if n < 0 {
		next.fail(&sqlgen.QueryError{Op: "skip", Reason: "skip must not be negative"})
		return next
	}
	next.skip = &n
	return next
}

// Take returns a new builder that returns at most n rows. n must be
// positive.
func (b Builder) Take(n int) Builder {
	next := b
	if n <= 0 {
		next.fail(&sqlgen.QueryError{Op: "take", Reason: "take must be a positive integer"})
		return next
	}
	next.take = &n
	return next
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the sticky error recorded by the earliest failing chain call,
// or nil.
func (b Builder) Err() error { return b.err }

// Table returns the table name the builder targets.
func (b Builder) Table() string { return b.table }

// Columns returns the projection, nil meaning all columns.
func (b Builder) Columns() []string { return b.columns }

// WhereSpec returns the current filter, possibly nil.
func (b Builder) WhereSpec() *sqlgen.Where { return b.where }

// Orders returns the current sort terms.
func (b Builder) Orders() []sqlgen.Order { return b.orderBy }

// SkipValue returns the configured offset, nil if unset.
func (b Builder) SkipValue() *int { return b.skip }

// TakeValue returns the configured limit, nil if unset.
func (b Builder) TakeValue() *int { return b.take }

// WithTake returns a copy of the builder with the limit overridden without
// bounds checking; used by terminal operations that impose implicit caps.
func (b Builder) WithTake(n int) Builder {
	next := b
	next.take = &n
	return next
}
