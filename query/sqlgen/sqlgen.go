// Package sqlgen compiles filter, sort, pagination, and projection
// declarations into parameterized SQL statements for a specific dialect.
// Caller-supplied values always bind as parameters; identifiers are always
// quoted through the dialect, never interpolated from untrusted text.
package sqlgen

import (
	"fmt"
	"strings"
)

// Query is a compiled SQL statement and its bound arguments, ready for an
// execution engine.
type Query struct {
	SQL  string
	Args []any
}

// Assign is one column = value assignment of an UPDATE statement.
type Assign struct {
	Column string
	Value  any
}

// Select compiles a read of the given table: projection, filter, sort, and
// pagination in that order.
func Select(d Dialect, table string, cols []string, w *Where, orderBy []Order, take, skip *int) (*Query, error) {
	colList, err := CompileColumns(d, cols)
	if err != nil {
		return nil, err
	}

	parts := []string{fmt.Sprintf("SELECT %s FROM %s", colList, quoteQualified(d, table))}
	var args []any
	argn := 1

	whereExpr, whereArgs, err := CompileWhere(d, w, &argn)
	if err != nil {
		return nil, err
	}
	if whereExpr != "" {
		parts = append(parts, "WHERE "+whereExpr)
		args = append(args, whereArgs...)
	}

	orderExpr, err := CompileOrderBy(d, orderBy)
	if err != nil {
		return nil, err
	}
	if orderExpr != "" {
		parts = append(parts, orderExpr)
	}

	limitExpr, limitArgs := CompileLimit(d, take, skip, &argn)
	if limitExpr != "" {
		parts = append(parts, limitExpr)
		args = append(args, limitArgs...)
	}

	return &Query{SQL: strings.Join(parts, " "), Args: args}, nil
}

// SelectCount compiles a COUNT(*) aggregate over the filtered table.
func SelectCount(d Dialect, table string, w *Where) (*Query, error) {
	parts := []string{fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteQualified(d, table))}
	var args []any
	argn := 1

	whereExpr, whereArgs, err := CompileWhere(d, w, &argn)
	if err != nil {
		return nil, err
	}
	if whereExpr != "" {
		parts = append(parts, "WHERE "+whereExpr)
		args = append(args, whereArgs...)
	}

	return &Query{SQL: strings.Join(parts, " "), Args: args}, nil
}

// Insert compiles a multi-row insert. Every row must carry one value per
// column, in column order; the caller is responsible for aligning them.
// On dialects that support it the inserted rows are returned per the given
// projection.
func Insert(d Dialect, table string, cols []string, rows [][]any, returning []string) (*Query, error) {
	if len(cols) == 0 {
		return nil, queryErrorf("create", "insert requires at least one column")
	}
	if len(rows) == 0 {
		return nil, queryErrorf("create", "insert requires at least one row")
	}

	quotedCols := make([]string, len(cols))
	for i, col := range cols {
		if err := ValidateIdent(col, IdentOpts{Strict: true}); err != nil {
			return nil, queryErrorf("create", "invalid column name %q", col)
		}
		quotedCols[i] = d.QuoteIdentifier(strings.TrimSpace(col))
	}

	var args []any
	argn := 1
	tuples := make([]string, len(rows))
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, queryErrorf("create", "row %d has %d values for %d columns", i, len(row), len(cols))
		}
		placeholders := make([]string, len(row))
		for j, v := range row {
			placeholders[j] = d.Placeholder(argn)
			args = append(args, v)
			argn++
		}
		tuples[i] = "(" + strings.Join(placeholders, ", ") + ")"
	}

	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		quoteQualified(d, table), strings.Join(quotedCols, ", "), strings.Join(tuples, ", "))

	returningExpr, err := compileReturning(d, returning)
	if err != nil {
		return nil, err
	}
	return &Query{SQL: sql + returningExpr, Args: args}, nil
}

// Update compiles an update of the filtered rows. A non-empty filter is
// required: an unfiltered update is a safety violation, never an implicit
// update-everything.
func Update(d Dialect, table string, set []Assign, w *Where, returning []string) (*Query, error) {
	if w.Empty() {
		return nil, queryErrorf("update", "refusing to update without a WHERE clause")
	}
	if len(set) == 0 {
		return nil, queryErrorf("update", "update requires a non-empty payload")
	}

	var args []any
	argn := 1
	assigns := make([]string, len(set))
	for i, a := range set {
		if err := ValidateIdent(a.Column, IdentOpts{Strict: true}); err != nil {
			return nil, queryErrorf("update", "invalid column name %q", a.Column)
		}
		assigns[i] = fmt.Sprintf("%s = %s", d.QuoteIdentifier(strings.TrimSpace(a.Column)), d.Placeholder(argn))
		args = append(args, a.Value)
		argn++
	}

	whereExpr, whereArgs, err := CompileWhere(d, w, &argn)
	if err != nil {
		return nil, err
	}
	args = append(args, whereArgs...)

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		quoteQualified(d, table), strings.Join(assigns, ", "), whereExpr)

	returningExpr, err := compileReturning(d, returning)
	if err != nil {
		return nil, err
	}
	return &Query{SQL: sql + returningExpr, Args: args}, nil
}

// Delete compiles a delete of the filtered rows. Like Update, it refuses to
// compile without a filter.
func Delete(d Dialect, table string, w *Where, returning []string) (*Query, error) {
	if w.Empty() {
		return nil, queryErrorf("delete", "refusing to delete without a WHERE clause")
	}

	var args []any
	argn := 1
	whereExpr, whereArgs, err := CompileWhere(d, w, &argn)
	if err != nil {
		return nil, err
	}
	args = append(args, whereArgs...)

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s", quoteQualified(d, table), whereExpr)

	returningExpr, err := compileReturning(d, returning)
	if err != nil {
		return nil, err
	}
	return &Query{SQL: sql + returningExpr, Args: args}, nil
}

func compileReturning(d Dialect, cols []string) (string, error) {
	if !d.Returning() {
		return "", nil
	}
	colList, err := CompileColumns(d, cols)
	if err != nil {
		return "", err
	}
	return " RETURNING " + colList, nil
}
