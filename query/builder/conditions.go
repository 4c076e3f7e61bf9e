package builder

import (
	"github.com/satishbabariya/fluentdb/query/sqlgen"
)

// Condition constructors for the operator-list filter form. Each returns a
// value for WhereConds; none of them touches builder state.

// Equals matches field = value.
func Equals(field string, value any) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpEquals, Value: value}
}

// NotEquals matches field != value.
func NotEquals(field string, value any) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpNotEquals, Value: value}
}

// GreaterThan matches field > value.
func GreaterThan(field string, value any) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpGreaterThan, Value: value}
}

// LessThan matches field < value.
func LessThan(field string, value any) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpLessThan, Value: value}
}

// GreaterOrEqual matches field >= value.
func GreaterOrEqual(field string, value any) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpGreaterOrEqual, Value: value}
}

// LessOrEqual matches field <= value.
func LessOrEqual(field string, value any) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpLessOrEqual, Value: value}
}

// Like matches the value case-sensitively with the given wildcard pattern.
// The value is always escaped literally; wildcards come from the pattern
// mode only.
func Like(field, value string, pattern sqlgen.Pattern) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpLike, Value: value, Pattern: pattern}
}

// ILike is Like without case sensitivity.
func ILike(field, value string, pattern sqlgen.Pattern) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpILike, Value: value, Pattern: pattern}
}

// In matches rows whose field equals any of the given values. The list must
// not be empty.
func In(field string, values ...any) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpIn, Value: values}
}

// IsNull matches rows whose field is NULL.
func IsNull(field string) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpIsNull}
}

// IsNotNull matches rows whose field is not NULL.
func IsNotNull(field string) sqlgen.Cond {
	return sqlgen.Cond{Field: field, Op: sqlgen.OpIsNotNull}
}

// OrderAsc is a convenience constructor for an ascending sort term.
func OrderAsc(column string) sqlgen.Order {
	return sqlgen.Order{Column: column, Direction: sqlgen.Asc}
}

// OrderDesc is a convenience constructor for a descending sort term.
func OrderDesc(column string) sqlgen.Order {
	return sqlgen.Order{Column: column, Direction: sqlgen.Desc}
}
