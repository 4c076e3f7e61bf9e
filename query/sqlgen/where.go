package sqlgen

import (
	"fmt"
	"sort"
	"strings"
)

// Op is a WHERE-clause operator. The set is closed; the compiler rejects
// anything outside it.
type Op string

const (
	OpEquals         Op = "="
	OpNotEquals      Op = "!="
	OpGreaterThan    Op = ">"
	OpLessThan       Op = "<"
	OpGreaterOrEqual Op = ">="
	OpLessOrEqual    Op = "<="
	OpLike           Op = "LIKE"
	OpILike          Op = "ILIKE"
	OpIn             Op = "IN"
	OpIsNull         Op = "IS NULL"
	OpIsNotNull      Op = "IS NOT NULL"
)

// Pattern selects where wildcards are placed around a LIKE/ILIKE value.
type Pattern string

const (
	PatternExact      Pattern = "exact"
	PatternStartsWith Pattern = "startsWith"
	PatternEndsWith   Pattern = "endsWith"
	PatternContains   Pattern = "contains"
)

// Cond is one typed filter clause: a field, an operator, and the value the
// operator requires. Pattern applies to LIKE/ILIKE only.
type Cond struct {
	Field   string
	Op      Op
	Value   any
	Pattern Pattern
}

// EqPair is one field = value entry of an equality filter.
type EqPair struct {
	Field string
	Value any
}

// Where is a filter in one of two shapes: an equality map or an ordered list
// of operator conditions. Both compile to AND-joined boolean expressions.
type Where struct {
	eq    []EqPair
	conds []Cond
}

// Eq builds an equality-map filter. A nil value compiles to IS NULL. Entries
// are sorted by field name so the generated SQL is deterministic.
func Eq(m map[string]any) *Where {
	fields := make([]string, 0, len(m))
	for f := range m {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	pairs := make([]EqPair, len(fields))
	for i, f := range fields {
		pairs[i] = EqPair{Field: f, Value: m[f]}
	}
	return &Where{eq: pairs}
}

// Conds builds an operator-list filter. Conditions are AND-joined in the
// order given.
func Conds(conds ...Cond) *Where {
	return &Where{conds: append([]Cond(nil), conds...)}
}

// Empty reports whether the filter holds no clauses. A nil receiver is empty.
func (w *Where) Empty() bool {
	return w == nil || (len(w.eq) == 0 && len(w.conds) == 0)
}

// EqPairs returns the equality entries, nil for an operator-list filter.
func (w *Where) EqPairs() []EqPair {
	if w == nil {
		return nil
	}
	return w.eq
}

// CondList returns the operator conditions, nil for an equality filter.
func (w *Where) CondList() []Cond {
	if w == nil {
		return nil
	}
	return w.conds
}

// likeEscaper escapes the LIKE metacharacters % and _ and the escape
// character itself. It runs over every LIKE/ILIKE value unconditionally, so
// caller input always matches literally and only compiler-applied wildcards
// expand.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLikeValue escapes %, _ and \ in s for literal use inside a LIKE
// pattern with backslash as the escape character.
func EscapeLikeValue(s string) string {
	return likeEscaper.Replace(s)
}

func applyPattern(escaped string, p Pattern) (string, error) {
	switch p {
	case PatternStartsWith:
		return escaped + "%", nil
	case PatternEndsWith:
		return "%" + escaped, nil
	case PatternContains:
		return "%" + escaped + "%", nil
	case PatternExact, "":
		return escaped, nil
	default:
		return "", queryErrorf("where", "unsupported match pattern %q", string(p))
	}
}

// CompileWhere compiles a filter into an AND-joined boolean expression and
// its bound parameters. An empty filter compiles to the empty expression.
// argn is the next 1-based placeholder index and is advanced past every
// parameter consumed.
func CompileWhere(d Dialect, w *Where, argn *int) (string, []any, error) {
	if w.Empty() {
		return "", nil, nil
	}

	var exprs []string
	var args []any

	for _, pair := range w.EqPairs() {
		field := d.QuoteIdentifier(pair.Field)
		if pair.Value == nil {
			exprs = append(exprs, field+" IS NULL")
			continue
		}
		exprs = append(exprs, fmt.Sprintf("%s = %s", field, d.Placeholder(*argn)))
		args = append(args, pair.Value)
		*argn++
	}

	for _, cond := range w.CondList() {
		expr, condArgs, err := compileCond(d, cond, argn)
		if err != nil {
			return "", nil, err
		}
		exprs = append(exprs, expr)
		args = append(args, condArgs...)
	}

	return strings.Join(exprs, " AND "), args, nil
}

func compileCond(d Dialect, cond Cond, argn *int) (string, []any, error) {
	field := d.QuoteIdentifier(cond.Field)

	switch cond.Op {
	case OpIsNull, OpIsNotNull:
		if cond.Value != nil {
			return "", nil, queryErrorf("where", "operator %s on field %q takes no value", cond.Op, cond.Field)
		}
		return fmt.Sprintf("%s %s", field, cond.Op), nil, nil

	case OpIn:
		values, ok := cond.Value.([]any)
		if !ok {
			return "", nil, queryErrorf("where", "operator IN on field %q requires a list value", cond.Field)
		}
		if len(values) == 0 {
			return "", nil, queryErrorf("where", "operator IN on field %q requires a non-empty list", cond.Field)
		}
		expr, args := d.CompileIn(field, values, argn)
		return expr, args, nil

	case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpGreaterOrEqual, OpLessOrEqual:
		if cond.Value == nil {
			return "", nil, queryErrorf("where", "operator %s on field %q requires a non-null value; use IS NULL for null checks", cond.Op, cond.Field)
		}
		expr := fmt.Sprintf("%s %s %s", field, cond.Op, d.Placeholder(*argn))
		*argn++
		return expr, []any{cond.Value}, nil

	case OpLike, OpILike:
		raw, ok := cond.Value.(string)
		if !ok {
			return "", nil, queryErrorf("where", "operator %s on field %q requires a string value", cond.Op, cond.Field)
		}
		pattern, err := applyPattern(EscapeLikeValue(raw), cond.Pattern)
		if err != nil {
			return "", nil, err
		}
		var expr string
		if cond.Op == OpILike && !d.SupportsILike() {
			expr = fmt.Sprintf("LOWER(%s) LIKE LOWER(%s) %s", field, d.Placeholder(*argn), d.LikeEscape())
		} else {
			expr = fmt.Sprintf("%s %s %s %s", field, cond.Op, d.Placeholder(*argn), d.LikeEscape())
		}
		*argn++
		return expr, []any{pattern}, nil

	default:
		return "", nil, queryErrorf("where", "unsupported operator %q on field %q", string(cond.Op), cond.Field)
	}
}
