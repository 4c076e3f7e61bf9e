package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/satishbabariya/fluentdb/query/sqlgen"
	"github.com/satishbabariya/fluentdb/runtime/client"
)

// FieldError is one validation failure: the offending field path and a
// human-readable reason.
type FieldError struct {
	Path   string
	Reason string
}

// ValidationError aggregates every field that failed validation for one
// input. Nothing is delegated to the builder until validation fully
// succeeds, so a ValidationError always means zero engine calls were made.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	reasons := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		reasons[i] = fmt.Sprintf("%s: %s", f.Path, f.Reason)
	}
	return "validation failed: " + strings.Join(reasons, "; ")
}

type violations []FieldError

func (v *violations) add(path, format string, args ...any) {
	*v = append(*v, FieldError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Fields: v}
}

// ValidateWhere checks a filter against the schema: every field must exist,
// nullness operators must carry no value, IN lists must be non-empty with
// every element valid, LIKE/ILIKE values must be strings, and comparison and
// equality values must satisfy the field's value rule.
func ValidateWhere(s Schema, w *sqlgen.Where) error {
	var v violations

	for _, pair := range w.EqPairs() {
		field, ok := s[pair.Field]
		if !ok {
			v.add(pair.Field, "unknown field")
			continue
		}
		if pair.Value == nil {
			continue // compiles to IS NULL
		}
		if reason := field.checkValue(pair.Value); reason != "" {
			v.add(pair.Field, "%s", reason)
		}
	}

	for _, cond := range w.CondList() {
		field, ok := s[cond.Field]
		if !ok {
			v.add(cond.Field, "unknown field")
			continue
		}
		switch cond.Op {
		case sqlgen.OpIsNull, sqlgen.OpIsNotNull:
			if cond.Value != nil {
				v.add(cond.Field, "operator %s takes no value", cond.Op)
			}
		case sqlgen.OpIn:
			values, ok := cond.Value.([]any)
			if !ok || len(values) == 0 {
				v.add(cond.Field, "operator IN requires a non-empty list")
				continue
			}
			for i, elem := range values {
				if elem == nil {
					v.add(fmt.Sprintf("%s[%d]", cond.Field, i), "list element must not be null")
					continue
				}
				if reason := field.checkValue(elem); reason != "" {
					v.add(fmt.Sprintf("%s[%d]", cond.Field, i), "%s", reason)
				}
			}
		case sqlgen.OpLike, sqlgen.OpILike:
			if _, ok := cond.Value.(string); !ok {
				v.add(cond.Field, "operator %s requires a string value, got %T", cond.Op, cond.Value)
			}
		default:
			if cond.Value == nil {
				v.add(cond.Field, "operator %s requires a non-null value", cond.Op)
				continue
			}
			if reason := field.checkValue(cond.Value); reason != "" {
				v.add(cond.Field, "%s", reason)
			}
		}
	}

	return v.err()
}

// ValidateRecord checks a record against the schema. In full mode every
// non-optional field must be present and non-null; in partial mode any
// subset of fields is fine, each individually valid when present.
func ValidateRecord(s Schema, record client.Row, partial bool) error {
	var v violations

	keys := make([]string, 0, len(record))
	for field := range record {
		keys = append(keys, field)
	}
	sort.Strings(keys)
	for _, field := range keys {
		if _, ok := s[field]; !ok {
			v.add(field, "unknown field")
		}
	}

	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := s[name]
		value, present := record[name]
		if !present {
			if !partial && !field.Optional {
				v.add(name, "required field is missing")
			}
			continue
		}
		if value == nil {
			if !field.Optional {
				v.add(name, "field is not nullable")
			}
			continue
		}
		if reason := field.checkValue(value); reason != "" {
			v.add(name, "%s", reason)
		}
	}

	return v.err()
}
