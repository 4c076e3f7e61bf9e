// Package schema overlays runtime schema validation on table handles: field
// names are checked for existence and values for shape before any input
// reaches the query compilers.
package schema

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind is the value shape a field accepts.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBoolean
	KindDateTime
	KindJson
	KindUuid
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindDateTime:
		return "DateTime"
	case KindJson:
		return "Json"
	case KindUuid:
		return "Uuid"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field declares one schema field: its value shape and whether it may be
// omitted or null.
type Field struct {
	Kind     Kind
	Optional bool
}

// Schema maps field names to their declarations. It is built once per table
// handle and never mutated afterwards.
type Schema map[string]Field

// Define builds a schema from field declarations.
func Define(fields map[string]Field) Schema {
	s := make(Schema, len(fields))
	for name, f := range fields {
		s[name] = f
	}
	return s
}

// checkValue reports why value does not satisfy the field's kind, or "" when
// it does. A nil value never reaches here; nil handling depends on context
// (equality null vs. required field) and lives with the callers.
func (f Field) checkValue(value any) string {
	switch f.Kind {
	case KindString:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("expected a string, got %T", value)
		}
	case KindInt:
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		case float64:
			if v != float64(int64(v)) {
				return fmt.Sprintf("expected an integer, got %v", v)
			}
		default:
			return fmt.Sprintf("expected an integer, got %T", value)
		}
	case KindFloat:
		switch value.(type) {
		case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		default:
			return fmt.Sprintf("expected a number, got %T", value)
		}
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expected a boolean, got %T", value)
		}
	case KindDateTime:
		switch v := value.(type) {
		case time.Time:
		case string:
			if _, err := time.Parse(time.RFC3339, v); err != nil {
				return fmt.Sprintf("expected an RFC 3339 timestamp, got %q", v)
			}
		default:
			return fmt.Sprintf("expected a timestamp, got %T", value)
		}
	case KindJson:
		// Any non-nil value is acceptable JSON input.
	case KindUuid:
		switch v := value.(type) {
		case uuid.UUID:
		case string:
			if _, err := uuid.Parse(v); err != nil {
				return fmt.Sprintf("expected a UUID, got %q", v)
			}
		default:
			return fmt.Sprintf("expected a UUID, got %T", value)
		}
	}
	return ""
}
