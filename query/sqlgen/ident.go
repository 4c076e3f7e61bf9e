package sqlgen

import (
	"regexp"
	"strings"
)

// IdentOpts controls identifier validation.
type IdentOpts struct {
	// Strict enforces SQL identifier syntax instead of just non-emptiness.
	Strict bool
	// AllowQualifier permits exactly one "schema." qualifier segment.
	AllowQualifier bool
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdent checks a table or column identifier. In non-strict mode any
// non-empty trimmed string passes. In strict mode the name must match the
// identifier grammar (letters, digits, underscore, not starting with a digit),
// optionally schema-qualified when AllowQualifier is set.
func ValidateIdent(name string, opts IdentOpts) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &ConfigError{Name: name, Reason: "identifier is empty"}
	}
	if !opts.Strict {
		return nil
	}
	segments := strings.Split(trimmed, ".")
	switch {
	case len(segments) == 2 && !opts.AllowQualifier:
		return &ConfigError{Name: name, Reason: "schema qualifier is not allowed here"}
	case len(segments) > 2:
		return &ConfigError{Name: name, Reason: "too many qualifier segments"}
	}
	for _, seg := range segments {
		if !identPattern.MatchString(seg) {
			return &ConfigError{Name: name, Reason: "not a valid SQL identifier"}
		}
	}
	return nil
}

// quoteQualified quotes an identifier segment-wise so that a validated
// "schema.table" name quotes as "schema"."table".
func quoteQualified(d Dialect, name string) string {
	segments := strings.Split(strings.TrimSpace(name), ".")
	for i, seg := range segments {
		segments[i] = d.QuoteIdentifier(seg)
	}
	return strings.Join(segments, ".")
}
