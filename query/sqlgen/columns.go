package sqlgen

import (
	"strings"
)

// CompileColumns compiles a projection into a SELECT column list. A nil or
// empty projection selects all columns. Every name is validated; all invalid
// names are reported together in one error.
func CompileColumns(d Dialect, cols []string) (string, error) {
	if len(cols) == 0 {
		return "*", nil
	}

	var invalid []string
	seen := make(map[string]bool, len(cols))
	quoted := make([]string, 0, len(cols))

	for _, col := range cols {
		if err := ValidateIdent(col, IdentOpts{Strict: true}); err != nil {
			invalid = append(invalid, col)
			continue
		}
		trimmed := strings.TrimSpace(col)
		if seen[trimmed] {
			return "", queryErrorf("select", "duplicate column %q in projection", trimmed)
		}
		seen[trimmed] = true
		quoted = append(quoted, d.QuoteIdentifier(trimmed))
	}

	if len(invalid) > 0 {
		return "", queryErrorf("select", "invalid column name(s): %s", strings.Join(invalid, ", "))
	}
	return strings.Join(quoted, ", "), nil
}
