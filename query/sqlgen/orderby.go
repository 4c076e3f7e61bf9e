package sqlgen

import (
	"fmt"
	"strings"
)

// Sort directions. Directions are matched case-sensitively against this
// closed vocabulary before being inlined as SQL keywords.
const (
	Asc  = "ASC"
	Desc = "DESC"
)

// Order is one ORDER BY term.
type Order struct {
	Column    string
	Direction string // Asc or Desc
}

// CompileOrderBy compiles sort terms into an ORDER BY clause, comma-joined in
// list order. An empty list compiles to the empty clause.
func CompileOrderBy(d Dialect, orders []Order) (string, error) {
	if len(orders) == 0 {
		return "", nil
	}
	terms := make([]string, len(orders))
	for i, o := range orders {
		if o.Direction != Asc && o.Direction != Desc {
			return "", queryErrorf("orderBy", "invalid sort direction %q for column %q; must be ASC or DESC", o.Direction, o.Column)
		}
		if err := ValidateIdent(o.Column, IdentOpts{Strict: true}); err != nil {
			return "", queryErrorf("orderBy", "invalid sort column: %v", err)
		}
		terms[i] = fmt.Sprintf("%s %s", d.QuoteIdentifier(strings.TrimSpace(o.Column)), o.Direction)
	}
	return "ORDER BY " + strings.Join(terms, ", "), nil
}
