package sqlgen

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Dialect abstracts the provider-specific parts of SQL generation: parameter
// placeholders, identifier quoting, and the few constructs where providers
// genuinely differ (RETURNING support, ILIKE, IN binding).
type Dialect interface {
	// Name returns the canonical provider name ("postgres", "mysql", "sqlite").
	Name() string
	// DriverName returns the database/sql driver name to open connections with.
	DriverName() string
	// Placeholder returns the bound-parameter placeholder for the given
	// 1-based argument index.
	Placeholder(n int) string
	// QuoteIdentifier quotes a single identifier segment.
	QuoteIdentifier(name string) string
	// Returning reports whether the provider supports RETURNING on mutations.
	Returning() bool
	// SupportsILike reports whether ILIKE is a native operator.
	SupportsILike() bool
	// LikeEscape returns the ESCAPE clause appended to LIKE patterns so that
	// backslash is the escape character on every provider.
	LikeEscape() string
	// UnboundedLimit returns the LIMIT value to emit when only an OFFSET is
	// requested, and whether one is required at all.
	UnboundedLimit() (string, bool)
	// CompileIn compiles a membership test for the given quoted field,
	// binding every element as a parameter. argn is advanced past the
	// placeholders consumed.
	CompileIn(field string, values []any, argn *int) (string, []any)
}

// New returns the dialect for the given provider name.
func New(provider string) (Dialect, error) {
	switch provider {
	case "postgresql", "postgres":
		return Postgres{}, nil
	case "mysql":
		return MySQL{}, nil
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	default:
		return nil, &ConfigError{Name: provider, Reason: "unsupported provider"}
	}
}

// Postgres generates PostgreSQL SQL: $n placeholders, double-quoted
// identifiers, native RETURNING and ILIKE, and array-bound IN.
type Postgres struct{}

func (Postgres) Name() string       { return "postgres" }
func (Postgres) DriverName() string { return "postgres" }

func (Postgres) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (Postgres) QuoteIdentifier(name string) string { return pq.QuoteIdentifier(name) }

func (Postgres) Returning() bool     { return true }
func (Postgres) SupportsILike() bool { return true }

func (Postgres) LikeEscape() string { return `ESCAPE '\'` }

func (Postgres) UnboundedLimit() (string, bool) { return "", false }

// CompileIn binds the whole list as one array parameter and matches it with
// field = ANY($n), so the statement text is stable regardless of list length.
func (d Postgres) CompileIn(field string, values []any, argn *int) (string, []any) {
	expr := fmt.Sprintf("%s = ANY(%s)", field, d.Placeholder(*argn))
	*argn++
	return expr, []any{pq.Array(values)}
}

// MySQL generates MySQL SQL: ? placeholders, backtick-quoted identifiers,
// no RETURNING, expanded IN lists.
type MySQL struct{}

func (MySQL) Name() string       { return "mysql" }
func (MySQL) DriverName() string { return "mysql" }

func (MySQL) Placeholder(int) string { return "?" }

func (MySQL) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (MySQL) Returning() bool     { return false }
func (MySQL) SupportsILike() bool { return false }

func (MySQL) LikeEscape() string { return `ESCAPE '\\'` }

// UnboundedLimit returns max uint64; MySQL rejects OFFSET without LIMIT.
func (MySQL) UnboundedLimit() (string, bool) { return "18446744073709551615", true }

func (d MySQL) CompileIn(field string, values []any, argn *int) (string, []any) {
	return expandIn(d, field, values, argn)
}

// SQLite generates SQLite SQL: ? placeholders, double-quoted identifiers,
// RETURNING (3.35+), expanded IN lists.
type SQLite struct{}

func (SQLite) Name() string       { return "sqlite" }
func (SQLite) DriverName() string { return "sqlite3" }

func (SQLite) Placeholder(int) string { return "?" }

func (SQLite) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (SQLite) Returning() bool     { return true }
func (SQLite) SupportsILike() bool { return false }

func (SQLite) LikeEscape() string { return `ESCAPE '\'` }

// UnboundedLimit returns -1; SQLite rejects OFFSET without LIMIT.
func (SQLite) UnboundedLimit() (string, bool) { return "-1", true }

func (d SQLite) CompileIn(field string, values []any, argn *int) (string, []any) {
	return expandIn(d, field, values, argn)
}

// expandIn emits field IN (?, ?, ...) with one placeholder per element.
func expandIn(d Dialect, field string, values []any, argn *int) (string, []any) {
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = d.Placeholder(*argn)
		args[i] = v
		*argn++
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(placeholders, ", ")), args
}
