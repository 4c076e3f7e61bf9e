package sqlgen

import "fmt"

// ConfigError reports an invalid table or column identifier supplied at
// construction time. It is always detected before any statement is dispatched.
type ConfigError struct {
	Name   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid identifier %q: %s", e.Name, e.Reason)
	}
	return e.Reason
}

// QueryError reports a query that could not be compiled or dispatched safely:
// a bad operator/value combination, invalid pagination bounds, a mutation with
// no WHERE clause, and similar precondition failures.
type QueryError struct {
	Op     string // the operation that rejected the input, e.g. "update" or "where"
	Reason string
}

func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	return e.Reason
}

func queryErrorf(op, format string, args ...any) *QueryError {
	return &QueryError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
