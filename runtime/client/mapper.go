package client

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Row is one result row: column name to scalar-or-nil value.
type Row map[string]any

// scanRows drains rows into Row maps. Drivers hand text columns back as
// []byte; those are normalized to string so callers compare values directly.
func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []Row
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// scanCount reads a single aggregate scalar. No row at all counts as zero.
func scanCount(rows *sql.Rows) (int64, error) {
	if !rows.Next() {
		return 0, rows.Err()
	}
	var value any
	if err := rows.Scan(&value); err != nil {
		return 0, err
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	switch v := value.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected count result type %T", value)
	}
}
