package sqlgen

import (
	"fmt"
	"strings"
)

// CompileLimit compiles optional take/skip into a LIMIT/OFFSET clause with
// both values bound as parameters. Bounds are validated when accepted into
// builder state, not here. Some providers reject OFFSET without LIMIT; for
// those an explicit unbounded LIMIT is emitted.
func CompileLimit(d Dialect, take, skip *int, argn *int) (string, []any) {
	if take == nil && skip == nil {
		return "", nil
	}

	var parts []string
	var args []any

	if take != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %s", d.Placeholder(*argn)))
		args = append(args, *take)
		*argn++
	} else if sentinel, required := d.UnboundedLimit(); required {
		parts = append(parts, "LIMIT "+sentinel)
	}

	if skip != nil {
		parts = append(parts, fmt.Sprintf("OFFSET %s", d.Placeholder(*argn)))
		args = append(args, *skip)
		*argn++
	}

	return strings.Join(parts, " "), args
}
