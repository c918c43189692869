package core

import (
	"strconv"
	"strings"
)

// DefaultPreviewCount is used when the requested count is absent or invalid.
const DefaultPreviewCount = 5

// Preview computes the resolved filename for the first count rows without
// rendering, converting, or touching the registry. It is pure and safe to
// call repeatedly.
func Preview(rows []Row, pattern string, count int) []PreviewRow {
	if count < 1 {
		count = DefaultPreviewCount
	}
	if count > len(rows) {
		count = len(rows)
	}

	out := make([]PreviewRow, 0, count)
	for i := 0; i < count; i++ {
		ordinal := i + 1
		out = append(out, PreviewRow{
			Index:    ordinal,
			EmpName:  strings.TrimSpace(rows[i].Get("emp_name")),
			Filename: RenderFilename(pattern, rows[i], ordinal) + ".docx",
		})
	}
	return out
}

// ParsePreviewCount parses a user-supplied preview count. Absent, malformed,
// or non-positive values fall back to the default.
func ParsePreviewCount(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return DefaultPreviewCount
	}
	return n
}
