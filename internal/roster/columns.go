package roster

import (
	"fmt"
	"sort"
	"strings"
)

// MissingColumnsError reports every absent required header at once, so one
// schema fix round-trips all the problems instead of the first.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("roster: missing required columns: %s", strings.Join(e.Columns, ", "))
}

// ResolveColumns maps logical field names to column positions by header name.
// `want` is logical name -> header text. Headers are matched after trimming.
func ResolveColumns(headers []string, want map[string]string) (map[string]int, error) {
	pos := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if _, seen := pos[h]; !seen {
			pos[h] = i
		}
	}

	indices := make(map[string]int, len(want))
	var missing []string
	for field, header := range want {
		i, ok := pos[strings.TrimSpace(header)]
		if !ok {
			missing = append(missing, header)
			continue
		}
		indices[field] = i
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		// Two logical fields may share a header (company / insuranceUnit);
		// report each header once.
		missing = dedupe(missing)
		return nil, &MissingColumnsError{Columns: missing}
	}
	return indices, nil
}

func dedupe(in []string) []string {
	out := in[:0]
	var prev string
	for i, s := range in {
		if i == 0 || s != prev {
			out = append(out, s)
		}
		prev = s
	}
	return out
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
