package finance

import "strings"

// GetItem extracts a single clean scalar from a statement row by label.
// Candidates are tried in order; for each one an exact (case-sensitive) row
// match is attempted first, then a case-insensitive contains match where the
// candidate must appear inside the row label, not the other way around;
// reversing the direction changes which ambiguous rows win. In both cases
// the value is the sanitized first-column cell; if it comes back absent the
// next candidate is tried. Returns ok == false for an empty statement or when
// no candidate produces a usable value.
func GetItem(st *Statement, candidates []string) (float64, bool) {
	if st.Empty() {
		return 0, false
	}

	for _, label := range candidates {
		// 1. Exact label, first occurrence in table order.
		if row := exactRow(st, label); row >= 0 {
			if v, ok := CleanScalar(st.Cells[row][0]); ok {
				return v, true
			}
		}

		// 2. Fuzzy, case-insensitive contains. Only the first match in table
		// order is inspected; if it is unusable we move on to the next
		// candidate rather than scanning further rows.
		needle := strings.ToLower(label)
		for i, idx := range st.Index {
			if strings.Contains(strings.ToLower(idx), needle) {
				if v, ok := CleanScalar(st.Cells[i][0]); ok {
					return v, true
				}
				break
			}
		}
	}

	return 0, false
}

func exactRow(st *Statement, label string) int {
	for i, idx := range st.Index {
		if idx == label {
			return i
		}
	}
	return -1
}
