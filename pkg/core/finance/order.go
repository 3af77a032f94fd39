package finance

import "strings"

// Reorder permutes the rows of a statement into a display-friendly order.
// For each priority keyword, an exact case-insensitive label match is taken
// first, then a contains match; each row is consumed at most once even when
// it would satisfy several keywords. Rows no keyword claimed follow in their
// original relative order, so the output always holds exactly the same rows
// as the input. Columns are untouched.
func Reorder(st *Statement, priorities []string) *Statement {
	if st.Empty() {
		return st
	}

	used := make([]bool, len(st.Index))
	order := make([]int, 0, len(st.Index))

	for _, kw := range priorities {
		needle := strings.ToLower(kw)

		match := -1
		for i, label := range st.Index {
			if !used[i] && strings.ToLower(label) == needle {
				match = i
				break
			}
		}
		if match < 0 {
			for i, label := range st.Index {
				if !used[i] && strings.Contains(strings.ToLower(label), needle) {
					match = i
					break
				}
			}
		}
		if match >= 0 {
			used[match] = true
			order = append(order, match)
		}
	}

	for i := range st.Index {
		if !used[i] {
			order = append(order, i)
		}
	}

	out := &Statement{
		Index:   make([]string, len(order)),
		Columns: st.Columns,
		Cells:   make([][]Value, len(order)),
	}
	for pos, i := range order {
		out.Index[pos] = st.Index[i]
		out.Cells[pos] = st.Cells[i]
	}
	return out
}
