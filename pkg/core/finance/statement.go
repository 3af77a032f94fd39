package finance

// StatementJSON is the wire shape of a statement for the dashboard detail
// endpoint: column labels, row labels and a row-major grid where every cell
// is a finite float64, a string, or nil. Nothing else ever appears in Data.
type StatementJSON struct {
	Columns []string `json:"columns"`
	Index   []string `json:"index"`
	Data    [][]any  `json:"data"`
}

// ToStatementJSON converts a statement into its JSON-safe form, keeping at
// most maxCols leading columns (callers order columns by recency upstream).
// Returns nil for an empty statement. Cell handling:
//   - absent or NaN/inf          -> nil (kept in place, never dropped)
//   - numeric                    -> sanitized finite float64
//   - container                  -> sanitized first non-missing element, else nil
//   - anything else              -> its textual representation
func ToStatementJSON(st *Statement, maxCols int) *StatementJSON {
	if st.Empty() {
		return nil
	}

	ncols := len(st.Columns)
	if maxCols > 0 && maxCols < ncols {
		ncols = maxCols
	}

	out := &StatementJSON{
		Columns: append([]string(nil), st.Columns[:ncols]...),
		Index:   append([]string(nil), st.Index...),
		Data:    make([][]any, len(st.Index)),
	}

	for i := range st.Index {
		row := make([]any, ncols)
		for j := 0; j < ncols; j++ {
			row[j] = cellToJSON(st.Cells[i][j])
		}
		out.Data[i] = row
	}
	return out
}

func cellToJSON(v Value) any {
	switch v.Kind() {
	case KindAbsent:
		return nil
	case KindNumber, KindList:
		if f, ok := CleanScalar(v); ok {
			return f
		}
		return nil
	default:
		// Opaque values stay as their string form; they are JSON-safe.
		return v.Str()
	}
}

// DropEmpty returns a copy of the statement without rows and columns whose
// cells are all missing. Used when shaping tables for export; the JSON path
// keeps the raw grid intact.
func DropEmpty(st *Statement) *Statement {
	if st.Empty() {
		return st
	}

	keepRows := make([]int, 0, len(st.Index))
	for i := range st.Index {
		for _, c := range st.Cells[i] {
			if !c.isNA() {
				keepRows = append(keepRows, i)
				break
			}
		}
	}

	keepCols := make([]int, 0, len(st.Columns))
	for j := range st.Columns {
		for _, i := range keepRows {
			if !st.Cells[i][j].isNA() {
				keepCols = append(keepCols, j)
				break
			}
		}
	}

	out := &Statement{
		Index:   make([]string, 0, len(keepRows)),
		Columns: make([]string, 0, len(keepCols)),
		Cells:   make([][]Value, 0, len(keepRows)),
	}
	for _, j := range keepCols {
		out.Columns = append(out.Columns, st.Columns[j])
	}
	for _, i := range keepRows {
		out.Index = append(out.Index, st.Index[i])
		row := make([]Value, 0, len(keepCols))
		for _, j := range keepCols {
			row = append(row, st.Cells[i][j])
		}
		out.Cells = append(out.Cells, row)
	}
	return out
}

// FlattenInfo reduces a single-column key/value statement (the provider's
// company info block) into a JSON-safe map. Containers collapse to their
// first usable element, missing and non-finite values are skipped entirely,
// and opaque values pass through as strings.
func FlattenInfo(info *Statement) map[string]any {
	out := map[string]any{}
	if info.Empty() {
		return out
	}

	for i, key := range info.Index {
		v := info.Cells[i][0]
		if v.Kind() == KindList {
			first, ok := firstPresent(v.Items())
			if !ok {
				continue
			}
			v = first
		}
		switch v.Kind() {
		case KindNumber:
			if f, ok := CleanScalar(v); ok {
				out[key] = f
			}
		case KindText:
			out[key] = v.Str()
		}
	}
	return out
}
