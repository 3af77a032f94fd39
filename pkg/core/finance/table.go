package finance

import "time"

// Statement is a labeled two-dimensional financial table: rows are line items,
// columns are reporting periods (most recent first). Row labels are not
// necessarily unique. Cells hold heterogeneous provider values, see Value.
//
// Invariant: len(Cells) == len(Index) and len(Cells[i]) == len(Columns) for all i.
// A statement with zero rows or zero columns is valid and means "no data".
type Statement struct {
	Index   []string
	Columns []string
	Cells   [][]Value
}

// NewStatement allocates a statement with an absent-filled grid.
func NewStatement(index, columns []string) *Statement {
	cells := make([][]Value, len(index))
	for i := range cells {
		cells[i] = make([]Value, len(columns))
	}
	return &Statement{Index: index, Columns: columns, Cells: cells}
}

// Empty reports whether the statement carries no data at all.
func (s *Statement) Empty() bool {
	return s == nil || len(s.Index) == 0 || len(s.Columns) == 0
}

// PricePoint is a single trading session's closing price.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is an ascending-by-date sequence of closing prices with no
// duplicate dates. It may be empty.
type PriceSeries []PricePoint
