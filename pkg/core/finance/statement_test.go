package finance

import (
	"math"
	"reflect"
	"testing"
)

func TestToStatementJSONEmpty(t *testing.T) {
	if got := ToStatementJSON(nil, 3); got != nil {
		t.Fatalf("nil statement must serialize to nil, got %+v", got)
	}
	if got := ToStatementJSON(&Statement{}, 3); got != nil {
		t.Fatalf("empty statement must serialize to nil, got %+v", got)
	}
}

func TestToStatementJSONCellShapes(t *testing.T) {
	st := NewStatement([]string{"Total Revenue", "Notes"}, []string{"2023", "2022"})
	st.Cells[0][0] = Number(1000)
	st.Cells[0][1] = Number(math.NaN())
	st.Cells[1][0] = Text("restated")
	st.Cells[1][1] = List(Absent(), Number(5))

	got := ToStatementJSON(st, 3)
	if got == nil {
		t.Fatal("expected a serialized statement")
	}
	want := [][]any{
		{float64(1000), nil},
		{"restated", float64(5)},
	}
	if !reflect.DeepEqual(got.Data, want) {
		t.Fatalf("data mismatch:\n got %#v\nwant %#v", got.Data, want)
	}
	if !reflect.DeepEqual(got.Columns, []string{"2023", "2022"}) {
		t.Fatalf("columns mismatch: %#v", got.Columns)
	}
	if !reflect.DeepEqual(got.Index, []string{"Total Revenue", "Notes"}) {
		t.Fatalf("index mismatch: %#v", got.Index)
	}
}

func TestToStatementJSONColumnLimit(t *testing.T) {
	st := NewStatement([]string{"Row"}, []string{"2023", "2022", "2021", "2020"})
	for j := range st.Columns {
		st.Cells[0][j] = Number(float64(j))
	}

	got := ToStatementJSON(st, 3)
	if len(got.Columns) != 3 || len(got.Data[0]) != 3 {
		t.Fatalf("expected 3 retained columns, got %d/%d", len(got.Columns), len(got.Data[0]))
	}
	if got.Columns[0] != "2023" || got.Columns[2] != "2021" {
		t.Fatalf("column order must be preserved: %#v", got.Columns)
	}
}

// Serializing, rebuilding a statement from the output, and serializing again
// must yield the identical structure.
func TestToStatementJSONIdempotent(t *testing.T) {
	st := NewStatement([]string{"A", "B"}, []string{"2023", "2022"})
	st.Cells[0][0] = Number(10)
	st.Cells[0][1] = Absent()
	st.Cells[1][0] = Text("x")
	st.Cells[1][1] = Number(2.5)

	first := ToStatementJSON(st, 3)

	rebuilt := NewStatement(first.Index, first.Columns)
	for i, row := range first.Data {
		for j, cell := range row {
			switch c := cell.(type) {
			case nil:
				rebuilt.Cells[i][j] = Absent()
			case float64:
				rebuilt.Cells[i][j] = Number(c)
			case string:
				rebuilt.Cells[i][j] = Text(c)
			}
		}
	}

	second := ToStatementJSON(rebuilt, 3)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("serialization not idempotent:\nfirst  %#v\nsecond %#v", first, second)
	}
}

func TestDropEmpty(t *testing.T) {
	st := NewStatement([]string{"Keep", "AllNaN"}, []string{"2023", "2022", "Empty"})
	st.Cells[0][0] = Number(1)
	st.Cells[0][1] = Number(2)
	st.Cells[0][2] = Absent()
	st.Cells[1][0] = Number(math.NaN())
	st.Cells[1][1] = Absent()
	st.Cells[1][2] = Absent()

	got := DropEmpty(st)
	if !reflect.DeepEqual(got.Index, []string{"Keep"}) {
		t.Fatalf("rows: %#v", got.Index)
	}
	if !reflect.DeepEqual(got.Columns, []string{"2023", "2022"}) {
		t.Fatalf("columns: %#v", got.Columns)
	}
}

func TestFlattenInfo(t *testing.T) {
	info := NewStatement(
		[]string{"sector", "employees", "beta", "officers", "ghost"},
		[]string{"value"},
	)
	info.Cells[0][0] = Text("Industrials")
	info.Cells[1][0] = Number(52000)
	info.Cells[2][0] = Number(math.NaN())
	info.Cells[3][0] = List(Absent(), Number(3))
	info.Cells[4][0] = Absent()

	got := FlattenInfo(info)
	want := map[string]any{
		"sector":    "Industrials",
		"employees": float64(52000),
		"officers":  float64(3),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("info mismatch:\n got %#v\nwant %#v", got, want)
	}
}
