package finance

import (
	"reflect"
	"sort"
	"testing"
)

func rowStatement(labels ...string) *Statement {
	st := NewStatement(labels, []string{"2023"})
	for i := range labels {
		st.Cells[i][0] = Number(float64(i))
	}
	return st
}

func TestReorderPriorityFirst(t *testing.T) {
	st := rowStatement("Z", "Total Revenue", "A")
	got := Reorder(st, []string{"Total Revenue", "Z"})

	if !reflect.DeepEqual(got.Index, []string{"Total Revenue", "Z", "A"}) {
		t.Fatalf("order mismatch: %#v", got.Index)
	}
	// Cells must travel with their labels.
	if v, _ := CleanScalar(got.Cells[0][0]); v != 1 {
		t.Fatalf("row data did not follow its label, got %v", v)
	}
}

func TestReorderExactBeforeContains(t *testing.T) {
	st := rowStatement("Net Income Continuous Operations", "Net Income")
	got := Reorder(st, []string{"Net Income"})

	if got.Index[0] != "Net Income" {
		t.Fatalf("exact-CI match must be consumed first: %#v", got.Index)
	}
}

func TestReorderConsumesRowOnce(t *testing.T) {
	st := rowStatement("Total Revenue")
	got := Reorder(st, []string{"Total Revenue", "Revenue", "Total"})

	if len(got.Index) != 1 {
		t.Fatalf("row duplicated: %#v", got.Index)
	}
}

func TestReorderPreservesMultiset(t *testing.T) {
	labels := []string{"C", "A", "B", "A", "D"}
	st := rowStatement(labels...)
	got := Reorder(st, []string{"A", "Nonexistent", "D"})

	if !reflect.DeepEqual(got.Index, []string{"A", "D", "C", "B", "A"}) {
		t.Fatalf("order mismatch: %#v", got.Index)
	}

	in := append([]string(nil), labels...)
	out := append([]string(nil), got.Index...)
	sort.Strings(in)
	sort.Strings(out)
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("row multiset changed: in=%v out=%v", in, out)
	}
}

func TestReorderEmptyAndNoPriorities(t *testing.T) {
	empty := &Statement{}
	if got := Reorder(empty, []string{"X"}); !got.Empty() {
		t.Fatal("empty in, empty out")
	}

	st := rowStatement("B", "A")
	got := Reorder(st, nil)
	if !reflect.DeepEqual(got.Index, []string{"B", "A"}) {
		t.Fatalf("no priorities must keep original order: %#v", got.Index)
	}
}
