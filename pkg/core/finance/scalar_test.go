package finance

import (
	"math"
	"testing"
)

func TestCleanScalarFiniteNumbers(t *testing.T) {
	cases := []struct {
		in   Value
		want float64
	}{
		{Number(0), 0},
		{Number(-12.5), -12.5},
		{Number(1e12), 1e12},
		{Text("42"), 42},
		{Text("  3.14 "), 3.14},
	}
	for _, tc := range cases {
		got, ok := CleanScalar(tc.in)
		if !ok {
			t.Errorf("CleanScalar(%v): expected value, got absent", tc.in)
			continue
		}
		if got != tc.want {
			t.Errorf("CleanScalar(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCleanScalarRejectsNonFinite(t *testing.T) {
	bad := []Value{
		Absent(),
		Number(math.NaN()),
		Number(math.Inf(1)),
		Number(math.Inf(-1)),
		Text("not a number"),
		Text(""),
		Text("NaN"),
		Text("Inf"),
		List(),
		List(Absent(), Number(math.NaN())),
	}
	for _, v := range bad {
		if got, ok := CleanScalar(v); ok {
			t.Errorf("CleanScalar(%v) = %v, expected absent", v, got)
		}
	}
}

func TestCleanScalarFlattensContainers(t *testing.T) {
	v := List(Absent(), Number(math.NaN()), Number(7.5), Number(99))
	got, ok := CleanScalar(v)
	if !ok || got != 7.5 {
		t.Fatalf("expected 7.5 from first non-missing element, got %v ok=%v", got, ok)
	}

	// Nested containers flatten too.
	nested := List(List(Absent()), List(Number(3)))
	got, ok = CleanScalar(nested)
	if !ok || got != 3 {
		t.Fatalf("expected 3 from nested list, got %v ok=%v", got, ok)
	}
}

func TestIsValidNumber(t *testing.T) {
	if !IsValidNumber(Number(1)) {
		t.Error("Number(1) should be valid")
	}
	if IsValidNumber(Number(math.NaN())) {
		t.Error("NaN should not be valid")
	}
	if IsValidNumber(Absent()) {
		t.Error("Absent should not be valid")
	}
}
