package finance

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind discriminates the shapes a provider cell can take.
type ValueKind int

const (
	// KindAbsent marks a missing value (null, NaN marker, empty cell).
	KindAbsent ValueKind = iota
	// KindNumber is a numeric scalar. It may still be NaN or infinite; the
	// sanitizer is responsible for filtering those out.
	KindNumber
	// KindText is an opaque non-numeric value kept as its string form.
	KindText
	// KindList is a nested container of values (providers occasionally return
	// arrays where a scalar is expected).
	KindList
)

// Value is a tagged variant for a single statement cell:
// Absent | Number(float64) | Text(string) | List([]Value).
type Value struct {
	kind ValueKind
	num  float64
	text string
	list []Value
}

// Absent returns the explicit missing-value marker.
func Absent() Value { return Value{kind: KindAbsent} }

// Number wraps a numeric scalar.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text wraps an opaque value by its string form.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// List wraps a container of values.
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// Float returns the raw numeric payload. Only meaningful for KindNumber.
func (v Value) Float() float64 { return v.num }

// Str returns the textual payload. Only meaningful for KindText.
// (Deliberately not named String to avoid a misleading fmt.Stringer.)
func (v Value) Str() string { return v.text }

// Items returns the nested values. Only meaningful for KindList.
func (v Value) Items() []Value { return v.list }

// isNA reports whether the value counts as missing before numeric conversion:
// the absent marker itself, or a NaN number.
func (v Value) isNA() bool {
	return v.kind == KindAbsent || (v.kind == KindNumber && math.IsNaN(v.num))
}

// CleanScalar converts an arbitrary cell value into a finite float64.
// Containers are flattened and the first non-missing entry is converted.
// Text is parsed as a number when possible. NaN, infinities and anything
// unparseable come back as absent (ok == false). It never panics; every
// conversion failure is simply "no value".
func CleanScalar(v Value) (float64, bool) {
	if v.kind == KindList {
		first, ok := firstPresent(v.list)
		if !ok {
			return 0, false
		}
		v = first
	}

	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0, false
		}
		return v.num, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IsValidNumber reports whether CleanScalar would produce a value.
func IsValidNumber(v Value) bool {
	_, ok := CleanScalar(v)
	return ok
}

// firstPresent walks a (possibly nested) list and returns the first entry
// that is not missing.
func firstPresent(vs []Value) (Value, bool) {
	for _, v := range vs {
		if v.kind == KindList {
			if inner, ok := firstPresent(v.list); ok {
				return inner, true
			}
			continue
		}
		if !v.isNA() {
			return v, true
		}
	}
	return Value{}, false
}

// cleanFloat is CleanScalar for a raw float: nil unless finite.
func cleanFloat(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	out := f
	return &out
}
