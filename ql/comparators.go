package ql

import (
	"fmt"
	"reflect"
)

// Comparator tags name the binary predicate of a comparison. The tag strings
// follow the declarative workflow definitions, so a parsed definition maps
// onto these constants directly.
type Comparator string

const (
	NumberLess           Comparator = "(Number) <"
	NumberLessOrEqual    Comparator = "(Number) <="
	NumberGreater        Comparator = "(Number) >"
	NumberGreaterOrEqual Comparator = "(Number) >="
	NumberEquals         Comparator = "(Number) =="
	NumberNotEquals      Comparator = "(Number) !="
	// In tests membership of the left value in the sequence or set denoted
	// by the right value.
	In Comparator = "in (Sequence)"
	// Equals and NotEquals use value equality, covering strings, sets and
	// other composites; numbers compare numerically across widths.
	Equals    Comparator = "=="
	NotEquals Comparator = "!="
)

type comparatorFunc func(left, right any) (bool, error)

var comparators = map[Comparator]comparatorFunc{
	NumberLess:           numberComparator(func(l, r float64) bool { return l < r }),
	NumberLessOrEqual:    numberComparator(func(l, r float64) bool { return l <= r }),
	NumberGreater:        numberComparator(func(l, r float64) bool { return l > r }),
	NumberGreaterOrEqual: numberComparator(func(l, r float64) bool { return l >= r }),
	NumberEquals:         numberComparator(func(l, r float64) bool { return l == r }),
	NumberNotEquals:      numberComparator(func(l, r float64) bool { return l != r }),
	In:                   compareIn,
	Equals: func(left, right any) (bool, error) {
		return valueEquals(left, right), nil
	},
	NotEquals: func(left, right any) (bool, error) {
		return !valueEquals(left, right), nil
	},
}

func knownComparator(tag Comparator) bool {
	_, ok := comparators[tag]
	return ok
}

// compare applies the comparator named by tag to two resolved values.
func compare(tag Comparator, left, right any, execContext string) (bool, error) {
	fn, ok := comparators[tag]
	if !ok {
		// Compile catches unknown tags; reaching this means the statement
		// tree bypassed compilation.
		return false, evalError(execContext, "unknown comparator tag %q", tag)
	}
	result, err := fn(left, right)
	if err != nil {
		return false, &EvaluationError{
			Context: execContext,
			Message: fmt.Sprintf("comparator %q", tag),
			Err:     err,
		}
	}
	return result, nil
}

func numberComparator(cmp func(l, r float64) bool) comparatorFunc {
	return func(left, right any) (bool, error) {
		l, ok := toFloat(left)
		if !ok {
			return false, invalidInputType("numeric comparator, left side", left)
		}
		r, ok := toFloat(right)
		if !ok {
			return false, invalidInputType("numeric comparator, right side", right)
		}
		return cmp(l, r), nil
	}
}

// compareIn checks unordered containment of left in right. Right may be a
// slice, an array, or a set-like map keyed by the member values.
func compareIn(left, right any) (bool, error) {
	rv := reflect.ValueOf(right)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if valueEquals(left, rv.Index(i).Interface()) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			if valueEquals(left, key.Interface()) {
				return true, nil
			}
		}
		return false, nil
	}
	return false, invalidInputType("membership comparator, right side", right)
}

// valueEquals compares by value: numerically when both sides are numbers,
// structurally otherwise. Identity is never used.
func valueEquals(left, right any) bool {
	if l, ok := toFloat(left); ok {
		if r, ok := toFloat(right); ok {
			return l == r
		}
		return false
	}
	return reflect.DeepEqual(left, right)
}
