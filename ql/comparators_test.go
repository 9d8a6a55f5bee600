package ql

import (
	"errors"
	"testing"
)

func TestCompare_NumericFamily(t *testing.T) {
	tests := []struct {
		name  string
		tag   Comparator
		left  any
		right any
		want  bool
	}{
		{"less true", NumberLess, 1.0, 2.0, true},
		{"less false", NumberLess, 2.0, 2.0, false},
		{"less or equal boundary", NumberLessOrEqual, 2.0, 2.0, true},
		{"greater true", NumberGreater, 3.0, 2.0, true},
		{"greater or equal boundary", NumberGreaterOrEqual, 2.0, 2.0, true},
		{"greater or equal false", NumberGreaterOrEqual, 1.9, 2.0, false},
		{"equals across widths", NumberEquals, 2, 2.0, true},
		{"not equals", NumberNotEquals, 2.0, 3.0, true},
		{"int left float right", NumberGreater, 5, 4.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compare(tt.tag, tt.left, tt.right, "test")
			if err != nil {
				t.Fatalf("compare failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("compare(%q, %v, %v): got %v, want %v", tt.tag, tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestCompare_NumericRejectsNonNumbers(t *testing.T) {
	_, err := compare(NumberGreaterOrEqual, "not a number", 2.0, "test")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var invalid *InvalidInputTypeError
	if !errors.As(err, &invalid) {
		t.Errorf("error chain missing InvalidInputTypeError: %v", err)
	}
}

func TestCompare_In(t *testing.T) {
	tests := []struct {
		name  string
		left  any
		right any
		want  bool
	}{
		{"string in slice", "person", []string{"person", "car"}, true},
		{"string not in slice", "dog", []string{"person", "car"}, false},
		{"string in any slice", "person", []any{"person", "car"}, true},
		{"string in set", "person", map[string]struct{}{"person": {}}, true},
		{"string not in set", "dog", map[string]struct{}{"person": {}}, false},
		{"number in slice across widths", 3, []float64{1, 2, 3}, true},
		{"empty sequence", "person", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compare(In, tt.left, tt.right, "test")
			if err != nil {
				t.Fatalf("compare failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("in(%v, %v): got %v, want %v", tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestCompare_In_RejectsNonCollection(t *testing.T) {
	if _, err := compare(In, "person", 42, "test"); err == nil {
		t.Error("expected error for scalar right side, got nil")
	}
}

func TestCompare_ValueEquality(t *testing.T) {
	tests := []struct {
		name  string
		tag   Comparator
		left  any
		right any
		want  bool
	}{
		{"equal strings", Equals, "person", "person", true},
		{"different strings", Equals, "person", "car", false},
		{"equal slices by value", Equals, []string{"a", "b"}, []string{"a", "b"}, true},
		{"equal maps by value", Equals, map[string]int{"a": 1}, map[string]int{"a": 1}, true},
		{"numbers across widths", Equals, 2, 2.0, true},
		{"not equals strings", NotEquals, "person", "car", true},
		{"number vs string", Equals, 1, "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compare(tt.tag, tt.left, tt.right, "test")
			if err != nil {
				t.Fatalf("compare failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("compare(%q, %v, %v): got %v, want %v", tt.tag, tt.left, tt.right, got, tt.want)
			}
		})
	}
}

func TestCompare_UnknownTag(t *testing.T) {
	_, err := compare(Comparator("(Number) ~="), 1.0, 2.0, "test")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error chain missing EvaluationError: %v", err)
	}
}
