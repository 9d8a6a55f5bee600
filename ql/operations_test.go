package ql

import (
	"errors"
	"math"
	"testing"

	"github.com/visionql/visionql/detections"
)

// testImage satisfies the Image surface without touching pixel data.
type testImage struct {
	w, h int
}

func (i testImage) Width() int  { return i.w }
func (i testImage) Height() int { return i.h }

func makeEngineCollection(t *testing.T) *detections.Collection {
	t.Helper()
	col, err := detections.New(
		[]detections.Box{
			{XMin: 0, YMin: 0, XMax: 100, YMax: 40},
			{XMin: 0, YMin: 0, XMax: 10, YMax: 5},
		},
		[]float64{0.9, 0.4},
		[]int{0, 2},
		[]string{"person", "car"},
	)
	if err != nil {
		t.Fatalf("building collection failed: %v", err)
	}
	return col
}

func TestExtractDetectionsProperty(t *testing.T) {
	col := makeEngineCollection(t)

	tests := []struct {
		property string
		want     []any
	}{
		{"confidence", []any{0.9, 0.4}},
		{"class_name", []any{"person", "car"}},
		{"class_id", []any{0, 2}},
		{"x_min", []any{0.0, 0.0}},
		{"x_max", []any{100.0, 10.0}},
		{"y_min", []any{0.0, 0.0}},
		{"y_max", []any{40.0, 5.0}},
		{"size", []any{4000.0, 50.0}},
	}

	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			got, err := ExtractDetectionsProperty(col, tt.property, "test")
			if err != nil {
				t.Fatalf("extraction failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("length: got %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("element %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractDetectionsProperty_RejectsNonCollection(t *testing.T) {
	for _, value := range []any{42, "detections", nil, []float64{1, 2}} {
		_, err := ExtractDetectionsProperty(value, "confidence", "test")
		if err == nil {
			t.Errorf("value %v: expected error, got nil", value)
			continue
		}
		var invalid *InvalidInputTypeError
		if !errors.As(err, &invalid) {
			t.Errorf("value %v: error chain missing InvalidInputTypeError: %v", value, err)
		}
	}
}

func TestExtractDetectionsProperty_UnknownProperty(t *testing.T) {
	col := makeEngineCollection(t)
	if _, err := ExtractDetectionsProperty(col, "velocity", "test"); err == nil {
		t.Error("expected error for unknown property, got nil")
	}
}

func TestRegisterProperty(t *testing.T) {
	RegisterProperty("width", func(d detections.Detection) (any, error) {
		return d.Box.Width(), nil
	})

	col := makeEngineCollection(t)
	got, err := ExtractDetectionsProperty(col, "width", "test")
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if got[0] != 100.0 || got[1] != 10.0 {
		t.Errorf("widths: got %v, want [100 10]", got)
	}
}

func TestDataProperty(t *testing.T) {
	col := makeEngineCollection(t)
	if err := col.SetData("tracker_id", []any{7, 8}); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}

	extract := DataProperty("tracker_id")
	got, err := extract(col.At(1))
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if got != 8 {
		t.Errorf("tracker_id: got %v, want 8", got)
	}

	// Missing field is a data-integrity failure, never a nil value.
	if _, err := DataProperty("velocity")(col.At(0)); err == nil {
		t.Error("expected error for missing field, got nil")
	}
}

func TestOperationPipeline_Chaining(t *testing.T) {
	img := testImage{w: 500, h: 200}
	ops := []Operation{
		ExtractImageProperty{Property: "size"},
		Multiply{Factor: 0.02},
		Add{Value: 10},
		Subtract{Value: 5},
	}

	got, err := applyOperations(ops, img, "test")
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	// 100000 * 0.02 + 10 - 5
	if math.Abs(got.(float64)-2005) > 1e-9 {
		t.Errorf("result: got %v, want 2005", got)
	}
}

func TestExtractDetectionProperty_SingleDetectionYieldsScalar(t *testing.T) {
	col := makeEngineCollection(t)
	op := ExtractDetectionProperty{Property: "size"}

	got, err := op.apply(col.At(0), "test")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got != 4000.0 {
		t.Errorf("size: got %v, want 4000", got)
	}
}

func TestExtractDetectionProperty_CollectionYieldsSequence(t *testing.T) {
	col := makeEngineCollection(t)
	op := ExtractDetectionProperty{Property: "class_name"}

	got, err := op.apply(col, "test")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	seq, ok := got.([]any)
	if !ok || len(seq) != 2 {
		t.Fatalf("expected 2-element sequence, got %T %v", got, got)
	}
	if seq[0] != "person" || seq[1] != "car" {
		t.Errorf("sequence: got %v, want [person car]", seq)
	}
}

func TestArithmetic_ElementWise(t *testing.T) {
	got, err := Multiply{Factor: 2}.apply([]float64{1, 2, 3}, "test")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	want := []float64{2, 4, 6}
	for i, x := range got.([]float64) {
		if x != want[i] {
			t.Errorf("element %d: got %v, want %v", i, x, want[i])
		}
	}

	got, err = Add{Value: 1}.apply([]any{1, 2.5}, "test")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	seq := got.([]any)
	if seq[0] != 2.0 || seq[1] != 3.5 {
		t.Errorf("sequence: got %v, want [2 3.5]", seq)
	}
}

func TestOperations_TypedStageErrors(t *testing.T) {
	tests := []struct {
		name  string
		op    Operation
		value any
	}{
		{"multiply on string", Multiply{Factor: 2}, "not a number"},
		{"multiply on mixed sequence", Multiply{Factor: 2}, []any{1, "two"}},
		{"image property on number", ExtractImageProperty{Property: "size"}, 42},
		{"detection property on string", ExtractDetectionProperty{Property: "size"}, "detections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.op.apply(tt.value, "test")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var invalid *InvalidInputTypeError
			if !errors.As(err, &invalid) {
				t.Errorf("error chain missing InvalidInputTypeError: %v", err)
			}
		})
	}
}

func TestOperations_Validate(t *testing.T) {
	if err := (ExtractDetectionProperty{Property: "velocity"}).validate(); err == nil {
		t.Error("expected error for unknown detection property, got nil")
	}
	if err := (ExtractImageProperty{Property: "brightness"}).validate(); err == nil {
		t.Error("expected error for unknown image property, got nil")
	}
	if err := (ExtractImageProperty{Property: "size"}).validate(); err != nil {
		t.Errorf("size should validate: %v", err)
	}
}

func TestSafeString_NeverPanics(t *testing.T) {
	// fmt renders a Stringer panic as a diagnostic; either way the caller
	// must get a usable non-empty string back.
	got := SafeString(panickyStringer{})
	if got == "" {
		t.Error("got empty string for panicking Stringer")
	}
}

type panickyStringer struct{}

func (panickyStringer) String() string { panic("unprintable") }
