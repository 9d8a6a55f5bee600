package ql

import (
	"fmt"

	"github.com/visionql/visionql/detections"
)

// Image is the minimal surface the engine needs from an image-like value:
// pixel dimensions, so image properties such as size can be derived.
type Image interface {
	Width() int
	Height() int
}

// Operation is one pure transform stage in an operand's pipeline. Each stage
// declares the input type it accepts; feeding it anything else is an
// *InvalidInputTypeError, never a silent coercion.
type Operation interface {
	// apply transforms the current value. execContext names the surrounding
	// evaluation site for error messages.
	apply(value any, execContext string) (any, error)
	// validate checks the operation's static configuration at compile time.
	validate() error
}

// ExtractDetectionProperty reads a named property from the current value:
// a scalar when the value is a single detection, an index-aligned sequence
// when it is a whole collection.
type ExtractDetectionProperty struct {
	Property string
}

func (op ExtractDetectionProperty) validate() error {
	if _, ok := lookupProperty(op.Property); !ok {
		return compileError("ExtractDetectionProperty", "unknown detections property %q", op.Property)
	}
	return nil
}

func (op ExtractDetectionProperty) apply(value any, execContext string) (any, error) {
	switch v := value.(type) {
	case detections.Detection:
		extract, ok := lookupProperty(op.Property)
		if !ok {
			return nil, evalError(execContext, "unknown detections property %q", op.Property)
		}
		out, err := extract(v)
		if err != nil {
			return nil, &EvaluationError{
				Context: execContext,
				Message: fmt.Sprintf("extracting property %q", op.Property),
				Err:     err,
			}
		}
		return out, nil
	case *detections.Collection:
		return ExtractDetectionsProperty(v, op.Property, execContext)
	default:
		return nil, invalidInputType("ExtractDetectionProperty in context "+execContext, value)
	}
}

// ExtractImageProperty reads a named property from an image-like value.
// Supported properties: "size" (pixel area), "width", "height".
type ExtractImageProperty struct {
	Property string
}

func (op ExtractImageProperty) validate() error {
	switch op.Property {
	case "size", "width", "height":
		return nil
	}
	return compileError("ExtractImageProperty", "unknown image property %q", op.Property)
}

func (op ExtractImageProperty) apply(value any, execContext string) (any, error) {
	img, ok := value.(Image)
	if !ok {
		return nil, invalidInputType("ExtractImageProperty in context "+execContext, value)
	}
	switch op.Property {
	case "size":
		return float64(img.Width() * img.Height()), nil
	case "width":
		return float64(img.Width()), nil
	case "height":
		return float64(img.Height()), nil
	default:
		return nil, evalError(execContext, "unknown image property %q", op.Property)
	}
}

// Multiply scales a numeric value, or every element of a numeric sequence,
// by a constant factor.
type Multiply struct {
	Factor float64
}

func (op Multiply) validate() error { return nil }

func (op Multiply) apply(value any, execContext string) (any, error) {
	return applyNumeric("Multiply", value, execContext, func(x float64) float64 { return x * op.Factor })
}

// Add shifts a numeric value, or every element of a numeric sequence, by a
// constant.
type Add struct {
	Value float64
}

func (op Add) validate() error { return nil }

func (op Add) apply(value any, execContext string) (any, error) {
	return applyNumeric("Add", value, execContext, func(x float64) float64 { return x + op.Value })
}

// Subtract is the symmetric counterpart of Add.
type Subtract struct {
	Value float64
}

func (op Subtract) validate() error { return nil }

func (op Subtract) apply(value any, execContext string) (any, error) {
	return applyNumeric("Subtract", value, execContext, func(x float64) float64 { return x - op.Value })
}

// applyOperations threads value through the pipeline, output of stage i
// feeding stage i+1.
func applyOperations(ops []Operation, value any, execContext string) (any, error) {
	current := value
	for i, op := range ops {
		next, err := op.apply(current, fmt.Sprintf("%s | operation %d (%T)", execContext, i, op))
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func applyNumeric(name string, value any, execContext string, fn func(float64) float64) (any, error) {
	if x, ok := toFloat(value); ok {
		return fn(x), nil
	}
	switch seq := value.(type) {
	case []float64:
		out := make([]float64, len(seq))
		for i, x := range seq {
			out[i] = fn(x)
		}
		return out, nil
	case []any:
		out := make([]any, len(seq))
		for i, v := range seq {
			x, ok := toFloat(v)
			if !ok {
				return nil, invalidInputType(fmt.Sprintf("%s in context %s (element %d)", name, execContext, i), v)
			}
			out[i] = fn(x)
		}
		return out, nil
	}
	return nil, invalidInputType(name+" in context "+execContext, value)
}

// toFloat widens any Go numeric value to float64.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}
