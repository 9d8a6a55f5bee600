package ql

import (
	"github.com/visionql/visionql/detections"
)

// Mask evaluates a compiled statement once per detection and returns the
// resulting boolean column, index-aligned with the collection.
//
// For every element the caller's context is cloned and the detection is bound
// under DetectionOperand in the clone, so no state leaks between elements or
// back to the caller. Any evaluation failure aborts the whole call; a partial
// mask is never returned.
func Mask(value any, statement *CompiledStatement, global Context) ([]bool, error) {
	col, ok := value.(*detections.Collection)
	if !ok {
		return nil, invalidInputType("filter_detections", value)
	}
	if statement == nil {
		return nil, compileError("filter_detections", "statement is nil")
	}
	mask := make([]bool, col.Len())
	for i := 0; i < col.Len(); i++ {
		local := global.Clone()
		local[DetectionOperand] = col.At(i)
		keep, err := statement.Eval(local)
		if err != nil {
			return nil, err
		}
		mask[i] = keep
	}
	return mask, nil
}

// Filter returns a new collection containing, in original order, the
// detections for which the compiled statement evaluates true. The input
// collection is not modified.
func Filter(value any, statement *CompiledStatement, global Context) (*detections.Collection, error) {
	mask, err := Mask(value, statement, global)
	if err != nil {
		return nil, err
	}
	return value.(*detections.Collection).Select(mask)
}
