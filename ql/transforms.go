package ql

import (
	"github.com/visionql/visionql/detections"
)

// Offset grows every bounding box symmetrically by offsetX horizontally and
// offsetY vertically: each side moves outward by half the offset. Negative
// offsets shrink the boxes.
//
// The result is a deep copy; the input collection, including masks and
// auxiliary columns, is left untouched.
func Offset(value any, offsetX, offsetY float64) (*detections.Collection, error) {
	col, ok := value.(*detections.Collection)
	if !ok {
		return nil, invalidInputType("offset_detections", value)
	}
	out := col.Copy()
	out.OffsetBoxes(-offsetX/2, -offsetY/2, offsetX/2, offsetY/2)
	return out, nil
}

// Shift translates every bounding box by (shiftX, shiftY) without changing
// its size. Same copy semantics as Offset.
func Shift(value any, shiftX, shiftY float64) (*detections.Collection, error) {
	col, ok := value.(*detections.Collection)
	if !ok {
		return nil, invalidInputType("shift_detections", value)
	}
	out := col.Copy()
	out.OffsetBoxes(shiftX, shiftY, shiftX, shiftY)
	return out, nil
}
