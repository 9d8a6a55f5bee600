package ql

import (
	"fmt"
	"sync"

	"github.com/visionql/visionql/detections"
)

// DetectionExtractor derives one value from a single detection.
type DetectionExtractor func(detections.Detection) (any, error)

// propertyExtractors maps a property name to its per-detection extractor.
// Whole-collection extraction reuses the same function per element, keeping
// both forms index-aligned by construction.
var propertyExtractors = map[string]DetectionExtractor{
	"confidence": func(d detections.Detection) (any, error) { return d.Confidence, nil },
	"class_name": func(d detections.Detection) (any, error) { return d.ClassName, nil },
	"class_id":   func(d detections.Detection) (any, error) { return d.ClassID, nil },
	"x_min":      func(d detections.Detection) (any, error) { return d.Box.XMin, nil },
	"y_min":      func(d detections.Detection) (any, error) { return d.Box.YMin, nil },
	"x_max":      func(d detections.Detection) (any, error) { return d.Box.XMax, nil },
	"y_max":      func(d detections.Detection) (any, error) { return d.Box.YMax, nil },
	"size":       func(d detections.Detection) (any, error) { return d.Box.Area(), nil },
	"detection_id": func(d detections.Detection) (any, error) {
		return d.DetectionID, nil
	},
}

var propertyMu sync.RWMutex

// RegisterProperty adds (or replaces) a named detection property. Existing
// call sites pick it up without modification.
func RegisterProperty(name string, extractor DetectionExtractor) {
	propertyMu.Lock()
	defer propertyMu.Unlock()
	propertyExtractors[name] = extractor
}

func lookupProperty(name string) (DetectionExtractor, bool) {
	propertyMu.RLock()
	defer propertyMu.RUnlock()
	fn, ok := propertyExtractors[name]
	return fn, ok
}

// DataProperty returns an extractor reading the named auxiliary field of a
// detection. A detection missing the field is a data-integrity failure.
func DataProperty(key string) DetectionExtractor {
	return func(d detections.Detection) (any, error) {
		v, ok := d.Data[key]
		if !ok {
			return nil, fmt.Errorf("detection %s has no data field %q", d.DetectionID, key)
		}
		return v, nil
	}
}

// ExtractDetectionsProperty extracts the named property from every detection
// in a collection, one value per element, index-aligned with the input order.
//
// Returns *InvalidInputTypeError when value is not a detection collection and
// an *EvaluationError when the property name is unknown.
func ExtractDetectionsProperty(value any, property string, execContext string) ([]any, error) {
	col, ok := value.(*detections.Collection)
	if !ok {
		return nil, invalidInputType("extract_detections_property in context "+execContext, value)
	}
	extract, ok := lookupProperty(property)
	if !ok {
		return nil, evalError(execContext, "unknown detections property %q", property)
	}
	out := make([]any, col.Len())
	for i := 0; i < col.Len(); i++ {
		v, err := extract(col.At(i))
		if err != nil {
			return nil, &EvaluationError{
				Context: execContext,
				Message: fmt.Sprintf("extracting property %q from detection %d", property, i),
				Err:     err,
			}
		}
		out[i] = v
	}
	return out, nil
}
