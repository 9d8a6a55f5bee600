// Package detections provides the data structures for object-detection results:
// single detections and ordered, columnar collections of them.
//
// A Collection holds the predictions a model produced for one image. Storage is
// columnar: each attribute (boxes, confidences, class ids, class names, auxiliary
// data) is an index-aligned slice, which makes whole-column extraction and bulk
// box arithmetic cheap. Insertion order is the model's output order and is
// preserved by every operation.
//
// # Coordinate System
//
// Bounding boxes use (XMin, YMin, XMax, YMax) in pixel coordinates with the
// origin at the top-left corner, X increasing rightward and Y increasing
// downward. XMin <= XMax and YMin <= YMax always hold for boxes stored in a
// Collection.
//
// # Ownership
//
// Collections are value-like: Select and Copy return new collections, and the
// accessor methods return fresh slices. Callers holding a reference to a
// Collection never observe mutation through operations performed on another
// reference obtained from it.
//
// # Thread Safety
//
// A Collection is safe for concurrent readers. Mutating methods (SetData,
// OffsetBoxes) require external synchronization, and are conventionally applied
// only to a fresh Copy.
package detections
