// Package imagery provides image-side support for the detection query engine:
// the image-like value referenced by query operands, and region operations
// driven by a detection collection (cropping, blurring, box annotation).
//
// All operations treat their input image as read-only and return new images.
// Detection boxes are clamped to the image bounds before any pixel work, so
// boxes produced by offset/shift transforms that partially leave the frame are
// handled without error.
package imagery
