package detections

import (
	"fmt"

	"github.com/google/uuid"
)

// Point is a 2D coordinate in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is an ordered sequence of points describing one closed contour of a
// segmentation mask.
type Polygon []Point

// Box is an axis-aligned bounding box.
//
// (XMin, YMin) is the top-left corner, (XMax, YMax) the bottom-right one.
type Box struct {
	XMin float64 `json:"x_min"`
	YMin float64 `json:"y_min"`
	XMax float64 `json:"x_max"`
	YMax float64 `json:"y_max"`
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.XMax - b.XMin }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.YMax - b.YMin }

// Area returns the box area in square pixels.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// Detection is one detected object instance: a row view over a Collection.
//
// The scalar fields are copies; Mask and Data reference the collection's
// storage and must be treated as read-only.
type Detection struct {
	Box         Box
	Confidence  float64
	ClassID     int
	ClassName   string
	DetectionID string
	Mask        []Polygon
	Data        map[string]any
}

// Collection is an ordered batch of detections for one image.
//
// All columns are index-aligned: element i of every column describes the same
// detection. Construct with New, then attach optional columns with SetMask and
// SetData.
type Collection struct {
	boxes       []Box
	confidence  []float64
	classID     []int
	className   []string
	detectionID []string
	masks       [][]Polygon      // nil when no masks are attached
	data        map[string][]any // auxiliary named columns
}

// New builds a Collection from index-aligned columns, assigning a fresh
// detection ID to every element.
//
// All slices must have the same length and every box must satisfy
// XMin <= XMax and YMin <= YMax.
func New(boxes []Box, confidence []float64, classID []int, className []string) (*Collection, error) {
	n := len(boxes)
	if len(confidence) != n || len(classID) != n || len(className) != n {
		return nil, fmt.Errorf("column length mismatch: boxes=%d confidence=%d class_id=%d class_name=%d",
			n, len(confidence), len(classID), len(className))
	}
	for i, b := range boxes {
		if b.XMin > b.XMax || b.YMin > b.YMax {
			return nil, fmt.Errorf("detection %d: malformed box (%g,%g,%g,%g)", i, b.XMin, b.YMin, b.XMax, b.YMax)
		}
	}
	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	c := &Collection{
		boxes:       append([]Box(nil), boxes...),
		confidence:  append([]float64(nil), confidence...),
		classID:     append([]int(nil), classID...),
		className:   append([]string(nil), className...),
		detectionID: ids,
		data:        map[string][]any{},
	}
	return c, nil
}

// Len returns the number of detections in the collection.
func (c *Collection) Len() int { return len(c.boxes) }

// At returns the detection at index i as a row view.
func (c *Collection) At(i int) Detection {
	d := Detection{
		Box:         c.boxes[i],
		Confidence:  c.confidence[i],
		ClassID:     c.classID[i],
		ClassName:   c.className[i],
		DetectionID: c.detectionID[i],
	}
	if c.masks != nil {
		d.Mask = c.masks[i]
	}
	if len(c.data) > 0 {
		d.Data = make(map[string]any, len(c.data))
		for key, col := range c.data {
			d.Data[key] = col[i]
		}
	}
	return d
}

// SetMask attaches one mask (zero or more polygons) per detection.
func (c *Collection) SetMask(masks [][]Polygon) error {
	if len(masks) != c.Len() {
		return fmt.Errorf("mask column length %d does not match collection length %d", len(masks), c.Len())
	}
	c.masks = masks
	return nil
}

// SetData attaches an auxiliary named column, one value per detection.
//
// Every detection gets a value: schema columns are present for all elements or
// for none.
func (c *Collection) SetData(key string, values []any) error {
	if len(values) != c.Len() {
		return fmt.Errorf("data column %q length %d does not match collection length %d", key, len(values), c.Len())
	}
	c.data[key] = values
	return nil
}

// DataColumn returns the auxiliary column for key, if present.
func (c *Collection) DataColumn(key string) ([]any, bool) {
	col, ok := c.data[key]
	if !ok {
		return nil, false
	}
	return append([]any(nil), col...), true
}

// DataKeys returns the names of the attached auxiliary columns.
func (c *Collection) DataKeys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

// Boxes returns a copy of the bounding-box column.
func (c *Collection) Boxes() []Box { return append([]Box(nil), c.boxes...) }

// Confidences returns a copy of the confidence column.
func (c *Collection) Confidences() []float64 { return append([]float64(nil), c.confidence...) }

// ClassIDs returns a copy of the class-id column.
func (c *Collection) ClassIDs() []int { return append([]int(nil), c.classID...) }

// ClassNames returns a copy of the class-name column.
func (c *Collection) ClassNames() []string { return append([]string(nil), c.className...) }

// DetectionIDs returns a copy of the detection-id column.
func (c *Collection) DetectionIDs() []string { return append([]string(nil), c.detectionID...) }

// Select returns a new collection containing, in original order, the
// detections whose mask entry is true. All columns, including masks and
// auxiliary data, are carried over for the kept elements.
func (c *Collection) Select(keep []bool) (*Collection, error) {
	if len(keep) != c.Len() {
		return nil, fmt.Errorf("selection mask length %d does not match collection length %d", len(keep), c.Len())
	}
	out := &Collection{data: map[string][]any{}}
	for i, k := range keep {
		if !k {
			continue
		}
		out.boxes = append(out.boxes, c.boxes[i])
		out.confidence = append(out.confidence, c.confidence[i])
		out.classID = append(out.classID, c.classID[i])
		out.className = append(out.className, c.className[i])
		out.detectionID = append(out.detectionID, c.detectionID[i])
	}
	if c.masks != nil {
		out.masks = make([][]Polygon, 0, out.Len())
		for i, k := range keep {
			if k {
				out.masks = append(out.masks, deepCopyMask(c.masks[i]))
			}
		}
	}
	for key, col := range c.data {
		kept := make([]any, 0, out.Len())
		for i, k := range keep {
			if k {
				kept = append(kept, col[i])
			}
		}
		out.data[key] = kept
	}
	return out, nil
}

// Copy returns a deep copy of the collection. Mutating the copy, including
// its masks and auxiliary columns, never affects the original.
func (c *Collection) Copy() *Collection {
	out := &Collection{
		boxes:       append([]Box(nil), c.boxes...),
		confidence:  append([]float64(nil), c.confidence...),
		classID:     append([]int(nil), c.classID...),
		className:   append([]string(nil), c.className...),
		detectionID: append([]string(nil), c.detectionID...),
		data:        make(map[string][]any, len(c.data)),
	}
	if c.masks != nil {
		out.masks = make([][]Polygon, len(c.masks))
		for i, m := range c.masks {
			out.masks[i] = deepCopyMask(m)
		}
	}
	for key, col := range c.data {
		out.data[key] = append([]any(nil), col...)
	}
	return out
}

// OffsetBoxes adds the given deltas to every box in place: dxMin and dyMin to
// the top-left corner, dxMax and dyMax to the bottom-right one.
//
// Bulk box arithmetic is intended for collections obtained via Copy.
func (c *Collection) OffsetBoxes(dxMin, dyMin, dxMax, dyMax float64) {
	for i := range c.boxes {
		c.boxes[i].XMin += dxMin
		c.boxes[i].YMin += dyMin
		c.boxes[i].XMax += dxMax
		c.boxes[i].YMax += dyMax
	}
}

// MaskBounds returns the bounding box of the mask polygons of detection i.
//
// A detection without a mask, a mask without polygons, or a polygon without
// points is a data-integrity failure, not a zero box.
func (c *Collection) MaskBounds(i int) (Box, error) {
	if c.masks == nil {
		return Box{}, fmt.Errorf("detection %d: collection carries no masks", i)
	}
	mask := c.masks[i]
	if len(mask) == 0 {
		return Box{}, fmt.Errorf("detection %d: empty mask", i)
	}
	first := true
	var b Box
	for pi, poly := range mask {
		// Upstream models occasionally emit polygons with no points; refuse
		// to compute bounds over an empty sequence.
		if len(poly) == 0 {
			return Box{}, fmt.Errorf("detection %d: mask polygon %d has no points", i, pi)
		}
		for _, p := range poly {
			if first {
				b = Box{XMin: p.X, YMin: p.Y, XMax: p.X, YMax: p.Y}
				first = false
				continue
			}
			if p.X < b.XMin {
				b.XMin = p.X
			}
			if p.X > b.XMax {
				b.XMax = p.X
			}
			if p.Y < b.YMin {
				b.YMin = p.Y
			}
			if p.Y > b.YMax {
				b.YMax = p.Y
			}
		}
	}
	return b, nil
}

func deepCopyMask(mask []Polygon) []Polygon {
	if mask == nil {
		return nil
	}
	out := make([]Polygon, len(mask))
	for i, poly := range mask {
		out[i] = append(Polygon(nil), poly...)
	}
	return out
}
