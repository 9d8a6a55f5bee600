package imagery

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/visionql/visionql/detections"
)

// Crop is the image region cut out for one detection.
type Crop struct {
	DetectionID string
	ClassName   string
	Image       *image.NRGBA
}

// CropDetections cuts each detection's bounding box out of the source image.
// Boxes are clamped to the image bounds; a box entirely outside the image is
// an error. scale != 1.0 resizes each crop after cutting.
func CropDetections(src image.Image, col *detections.Collection, scale float64) ([]Crop, error) {
	crops := make([]Crop, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		d := col.At(i)
		rect, ok := clampToBounds(d.Box, src.Bounds())
		if !ok {
			return nil, fmt.Errorf("detection %d (%s): box (%g,%g,%g,%g) outside image bounds %v",
				i, d.DetectionID, d.Box.XMin, d.Box.YMin, d.Box.XMax, d.Box.YMax, src.Bounds())
		}
		cropped := imaging.Crop(src, rect)
		if scale != 1.0 && scale > 0 {
			w := int(float64(cropped.Bounds().Dx()) * scale)
			h := int(float64(cropped.Bounds().Dy()) * scale)
			cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
		}
		crops = append(crops, Crop{
			DetectionID: d.DetectionID,
			ClassName:   d.ClassName,
			Image:       cropped,
		})
	}
	return crops, nil
}

// clampToBounds converts a detection box to an image rectangle clipped to
// bounds. ok is false when the clipped rectangle is empty.
func clampToBounds(b detections.Box, bounds image.Rectangle) (image.Rectangle, bool) {
	rect := image.Rect(int(b.XMin), int(b.YMin), int(b.XMax), int(b.YMax)).Intersect(bounds)
	if rect.Empty() {
		return image.Rectangle{}, false
	}
	return rect, true
}
