package imagery

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/visionql/visionql/detections"
)

// ClassColor returns a deterministic, visually distinct color for a class id.
// The hue walks the color wheel in large steps so neighboring ids do not
// blend together.
func ClassColor(classID int) color.RGBA {
	hue := ((classID*47)%360 + 360) % 360
	c := colorful.Hsv(float64(hue), 0.85, 0.95)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// AnnotateDetections draws each detection's bounding box onto a copy of the
// source image, colored by class id. thickness is the outline width in
// pixels; values below 1 are treated as 1.
func AnnotateDetections(src image.Image, col *detections.Collection, thickness int) *image.RGBA {
	if thickness < 1 {
		thickness = 1
	}
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, src, bounds.Min, draw.Src)

	for i := 0; i < col.Len(); i++ {
		d := col.At(i)
		rect, ok := clampToBounds(d.Box, bounds)
		if !ok {
			continue
		}
		drawRectOutline(out, rect, ClassColor(d.ClassID), thickness)
	}
	return out
}

// BlurDetections box-blurs the region of every detection on a copy of the
// source image, leaving the rest of the frame untouched.
func BlurDetections(src image.Image, col *detections.Collection, radius float64) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, src, bounds.Min, draw.Src)

	for i := 0; i < col.Len(); i++ {
		d := col.At(i)
		rect, ok := clampToBounds(d.Box, bounds)
		if !ok {
			continue
		}
		region := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		draw.Draw(region, region.Bounds(), src, rect.Min, draw.Src)
		blurred := blur.Box(region, radius)
		draw.Draw(out, rect, blurred, image.Point{}, draw.Src)
	}
	return out
}

func drawRectOutline(img *image.RGBA, rect image.Rectangle, c color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		r := rect.Inset(t)
		if r.Empty() {
			return
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, r.Min.Y, c)
			img.SetRGBA(x, r.Max.Y-1, c)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.SetRGBA(r.Min.X, y, c)
			img.SetRGBA(r.Max.X-1, y, c)
		}
	}
}
