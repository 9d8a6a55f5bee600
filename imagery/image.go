package imagery

import "image"

// Image wraps a decoded image so query operands can reference it by name in
// an evaluation context. It satisfies the engine's image-value surface
// (pixel width and height).
type Image struct {
	src image.Image
}

// FromImage wraps a decoded image.
func FromImage(src image.Image) Image {
	return Image{src: src}
}

// Width returns the pixel width.
func (i Image) Width() int { return i.src.Bounds().Dx() }

// Height returns the pixel height.
func (i Image) Height() int { return i.src.Bounds().Dy() }

// Size returns the pixel area (width times height).
func (i Image) Size() int { return i.Width() * i.Height() }

// Source returns the wrapped image.
func (i Image) Source() image.Image { return i.src }
