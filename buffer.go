package sdfbake

import (
	"errors"
	"image"
)

// Buffer errors.
var (
	// ErrInvalidDimensions is returned when a buffer would have a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("sdfbake: invalid dimensions")

	// ErrPaddingTooLarge is returned when the padding leaves no unpadded area.
	ErrPaddingTooLarge = errors.New("sdfbake: padding leaves no image area")

	// ErrPaddingTooSmall is returned when the padding is smaller than the
	// kernel radius, which would make the search read outside the buffer.
	ErrPaddingTooSmall = errors.New("sdfbake: padding smaller than search radius")
)

// SourceBuffer is the padded single-channel raster the search reads from.
//
// Width and Height include Padding on every side, so the field computed
// from it is (Width-2*Padding) x (Height-2*Padding). The buffer is never
// written by this package and must not be modified while a bake runs.
type SourceBuffer struct {
	// Pix holds the samples, row-major, Stride bytes per row.
	Pix    []uint8
	Stride int

	Width   int
	Height  int
	Padding int
}

// NewSourceBuffer wraps img as a source buffer padded by padding pixels.
// The pixel data is shared with img, not copied.
func NewSourceBuffer(img *image.Gray, padding int) (*SourceBuffer, error) {
	if img == nil {
		return nil, ErrInvalidDimensions
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || padding < 0 {
		return nil, ErrInvalidDimensions
	}
	if b.Dx() <= 2*padding || b.Dy() <= 2*padding {
		return nil, ErrPaddingTooLarge
	}

	start := img.PixOffset(b.Min.X, b.Min.Y)
	return &SourceBuffer{
		Pix:     img.Pix[start:],
		Stride:  img.Stride,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Padding: padding,
	}, nil
}

// At returns the sample at (x, y) in padded coordinates.
func (s *SourceBuffer) At(x, y int) uint8 {
	return s.Pix[y*s.Stride+x]
}

// FieldSize returns the unpadded dimensions, which are the dimensions of
// the distance field computed from s.
func (s *SourceBuffer) FieldSize() (width, height int) {
	return s.Width - 2*s.Padding, s.Height - 2*s.Padding
}

// Gray returns an *image.Gray view of the padded buffer sharing Pix.
func (s *SourceBuffer) Gray() *image.Gray {
	return &image.Gray{
		Pix:    s.Pix[:(s.Height-1)*s.Stride+s.Width],
		Stride: s.Stride,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}

// Field is an 8-bit distance field. A sample of 0 is maxDist inside the
// shape, 255 is maxDist outside, and the boundary sits near 128.
type Field struct {
	Pix    []uint8
	Stride int
	Width  int
	Height int
}

// NewField allocates a zeroed field of the given size.
func NewField(width, height int) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Field{
		Pix:    make([]uint8, width*height),
		Stride: width,
		Width:  width,
		Height: height,
	}, nil
}

// At returns the sample at (x, y).
func (f *Field) At(x, y int) uint8 {
	return f.Pix[y*f.Stride+x]
}

// Row returns the samples of row y. The slice aliases the field.
func (f *Field) Row(y int) []uint8 {
	start := y * f.Stride
	return f.Pix[start : start+f.Width]
}

// Gray returns an *image.Gray view of f sharing its pixel data.
func (f *Field) Gray() *image.Gray {
	return &image.Gray{
		Pix:    f.Pix,
		Stride: f.Stride,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}
