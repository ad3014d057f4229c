package sdfbake

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Invert replaces every sample v of f with 255-v, in place.
//
// Invert must run on the full-resolution field before Resample: the
// resampling filter clamps at the ends of the range, so inverting
// afterwards is not equivalent.
func Invert(f *Field) {
	for y := range f.Height {
		row := f.Row(y)
		for x, v := range row {
			row[x] = 255 - v
		}
	}
}

// Resample returns f scaled to width x height with a Catmull-Rom filter.
// When shrinking, the filter support widens with the scale factor, so every
// output sample averages its whole source footprint.
func Resample(f *Field, width, height int) (*Field, error) {
	dst, err := NewField(width, height)
	if err != nil {
		return nil, err
	}
	xdraw.CatmullRom.Scale(dst.Gray(), image.Rect(0, 0, width, height),
		f.Gray(), image.Rect(0, 0, f.Width, f.Height), xdraw.Src, nil)
	return dst, nil
}
