// Package raster fills vector shapes into padded gray buffers ready for
// distance field generation.
//
// The result has a white background. Each fill is composited over it with
// its gray level, so a shape drawn in the default black classifies as
// outside and the background as inside unless the bake is negated.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/sdfbake/shape"
)

// Background is the gray level of unpainted pixels.
const Background = 255

// ErrInvalidSize is returned for non-positive raster sizes or negative padding.
var ErrInvalidSize = errors.New("raster: invalid size")

// Rasterize renders s into a (width + 2*padding) x (height + 2*padding)
// gray image. The shape's view box is stretched onto the inner
// width x height rectangle; the padding ring only receives paint from
// geometry outside the view box.
func Rasterize(s *shape.Shape, width, height, padding int) (*image.Gray, error) {
	if width < 1 || height < 1 || padding < 0 {
		return nil, fmt.Errorf("%w: %dx%d padding %d", ErrInvalidSize, width, height, padding)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}

	w, h := width+2*padding, height+2*padding
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Gray{Y: Background}), image.Point{}, draw.Src)

	p := float64(padding)
	m := shape.RectToRect(s.ViewBox, shape.Rect{
		MinX: p,
		MinY: p,
		MaxX: p + float64(width),
		MaxY: p + float64(height),
	})

	r := vector.NewRasterizer(w, h)
	for _, f := range s.Fills {
		r.Reset(w, h)
		addPath(r, f.Path, m)
		r.Draw(dst, dst.Bounds(), image.NewUniform(color.Gray{Y: f.Gray}), image.Point{})
	}
	return dst, nil
}

// addPath feeds p, transformed by m, to the rasterizer. Every subpath is
// closed since the rasterizer only accumulates closed outlines correctly.
func addPath(r *vector.Rasterizer, p *shape.Path, m shape.Matrix) {
	pt := func(q shape.Point) (float32, float32) {
		q = m.TransformPoint(q)
		return float32(q.X), float32(q.Y)
	}

	open := false
	for _, s := range p.Segments() {
		switch s.Op {
		case shape.OpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(pt(s.Points[0]))
			open = true
		case shape.OpLineTo:
			r.LineTo(pt(s.Points[0]))
		case shape.OpQuadTo:
			cx, cy := pt(s.Points[0])
			x, y := pt(s.Points[1])
			r.QuadTo(cx, cy, x, y)
		case shape.OpCubicTo:
			c1x, c1y := pt(s.Points[0])
			c2x, c2y := pt(s.Points[1])
			x, y := pt(s.Points[2])
			r.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case shape.OpClose:
			r.ClosePath()
		}
	}
	if open {
		r.ClosePath()
	}
}
