package shape

import "errors"

// ErrEmptyViewBox is returned when a shape's view box has no area.
var ErrEmptyViewBox = errors.New("shape: empty view box")

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the rectangle width.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the rectangle height.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return !(r.MaxX > r.MinX) || !(r.MaxY > r.MinY)
}

// ExtendPoint returns the smallest rectangle containing r and p.
func (r Rect) ExtendPoint(p Point) Rect {
	return Rect{
		MinX: min(r.MinX, p.X),
		MinY: min(r.MinY, p.Y),
		MaxX: max(r.MaxX, p.X),
		MaxY: max(r.MaxY, p.Y),
	}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Expand returns r grown by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Fill is a path painted with a single gray level.
type Fill struct {
	Path *Path

	// Gray is the fill level, 0 black to 255 white.
	Gray uint8
}

// Shape is an ordered list of fills in a coordinate system bounded by
// ViewBox. Later fills paint over earlier ones.
type Shape struct {
	// ViewBox is the region of user space that maps onto the raster.
	ViewBox Rect

	// Width and Height are the intrinsic size, which fixes the aspect
	// ratio. They default to the view box size.
	Width, Height float64

	Fills []Fill
}

// Aspect returns the intrinsic width/height ratio.
func (s *Shape) Aspect() float64 {
	w, h := s.Width, s.Height
	if w <= 0 || h <= 0 {
		w, h = s.ViewBox.Width(), s.ViewBox.Height()
	}
	if w <= 0 || h <= 0 {
		return 1
	}
	return w / h
}

// Add appends a fill of path at gray level g. Empty paths are ignored.
func (s *Shape) Add(p *Path, g uint8) {
	if p == nil || p.IsEmpty() {
		return
	}
	s.Fills = append(s.Fills, Fill{Path: p, Gray: g})
}

// Bounds returns the union of the bounding boxes of all fills.
func (s *Shape) Bounds() (Rect, bool) {
	var r Rect
	found := false
	for _, f := range s.Fills {
		b, ok := f.Path.Bounds()
		if !ok {
			continue
		}
		if !found {
			r, found = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, found
}

// Validate checks that the shape can be mapped onto a raster.
func (s *Shape) Validate() error {
	if s.ViewBox.IsEmpty() {
		return ErrEmptyViewBox
	}
	return nil
}
