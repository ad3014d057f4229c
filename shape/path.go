// Package shape describes vector shapes for rasterization: paths built from
// lines and Bezier curves, filled with a gray level, inside a view box.
package shape

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Op is the kind of a path segment.
type Op uint8

const (
	// OpMoveTo starts a new subpath at Points[0].
	OpMoveTo Op = iota

	// OpLineTo draws a line to Points[0].
	OpLineTo

	// OpQuadTo draws a quadratic Bezier with control Points[0] to Points[1].
	OpQuadTo

	// OpCubicTo draws a cubic Bezier with controls Points[0], Points[1]
	// to Points[2].
	OpCubicTo

	// OpClose closes the current subpath.
	OpClose
)

// String returns a string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpCubicTo:
		return "CubicTo"
	case OpClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Segment is one element of a path.
type Segment struct {
	Op     Op
	Points [3]Point
}

// pointCount returns how many entries of Points the segment uses.
func (s Segment) pointCount() int {
	switch s.Op {
	case OpMoveTo, OpLineTo:
		return 1
	case OpQuadTo:
		return 2
	case OpCubicTo:
		return 3
	default:
		return 0
	}
}

// End returns the point the segment finishes at. For OpClose it is the
// zero Point; the path tracks subpath starts.
func (s Segment) End() Point {
	if n := s.pointCount(); n > 0 {
		return s.Points[n-1]
	}
	return Point{}
}

// Path is a sequence of subpaths.
type Path struct {
	segments []Segment
	start    Point
	current  Point
	open     bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{segments: make([]Segment, 0, 16)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.segments = append(p.segments, Segment{Op: OpMoveTo, Points: [3]Point{pt}})
	p.start = pt
	p.current = pt
	p.open = true
}

// LineTo draws a line to (x, y). Without a current point it acts as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	pt := Pt(x, y)
	p.segments = append(p.segments, Segment{Op: OpLineTo, Points: [3]Point{pt}})
	p.current = pt
}

// QuadTo draws a quadratic Bezier curve with control (cx, cy) to (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.open {
		p.MoveTo(cx, cy)
	}
	pt := Pt(x, y)
	p.segments = append(p.segments, Segment{Op: OpQuadTo, Points: [3]Point{Pt(cx, cy), pt}})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve with controls (c1x, c1y), (c2x, c2y)
// to (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.open {
		p.MoveTo(c1x, c1y)
	}
	pt := Pt(x, y)
	p.segments = append(p.segments, Segment{
		Op:     OpCubicTo,
		Points: [3]Point{Pt(c1x, c1y), Pt(c2x, c2y), pt},
	})
	p.current = pt
}

// Close closes the current subpath. The current point returns to the
// subpath start.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.segments = append(p.segments, Segment{Op: OpClose})
	p.current = p.start
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// HasCurrentPoint reports whether a subpath has been started.
func (p *Path) HasCurrentPoint() bool {
	return p.open
}

// Segments returns the path segments. The slice aliases the path.
func (p *Path) Segments() []Segment {
	return p.segments
}

// IsEmpty reports whether the path has no drawing segments.
func (p *Path) IsEmpty() bool {
	for _, s := range p.segments {
		if s.Op != OpMoveTo && s.Op != OpClose {
			return false
		}
	}
	return true
}

// Append adds all segments of other to p.
func (p *Path) Append(other *Path) {
	p.segments = append(p.segments, other.segments...)
	if other.open {
		p.start = other.start
		p.current = other.current
		p.open = true
	}
}

// Transform returns a copy of the path with every point transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{
		segments: make([]Segment, len(p.segments)),
		start:    m.TransformPoint(p.start),
		current:  m.TransformPoint(p.current),
		open:     p.open,
	}
	for i, s := range p.segments {
		t := Segment{Op: s.Op}
		for j := range s.pointCount() {
			t.Points[j] = m.TransformPoint(s.Points[j])
		}
		out.segments[i] = t
	}
	return out
}

// Bounds returns the bounding box of all points of the path, control
// points included, and false if the path has no points.
func (p *Path) Bounds() (Rect, bool) {
	var r Rect
	found := false
	for _, s := range p.segments {
		for j := range s.pointCount() {
			pt := s.Points[j]
			if !found {
				r = Rect{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
				found = true
				continue
			}
			r = r.ExtendPoint(pt)
		}
	}
	return r, found
}
