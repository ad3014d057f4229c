// Package svg reads the filled-shape subset of SVG into a shape.Shape.
//
// Supported elements are svg, g, path, rect, circle, ellipse, polygon and
// polyline. Fills come from the fill attribute or the fill property of a
// style attribute and are inherited through groups. Strokes, gradients,
// clipping, masks, text and the evenodd fill rule are not rendered;
// gradient and pattern fills paint black.
package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogpu/sdfbake/shape"
)

var (
	// ErrNotSVG is returned when the document root is not an <svg> element.
	ErrNotSVG = errors.New("svg: root element is not <svg>")

	// ErrNoSize is returned when the document has neither a usable
	// width/height nor a viewBox.
	ErrNoSize = errors.New("svg: document has no size or viewBox")
)

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498

// skipped lists elements whose content is never painted directly.
var skipped = map[string]bool{
	"defs":     true,
	"clipPath": true,
	"mask":     true,
	"symbol":   true,
	"marker":   true,
	"pattern":  true,
	"title":    true,
	"desc":     true,
	"style":    true,
	"metadata": true,
	"text":     true,
}

// Load reads the SVG file at path.
func Load(path string) (*shape.Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// state is the inherited context of an element.
type state struct {
	m    shape.Matrix
	fill paint
}

// Decode parses an SVG document.
func Decode(r io.Reader) (*shape.Shape, error) {
	d := xml.NewDecoder(r)
	d.Strict = false
	d.Entity = xml.HTMLEntity

	var (
		s     *shape.Shape
		stack []state
	)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("svg: parse: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if s == nil {
				if el.Name.Local != "svg" {
					return nil, ErrNotSVG
				}
				if s, err = newShape(el); err != nil {
					return nil, err
				}
				st, err := elementState(el, state{m: shape.Identity()})
				if err != nil {
					return nil, err
				}
				stack = append(stack, st)
				continue
			}

			if skipped[el.Name.Local] || attr(el, "display") == "none" {
				if err := d.Skip(); err != nil {
					return nil, fmt.Errorf("svg: parse: %w", err)
				}
				continue
			}

			st, err := elementState(el, stack[len(stack)-1])
			if err != nil {
				return nil, err
			}
			stack = append(stack, st)

			p, err := elementPath(el)
			if err != nil {
				return nil, err
			}
			if p != nil && !st.fill.none {
				s.Add(p.Transform(st.m), st.fill.gray)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if s == nil {
		return nil, ErrNotSVG
	}
	return s, nil
}

// newShape reads the intrinsic size and view box of the root element.
func newShape(el xml.StartElement) (*shape.Shape, error) {
	w, wok := parseLength(attr(el, "width"))
	h, hok := parseLength(attr(el, "height"))

	s := &shape.Shape{}
	if vb := attr(el, "viewBox"); vb != "" {
		v, err := parseNumberList(vb)
		if err != nil || len(v) != 4 {
			return nil, fmt.Errorf("svg: bad viewBox %q", vb)
		}
		s.ViewBox = shape.Rect{MinX: v[0], MinY: v[1], MaxX: v[0] + v[2], MaxY: v[1] + v[3]}
	} else if wok && hok {
		s.ViewBox = shape.Rect{MaxX: w, MaxY: h}
	}
	if s.ViewBox.IsEmpty() {
		return nil, ErrNoSize
	}

	if wok && hok && w > 0 && h > 0 {
		s.Width, s.Height = w, h
	} else {
		s.Width, s.Height = s.ViewBox.Width(), s.ViewBox.Height()
	}
	return s, nil
}

// elementState applies an element's transform and fill to its parent's state.
func elementState(el xml.StartElement, parent state) (state, error) {
	st := parent
	if t := attr(el, "transform"); t != "" {
		m, err := parseTransform(t)
		if err != nil {
			return st, err
		}
		st.m = parent.m.Multiply(m)
	}

	fill := attr(el, "fill")
	if v, ok := styleProperty(attr(el, "style"), "fill"); ok {
		fill = v
	}
	p, err := parsePaint(fill, parent.fill)
	if err != nil {
		return st, err
	}
	st.fill = p
	return st, nil
}

// elementPath builds the outline of a shape element in its own user space.
// It returns nil for elements that paint nothing.
func elementPath(el xml.StartElement) (*shape.Path, error) {
	switch el.Name.Local {
	case "path":
		p, err := parsePathData(attr(el, "d"))
		if err != nil {
			return nil, fmt.Errorf("svg: parse path: %w", err)
		}
		return p, nil

	case "rect":
		x, y := coord(attr(el, "x")), coord(attr(el, "y"))
		w, h := coord(attr(el, "width")), coord(attr(el, "height"))
		if w <= 0 || h <= 0 {
			return nil, nil
		}
		rx, rxok := parseLength(attr(el, "rx"))
		ry, ryok := parseLength(attr(el, "ry"))
		switch {
		case rxok && !ryok:
			ry = rx
		case ryok && !rxok:
			rx = ry
		}
		rx = min(max(rx, 0), w/2)
		ry = min(max(ry, 0), h/2)
		return rectPath(x, y, w, h, rx, ry), nil

	case "circle":
		r := coord(attr(el, "r"))
		if r <= 0 {
			return nil, nil
		}
		return ellipsePath(coord(attr(el, "cx")), coord(attr(el, "cy")), r, r), nil

	case "ellipse":
		rx, ry := coord(attr(el, "rx")), coord(attr(el, "ry"))
		if rx <= 0 || ry <= 0 {
			return nil, nil
		}
		return ellipsePath(coord(attr(el, "cx")), coord(attr(el, "cy")), rx, ry), nil

	case "polygon", "polyline":
		v, err := parseNumberList(attr(el, "points"))
		if err != nil {
			return nil, fmt.Errorf("svg: parse %s points: %w", el.Name.Local, err)
		}
		if len(v) < 4 {
			return nil, nil
		}
		p := shape.NewPath()
		p.MoveTo(v[0], v[1])
		for i := 2; i+1 < len(v); i += 2 {
			p.LineTo(v[i], v[i+1])
		}
		// Open polylines fill as if closed.
		p.Close()
		return p, nil
	}
	return nil, nil
}

func rectPath(x, y, w, h, rx, ry float64) *shape.Path {
	p := shape.NewPath()
	if rx == 0 || ry == 0 {
		p.MoveTo(x, y)
		p.LineTo(x+w, y)
		p.LineTo(x+w, y+h)
		p.LineTo(x, y+h)
		p.Close()
		return p
	}

	kx, ky := kappa*rx, kappa*ry
	r, b := x+w, y+h
	p.MoveTo(x+rx, y)
	p.LineTo(r-rx, y)
	p.CubicTo(r-rx+kx, y, r, y+ry-ky, r, y+ry)
	p.LineTo(r, b-ry)
	p.CubicTo(r, b-ry+ky, r-rx+kx, b, r-rx, b)
	p.LineTo(x+rx, b)
	p.CubicTo(x+rx-kx, b, x, b-ry+ky, x, b-ry)
	p.LineTo(x, y+ry)
	p.CubicTo(x, y+ry-ky, x+rx-kx, y, x+rx, y)
	p.Close()
	return p
}

func ellipsePath(cx, cy, rx, ry float64) *shape.Path {
	kx, ky := kappa*rx, kappa*ry
	p := shape.NewPath()
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Close()
	return p
}

// attr returns the value of the named attribute, ignoring namespaces.
func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}
