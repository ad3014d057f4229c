package svg

import (
	"fmt"
	"math"

	"github.com/gogpu/sdfbake/shape"
)

// pathBuilder tracks the state path data commands depend on.
type pathBuilder struct {
	p       *shape.Path
	cur     shape.Point
	start   shape.Point
	lastCtl shape.Point // reflected by S and T
	lastCmd byte
}

// parsePathData converts the d attribute of a <path> into a shape.Path.
func parsePathData(d string) (*shape.Path, error) {
	b := &pathBuilder{p: shape.NewPath()}
	sc := &numScanner{s: d}

	var cmd byte
	for !sc.done() {
		c := sc.s[sc.pos]
		if isCommand(c) {
			cmd = c
			sc.pos++
		} else if cmd == 0 || cmd == 'Z' || cmd == 'z' || !sc.atNumber() {
			return nil, fmt.Errorf("unexpected %q at offset %d", c, sc.pos)
		}
		// Numbers after a moveto without a new command are implicit linetos.
		if err := b.command(cmd, sc); err != nil {
			return nil, fmt.Errorf("command %c: %w", cmd, err)
		}
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}
	return b.p, nil
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// command consumes the arguments of one command.
func (b *pathBuilder) command(cmd byte, sc *numScanner) error {
	rel := cmd >= 'a'
	abs := func(x, y float64) shape.Point {
		if rel {
			return shape.Pt(b.cur.X+x, b.cur.Y+y)
		}
		return shape.Pt(x, y)
	}

	upper := cmd &^ 0x20
	switch upper {
	case 'Z':
		b.p.Close()
		b.cur = b.start
		b.lastCmd = 'Z'
		return nil

	case 'M':
		a, err := sc.numbers(2)
		if err != nil {
			return err
		}
		pt := abs(a[0], a[1])
		b.p.MoveTo(pt.X, pt.Y)
		b.cur, b.start = pt, pt

	case 'L':
		a, err := sc.numbers(2)
		if err != nil {
			return err
		}
		pt := abs(a[0], a[1])
		b.lineTo(pt)

	case 'H':
		x, err := sc.number()
		if err != nil {
			return err
		}
		if rel {
			x += b.cur.X
		}
		b.lineTo(shape.Pt(x, b.cur.Y))

	case 'V':
		y, err := sc.number()
		if err != nil {
			return err
		}
		if rel {
			y += b.cur.Y
		}
		b.lineTo(shape.Pt(b.cur.X, y))

	case 'C':
		a, err := sc.numbers(6)
		if err != nil {
			return err
		}
		b.cubicTo(abs(a[0], a[1]), abs(a[2], a[3]), abs(a[4], a[5]))

	case 'S':
		a, err := sc.numbers(4)
		if err != nil {
			return err
		}
		c1 := b.cur
		if b.lastCmd == 'C' || b.lastCmd == 'S' {
			c1 = reflect(b.lastCtl, b.cur)
		}
		b.cubicTo(c1, abs(a[0], a[1]), abs(a[2], a[3]))

	case 'Q':
		a, err := sc.numbers(4)
		if err != nil {
			return err
		}
		b.quadTo(abs(a[0], a[1]), abs(a[2], a[3]))

	case 'T':
		a, err := sc.numbers(2)
		if err != nil {
			return err
		}
		ctl := b.cur
		if b.lastCmd == 'Q' || b.lastCmd == 'T' {
			ctl = reflect(b.lastCtl, b.cur)
		}
		b.quadTo(ctl, abs(a[0], a[1]))

	case 'A':
		return b.arc(sc, abs)
	}

	b.lastCmd = upper
	return nil
}

func (b *pathBuilder) lineTo(pt shape.Point) {
	b.p.LineTo(pt.X, pt.Y)
	b.cur = pt
}

func (b *pathBuilder) quadTo(ctl, pt shape.Point) {
	b.p.QuadTo(ctl.X, ctl.Y, pt.X, pt.Y)
	b.lastCtl = ctl
	b.cur = pt
}

func (b *pathBuilder) cubicTo(c1, c2, pt shape.Point) {
	b.p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
	b.lastCtl = c2
	b.cur = pt
}

// reflect mirrors ctl about p.
func reflect(ctl, p shape.Point) shape.Point {
	return shape.Pt(2*p.X-ctl.X, 2*p.Y-ctl.Y)
}

func (b *pathBuilder) arc(sc *numScanner, abs func(x, y float64) shape.Point) error {
	r, err := sc.numbers(3)
	if err != nil {
		return err
	}
	large, err := sc.flag()
	if err != nil {
		return err
	}
	sweep, err := sc.flag()
	if err != nil {
		return err
	}
	e, err := sc.numbers(2)
	if err != nil {
		return err
	}

	end := abs(e[0], e[1])
	for _, c := range arcToCubics(b.cur, end, r[0], r[1], r[2]*math.Pi/180, large, sweep) {
		b.cubicTo(c[0], c[1], c[2])
	}
	// A zero-length arc draws nothing but still moves the pen.
	b.cur = end
	b.lastCmd = 'A'
	return nil
}

// arcToCubics approximates an elliptical arc from p0 to p1 with cubic
// Beziers, each spanning at most a quarter turn. It follows the endpoint to
// centre conversion of SVG 1.1 appendix F.6.
func arcToCubics(p0, p1 shape.Point, rx, ry, phi float64, large, sweep bool) [][3]shape.Point {
	if p0 == p1 {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return [][3]shape.Point{{p0, p1, p1}}
	}

	sinPhi, cosPhi := math.Sincos(phi)
	dx, dy := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Scale up radii that are too small to reach the end point.
	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(math.Max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	cx := cosPhi*cx1 - sinPhi*cy1 + (p0.X+p1.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (p0.Y+p1.Y)/2

	theta1 := vecAngle(1, 0, (x1-cx1)/rx, (y1-cy1)/ry)
	delta := vecAngle((x1-cx1)/rx, (y1-cy1)/ry, (-x1-cx1)/rx, (-y1-cy1)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	n = max(n, 1)
	step := delta / float64(n)
	k := 4.0 / 3 * math.Tan(step/4)

	point := func(t float64) (x, y, tx, ty float64) {
		sinT, cosT := math.Sincos(t)
		ex, ey := rx*cosT, ry*sinT
		x = cosPhi*ex - sinPhi*ey + cx
		y = sinPhi*ex + cosPhi*ey + cy
		// Derivative direction, scaled by the radii.
		dex, dey := -rx*sinT, ry*cosT
		tx = cosPhi*dex - sinPhi*dey
		ty = sinPhi*dex + cosPhi*dey
		return
	}

	out := make([][3]shape.Point, 0, n)
	t := theta1
	ax, ay, atx, aty := point(t)
	for i := range n {
		t += step
		bx, by, btx, bty := point(t)
		end := shape.Pt(bx, by)
		if i == n-1 {
			end = p1
		}
		out = append(out, [3]shape.Point{
			shape.Pt(ax+k*atx, ay+k*aty),
			shape.Pt(bx-k*btx, by-k*bty),
			end,
		})
		ax, ay, atx, aty = bx, by, btx, bty
	}
	return out
}

// vecAngle returns the signed angle from (ux, uy) to (vx, vy).
func vecAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
