package svg

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/sdfbake/shape"
)

// numScanner reads SVG number lists: numbers separated by whitespace and
// optional commas, where a sign or a second decimal point also starts a new
// number ("1-2" and "1.5.5" are two numbers each).
type numScanner struct {
	s   string
	pos int
}

func (sc *numScanner) skipSep() {
	for sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *numScanner) done() bool {
	sc.skipSep()
	return sc.pos >= len(sc.s)
}

// atNumber reports whether a number starts at the next non-separator.
func (sc *numScanner) atNumber() bool {
	sc.skipSep()
	if sc.pos >= len(sc.s) {
		return false
	}
	c := sc.s[sc.pos]
	return c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

func (sc *numScanner) number() (float64, error) {
	sc.skipSep()
	start := sc.pos
	i := sc.pos
	if i < len(sc.s) && (sc.s[i] == '+' || sc.s[i] == '-') {
		i++
	}
	digits, dot := 0, false
mantissa:
	for i < len(sc.s) {
		c := sc.s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			break mantissa
		}
		i++
	}
	if digits > 0 && i < len(sc.s) && (sc.s[i] == 'e' || sc.s[i] == 'E') {
		j := i + 1
		if j < len(sc.s) && (sc.s[j] == '+' || sc.s[j] == '-') {
			j++
		}
		if j < len(sc.s) && sc.s[j] >= '0' && sc.s[j] <= '9' {
			for j < len(sc.s) && sc.s[j] >= '0' && sc.s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	if digits == 0 {
		return 0, fmt.Errorf("expected number at offset %d in %q", start, sc.s)
	}
	sc.pos = i
	return strconv.ParseFloat(sc.s[start:i], 64)
}

// flag reads an arc flag, which may be written without a separator.
func (sc *numScanner) flag() (bool, error) {
	sc.skipSep()
	if sc.pos < len(sc.s) {
		switch sc.s[sc.pos] {
		case '0':
			sc.pos++
			return false, nil
		case '1':
			sc.pos++
			return true, nil
		}
	}
	return false, fmt.Errorf("expected arc flag at offset %d in %q", sc.pos, sc.s)
}

// numbers reads n numbers.
func (sc *numScanner) numbers(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := sc.number()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseNumberList parses a whole attribute as a list of numbers.
func parseNumberList(s string) ([]float64, error) {
	sc := &numScanner{s: s}
	var out []float64
	for !sc.done() {
		v, err := sc.number()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// unitScale converts SVG length units to user units at 96 dpi.
var unitScale = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
}

// parseLength parses a length attribute. Percentages and unknown units
// report ok=false so the caller can fall back.
func parseLength(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	end := len(s)
	for end > 0 && (s[end-1] >= 'a' && s[end-1] <= 'z' || s[end-1] == '%') {
		end--
	}
	scale, known := unitScale[s[end:]]
	if !known {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s[:end]), 64)
	if err != nil {
		return 0, false
	}
	return f * scale, true
}

// coord parses a coordinate attribute, defaulting to 0.
func coord(s string) float64 {
	v, _ := parseLength(s)
	return v
}

// parseTransform parses a transform list. Transforms apply right to left,
// so "translate(10) scale(2)" scales first.
func parseTransform(s string) (shape.Matrix, error) {
	m := shape.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return m, fmt.Errorf("svg: malformed transform %q", s)
		}
		name := strings.TrimSpace(strings.Trim(rest[:open], ", \t\n"))
		args, err := parseNumberList(rest[open+1 : end])
		if err != nil {
			return m, fmt.Errorf("svg: transform %q: %w", s, err)
		}
		t, err := transformFunc(name, args)
		if err != nil {
			return m, err
		}
		m = m.Multiply(t)
		rest = strings.TrimSpace(rest[end+1:])
	}
	return m, nil
}

func transformFunc(name string, a []float64) (shape.Matrix, error) {
	bad := func() (shape.Matrix, error) {
		return shape.Identity(), fmt.Errorf("svg: transform %s takes different arguments than %v", name, a)
	}
	switch name {
	case "matrix":
		if len(a) != 6 {
			return bad()
		}
		return shape.Matrix{A: a[0], B: a[2], C: a[4], D: a[1], E: a[3], F: a[5]}, nil
	case "translate":
		switch len(a) {
		case 1:
			return shape.Translate(a[0], 0), nil
		case 2:
			return shape.Translate(a[0], a[1]), nil
		}
		return bad()
	case "scale":
		switch len(a) {
		case 1:
			return shape.Scale(a[0], a[0]), nil
		case 2:
			return shape.Scale(a[0], a[1]), nil
		}
		return bad()
	case "rotate":
		switch len(a) {
		case 1:
			return shape.Rotate(a[0] * math.Pi / 180), nil
		case 3:
			return shape.Translate(a[1], a[2]).
				Multiply(shape.Rotate(a[0] * math.Pi / 180)).
				Multiply(shape.Translate(-a[1], -a[2])), nil
		}
		return bad()
	case "skewX":
		if len(a) != 1 {
			return bad()
		}
		return shape.Shear(math.Tan(a[0]*math.Pi/180), 0), nil
	case "skewY":
		if len(a) != 1 {
			return bad()
		}
		return shape.Shear(0, math.Tan(a[0]*math.Pi/180)), nil
	}
	return shape.Identity(), fmt.Errorf("svg: unknown transform %q", name)
}

// paint is a resolved fill.
type paint struct {
	none bool
	gray uint8
}

// parsePaint resolves a fill value against the inherited paint.
func parsePaint(v string, inherited paint) (paint, error) {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "inherit":
		return inherited, nil
	case "none", "transparent":
		return paint{none: true}, nil
	case "currentcolor":
		return paint{gray: 0}, nil
	}

	c, err := parseColor(v)
	if err != nil {
		return inherited, err
	}
	g := color.GrayModel.Convert(c).(color.Gray)
	return paint{gray: g.Y}, nil
}

func parseColor(v string) (color.Color, error) {
	if strings.HasPrefix(v, "url(") {
		// Gradients and patterns paint with their fallback, which
		// defaults to black.
		return color.Black, nil
	}
	if c, ok := colornames.Map[strings.ToLower(v)]; ok {
		return c, nil
	}
	if strings.HasPrefix(v, "#") {
		return parseHexColor(v[1:])
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		return parseRGBFunc(v[4 : len(v)-1])
	}
	return nil, fmt.Errorf("svg: unsupported color %q", v)
}

func parseHexColor(h string) (color.Color, error) {
	var r, g, b uint64
	var err error
	switch len(h) {
	case 3:
		var n uint64
		n, err = strconv.ParseUint(h, 16, 16)
		r, g, b = (n>>8&0xf)*17, (n>>4&0xf)*17, (n&0xf)*17
	case 6:
		var n uint64
		n, err = strconv.ParseUint(h, 16, 32)
		r, g, b = n>>16&0xff, n>>8&0xff, n&0xff
	default:
		return nil, fmt.Errorf("svg: bad hex color #%s", h)
	}
	if err != nil {
		return nil, fmt.Errorf("svg: bad hex color #%s: %w", h, err)
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, nil
}

func parseRGBFunc(args string) (color.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("svg: bad rgb() color %q", args)
	}
	var ch [3]uint8
	for i, p := range parts {
		p = strings.TrimSpace(p)
		scale := 1.0
		if strings.HasSuffix(p, "%") {
			p = strings.TrimSuffix(p, "%")
			scale = 255.0 / 100
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("svg: bad rgb() color %q: %w", args, err)
		}
		ch[i] = uint8(math.Round(math.Max(0, math.Min(255, f*scale))))
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
}

// styleProperty extracts one property from a style attribute.
func styleProperty(style, name string) (string, bool) {
	for decl := range strings.SplitSeq(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if ok && strings.TrimSpace(k) == name {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}
