// Package glyph lays out text in a font and returns the glyph outlines as a
// shape, so shaped text can be baked into a distance field the same way as
// an SVG document.
//
// Shaping uses the HarfBuzz port from go-text/typesetting, so kerning,
// ligatures and complex scripts come out as the font intends. Each line is
// split into directional runs with the Unicode bidi algorithm before
// shaping. Outlines are read with golang.org/x/image/font/sfnt.
package glyph

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/sdfbake/shape"
)

var (
	// ErrNoGlyphs is returned when the text produces no visible outline,
	// for example when it is empty or only whitespace.
	ErrNoGlyphs = errors.New("glyph: text has no visible glyphs")

	// ErrInvalidSize is returned for a non-positive font size.
	ErrInvalidSize = errors.New("glyph: font size must be positive")
)

// Options controls text layout.
type Options struct {
	// Size is the font size in user units per em.
	Size float64

	// Margin is added around the ink bounds to form the view box. A negative
	// value selects Size/8.
	Margin float64

	// Language is the BCP 47 tag passed to the shaper. Empty means "en".
	Language string
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{Size: 256, Margin: -1, Language: "en"}
}

// Layout shapes text set in the font fontData (TrueType or OpenType) and
// returns its outlines filled in black. Lines are separated by '\n' and
// stacked using the font's line height. The view box is the ink bounds
// grown by the margin.
func Layout(fontData []byte, text string, opts Options) (*shape.Shape, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, opts.Size)
	}
	if opts.Margin < 0 {
		opts.Margin = opts.Size / 8
	}
	if opts.Language == "" {
		opts.Language = "en"
	}

	face, err := gotext.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}
	outlines, err := sfnt.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("glyph: parse font: %w", err)
	}

	l := &layouter{
		face:     face,
		outlines: outlines,
		ppem:     fixed.Int26_6(opts.Size * 64),
		lang:     language.NewLanguage(opts.Language),
		path:     shape.NewPath(),
	}

	metrics, err := outlines.Metrics(&l.buf, l.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("glyph: font metrics: %w", err)
	}
	lineHeight := fixedToFloat(metrics.Height)

	baseline := 0.0
	for line := range strings.SplitSeq(text, "\n") {
		if err := l.line(line, baseline); err != nil {
			return nil, err
		}
		baseline += lineHeight
	}

	bounds, ok := l.path.Bounds()
	if !ok || l.path.IsEmpty() {
		return nil, ErrNoGlyphs
	}

	vb := bounds.Expand(opts.Margin)
	s := &shape.Shape{ViewBox: vb, Width: vb.Width(), Height: vb.Height()}
	s.Add(l.path, 0)
	return s, nil
}

// layouter accumulates the outlines of all lines into one path.
type layouter struct {
	face     *gotext.Face
	outlines *sfnt.Font
	buf      sfnt.Buffer
	shaper   shaping.HarfbuzzShaper
	ppem     fixed.Int26_6
	lang     language.Language
	path     *shape.Path
}

// line shapes one line and appends its glyphs with the pen starting at
// (0, baseline).
func (l *layouter) line(text string, baseline float64) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	x := 0.0
	for _, r := range visualRuns(text) {
		runes := []rune(r.text)
		out := l.shaper.Shape(shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: r.dir,
			Face:      l.face,
			Size:      l.ppem,
			Script:    detectScript(runes),
			Language:  l.lang,
		})
		for _, g := range out.Glyphs {
			// go-text offsets are y-up; outlines are y-down.
			ox := x + fixedToFloat(g.XOffset)
			oy := baseline - fixedToFloat(g.YOffset)
			if err := l.glyph(sfnt.GlyphIndex(g.GlyphID), ox, oy); err != nil {
				return err
			}
			x += fixedToFloat(g.Advance)
		}
	}
	return nil
}

// glyph appends the outline of gid with its origin at (ox, oy).
func (l *layouter) glyph(gid sfnt.GlyphIndex, ox, oy float64) error {
	segs, err := l.outlines.LoadGlyph(&l.buf, gid, l.ppem, nil)
	if err != nil {
		return fmt.Errorf("glyph: load glyph %d: %w", gid, err)
	}

	pt := func(p fixed.Point26_6) (float64, float64) {
		return ox + fixedToFloat(p.X), oy + fixedToFloat(p.Y)
	}
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			x, y := pt(s.Args[0])
			l.path.MoveTo(x, y)
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			l.path.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			x, y := pt(s.Args[1])
			l.path.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			x, y := pt(s.Args[2])
			l.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if len(segs) > 0 {
		l.path.Close()
	}
	return nil
}

// run is a maximal span of text with one direction.
type run struct {
	text string
	dir  di.Direction
}

// visualRuns splits a line into directional runs in visual order. If the
// bidi algorithm fails the whole line is one left-to-right run.
func visualRuns(text string) []run {
	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return []run{{text: text, dir: di.DirectionLTR}}
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return []run{{text: text, dir: di.DirectionLTR}}
	}

	runs := make([]run, 0, ordering.NumRuns())
	for i := range ordering.NumRuns() {
		r := ordering.Run(i)
		dir := di.DirectionLTR
		if r.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		runs = append(runs, run{text: r.String(), dir: dir})
	}
	return runs
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
