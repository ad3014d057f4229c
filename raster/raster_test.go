package raster

import (
	"errors"
	"testing"

	"github.com/gogpu/sdfbake/shape"
)

func square(x0, y0, x1, y1 float64) *shape.Path {
	p := shape.NewPath()
	p.MoveTo(x0, y0)
	p.LineTo(x1, y0)
	p.LineTo(x1, y1)
	p.LineTo(x0, y1)
	p.Close()
	return p
}

func TestRasterizeBackground(t *testing.T) {
	s := &shape.Shape{ViewBox: shape.Rect{MaxX: 1, MaxY: 1}}
	img, err := Rasterize(s, 6, 4, 2)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 8 {
		t.Fatalf("bounds = %v, want 10x8", b)
	}
	for i, v := range img.Pix {
		if v != Background {
			t.Fatalf("pixel %d = %d, want %d", i, v, Background)
		}
	}
}

func TestRasterizeFillsViewBox(t *testing.T) {
	tests := []struct {
		name string
		gray uint8
	}{
		{"black", 0},
		{"gray", 0x80},
		{"white", 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &shape.Shape{ViewBox: shape.Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}}
			s.Add(square(-1, -1, 1, 1), tt.gray)

			const size, pad = 8, 3
			img, err := Rasterize(s, size, size, pad)
			if err != nil {
				t.Fatalf("Rasterize() error = %v", err)
			}
			for y := range size + 2*pad {
				for x := range size + 2*pad {
					inside := x >= pad && x < pad+size && y >= pad && y < pad+size
					want := uint8(Background)
					if inside {
						want = tt.gray
					}
					if got := img.GrayAt(x, y).Y; diff(got, want) > 1 {
						t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestRasterizeStretchesViewBox(t *testing.T) {
	// Left half of a 2:1 view box fills the left half of a square raster.
	s := &shape.Shape{ViewBox: shape.Rect{MaxX: 20, MaxY: 10}}
	s.Add(square(0, 0, 10, 10), 0)

	img, err := Rasterize(s, 10, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	for y := range 10 {
		if img.GrayAt(4, y).Y != 0 || img.GrayAt(5, y).Y != Background {
			t.Fatalf("row %d = %v, want split at x=5", y, img.Pix[y*img.Stride:(y+1)*img.Stride])
		}
	}
}

func TestRasterizePaintOrder(t *testing.T) {
	s := &shape.Shape{ViewBox: shape.Rect{MaxX: 4, MaxY: 4}}
	s.Add(square(0, 0, 4, 4), 0)
	s.Add(square(1, 1, 3, 3), 200)

	img, err := Rasterize(s, 4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.GrayAt(1, 1).Y; got != 0 {
		t.Errorf("outer pixel = %d, want 0", got)
	}
	if got := img.GrayAt(2, 2).Y; diff(got, 200) > 1 {
		t.Errorf("inner pixel = %d, want 200", got)
	}
}

func TestRasterizeUnclosedSubpaths(t *testing.T) {
	// Two open subpaths still fill as two separate areas.
	p := shape.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(4, 0)
	p.LineTo(4, 4)
	p.LineTo(0, 4)
	p.MoveTo(6, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 4)
	p.LineTo(6, 4)

	s := &shape.Shape{ViewBox: shape.Rect{MaxX: 10, MaxY: 4}}
	s.Add(p, 0)
	img, err := Rasterize(s, 10, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	for x, want := range []uint8{0, 0, 0, 0, 255, 255, 0, 0, 0, 0} {
		if got := img.GrayAt(x, 2).Y; got != want {
			t.Errorf("pixel (%d,2) = %d, want %d", x, got, want)
		}
	}
}

func TestRasterizeErrors(t *testing.T) {
	valid := &shape.Shape{ViewBox: shape.Rect{MaxX: 1, MaxY: 1}}
	for _, c := range []struct{ w, h, p int }{{0, 1, 0}, {1, -1, 0}, {1, 1, -1}} {
		if _, err := Rasterize(valid, c.w, c.h, c.p); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Rasterize(%d, %d, %d) error = %v, want ErrInvalidSize", c.w, c.h, c.p, err)
		}
	}
	if _, err := Rasterize(&shape.Shape{}, 4, 4, 0); !errors.Is(err, shape.ErrEmptyViewBox) {
		t.Errorf("Rasterize(empty view box) error = %v, want ErrEmptyViewBox", err)
	}
}

func BenchmarkRasterize(b *testing.B) {
	s := &shape.Shape{ViewBox: shape.Rect{MaxX: 100, MaxY: 100}}
	p := shape.NewPath()
	p.MoveTo(50, 5)
	p.CubicTo(80, 5, 95, 20, 95, 50)
	p.CubicTo(95, 80, 80, 95, 50, 95)
	p.CubicTo(20, 95, 5, 80, 5, 50)
	p.CubicTo(5, 20, 20, 5, 50, 5)
	p.Close()
	s.Add(p, 0)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Rasterize(s, 1024, 1024, 8); err != nil {
			b.Fatal(err)
		}
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
