package sdfbake

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestComputeFieldUniform(t *testing.T) {
	tests := []struct {
		name  string
		value uint8
		want  uint8
	}{
		// Samples >= 128 classify inside and saturate to the inside end.
		{"light", 255, 0},
		{"dark", 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := uniformSource(t, 10, 10, 2, tt.value)
			f, err := ComputeField(src, NewKernel(2), 3)
			if err != nil {
				t.Fatalf("ComputeField() error: %v", err)
			}
			if f.Width != 10 || f.Height != 10 {
				t.Fatalf("field size = %dx%d, want 10x10", f.Width, f.Height)
			}
			for i, v := range f.Pix {
				if v != tt.want {
					t.Fatalf("Pix[%d] = %d, want %d", i, v, tt.want)
				}
			}
		})
	}
}

func TestComputeFieldSingleBoundary(t *testing.T) {
	const (
		radius = 2
		size   = 5
		centre = 2
	)

	tests := []struct {
		name       string
		background uint8
		stripe     uint8
		offset     int
		want       uint8
	}{
		{"outside, distance 1", 0, 255, 1, 173},
		{"outside, distance 2", 0, 255, 2, 218},
		{"inside, distance 1", 255, 0, 1, 82},
		{"inside, distance 2", 255, 0, -2, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := uniformSource(t, size, size, radius, tt.background)

			// A one pixel wide vertical stripe of the opposite class at
			// |offset| columns from the pixel under test.
			col := centre + radius + tt.offset
			for y := range src.Height {
				src.Pix[y*src.Stride+col] = tt.stripe
			}

			f, err := ComputeField(src, NewKernel(radius), 1)
			if err != nil {
				t.Fatalf("ComputeField() error: %v", err)
			}

			d := math.Abs(float64(tt.offset))
			if tt.background >= Threshold {
				d = -d
			}
			want := uint8(math.Round((d/math.Sqrt(8) + 1) * 0.5 * 255))
			if want != tt.want {
				t.Fatalf("closed form = %d, table says %d", want, tt.want)
			}
			if got := f.At(centre, centre); got != tt.want {
				t.Errorf("At(%d, %d) = %d, want %d", centre, centre, got, tt.want)
			}
		})
	}
}

func TestComputeFieldDeterministicAcrossThreads(t *testing.T) {
	src := randomSource(t, 61, 47, 4, 7)
	k := NewKernel(4)

	want, err := ComputeField(src, k, 1)
	if err != nil {
		t.Fatalf("ComputeField(1) error: %v", err)
	}

	for _, threads := range []int{2, 3, 4, 8, 47, 64} {
		got, err := ComputeField(src, k, threads)
		if err != nil {
			t.Fatalf("ComputeField(%d) error: %v", threads, err)
		}
		if !fieldsEqual(got, want) {
			t.Errorf("threads=%d: field differs from single-threaded result", threads)
		}
	}
}

func TestComputeFieldMatchesPerPixelSearch(t *testing.T) {
	src := randomSource(t, 23, 19, 3, 11)
	k := NewKernel(3)

	f, err := ComputeField(src, k, 4)
	if err != nil {
		t.Fatalf("ComputeField() error: %v", err)
	}

	// Reference: the search written out directly against the padded buffer.
	maxDist := k.MaxDistance()
	for y := range f.Height {
		for x := range f.Width {
			inside := src.At(x+3, y+3) >= 128
			best := math.Inf(1)
			for dy := -3; dy <= 3; dy++ {
				for dx := -3; dx <= 3; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if (src.At(x+3+dx, y+3+dy) >= 128) != inside {
						best = math.Min(best, math.Hypot(float64(dx), float64(dy)))
					}
				}
			}
			best = math.Min(best, maxDist)
			if inside {
				best = -best
			}
			want := Encode(best, maxDist)
			if got := f.At(x, y); got != want {
				t.Fatalf("At(%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestRadiusMonotonicity(t *testing.T) {
	const pad = 6
	src := randomSource(t, 30, 30, pad, 3)
	w, h := src.FieldSize()

	prev := make([]float64, w*h)
	for i := range prev {
		prev[i] = math.Inf(1)
	}

	for r := 1; r <= pad; r++ {
		k := NewKernel(r)
		for y := range h {
			for x := range w {
				res := nearestOpposite(src, k, x, y)
				if res.dist > prev[y*w+x] {
					t.Fatalf("r=%d: distance at (%d, %d) grew from %v to %v", r, x, y, prev[y*w+x], res.dist)
				}
				prev[y*w+x] = res.dist
			}
		}
	}
}

func TestComputeFieldExtraPadding(t *testing.T) {
	// A source padded beyond the radius gives the same field as the same
	// image cropped to exactly radius padding.
	const r = 2
	wide := randomSource(t, 20, 16, 5, 5)

	crop := wide.Gray().SubImage(image.Rect(3, 3, wide.Width-3, wide.Height-3)).(*image.Gray)
	tight, err := NewSourceBuffer(crop, r)
	if err != nil {
		t.Fatalf("NewSourceBuffer() error: %v", err)
	}

	k := NewKernel(r)
	a, err := ComputeField(wide, k, 2)
	if err != nil {
		t.Fatalf("ComputeField(wide) error: %v", err)
	}
	b, err := ComputeField(tight, k, 2)
	if err != nil {
		t.Fatalf("ComputeField(tight) error: %v", err)
	}
	if !fieldsEqual(a, b) {
		t.Error("extra padding changed the field")
	}
}

func TestComputeFieldErrors(t *testing.T) {
	src := uniformSource(t, 4, 4, 1, 0)

	if _, err := ComputeField(nil, NewKernel(1), 1); !errors.Is(err, ErrNilInput) {
		t.Errorf("nil source: err = %v, want ErrNilInput", err)
	}
	if _, err := ComputeField(src, nil, 1); !errors.Is(err, ErrNilInput) {
		t.Errorf("nil kernel: err = %v, want ErrNilInput", err)
	}
	if _, err := ComputeField(src, NewKernel(2), 1); !errors.Is(err, ErrPaddingTooSmall) {
		t.Errorf("small padding: err = %v, want ErrPaddingTooSmall", err)
	}

	_, err := ComputeField(src, NewKernel(1), 0)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "Threads" {
		t.Errorf("zero threads: err = %v, want ConfigError for Threads", err)
	}
}

func BenchmarkComputeField(b *testing.B) {
	src := randomSource(b, 256, 256, 8, 1)
	k := NewKernel(8)
	b.ResetTimer()
	for b.Loop() {
		if _, err := ComputeField(src, k, 4); err != nil {
			b.Fatal(err)
		}
	}
}
