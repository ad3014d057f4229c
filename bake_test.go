package sdfbake

import (
	"errors"
	"image"
	"testing"
)

// discSource draws a dark disc on a light background.
func discSource(t testing.TB, size, pad int) *SourceBuffer {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, size+2*pad, size+2*pad))
	c := float64(size+2*pad) / 2
	r := float64(size) / 3
	for y := range img.Rect.Dy() {
		for x := range img.Rect.Dx() {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			v := uint8(255)
			if dx*dx+dy*dy < r*r {
				v = 0
			}
			img.Pix[y*img.Stride+x] = v
		}
	}
	src, err := NewSourceBuffer(img, pad)
	if err != nil {
		t.Fatalf("NewSourceBuffer() error: %v", err)
	}
	return src
}

func TestBake(t *testing.T) {
	src := discSource(t, 96, 6)
	cfg := DefaultConfig()
	cfg.Radius = 6
	cfg.Threads = 3
	cfg.TargetSize = 24

	res, err := Bake(src, cfg)
	if err != nil {
		t.Fatalf("Bake() error: %v", err)
	}
	if res.Threads != 3 {
		t.Errorf("Threads = %d, want 3", res.Threads)
	}

	f := res.Field
	if f.Width != 24 || f.Height != 24 {
		t.Fatalf("field size = %dx%d, want 24x24", f.Width, f.Height)
	}

	// The disc is dark, so it classifies outside and reads high; the light
	// background reads low.
	if v := f.At(12, 12); v != 255 {
		t.Errorf("disc centre = %d, want 255", v)
	}
	if v := f.At(0, 0); v != 0 {
		t.Errorf("corner = %d, want 0", v)
	}
}

func TestBakeNegate(t *testing.T) {
	src := discSource(t, 64, 4)
	cfg := DefaultConfig()
	cfg.Radius = 4
	// Resampling to the same size keeps the comparison exact.
	cfg.TargetSize = 64

	plain, err := Bake(src, cfg)
	if err != nil {
		t.Fatal(err)
	}

	cfg.Negate = true
	cfg.Threads = 5
	negated, err := Bake(src, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := range plain.Field.Pix {
		a, b := int(plain.Field.Pix[i]), int(negated.Field.Pix[i])
		if d := 255 - a - b; d < -1 || d > 1 {
			t.Fatalf("Pix[%d]: plain %d, negated %d", i, a, b)
		}
	}
}

func TestBakeDeterministic(t *testing.T) {
	src := randomSource(t, 80, 50, 5, 99)
	cfg := DefaultConfig()
	cfg.Radius = 5
	cfg.TargetSize = 20

	cfg.Threads = 1
	one, err := Bake(src, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Threads = 6
	many, err := Bake(src, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !fieldsEqual(one.Field, many.Field) {
		t.Error("Bake output depends on thread count")
	}
}

func TestBakeDefaultThreadsAndAspect(t *testing.T) {
	src := uniformSource(t, 40, 20, 2, 0)
	cfg := DefaultConfig()
	cfg.Radius = 2
	cfg.SourceSize = 40

	res, err := Bake(src, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Threads < 1 {
		t.Errorf("Threads = %d, want >= 1", res.Threads)
	}
	// 40/16 rounds to 3 on the long edge; aspect 2 gives 3x1.
	if res.Field.Width != 3 || res.Field.Height != 1 {
		t.Errorf("field size = %dx%d, want 3x1", res.Field.Width, res.Field.Height)
	}
}

func TestBakeDefaultTargetFollowsSource(t *testing.T) {
	// A 32x16 raster baked with the default SourceSize of 3000.
	src := uniformSource(t, 32, 16, 2, 0)
	cfg := DefaultConfig()
	cfg.Radius = 2

	res, err := Bake(src, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Field.Width != 2 || res.Field.Height != 1 {
		t.Errorf("field size = %dx%d, want 2x1", res.Field.Width, res.Field.Height)
	}
}

func TestBakeErrors(t *testing.T) {
	src := uniformSource(t, 8, 8, 1, 0)

	cfg := DefaultConfig()
	cfg.Radius = 0
	var cfgErr *ConfigError
	if _, err := Bake(src, cfg); !errors.As(err, &cfgErr) {
		t.Errorf("invalid radius: err = %v, want *ConfigError", err)
	}

	cfg = DefaultConfig()
	if _, err := Bake(nil, cfg); !errors.Is(err, ErrNilInput) {
		t.Errorf("nil source: err = %v, want ErrNilInput", err)
	}

	// Default radius 8 exceeds the padding of 1.
	if _, err := Bake(src, cfg); !errors.Is(err, ErrPaddingTooSmall) {
		t.Errorf("small padding: err = %v, want ErrPaddingTooSmall", err)
	}
}
