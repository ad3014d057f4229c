package sdfbake

import (
	"image"
	"math/rand/v2"
	"testing"
)

// uniformSource returns a source buffer whose unpadded area is w x h and
// whose every sample, padding included, is value.
func uniformSource(t testing.TB, w, h, pad int, value uint8) *SourceBuffer {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w+2*pad, h+2*pad))
	for i := range img.Pix {
		img.Pix[i] = value
	}
	src, err := NewSourceBuffer(img, pad)
	if err != nil {
		t.Fatalf("NewSourceBuffer() error: %v", err)
	}
	return src
}

// randomSource returns a source buffer filled with a blobby bilevel pattern
// so that both classifications and plenty of boundaries are present.
func randomSource(t testing.TB, w, h, pad int, seed uint64) *SourceBuffer {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewGray(image.Rect(0, 0, w+2*pad, h+2*pad))

	// Start from noise and smear it horizontally so regions are wider than
	// a single pixel.
	for y := range img.Rect.Dy() {
		v := uint8(255)
		for x := range img.Rect.Dx() {
			if rng.IntN(6) == 0 {
				v = 255 - v
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

func fieldsEqual(a, b *Field) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	for y := range a.Height {
		ra, rb := a.Row(y), b.Row(y)
		for x := range ra {
			if ra[x] != rb[x] {
				return false
			}
		}
	}
	return true
}
