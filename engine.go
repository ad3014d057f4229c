package sdfbake

import (
	"errors"
	"math"

	"github.com/gogpu/sdfbake/internal/parallel"
)

// ErrNilInput is returned when a source buffer or kernel is missing.
var ErrNilInput = errors.New("sdfbake: nil source or kernel")

// ComputeField runs the nearest-opposite search for every pixel of the
// unpadded image on threads workers and returns the encoded field.
//
// The result depends only on src and k: it is bit-identical for any thread
// count. src must be padded by at least k.Radius() pixels.
func ComputeField(src *SourceBuffer, k *Kernel, threads int) (*Field, error) {
	if src == nil || k == nil {
		return nil, ErrNilInput
	}
	if src.Padding < k.Radius() {
		return nil, ErrPaddingTooSmall
	}
	if threads < 1 {
		return nil, &ConfigError{Field: "Threads", Reason: "must be at least 1"}
	}

	width, height := src.FieldSize()
	dst, err := NewField(width, height)
	if err != nil {
		return nil, err
	}

	parts := Partition(height, threads)
	parallel.Run(threads, func(id int) {
		w := rowWorker{src: src, kernel: k, dst: dst, part: parts[id]}
		w.run()
	})

	return dst, nil
}

// rowWorker fills the field rows of one partition. src and kernel are
// shared read-only; the worker writes only the rows its partition owns.
type rowWorker struct {
	src    *SourceBuffer
	kernel *Kernel
	dst    *Field
	part   RowPartition
}

func (w *rowWorker) run() {
	maxDist := w.kernel.MaxDistance()
	for y := range w.part.Rows() {
		row := w.dst.Row(y)
		for x := range row {
			row[x] = encodeSearch(nearestOpposite(w.src, w.kernel, x, y), maxDist)
		}
	}
}

// searchResult is the raw outcome of the search for one pixel.
type searchResult struct {
	// dist is the smallest kernel distance to a sample of the opposite
	// classification, or +Inf if none lies within the kernel.
	dist   float64
	inside bool
}

// nearestOpposite searches the kernel neighbourhood of field pixel (x, y)
// for the closest sample classified differently from the centre. Order of
// visiting cells does not matter since only the minimum is kept.
func nearestOpposite(src *SourceBuffer, k *Kernel, x, y int) searchResult {
	r := k.Radius()
	dim := k.Dim()
	o := src.Padding - r

	res := searchResult{
		dist:   math.Inf(1),
		inside: Classify(src.At(x+src.Padding, y+src.Padding)),
	}

	for j := range dim {
		base := (y+o+j)*src.Stride + x + o
		line := src.Pix[base : base+dim]
		dists := k.Row(j)
		for i, px := range line {
			// The centre cell always matches itself and never qualifies.
			if Classify(px) == res.inside {
				continue
			}
			if d := dists[i]; d < res.dist {
				res.dist = d
			}
		}
	}

	return res
}

// encodeSearch clamps an unresolved search to maxDist, applies the sign
// and quantizes.
func encodeSearch(res searchResult, maxDist float64) uint8 {
	d := min(res.dist, maxDist)
	if res.inside {
		d = -d
	}
	return Encode(d, maxDist)
}
