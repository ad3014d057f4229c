package sdfbake

import "iter"

// RowPartition is the set of output rows owned by one worker: Start,
// Start+Stride, Start+2*Stride, ... up to but excluding Height.
type RowPartition struct {
	Start  int
	Stride int
	Height int
}

// Partition splits rows [0, height) across workers by interleaving: worker k
// owns every row y with y % workers == k. Workers beyond height own no rows. Returns nil if workers < 1.
func Partition(height, workers int) []RowPartition {
	if workers < 1 {
		return nil
	}
	parts := make([]RowPartition, workers)
	for k := range parts {
		parts[k] = RowPartition{Start: k, Stride: workers, Height: height}
	}
	return parts
}

// Rows yields the rows owned by p in increasing order.
func (p RowPartition) Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		if p.Stride < 1 {
			return
		}
		for y := p.Start; y < p.Height; y += p.Stride {
			if !yield(y) {
				return
			}
		}
	}
}

// Len returns the number of rows owned by p.
func (p RowPartition) Len() int {
	if p.Stride < 1 || p.Start >= p.Height {
		return 0
	}
	return (p.Height-p.Start-1)/p.Stride + 1
}
