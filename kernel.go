package sdfbake

import "math"

// Kernel is a precomputed table of Euclidean offset distances.
//
// For radius r the table is (2r+1) x (2r+1), stored row-major, and cell
// (i, j) holds the distance from the centre to offset (i-r, j-r). The same
// table applies to every output pixel, so one Kernel is shared read-only by
// all workers of a bake.
type Kernel struct {
	radius int
	dim    int
	dist   []float64
}

// NewKernel builds the search kernel for radius r.
// It panics if r < 1; callers validate the radius with Config.Validate.
func NewKernel(r int) *Kernel {
	if r < 1 {
		panic("sdfbake: kernel radius must be at least 1")
	}

	dim := 2*r + 1
	dist := make([]float64, dim*dim)
	for j := range dim {
		dy := float64(j - r)
		for i := range dim {
			dx := float64(i - r)
			dist[j*dim+i] = math.Sqrt(dx*dx + dy*dy)
		}
	}

	return &Kernel{radius: r, dim: dim, dist: dist}
}

// Radius returns the search radius in source pixels.
func (k *Kernel) Radius() int {
	return k.radius
}

// Dim returns the kernel edge length, 2r+1.
func (k *Kernel) Dim() int {
	return k.dim
}

// At returns the distance stored for column i, row j.
func (k *Kernel) At(i, j int) float64 {
	return k.dist[j*k.dim+i]
}

// Row returns the distances of kernel row j.
// The returned slice aliases the kernel and must not be modified.
func (k *Kernel) Row(j int) []float64 {
	start := j * k.dim
	return k.dist[start : start+k.dim]
}

// MaxDistance returns sqrt(2r^2), the ceiling that unresolved searches
// clamp to and the value that maps to the ends of the output range.
func (k *Kernel) MaxDistance() float64 {
	r := float64(k.radius)
	return math.Sqrt(2 * r * r)
}
