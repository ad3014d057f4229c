package sdfbake

import (
	"time"

	"github.com/gogpu/sdfbake/internal/parallel"
)

// FallbackThreads is the worker count used when Config.Threads is zero and
// the hardware parallelism cannot be detected.
const FallbackThreads = parallel.FallbackThreads

// Result is the outcome of Bake.
type Result struct {
	// Field is the final, post-processed distance field.
	Field *Field

	// Threads is the number of workers the search ran on.
	Threads int

	// Elapsed is the time spent in the search and post-processing.
	Elapsed time.Duration
}

// Bake turns a padded source buffer into a distance field.
//
// The search radius is cfg.Radius and src must be padded by at least that
// much. The full-resolution field is inverted when cfg.Negate is set and
// then resampled to cfg.TargetDims of its own size. Bake blocks until every
// worker has finished; it has no cancellation.
func Bake(src *SourceBuffer, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNilInput
	}

	log := Logger()
	threads, fallback := parallel.Workers(cfg.Threads)
	if fallback {
		log.Warn("could not determine the number of hardware threads",
			"fallback", threads)
	}
	log.Info("using threads", "threads", threads)

	kernel := NewKernel(cfg.Radius)
	log.Debug("search kernel",
		"radius", kernel.Radius(),
		"dim", kernel.Dim(),
		"maxdist", kernel.MaxDistance())

	start := time.Now()
	field, err := ComputeField(src, kernel, threads)
	if err != nil {
		return nil, err
	}

	if cfg.Negate {
		Invert(field)
	}

	tw, th := cfg.TargetDims(field.Width, field.Height, cfg.Aspect)

	out, err := Resample(field, tw, th)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	log.Info("generated distance field",
		"width", out.Width,
		"height", out.Height,
		"source_width", field.Width,
		"source_height", field.Height,
		"elapsed", elapsed)

	return &Result{Field: out, Threads: threads, Elapsed: elapsed}, nil
}
