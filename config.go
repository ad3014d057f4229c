package sdfbake

import "math"

// Config holds the parameters of a bake.
type Config struct {
	// SourceSize is the long edge, in pixels, of the raster the shape is
	// rendered to before the search. Larger is more precise and slower.
	// Default: 3000
	SourceSize int

	// Radius is the search radius in source pixels. It bounds the kernel
	// and sets maxDist = sqrt(2*Radius^2), the distance mapped to the ends
	// of the output range. Scale it with SourceSize.
	// Default: 8
	Radius int

	// TargetSize is the long edge of the resampled output.
	// Zero selects the long edge of the computed field divided by 16.
	TargetSize int

	// Threads is the number of search workers.
	// Zero selects the detected hardware parallelism (FallbackThreads if
	// detection fails).
	Threads int

	// Negate inverts the output so that light source areas read as inside.
	Negate bool

	// Aspect is width/height of the shape's intrinsic size. Zero derives
	// it from the source buffer.
	Aspect float64
}

// DefaultConfig returns the default bake configuration.
func DefaultConfig() Config {
	return Config{
		SourceSize: 3000,
		Radius:     8,
	}
}

// Validate checks the configuration and returns a *ConfigError for the
// first invalid field.
func (c *Config) Validate() error {
	if c.SourceSize < 1 {
		return &ConfigError{Field: "SourceSize", Reason: "must be at least 1"}
	}
	if c.Radius < 1 {
		return &ConfigError{Field: "Radius", Reason: "must be at least 1"}
	}
	if c.TargetSize < 0 {
		return &ConfigError{Field: "TargetSize", Reason: "must be at least 1 when set"}
	}
	if c.Threads < 0 {
		return &ConfigError{Field: "Threads", Reason: "must be at least 1 when set"}
	}
	if c.Aspect < 0 || math.IsNaN(c.Aspect) || math.IsInf(c.Aspect, 0) {
		return &ConfigError{Field: "Aspect", Reason: "must be a positive finite ratio"}
	}
	return nil
}

// SourceDims returns the unpadded raster size for the given aspect ratio.
func (c *Config) SourceDims(aspect float64) (width, height int) {
	return ScaledSize(c.SourceSize, aspect)
}

// TargetDims returns the output size for a field of srcWidth x srcHeight
// samples. Without an explicit TargetSize the long edge is the field's long
// edge divided by 16. A positive aspect replaces the field's own ratio.
func (c *Config) TargetDims(srcWidth, srcHeight int, aspect float64) (width, height int) {
	if aspect <= 0 {
		aspect = float64(srcWidth) / float64(srcHeight)
	}
	edge := c.TargetSize
	if edge == 0 {
		edge = max(1, int(math.Round(float64(max(srcWidth, srcHeight))/16)))
	}
	return ScaledSize(edge, aspect)
}

// ScaledSize fits a long edge to an aspect ratio (width/height): portrait
// shapes get (long*aspect, long), others (long, long/aspect). Each edge is at
// least 1. A non-positive aspect is treated as square.
func ScaledSize(longEdge int, aspect float64) (width, height int) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	l := float64(longEdge)
	if aspect < 1 {
		width, height = int(l*aspect), longEdge
	} else {
		width, height = longEdge, int(l/aspect)
	}
	return max(1, width), max(1, height)
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "sdfbake: invalid config." + e.Field + ": " + e.Reason
}
