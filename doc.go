// Package sdfbake computes signed distance fields from bilevel rasters.
//
// # Overview
//
// A signed distance field stores, for every pixel, the distance to the
// nearest boundary between the two classes of a bilevel image, negative on
// one side and positive on the other. Sampled with bilinear filtering and
// thresholded with a smoothstep, a small field reproduces sharp,
// anti-aliased edges at any scale.
//
// sdfbake uses exact brute force: each pixel scans a (2r+1)^2 neighbourhood
// of a padded source raster for the nearest sample of the opposite class,
// using a precomputed table of offset distances. Pixels with no opposite
// sample within the radius saturate at maxDist = sqrt(2r^2).
//
// # Quick Start
//
//	img := ... // *image.Gray padded by cfg.Radius on every side
//	src, err := sdfbake.NewSourceBuffer(img, cfg.Radius)
//	if err != nil {
//	    return err
//	}
//	res, err := sdfbake.Bake(src, cfg)
//	if err != nil {
//	    return err
//	}
//	png.Encode(w, res.Field.Gray())
//
// # Encoding
//
// Samples >= 128 classify inside and receive negative distances. A signed
// distance d is stored as round(((d/maxDist)+1) * 0.5 * 255), so 0 is
// maxDist inside, 255 is maxDist outside and the boundary lies near 128.
// Config.Negate inverts the stored values.
//
// # Concurrency
//
// Output rows are interleaved across a fixed number of goroutines (row y
// belongs to worker y % threads). The source and kernel are shared
// read-only and each worker writes only its own rows, so no locking is
// involved and the field is bit-identical for any thread count.
//
// # Related Packages
//
//   - shape: vector paths and fills
//   - svg: SVG documents to shapes
//   - glyph: shaped text to shapes
//   - raster: shapes to padded source rasters
package sdfbake
