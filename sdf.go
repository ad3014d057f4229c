package sdfbake

import "math"

// Threshold is the bilevel classification cut: samples at or above it
// classify as inside, samples below it as outside.
const Threshold = 128

// Classify reports whether sample v classifies as inside.
func Classify(v uint8) bool {
	return v >= Threshold
}

// Encode maps a signed distance in [-maxDist, maxDist] to the stored byte
// range. Inside distances are negative and land below 128, outside
// distances land above it. Values outside the range saturate.
//
//	output = round(((signed / maxDist) + 1) * 0.5 * 255)
func Encode(signed, maxDist float64) uint8 {
	v := math.Round(((signed / maxDist) + 1.0) * 0.5 * 255)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Decode is the inverse of Encode up to quantization: it returns the signed
// distance in source pixels that sample v represents.
func Decode(v uint8, maxDist float64) float64 {
	return (float64(v)/255*2 - 1) * maxDist
}
