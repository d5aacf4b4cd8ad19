// SPDX-License-Identifier: EPL-2.0

// Package utils holds PCM sample conversions shared by the codecs and the
// recorder.
package utils

import "math"

// FullScale returns the magnitude of the most negative signed PCM value for
// bitDepth, e.g. 32768 for 16-bit and 128 for 8-bit. Unknown depths fall
// back to 16-bit.
func FullScale(bitDepth int) float64 {
	if !SupportedBitDepth(bitDepth) {
		bitDepth = 16
	}

	return float64(int64(1) << (bitDepth - 1))
}

// SupportedBitDepth reports whether bitDepth is a PCM depth the codecs can
// round-trip. Values are handled as signed; containers that store 8-bit
// samples unsigned apply their own offset.
func SupportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}

// PCMToFloat scales a signed PCM value to [-1, 1).
func PCMToFloat(v int, bitDepth int) float64 {
	return float64(v) / FullScale(bitDepth)
}

// FloatToPCM scales x to a signed PCM value of bitDepth, clamping out of
// range input to the representable limits.
func FloatToPCM(x float64, bitDepth int) int {
	scale := FullScale(bitDepth)
	if math.IsNaN(x) {
		return 0
	}

	v := math.Round(x * scale)
	if v > scale-1 {
		v = scale - 1
	} else if v < -scale {
		v = -scale
	}

	return int(v)
}
