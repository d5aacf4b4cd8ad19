// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the signal steps around a play/record session: peak
// normalisation, silence padding and latency trimming.
package dsp

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	// TargetPeak is the fraction of full scale playback is normalised to.
	TargetPeak = 0.8

	// NoiseFloor is three 16-bit quantisation steps. Recorded samples at
	// or below it count as silence when looking for the first sound.
	NoiseFloor = 3.0 / (1 << 15)
)

// ErrSilent is returned by Normalize when the input has no non-zero sample.
var ErrSilent = errors.New("signal is silent")

// Peak returns the largest absolute sample value of x.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return floats.Norm(x, math.Inf(1))
}

// Normalize returns a copy of x scaled so its peak absolute value equals
// target. A silent (or empty) x is returned unscaled together with
// ErrSilent.
func Normalize(x []float64, target float64) ([]float64, error) {
	out := make([]float64, len(x))
	copy(out, x)

	peak := Peak(x)
	if peak == 0 {
		return out, ErrSilent
	}

	floats.Scale(target/peak, out)
	return out, nil
}

// PadLength returns the number of samples d spans at sampleRate. Halves
// round to even, so 0.5 s at 11025 Hz is 5512 samples.
func PadLength(sampleRate int, d time.Duration) int {
	if d <= 0 || sampleRate <= 0 {
		return 0
	}

	return int(math.RoundToEven(d.Seconds() * float64(sampleRate)))
}

// Pad returns x followed by d worth of silence.
func Pad(x []float64, sampleRate int, d time.Duration) []float64 {
	out := make([]float64, len(x)+PadLength(sampleRate, d))
	copy(out, x)

	return out
}

// LatencyIndex returns the index of the first sample whose magnitude
// exceeds eps, or 0 when none does.
func LatencyIndex(x []float64, eps float64) int {
	for i, v := range x {
		if math.Abs(v) > eps {
			return i
		}
	}

	return 0
}

// TrimLatency drops everything before LatencyIndex(x, eps). The result
// shares x's backing array.
func TrimLatency(x []float64, eps float64) ([]float64, int) {
	k := LatencyIndex(x, eps)
	return x[k:], k
}
