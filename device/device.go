// SPDX-License-Identifier: EPL-2.0

// Package device defines the duplex audio capability the recorder drives
// and a loopback implementation that needs no hardware.
package device

import (
	"context"
	"errors"
)

var (
	// ErrLengthMismatch is returned when a device hands back a recording
	// whose length differs from the playback buffer.
	ErrLengthMismatch = errors.New("recording length differs from playback length")

	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)

// Duplex plays a mono buffer while capturing one input channel.
//
// PlayRecord blocks until the whole playback buffer has been played and
// returns exactly len(playback) recorded samples taken at sampleRate.
// Only one session may use a device at a time.
type Duplex interface {
	PlayRecord(ctx context.Context, playback []float64, sampleRate int) ([]float64, error)
}
