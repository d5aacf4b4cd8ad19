// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"sync"
)

// Loopback is a Duplex that "records" its own playback, delayed by Latency
// samples and scaled by Gain. It stands in for a cable from the output to
// the input of a sound card.
type Loopback struct {
	Latency int
	Gain    float64

	mu       sync.Mutex
	sessions int
}

// NewLoopback returns a unity gain loopback with the given delay.
func NewLoopback(latency int) *Loopback {
	return &Loopback{Latency: latency, Gain: 1}
}

func (l *Loopback) PlayRecord(ctx context.Context, playback []float64, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions++

	recorded := make([]float64, len(playback))
	delay := max(l.Latency, 0)
	for i := delay; i < len(recorded); i++ {
		recorded[i] = playback[i-delay] * l.Gain
	}

	return recorded, nil
}

// Sessions returns how many recordings have been made.
func (l *Loopback) Sessions() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.sessions
}
