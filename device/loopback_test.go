// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopback_DelaysPlayback(t *testing.T) {
	t.Parallel()

	dev := NewLoopback(2)
	rec, err := dev.PlayRecord(context.Background(), []float64{0.1, 0.2, 0.3, 0.4, 0.5}, 8000)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0.1, 0.2, 0.3}, rec)
	assert.Equal(t, 1, dev.Sessions())
}

func TestLoopback_SameLength(t *testing.T) {
	t.Parallel()

	for _, latency := range []int{0, 1, 10, 1000} {
		dev := NewLoopback(latency)
		playback := make([]float64, 100)
		rec, err := dev.PlayRecord(context.Background(), playback, 44100)
		require.NoError(t, err)
		assert.Len(t, rec, len(playback), "latency %d", latency)
	}
}

func TestLoopback_Gain(t *testing.T) {
	t.Parallel()

	dev := &Loopback{Gain: 0.5}
	rec, err := dev.PlayRecord(context.Background(), []float64{0.4, -0.8}, 8000)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, -0.4}, rec)
}

func TestLoopback_Errors(t *testing.T) {
	t.Parallel()

	dev := NewLoopback(0)

	_, err := dev.PlayRecord(context.Background(), []float64{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dev.PlayRecord(ctx, []float64{1}, 8000)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, dev.Sessions())
}

var _ Duplex = (*Loopback)(nil)
