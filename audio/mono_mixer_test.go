// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/playrec/internal/audiotest"
)

func TestMonoMixer_Metadata(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(22050, 2, 10).WithBitDepth(24)
	mono := NewMonoMixer(src)

	assert.Equal(t, 22050, mono.SampleRate())
	assert.Equal(t, 1, mono.Channels())
	assert.Equal(t, 24, mono.BitDepth())
	assert.Equal(t, src.BufSize(), mono.BufSize())
	assert.NoError(t, mono.Close())
}

func TestMonoMixer_AveragesStereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 4, func(sample, channel int) float32 {
		if channel == 0 {
			return 0.5
		}
		return -0.25
	})
	mono := NewMonoMixer(src)

	dst := make([]float32, 8)
	n, err := mono.ReadSamples(dst)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 4, n)

	for i := range n {
		assert.InDelta(t, 0.125, dst[i], 1e-6)
	}
}

func TestMonoMixer_AveragesMultichannel(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 4, 3, func(_, channel int) float32 {
		return float32(channel) * 0.1
	})
	mono := NewMonoMixer(src)

	dst := make([]float32, 3)
	n, _ := mono.ReadSamples(dst)
	require.Equal(t, 3, n)
	for i := range n {
		assert.InDelta(t, 0.15, dst[i], 1e-6)
	}
}

func TestMonoMixer_MonoPassThrough(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSliceSource(8000, []float32{0.1, -0.2, 0.3})
	mono := NewMonoMixer(src)

	dst := make([]float32, 3)
	n, _ := mono.ReadSamples(dst)
	require.Equal(t, 3, n)
	assert.Equal(t, []float32{0.1, -0.2, 0.3}, dst)
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	mono := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	n, err := mono.ReadSamples(nil)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestMonoMixer_PropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	mono := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10).WithError(boom))

	_, err := mono.ReadSamples(make([]float32, 4))
	assert.ErrorIs(t, err, boom)
}

// chunkedSource serves interleaved values at most step at a time,
// regardless of frame boundaries.
type chunkedSource struct {
	channels int
	data     []float32
	step     int
}

func (c *chunkedSource) SampleRate() int { return 8000 }
func (c *chunkedSource) Channels() int   { return c.channels }
func (c *chunkedSource) BitDepth() int   { return 16 }
func (c *chunkedSource) BufSize() int    { return 4096 }
func (c *chunkedSource) Close() error    { return nil }

func (c *chunkedSource) ReadSamples(dst []float32) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := copy(dst[:min(len(dst), c.step)], c.data)
	c.data = c.data[n:]
	if len(c.data) == 0 {
		return n, io.EOF
	}
	return n, nil
}

func TestMonoMixer_SplitFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		step     int
		dstLen   int
	}{
		{"stereo odd reads", 2, 3, 4},
		{"stereo single values", 2, 1, 2},
		{"three channels", 3, 4, 2},
		{"four channels", 4, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			const frames = 10
			data := make([]float32, frames*tt.channels)
			want := make([]float32, frames)
			for f := range frames {
				for c := range tt.channels {
					data[f*tt.channels+c] = float32(f) + float32(c)*0.01
				}
				var sum float32
				for c := range tt.channels {
					sum += data[f*tt.channels+c]
				}
				want[f] = sum / float32(tt.channels)
			}

			mono := NewMonoMixer(&chunkedSource{channels: tt.channels, data: data, step: tt.step})

			var got []float32
			dst := make([]float32, tt.dstLen)
			for range 100 {
				n, err := mono.ReadSamples(dst)
				got = append(got, dst[:n]...)
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
			}

			require.Len(t, got, frames)
			for i := range want {
				assert.InDelta(t, want[i], got[i], 1e-5, "frame %d", i)
			}
		})
	}
}
