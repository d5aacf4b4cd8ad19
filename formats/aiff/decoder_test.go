// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAiffReader struct {
	format  *goaudio.Format
	samples []int
	offset  int
	err     error
}

func (m *mockAiffReader) Format() *goaudio.Format { return m.format }

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func newMockSource(bitDepth int, samples []int) *source {
	return &source{
		dec: &mockAiffReader{
			format:  &goaudio.Format{NumChannels: 1, SampleRate: 44100},
			samples: samples,
		},
		sampleRate: 44100,
		channels:   1,
		bitDepth:   bitDepth,
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not AIFF data")))
	assert.ErrorIs(t, err, ErrNotAiffFile)
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewBuffer(nil))
	assert.Error(t, err)
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newMockSource(24, nil)
	assert.Equal(t, 44100, src.SampleRate())
	assert.Equal(t, 1, src.Channels())
	assert.Equal(t, 24, src.BitDepth())
	assert.Equal(t, 4096, src.BufSize())
	assert.NoError(t, src.Close())
}

func TestSource_ReadSamples_BitDepthScaling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		half     int
	}{
		{16, 1 << 14},
		{24, 1 << 22},
		{32, 1 << 30},
	}

	for _, tt := range tests {
		src := newMockSource(tt.bitDepth, []int{tt.half, -tt.half, 0})

		dst := make([]float32, 3)
		n, err := src.ReadSamples(dst)
		require.NoError(t, err)
		require.Equal(t, 3, n)

		assert.InDelta(t, 0.5, dst[0], 1e-6, "%d-bit", tt.bitDepth)
		assert.InDelta(t, -0.5, dst[1], 1e-6, "%d-bit", tt.bitDepth)
		assert.InDelta(t, 0, dst[2], 1e-6, "%d-bit", tt.bitDepth)
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newMockSource(16, []int{1, 2, 3})

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	assert.Equal(t, 3, n)
	assert.ErrorIs(t, err, io.EOF)

	n, err = src.ReadSamples(dst)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	n, err := newMockSource(16, []int{1}).ReadSamples(nil)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := newMockSource(16, nil)
	src.dec.(*mockAiffReader).err = boom

	_, err := src.ReadSamples(make([]float32, 2))
	assert.ErrorIs(t, err, boom)
}
