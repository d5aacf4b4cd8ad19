// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOggReader struct {
	sampleRate int
	channels   int
	data       []float32
	lastAsk    int
}

func (m *mockOggReader) SampleRate() int { return m.sampleRate }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	m.lastAsk = len(p)
	if len(m.data) == 0 {
		return 0, io.EOF
	}

	n := copy(p, m.data)
	m.data = m.data[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not Ogg data")))
	assert.Error(t, err)
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggReader{}, sampleRate: 48000, channels: 2}
	assert.Equal(t, 48000, src.SampleRate())
	assert.Equal(t, 2, src.Channels())
	assert.Zero(t, src.BitDepth())
	assert.Positive(t, src.BufSize())
	assert.NoError(t, src.Close())
}

func TestSource_ReadSamples_WholeFrames(t *testing.T) {
	t.Parallel()

	dec := &mockOggReader{sampleRate: 48000, channels: 2, data: []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}}
	src := &source{dec: dec, sampleRate: 48000, channels: 2}

	dst := make([]float32, 5)
	n, err := src.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, 4, dec.lastAsk)
	assert.Equal(t, 4, n)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, dst[:n])

	n, err = src.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.6}, dst[:n])

	n, err = src.ReadSamples(dst)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_ReadSamples_TooSmallForFrame(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggReader{channels: 2, data: []float32{1, 1}}, channels: 2}
	n, err := src.ReadSamples(make([]float32, 1))
	assert.NoError(t, err)
	assert.Zero(t, n)
}
