// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// DefaultBitDepth is used for buffers whose source is not integer PCM.
const DefaultBitDepth = 16

// Buffer is an in-memory mono signal.
type Buffer struct {
	// Samples in [-1, 1].
	Samples    []float64
	SampleRate int
	// BitDepth is the PCM depth the samples came from and should be
	// written back with.
	BitDepth int
}

// Len returns the number of samples.
func (b *Buffer) Len() int { return len(b.Samples) }

// Duration returns the play time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// ReadAll drains src into a mono Buffer. Multi-channel sources are averaged
// down with a MonoMixer. ErrEmptySource is returned when src has no samples.
func ReadAll(src Source) (*Buffer, error) {
	var mono Source = src
	if src.Channels() != 1 {
		mono = NewMonoMixer(src)
	}

	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	chunk := make([]float32, size)

	bitDepth := src.BitDepth()
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}

	buf := &Buffer{
		SampleRate: src.SampleRate(),
		BitDepth:   bitDepth,
		Samples:    make([]float64, 0, src.SampleRate()),
	}

	for {
		n, err := mono.ReadSamples(chunk)
		for i := range n {
			buf.Samples = append(buf.Samples, float64(chunk[i]))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			// Nothing and no error: the decoder is drained.
			break
		}
	}

	if len(buf.Samples) == 0 {
		return nil, ErrEmptySource
	}

	return buf, nil
}
