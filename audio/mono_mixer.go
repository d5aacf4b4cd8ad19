// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// minMixBuffer is the smallest scratch buffer the mixer allocates.
const minMixBuffer = 8192

// MonoMixer averages the channels of src into a single channel. Mono
// sources pass through untouched.
type MonoMixer struct {
	src Source
	tmp []float32
	// pending holds a frame the source delivered only part of.
	pending []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BitDepth() int   { return m.src.BitDepth() }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("closing mixer source: %w", err)
	}

	return nil
}

// ReadSamples fills dst with mono frames and returns how many were written.
// Values of a frame split across source reads are held until the frame
// completes.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	needed := len(dst) * channels
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, max(needed, minMixBuffer))
	}
	m.tmp = m.tmp[:needed]

	var (
		total int
		err   error
	)
	for {
		held := copy(m.tmp, m.pending)
		m.pending = m.pending[:0]

		var n int
		n, err = m.src.ReadSamples(m.tmp[held:])
		total = held + n

		whole := total - total%channels
		m.pending = append(m.pending, m.tmp[whole:total]...)

		if whole > 0 || n == 0 || err != nil {
			break
		}
	}
	if total < channels {
		return 0, err
	}
	frames := total / channels

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	default:
		inv := float32(1) / float32(channels)
		for f := range frames {
			var sum float32
			base := f * channels
			for c := range channels {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	}

	return frames, err
}
