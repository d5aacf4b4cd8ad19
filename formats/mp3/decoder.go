// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/playrec/audio"
)

const (
	// go-mp3 always produces 16-bit little-endian stereo.
	mp3Channels = 2
	mp3BitDepth = 16
	frameBytes  = mp3Channels * mp3BitDepth / 8
)

// mp3Reader is the part of gomp3.Decoder the source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// carry holds the bytes of a frame the previous read cut short.
	carry  [frameBytes]byte
	nCarry int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return mp3Channels }
func (s *source) BitDepth() int   { return mp3BitDepth }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

// ReadSamples returns whole stereo frames only, so n is always even.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst) < mp3Channels {
		return 0, audio.ErrInvalidDstSize
	}

	need := len(dst) / mp3Channels * frameBytes
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := copy(s.buf, s.carry[:s.nCarry])
	s.nCarry = 0

	n, err := s.dec.Read(s.buf[off:])
	n += off

	whole := n - n%frameBytes
	s.nCarry = copy(s.carry[:], s.buf[whole:n])

	samples := whole / 2
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(v) / 32768.0
	}

	return samples, err
}

// Decoder reads MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
