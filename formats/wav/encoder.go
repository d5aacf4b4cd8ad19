// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/playrec/audio"
	"github.com/ik5/playrec/utils"
)

// Encode writes buf as a mono PCM WAV. The bit depth of buf is kept when it
// is 8, 16, 24 or 32-bit, otherwise 16-bit is used. Samples outside [-1, 1]
// are clamped.
func Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	if buf.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	bitDepth := buf.BitDepth
	if !utils.SupportedBitDepth(bitDepth) {
		bitDepth = audio.DefaultBitDepth
	}

	offset := pcmOffset(bitDepth)
	data := make([]int, len(buf.Samples))
	for i, v := range buf.Samples {
		data[i] = utils.FloatToPCM(v, bitDepth) + offset
	}

	enc := gowav.NewEncoder(w, buf.SampleRate, bitDepth, 1, formatPCM)
	err := enc.Write(&goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  buf.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		return fmt.Errorf("encoding samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav header: %w", err)
	}

	return nil
}

// WriteFile encodes buf into a new file at path. The parent directory must
// exist.
func WriteFile(path string, buf *audio.Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	return Encode(f, buf)
}

// ReadFile decodes the WAV file at path into a mono buffer.
func ReadFile(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := Decoder{}.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	return audio.ReadAll(src)
}
