// SPDX-License-Identifier: EPL-2.0

package playrec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/playrec/audio"
	"github.com/ik5/playrec/formats/aiff"
	"github.com/ik5/playrec/formats/mp3"
	"github.com/ik5/playrec/formats/vorbis"
	"github.com/ik5/playrec/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	return reg
}

// ResampleToMono mixes src down to mono and, when targetRate is positive and
// differs from the source rate, resamples it. The whole stream is read into
// memory.
func ResampleToMono(src audio.Source, targetRate int) (*audio.Buffer, error) {
	// Mix first so the resampler only runs on one channel.
	var pipeline audio.Source = src
	if src.Channels() != 1 {
		pipeline = audio.NewMonoMixer(pipeline)
	}
	if targetRate > 0 && targetRate != src.SampleRate() {
		pipeline = audio.NewResampler(pipeline, targetRate)
	}

	return audio.ReadAll(pipeline)
}

// Load decodes the file at path with the decoder registered for its
// extension and returns it as a mono buffer. targetRate works as in
// ResampleToMono.
func Load(reg *audio.Registry, path string, targetRate int) (*audio.Buffer, error) {
	ext := filepath.Ext(path)
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	buf, err := ResampleToMono(src, targetRate)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return buf, nil
}
