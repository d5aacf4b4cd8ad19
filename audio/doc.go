// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives the recorder builds on.
//
//   - Source interface for decoded PCM input
//   - Registry mapping file extensions to decoders
//   - MonoMixer for channel downmixing
//   - Resampler for playback rate conversion
//   - Buffer and ReadAll for collecting a stream into memory
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    BitDepth() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders, the mixer and the resampler all implement Source, so they chain:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	res := audio.NewResampler(src, 48000)
//	buf, err := audio.ReadAll(res) // mono, float64
//
// # Sample Format
//
// Samples are floats in [-1.0, 1.0]. Streams use float32; Buffer uses
// float64 so signal processing does not lose precision. BitDepth carries
// the PCM depth of the original file so a recording can be written back in
// the same encoding.
//
// # Error Handling
//
// ReadSamples returns io.EOF when the stream is drained. ReadAll consumes
// the io.EOF and reports ErrEmptySource for streams without samples.
package audio
