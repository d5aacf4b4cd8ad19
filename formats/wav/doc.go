// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files.
//
// Both directions go through github.com/go-audio/wav, which takes care of
// the RIFF chunk layout.
//
// # Supported Formats
//
//   - Unsigned 8-bit and signed 16, 24 and 32-bit integer PCM
//   - WAVE_FORMAT_EXTENSIBLE files whose SubFormat is PCM
//   - Any channel count and sample rate when decoding
//   - Mono when encoding
//
// IEEE float and compressed files are rejected with ErrOnlyPCMSupported.
// Other sample sizes are rejected with ErrUnsupportedBitDepth.
//
// # Decoding
//
//	file, _ := os.Open("take.wav")
//	source, err := wav.Decoder{}.Decode(file)
//
// The decoder returns an audio.Source with samples in [-1.0, 1.0] and
// reports the file's bit depth so a recording can be written back with the
// same encoding. ReadFile is a shortcut that decodes straight into a mono
// audio.Buffer.
//
// # Encoding
//
//	buf := &audio.Buffer{Samples: samples, SampleRate: 48000, BitDepth: 24}
//	err := wav.WriteFile("out.wav", buf)
//
// Encode works on any io.WriteSeeker since the header sizes are patched
// after the data is written.
package wav
