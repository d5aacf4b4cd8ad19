// SPDX-License-Identifier: EPL-2.0

// Package playrec plays audio files through a sound card while recording
// its input, and writes what was captured to WAV.
//
// Every recording session runs the same steps:
//
//  1. decode the input and mix it down to mono (optionally resampled)
//  2. normalise the peak to 0.8 of full scale
//  3. append half a second of silence so the tail is captured
//  4. play and record on a [device.Duplex]
//  5. drop the leading silence caused by device latency
//  6. write the recording, creating directories as needed
//  7. optionally plot the played and the recorded signal
//
// # Quick Start
//
//	pairs, _ := discover.Pairs("input_db_small", "output_db_small")
//
//	dev, _ := portaudio.Open(portaudio.Options{})
//	defer dev.Close()
//
//	rec := playrec.New(dev, playrec.DefaultOptions())
//	results, err := rec.Run(ctx, pairs)
//
// Tests and machines without a sound card can use [device.NewLoopback],
// which feeds the playback straight back as the recording.
//
// # Supported Inputs
//
// WAV (PCM 16, 24 and 32-bit), AIFF (16, 24 and 32-bit), MP3 and Ogg
// Vorbis. Recordings are always mono PCM WAV at the bit depth of the input,
// or 16-bit when the input is not integer PCM.
package playrec
