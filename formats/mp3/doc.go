// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files for playback.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always yields
// 16-bit stereo PCM regardless of the stream's channel mode. The recorder
// downmixes to mono before playing.
//
//	file, _ := os.Open("take.mp3")
//	source, err := mp3.Decoder{}.Decode(file)
package mp3
