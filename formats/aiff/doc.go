// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files for playback.
//
// Decoding is done by github.com/go-audio/aiff. Signed PCM at 8, 16, 24 and
// 32 bits is supported with any channel count; the recorder downmixes to
// mono before playing.
//
//	file, _ := os.Open("take.aiff")
//	source, err := aiff.Decoder{}.Decode(file)
package aiff
