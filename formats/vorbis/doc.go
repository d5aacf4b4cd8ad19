// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files for playback.
//
// Decoding is done by github.com/jfreymuth/oggvorbis. Vorbis has no PCM
// bit depth, so sources report 0 and recordings made from them are
// written as 16-bit WAV.
//
//	file, _ := os.Open("take.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
package vorbis
