// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"io"

	"github.com/go-audio/riff"
)

const (
	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xFFFE

	// Size of a WAVE_FORMAT_EXTENSIBLE fmt chunk. The SubFormat GUID
	// starts at byte 24; its first two bytes are the real format tag.
	extensibleFmtSize = 40
	subFormatOffset   = 24

	// 8-bit WAV samples are unsigned with silence at 128.
	unsigned8Offset = 128
)

// audioFormat reads the format tag of the first fmt chunk in r. For
// WAVE_FORMAT_EXTENSIBLE the tag is taken from the SubFormat GUID; a
// truncated extension yields formatExtensible. ok is false when r has no
// readable fmt chunk.
func audioFormat(r io.Reader) (tag uint16, ok bool) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, false
	}

	for {
		chunk, err := p.NextChunk()
		if err != nil {
			return 0, false
		}
		if chunk.ID != riff.FmtID {
			chunk.Drain()
			continue
		}

		hdr := make([]byte, min(chunk.Size, extensibleFmtSize))
		if len(hdr) < 2 {
			return 0, false
		}
		if _, err := io.ReadFull(chunk, hdr); err != nil {
			return 0, false
		}

		tag = binary.LittleEndian.Uint16(hdr)
		if tag == formatExtensible && len(hdr) == extensibleFmtSize {
			tag = binary.LittleEndian.Uint16(hdr[subFormatOffset:])
		}

		return tag, true
	}
}

// pcmOffset is the value stored for silence at bitDepth.
func pcmOffset(bitDepth int) int {
	if bitDepth == 8 {
		return unsigned8Offset
	}

	return 0
}
