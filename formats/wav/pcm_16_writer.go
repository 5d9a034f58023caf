// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// canonicalHeader is the 44 byte header of a mono 16-bit PCM WAV.
type canonicalHeader struct {
	RIFF       [4]byte
	RIFFSize   uint32
	WAVE       [4]byte
	Fmt        [4]byte
	FmtSize    uint32
	Format     uint16
	Channels   uint16
	SampleRate uint32
	ByteRate   uint32
	BlockAlign uint16
	Bits       uint16
	Data       [4]byte
	DataSize   uint32
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate, the canonical
// container produced by the converters.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	dataSize := uint32(len(samples) * 2)
	h := canonicalHeader{
		RIFF:       [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:   36 + dataSize,
		WAVE:       [4]byte{'W', 'A', 'V', 'E'},
		Fmt:        [4]byte{'f', 'm', 't', ' '},
		FmtSize:    16,
		Format:     formatPCM,
		Channels:   1,
		SampleRate: uint32(sampleRate),
		ByteRate:   uint32(sampleRate * 2),
		BlockAlign: 2,
		Bits:       16,
		Data:       [4]byte{'d', 'a', 't', 'a'},
		DataSize:   dataSize,
	}

	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}
	if len(samples) == 0 {
		return nil
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}

	return nil
}
