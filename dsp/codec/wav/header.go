package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	// MIMEType is the media type of encoded output.
	MIMEType = "audio/wav"
	// Extension is the conventional file extension.
	Extension = ".wav"
	// HeaderSize is the size of the canonical header written by Encode.
	HeaderSize = 44

	formatPCM    = 1
	fmtChunkSize = 16
)

// Header is the canonical 44-byte RIFF/WAVE header.
type Header struct {
	RIFFSize      uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// NewHeader returns the header for 16-bit PCM with the given layout.
func NewHeader(channels, sampleRate, frames int) Header {
	blockAlign := uint16(channels * 2)
	dataSize := uint32(frames) * uint32(blockAlign)

	return Header{
		RIFFSize:      36 + dataSize,
		AudioFormat:   formatPCM,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: 16,
		DataSize:      dataSize,
	}
}

// Frames returns the number of sample frames announced by the header.
func (h Header) Frames() int {
	if h.BlockAlign == 0 {
		return 0
	}

	return int(h.DataSize / uint32(h.BlockAlign))
}

// Duration returns the playback length announced by the header.
func (h Header) Duration() time.Duration {
	if h.SampleRate == 0 {
		return 0
	}

	return time.Duration(float64(h.Frames()) / float64(h.SampleRate) * float64(time.Second))
}

// MarshalBinary returns the 44 header bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	b := make([]byte, HeaderSize)

	copy(b[0:4], "RIFF")
	binary.LittleEndian.PutUint32(b[4:8], h.RIFFSize)
	copy(b[8:12], "WAVE")

	copy(b[12:16], "fmt ")
	binary.LittleEndian.PutUint32(b[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(b[20:22], h.AudioFormat)
	binary.LittleEndian.PutUint16(b[22:24], h.Channels)
	binary.LittleEndian.PutUint32(b[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(b[28:32], h.ByteRate)
	binary.LittleEndian.PutUint16(b[32:34], h.BlockAlign)
	binary.LittleEndian.PutUint16(b[34:36], h.BitsPerSample)

	copy(b[36:40], "data")
	binary.LittleEndian.PutUint32(b[40:44], h.DataSize)

	return b, nil
}

// ParseHeader parses a canonical header from the first 44 bytes of b.
// Files with extra chunks before "data" are rejected; use Decode for those.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: wav header needs %d bytes, got %d", core.ErrDecodeFailure, HeaderSize, len(b))
	}

	if !bytes.Equal(b[0:4], []byte("RIFF")) || !bytes.Equal(b[8:12], []byte("WAVE")) {
		return Header{}, fmt.Errorf("%w: not a RIFF/WAVE container", core.ErrDecodeFailure)
	}

	if !bytes.Equal(b[12:16], []byte("fmt ")) {
		return Header{}, fmt.Errorf("%w: fmt chunk not at offset 12", core.ErrDecodeFailure)
	}

	if !bytes.Equal(b[36:40], []byte("data")) {
		return Header{}, fmt.Errorf("%w: data chunk not at offset 36", core.ErrDecodeFailure)
	}

	return Header{
		RIFFSize:      binary.LittleEndian.Uint32(b[4:8]),
		AudioFormat:   binary.LittleEndian.Uint16(b[20:22]),
		Channels:      binary.LittleEndian.Uint16(b[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(b[24:28]),
		ByteRate:      binary.LittleEndian.Uint32(b[28:32]),
		BlockAlign:    binary.LittleEndian.Uint16(b[32:34]),
		BitsPerSample: binary.LittleEndian.Uint16(b[34:36]),
		DataSize:      binary.LittleEndian.Uint32(b[40:44]),
	}, nil
}
