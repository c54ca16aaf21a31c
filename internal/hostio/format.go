package hostio

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Format identifies a container.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatMP3
	FormatOgg
)

// String returns the lowercase container name.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatMP3:
		return "mp3"
	case FormatOgg:
		return "ogg"
	default:
		return "unknown"
	}
}

// ParseFormat resolves a container name as given on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "wav", "wave":
		return FormatWAV, nil
	case "mp3":
		return FormatMP3, nil
	case "ogg", "oga", "vorbis":
		return FormatOgg, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: unknown audio format %q", core.ErrInvalidParameter, s)
	}
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatUnknown
	}

	return f
}

// sniffLen is the number of leading bytes Sniff inspects.
const sniffLen = 12

// Sniff inspects the leading bytes of a stream.
func Sniff(head []byte) Format {
	switch {
	case len(head) >= 12 && bytes.Equal(head[0:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return FormatWAV
	case len(head) >= 4 && bytes.Equal(head[0:4], []byte("OggS")):
		return FormatOgg
	case len(head) >= 3 && bytes.Equal(head[0:3], []byte("ID3")):
		return FormatMP3
	case len(head) >= 2 && head[0] == 0xff && head[1]&0xe0 == 0xe0:
		// MPEG frame sync.
		return FormatMP3
	default:
		return FormatUnknown
	}
}
