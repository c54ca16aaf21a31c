package hostio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/codec/wav"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// mp3Channels is the layout go-mp3 always produces.
const mp3Channels = 2

// readChunk is the number of interleaved values pulled per decoder read.
const readChunk = 8192

// DecodeFile opens path and decodes it. The container is taken from the file
// extension and falls back to sniffing the header.
func DecodeFile(path string) (*buffer.AudioBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hostio: open %q: %w", path, err)
	}
	defer f.Close()

	buf, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("hostio: decode %q: %w", path, err)
	}

	return buf, nil
}

// Decode reads a whole stream. FormatUnknown sniffs the first bytes.
func Decode(r io.ReadSeeker, format Format) (*buffer.AudioBuffer, error) {
	if format == FormatUnknown {
		sniffed, err := sniff(r)
		if err != nil {
			return nil, err
		}

		format = sniffed
	}

	switch format {
	case FormatWAV:
		return wav.Decode(r)
	case FormatMP3:
		return decodeMP3(r)
	case FormatOgg:
		return decodeOgg(r)
	default:
		return nil, fmt.Errorf("%w: unrecognized container", core.ErrDecodeFailure)
	}
}

func sniff(r io.ReadSeeker) (Format, error) {
	head := make([]byte, sniffLen)

	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, fmt.Errorf("%w: read header: %w", core.ErrDecodeFailure, err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return FormatUnknown, fmt.Errorf("%w: rewind: %w", core.ErrDecodeFailure, err)
	}

	return Sniff(head[:n]), nil
}

// mp3Source is the subset of the go-mp3 decoder used here.
type mp3Source interface {
	io.Reader
	SampleRate() int
}

func decodeMP3(r io.Reader) (*buffer.AudioBuffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %w", core.ErrDecodeFailure, err)
	}

	return readMP3(dec)
}

// readMP3 converts 16-bit little-endian stereo PCM to float samples.
func readMP3(dec mp3Source) (*buffer.AudioBuffer, error) {
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %w", core.ErrDecodeFailure, err)
	}

	frameBytes := 2 * mp3Channels
	frames := len(pcm) / frameBytes

	out, err := buffer.New(mp3Channels, frames, dec.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %w", core.ErrDecodeFailure, err)
	}

	left, right := out.Channel(0), out.Channel(1)
	for i := range frames {
		off := i * frameBytes
		left[i] = float64(int16(binary.LittleEndian.Uint16(pcm[off:]))) / 32768
		right[i] = float64(int16(binary.LittleEndian.Uint16(pcm[off+2:]))) / 32768
	}

	return out, nil
}

// oggSource is the subset of the oggvorbis reader used here.
type oggSource interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

func decodeOgg(r io.Reader) (*buffer.AudioBuffer, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: ogg: %w", core.ErrDecodeFailure, err)
	}

	return readOgg(dec)
}

// readOgg drains an interleaved float32 source and deinterleaves it.
func readOgg(dec oggSource) (*buffer.AudioBuffer, error) {
	channels := dec.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: ogg: invalid channel count %d", core.ErrDecodeFailure, channels)
	}

	chunk := make([]float32, readChunk-readChunk%channels)
	if len(chunk) == 0 {
		chunk = make([]float32, channels)
	}

	var interleaved []float32

	for {
		n, err := dec.Read(chunk)
		interleaved = append(interleaved, chunk[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: ogg: %w", core.ErrDecodeFailure, err)
		}

		if n == 0 {
			break
		}
	}

	frames := len(interleaved) / channels

	out, err := buffer.New(channels, frames, dec.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("%w: ogg: %w", core.ErrDecodeFailure, err)
	}

	for ch := range channels {
		dst := out.Channel(ch)
		for i := range frames {
			dst[i] = float64(interleaved[i*channels+ch])
		}
	}

	return out, nil
}
