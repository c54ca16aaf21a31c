package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	pcm16Scale = 32767.0

	// frames converted per Write call
	writeChunkFrames = 4096
)

// Encode writes buf as 16-bit PCM WAV. Samples are clamped to [-1, 1] and
// scaled by 32767 with rounding. buf is not modified.
func Encode(w io.Writer, buf *buffer.AudioBuffer) error {
	if buf == nil {
		return fmt.Errorf("%w: wav encode: nil buffer", core.ErrInvalidParameter)
	}

	channels := buf.ChannelCount()
	frames := buf.FrameCount()

	if channels > math.MaxUint16 {
		return fmt.Errorf("%w: wav encode: too many channels: %d", core.ErrInvalidParameter, channels)
	}

	if uint64(frames)*uint64(channels)*2 > math.MaxUint32-36 {
		return fmt.Errorf("%w: wav encode: data exceeds 4 GiB", core.ErrInvalidParameter)
	}

	header, err := NewHeader(channels, buf.SampleRate(), frames).MarshalBinary()
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrEncodeFailure, err)
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w: write header: %w", core.ErrEncodeFailure, err)
	}

	if frames == 0 {
		return nil
	}

	data := buf.Channels()
	chunk := make([]byte, min(frames, writeChunkFrames)*channels*2)

	for start := 0; start < frames; start += writeChunkFrames {
		end := min(start+writeChunkFrames, frames)
		out := chunk[:(end-start)*channels*2]

		pos := 0
		for i := start; i < end; i++ {
			for ch := range channels {
				binary.LittleEndian.PutUint16(out[pos:pos+2], uint16(quantize16(data[ch][i])))
				pos += 2
			}
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("%w: write samples: %w", core.ErrEncodeFailure, err)
		}
	}

	return nil
}

// EncodeBytes returns the encoded container as a byte slice.
func EncodeBytes(buf *buffer.AudioBuffer) ([]byte, error) {
	var out bytes.Buffer

	if buf != nil {
		out.Grow(HeaderSize + buf.FrameCount()*buf.ChannelCount()*2)
	}

	if err := Encode(&out, buf); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func quantize16(x float64) int16 {
	if math.IsNaN(x) {
		return 0
	}

	return int16(math.Round(core.Clamp(x, -1, 1) * pcm16Scale))
}
