package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Decode reads an integer PCM WAV stream. A sample v at bit depth b maps to
// v/(2^(b-1)-1), so 16-bit data written by Encode round-trips within one
// least significant bit.
func Decode(r io.ReadSeeker) (*buffer.AudioBuffer, error) {
	dec := gowav.NewDecoder(r)

	dec.ReadInfo()

	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: read header: %w", core.ErrDecodeFailure, err)
	}

	if dec.NumChans < 1 || dec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: not a valid wav stream", core.ErrDecodeFailure)
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: unsupported wav format tag %d", core.ErrDecodeFailure, dec.WavAudioFormat)
	}

	scale, err := fullScale(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: read samples: %w", core.ErrDecodeFailure, err)
	}

	return fromIntBuffer(pcm, scale)
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return pcm16Scale, nil
	case 24:
		return 8388607, nil
	case 32:
		return 2147483647, nil
	default:
		return 0, fmt.Errorf("%w: unsupported bit depth %d", core.ErrDecodeFailure, bitDepth)
	}
}

// fromIntBuffer deinterleaves pcm into an AudioBuffer.
func fromIntBuffer(pcm *audio.IntBuffer, scale float64) (*buffer.AudioBuffer, error) {
	if pcm == nil || pcm.Format == nil {
		return nil, fmt.Errorf("%w: missing pcm format", core.ErrDecodeFailure)
	}

	channels := pcm.Format.NumChannels
	if channels < 1 {
		return nil, fmt.Errorf("%w: invalid channel count %d", core.ErrDecodeFailure, channels)
	}

	frames := len(pcm.Data) / channels

	out, err := buffer.New(channels, frames, pcm.Format.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrDecodeFailure, err)
	}

	inv := 1 / scale

	for ch := range channels {
		dst := out.Channel(ch)
		for i := range frames {
			dst[i] = float64(pcm.Data[i*channels+ch]) * inv
		}
	}

	return out, nil
}
