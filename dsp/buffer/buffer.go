package buffer

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// AudioBuffer holds planar PCM audio: one float64 slice per channel, all of
// the same length. Samples are nominally in [-1, 1] but are not clamped.
type AudioBuffer struct {
	channels   [][]float64
	sampleRate int
}

// New returns a zero-filled buffer.
func New(channelCount, frameCount, sampleRate int) (*AudioBuffer, error) {
	if channelCount < 1 {
		return nil, fmt.Errorf("%w: channel count must be >= 1: %d", core.ErrInvalidParameter, channelCount)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %d", core.ErrInvalidParameter, sampleRate)
	}

	if frameCount < 0 {
		return nil, fmt.Errorf("%w: frame count must be >= 0: %d", core.ErrInvalidParameter, frameCount)
	}

	channels := make([][]float64, channelCount)
	for ch := range channels {
		channels[ch] = make([]float64, frameCount)
	}

	return &AudioBuffer{channels: channels, sampleRate: sampleRate}, nil
}

// FromChannels wraps existing channel slices without copying.
// Mutations to the slices are visible through the buffer and vice versa.
func FromChannels(channels [][]float64, sampleRate int) (*AudioBuffer, error) {
	if len(channels) < 1 {
		return nil, fmt.Errorf("%w: channel count must be >= 1: %d", core.ErrInvalidParameter, len(channels))
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %d", core.ErrInvalidParameter, sampleRate)
	}

	n := len(channels[0])
	for ch, samples := range channels {
		if len(samples) != n {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d",
				core.ErrInvalidParameter, ch, len(samples), n)
		}
	}

	return &AudioBuffer{channels: channels, sampleRate: sampleRate}, nil
}

// Channel returns the mutable sample slice of channel i.
// It panics if i is out of range.
func (b *AudioBuffer) Channel(i int) []float64 {
	return b.channels[i]
}

// Channels returns all channel slices.
func (b *AudioBuffer) Channels() [][]float64 {
	return b.channels
}

// ChannelCount returns the number of channels.
func (b *AudioBuffer) ChannelCount() int {
	return len(b.channels)
}

// FrameCount returns the number of frames (samples per channel).
func (b *AudioBuffer) FrameCount() int {
	return len(b.channels[0])
}

// SampleRate returns the sample rate in Hz.
func (b *AudioBuffer) SampleRate() int {
	return b.sampleRate
}

// DurationSeconds returns frameCount / sampleRate.
func (b *AudioBuffer) DurationSeconds() float64 {
	return float64(b.FrameCount()) / float64(b.sampleRate)
}

// Duration returns the playing time of the buffer.
func (b *AudioBuffer) Duration() time.Duration {
	return time.Duration(b.DurationSeconds() * float64(time.Second))
}

// Clone returns a deep copy.
func (b *AudioBuffer) Clone() *AudioBuffer {
	channels := make([][]float64, len(b.channels))
	for ch, samples := range b.channels {
		channels[ch] = append([]float64(nil), samples...)
	}

	return &AudioBuffer{channels: channels, sampleRate: b.sampleRate}
}

// Peak returns the largest absolute sample value over all channels.
func (b *AudioBuffer) Peak() float64 {
	peak := 0.0
	for _, samples := range b.channels {
		peak = max(peak, core.Peak(samples))
	}

	return peak
}

// NormalizePeak divides every sample by the buffer peak when that peak
// exceeds 1.0. It reports whether scaling was applied.
func (b *AudioBuffer) NormalizePeak() bool {
	peak := b.Peak()
	if peak <= 1 {
		return false
	}

	b.Scale(1 / peak)

	return true
}

// Scale multiplies every sample by gain in place.
func (b *AudioBuffer) Scale(gain float64) {
	for _, samples := range b.channels {
		vecmath.ScaleBlockInPlace(samples, gain)
	}
}

// Mono returns a single-channel buffer holding the mean of all channels.
// A mono buffer is returned as a copy.
func (b *AudioBuffer) Mono() *AudioBuffer {
	out := make([]float64, b.FrameCount())
	for _, samples := range b.channels {
		vecmath.AddBlockInPlace(out, samples)
	}

	vecmath.ScaleBlockInPlace(out, 1/float64(len(b.channels)))

	return &AudioBuffer{channels: [][]float64{out}, sampleRate: b.sampleRate}
}
