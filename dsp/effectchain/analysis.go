package effectchain

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/pitch"
	"github.com/cwbudde/algo-audiofx/dsp/signal"
)

// NoiseParams describes a noise render. Noise is a source, not an effect:
// Generate produces a new mono buffer.
type NoiseParams struct {
	Type            signal.NoiseType
	DurationSeconds float64 // (0, 600]
	VolumePercent   float64 // [0, 100]
	Seed            int64
}

// DefaultNoiseParams returns 10 s of white noise at 50%.
func DefaultNoiseParams() NoiseParams {
	return NoiseParams{Type: signal.White, DurationSeconds: 10, VolumePercent: 50, Seed: 1}
}

// Validate checks the parameters for sampleRate.
func (p NoiseParams) Validate(sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: noise sample rate must be > 0: %d", core.ErrInvalidParameter, sampleRate)
	}

	if err := checkIntRange("noise type", int(p.Type), int(signal.White), int(signal.Brown)); err != nil {
		return err
	}

	if err := checkRange("noise durationSeconds", p.DurationSeconds, 1/float64(sampleRate), signal.MaxNoiseSeconds); err != nil {
		return err
	}

	return checkRange("noise volumePercent", p.VolumePercent, 0, 100)
}

// Generate renders the noise at sampleRate. The same seed always yields the
// same samples.
func (p NoiseParams) Generate(ctx context.Context, sampleRate int) (*buffer.AudioBuffer, error) {
	if err := p.Validate(sampleRate); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return signal.Synthesize(p.Type, p.DurationSeconds, p.VolumePercent/100, sampleRate, rand.New(rand.NewSource(p.Seed)))
}

// DefaultPitchWindow is the number of frames analyzed when
// PitchParams.WindowFrames is zero.
const DefaultPitchWindow = 4096

// PitchParams configures pitch analysis.
type PitchParams struct {
	// SilenceThreshold is the RMS below which no pitch is reported. Zero
	// selects the detector default of 0.01.
	SilenceThreshold float64
	MinFrequencyHz   float64
	MaxFrequencyHz   float64

	// WindowFrames is the length of the analyzed excerpt. Zero selects
	// DefaultPitchWindow. Buffers no longer than the window are analyzed
	// whole.
	WindowFrames int
	// WindowOffset is the first analyzed frame. Zero starts a quarter of
	// the way into the buffer, past any attack. The window is moved back
	// when it would run past the end.
	WindowOffset int
}

// PitchResult is a pitch estimate with its nearest equal-tempered note.
type PitchResult struct {
	pitch.Estimate
	Note pitch.Note
}

// DetectPitch estimates the pitch of buf. Multi-channel input is averaged
// to mono first.
func (p PitchParams) DetectPitch(buf *buffer.AudioBuffer) (PitchResult, error) {
	if err := checkBuffer(buf); err != nil {
		return PitchResult{}, err
	}

	if p.WindowFrames < 0 || p.WindowOffset < 0 {
		return PitchResult{}, fmt.Errorf("%w: pitch window %d at offset %d must not be negative",
			core.ErrInvalidParameter, p.WindowFrames, p.WindowOffset)
	}

	var opts []pitch.DetectorOption

	if p.SilenceThreshold != 0 {
		opts = append(opts, pitch.WithSilenceThreshold(p.SilenceThreshold))
	}

	if p.MinFrequencyHz != 0 {
		opts = append(opts, pitch.WithMinFrequency(p.MinFrequencyHz))
	}

	if p.MaxFrequencyHz != 0 {
		opts = append(opts, pitch.WithMaxFrequency(p.MaxFrequencyHz))
	}

	det, err := pitch.NewDetector(opts...)
	if err != nil {
		return PitchResult{}, err
	}

	mono := buf
	if buf.ChannelCount() > 1 {
		mono = buf.Mono()
	}

	start, end := p.window(mono.FrameCount())

	est, err := det.Detect(mono.Channel(0)[start:end], buf.SampleRate())
	if err != nil {
		return PitchResult{}, err
	}

	note, err := pitch.NoteFromFrequency(est.FrequencyHz)
	if err != nil {
		return PitchResult{}, err
	}

	return PitchResult{Estimate: est, Note: note}, nil
}

// window returns the analyzed frame range of a buffer of n frames.
func (p PitchParams) window(n int) (int, int) {
	size := p.WindowFrames
	if size == 0 {
		size = DefaultPitchWindow
	}

	if n <= size {
		return 0, n
	}

	start := p.WindowOffset
	if start == 0 {
		start = n / 4
	}

	start = min(start, n-size)

	return start, start + size
}
