package effects

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultEchoDelaySeconds = 0.25
	defaultEchoFeedback     = 0.4
	defaultEchoMix          = 0.5
	defaultEchoRepeats      = 4

	minEchoDelaySeconds = 0.001
	maxEchoDelaySeconds = 2.0
	maxEchoFeedback     = 0.95
	maxEchoRepeats      = 10
)

// EchoOption mutates echo construction parameters.
type EchoOption func(*echoConfig) error

type echoConfig struct {
	delaySeconds float64
	feedback     float64
	mix          float64
	repeats      int
}

func defaultEchoConfig() echoConfig {
	return echoConfig{
		delaySeconds: defaultEchoDelaySeconds,
		feedback:     defaultEchoFeedback,
		mix:          defaultEchoMix,
		repeats:      defaultEchoRepeats,
	}
}

// WithEchoDelay sets the spacing between repeats in seconds, [0.001, 2].
func WithEchoDelay(seconds float64) EchoOption {
	return func(cfg *echoConfig) error {
		if seconds < minEchoDelaySeconds || seconds > maxEchoDelaySeconds || !core.IsFinite(seconds) {
			return fmt.Errorf("%w: echo delay must be in [%g, %g] s: %f",
				core.ErrInvalidParameter, minEchoDelaySeconds, maxEchoDelaySeconds, seconds)
		}

		cfg.delaySeconds = seconds

		return nil
	}
}

// WithEchoFeedback sets the gain applied between successive repeats,
// [0, 0.95].
func WithEchoFeedback(feedback float64) EchoOption {
	return func(cfg *echoConfig) error {
		if feedback < 0 || feedback > maxEchoFeedback || !core.IsFinite(feedback) {
			return fmt.Errorf("%w: echo feedback must be in [0, %g]: %f",
				core.ErrInvalidParameter, maxEchoFeedback, feedback)
		}

		cfg.feedback = feedback

		return nil
	}
}

// WithEchoMix sets the wet amount in [0, 1]. The dry signal is scaled by
// 1-mix and the first repeat by mix.
func WithEchoMix(mix float64) EchoOption {
	return func(cfg *echoConfig) error {
		if mix < 0 || mix > 1 || !core.IsFinite(mix) {
			return fmt.Errorf("%w: echo mix must be in [0, 1]: %f", core.ErrInvalidParameter, mix)
		}

		cfg.mix = mix

		return nil
	}
}

// WithEchoRepeats sets the number of repeats, [1, 10].
func WithEchoRepeats(repeats int) EchoOption {
	return func(cfg *echoConfig) error {
		if repeats < 1 || repeats > maxEchoRepeats {
			return fmt.Errorf("%w: echo repeats must be in [1, %d]: %d",
				core.ErrInvalidParameter, maxEchoRepeats, repeats)
		}

		cfg.repeats = repeats

		return nil
	}
}

// Echo renders a fixed number of decaying repeats of the input.
//
// For an input of n frames the output has n + delay*repeats frames:
//
//	out[i]             += in[i] * (1-mix)
//	out[i + delay*r]   += in[i] * mix * feedback^(r-1),  r = 1..repeats
//
// Unlike a feedback delay line the repeat count is finite, so the
// output length is known up front. Echo holds no per-call state and can be
// reused across buffers of its sample rate.
type Echo struct {
	sampleRate   float64
	cfg          echoConfig
	delaySamples int
}

// NewEcho creates an echo for the given sample rate.
func NewEcho(sampleRate float64, opts ...EchoOption) (*Echo, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: echo sample rate must be > 0 and finite: %f", core.ErrInvalidParameter, sampleRate)
	}

	cfg := defaultEchoConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Echo{
		sampleRate:   sampleRate,
		cfg:          cfg,
		delaySamples: max(1, int(math.Floor(cfg.delaySeconds*sampleRate))),
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (e *Echo) SampleRate() float64 { return e.sampleRate }

// Delay returns the repeat spacing in seconds.
func (e *Echo) Delay() float64 { return e.cfg.delaySeconds }

// DelaySamples returns the repeat spacing in frames.
func (e *Echo) DelaySamples() int { return e.delaySamples }

// Feedback returns the inter-repeat gain.
func (e *Echo) Feedback() float64 { return e.cfg.feedback }

// Mix returns the wet amount.
func (e *Echo) Mix() float64 { return e.cfg.mix }

// Repeats returns the number of repeats.
func (e *Echo) Repeats() int { return e.cfg.repeats }

// OutputLength returns the rendered length for an input of n frames.
func (e *Echo) OutputLength(n int) int {
	return n + e.delaySamples*e.cfg.repeats
}

// Accumulate adds the contribution of src[start:end] to dst, which must hold
// at least OutputLength(len(src)) frames. dst is not cleared.
func (e *Echo) Accumulate(dst, src []float64, start, end int) error {
	if start < 0 || end > len(src) || start > end {
		return fmt.Errorf("%w: echo block [%d, %d) outside input of %d frames",
			core.ErrInvalidParameter, start, end, len(src))
	}

	if len(dst) < e.OutputLength(len(src)) {
		return fmt.Errorf("%w: echo output holds %d frames, need %d",
			core.ErrInvalidParameter, len(dst), e.OutputLength(len(src)))
	}

	block := src[start:end]
	scratch := make([]float64, len(block))

	vecmath.ScaleBlock(scratch, block, 1-e.cfg.mix)
	vecmath.AddBlockInPlace(dst[start:end], scratch)

	gain := e.cfg.mix
	for r := 1; r <= e.cfg.repeats; r++ {
		if gain == 0 {
			break
		}

		offset := e.delaySamples * r
		vecmath.ScaleBlock(scratch, block, gain)
		vecmath.AddBlockInPlace(dst[start+offset:end+offset], scratch)

		gain *= e.cfg.feedback
	}

	return nil
}

// Process renders one channel without normalization.
func (e *Echo) Process(src []float64) ([]float64, error) {
	dst := make([]float64, e.OutputLength(len(src)))
	if err := e.Accumulate(dst, src, 0, len(src)); err != nil {
		return nil, err
	}

	return dst, nil
}

// Apply renders every channel of in into a new buffer, blockSize input
// frames at a time, and peak-normalizes the result if it exceeds 1.
// in is not modified.
func (e *Echo) Apply(ctx context.Context, in *buffer.AudioBuffer, blockSize int) (*buffer.AudioBuffer, error) {
	if err := checkApply("echo", e.sampleRate, in, blockSize); err != nil {
		return nil, err
	}

	out, err := buffer.New(in.ChannelCount(), e.OutputLength(in.FrameCount()), in.SampleRate())
	if err != nil {
		return nil, err
	}

	err = core.ForEachBlock(ctx, in.FrameCount(), blockSize, func(start, end int) error {
		for ch := range in.ChannelCount() {
			if err := e.Accumulate(out.Channel(ch), in.Channel(ch), start, end); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	out.NormalizePeak()

	return out, nil
}

// checkApply rejects nil buffers, non-positive block sizes and buffers whose
// rate differs from the processor's.
func checkApply(name string, sampleRate float64, in *buffer.AudioBuffer, blockSize int) error {
	if in == nil {
		return fmt.Errorf("%w: %s input buffer is nil", core.ErrInvalidParameter, name)
	}

	if blockSize <= 0 {
		return fmt.Errorf("%w: %s block size must be > 0: %d", core.ErrInvalidParameter, name, blockSize)
	}

	if float64(in.SampleRate()) != sampleRate {
		return fmt.Errorf("%w: %s configured for %g Hz, buffer is %d Hz",
			core.ErrInvalidParameter, name, sampleRate, in.SampleRate())
	}

	return nil
}
