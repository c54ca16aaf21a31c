package effects

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/conv"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultReverbDecaySeconds    = 2.0
	defaultReverbWet             = 0.3
	defaultReverbPredelaySeconds = 0.02

	minReverbDecaySeconds    = 0.1
	maxReverbDecaySeconds    = 10.0
	maxReverbPredelaySeconds = 0.2

	// Sparse mode uses at most sparseTaps IR taps, one every sparseStride.
	sparseTaps   = 2000
	sparseStride = 10

	reverbWetScale = 0.5
)

// ReverbMode selects how the impulse response is applied.
type ReverbMode int

const (
	// ReverbSparse convolves with every 10th tap of the first 2000 IR taps.
	// Cheap, and only the early part of the tail is heard.
	ReverbSparse ReverbMode = iota
	// ReverbConvolution convolves with the full IR using FFT overlap-add.
	ReverbConvolution
)

// String returns the mode name.
func (m ReverbMode) String() string {
	switch m {
	case ReverbSparse:
		return "sparse"
	case ReverbConvolution:
		return "convolution"
	default:
		return fmt.Sprintf("ReverbMode(%d)", int(m))
	}
}

// ParseReverbMode parses "sparse" or "convolution" ("conv" and "fft" are
// accepted for the latter). The empty string selects sparse.
func ParseReverbMode(s string) (ReverbMode, error) {
	switch s {
	case "sparse", "":
		return ReverbSparse, nil
	case "convolution", "conv", "fft":
		return ReverbConvolution, nil
	default:
		return 0, fmt.Errorf("%w: unknown reverb mode %q", core.ErrInvalidParameter, s)
	}
}

// ReverbOption mutates reverb construction parameters.
type ReverbOption func(*reverbConfig) error

type reverbConfig struct {
	decaySeconds    float64
	wet             float64
	predelaySeconds float64
	mode            ReverbMode
	rng             *rand.Rand
}

func defaultReverbConfig() reverbConfig {
	return reverbConfig{
		decaySeconds:    defaultReverbDecaySeconds,
		wet:             defaultReverbWet,
		predelaySeconds: defaultReverbPredelaySeconds,
		mode:            ReverbSparse,
	}
}

// WithReverbDecay sets the exponential decay time constant in seconds,
// [0.1, 10]. The impulse response is twice as long.
func WithReverbDecay(seconds float64) ReverbOption {
	return func(cfg *reverbConfig) error {
		if seconds < minReverbDecaySeconds || seconds > maxReverbDecaySeconds || !core.IsFinite(seconds) {
			return fmt.Errorf("%w: reverb decay must be in [%g, %g] s: %f",
				core.ErrInvalidParameter, minReverbDecaySeconds, maxReverbDecaySeconds, seconds)
		}

		cfg.decaySeconds = seconds

		return nil
	}
}

// WithReverbWet sets the wet amount in [0, 1]. The dry signal is scaled by
// 1-wet.
func WithReverbWet(wet float64) ReverbOption {
	return func(cfg *reverbConfig) error {
		if wet < 0 || wet > 1 || !core.IsFinite(wet) {
			return fmt.Errorf("%w: reverb wet must be in [0, 1]: %f", core.ErrInvalidParameter, wet)
		}

		cfg.wet = wet

		return nil
	}
}

// WithReverbPredelay sets the gap before the tail in seconds, [0, 0.2].
func WithReverbPredelay(seconds float64) ReverbOption {
	return func(cfg *reverbConfig) error {
		if seconds < 0 || seconds > maxReverbPredelaySeconds || !core.IsFinite(seconds) {
			return fmt.Errorf("%w: reverb predelay must be in [0, %g] s: %f",
				core.ErrInvalidParameter, maxReverbPredelaySeconds, seconds)
		}

		cfg.predelaySeconds = seconds

		return nil
	}
}

// WithReverbMode selects sparse or full convolution.
func WithReverbMode(mode ReverbMode) ReverbOption {
	return func(cfg *reverbConfig) error {
		if mode != ReverbSparse && mode != ReverbConvolution {
			return fmt.Errorf("%w: unknown reverb mode %d", core.ErrInvalidParameter, int(mode))
		}

		cfg.mode = mode

		return nil
	}
}

// WithReverbRand sets the random source for the synthetic impulse response.
// Without it a fixed seed is used, so renders are reproducible.
func WithReverbRand(rng *rand.Rand) ReverbOption {
	return func(cfg *reverbConfig) error {
		if rng == nil {
			return fmt.Errorf("%w: reverb random source must not be nil", core.ErrInvalidParameter)
		}

		cfg.rng = rng

		return nil
	}
}

// Reverb applies a synthetic decaying-noise impulse response.
//
// A stereo IR of 2*decay*sampleRate taps is generated once at construction:
//
//	ir[t] = noise[t] * exp(-t / decay)
//
// Channel c of the input uses IR channel c%2. The output holds the dry
// signal scaled by 1-wet plus the wet tail starting after the predelay, and
// is n + predelay + len(ir) frames long.
type Reverb struct {
	sampleRate      float64
	cfg             reverbConfig
	predelaySamples int
	ir              [2][]float64
}

// NewReverb creates a reverb and its impulse response.
func NewReverb(sampleRate float64, opts ...ReverbOption) (*Reverb, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: reverb sample rate must be > 0 and finite: %f", core.ErrInvalidParameter, sampleRate)
	}

	cfg := defaultReverbConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(1))
	}

	r := &Reverb{
		sampleRate:      sampleRate,
		cfg:             cfg,
		predelaySamples: int(math.Floor(cfg.predelaySeconds * sampleRate)),
	}
	r.buildImpulseResponse()

	return r, nil
}

func (r *Reverb) buildImpulseResponse() {
	n := max(1, int(math.Floor(2*r.cfg.decaySeconds*r.sampleRate)))

	envelope := make([]float64, n)
	for i := range envelope {
		t := float64(i) / r.sampleRate
		envelope[i] = math.Exp(-t / r.cfg.decaySeconds)
	}

	noise := make([]float64, n)

	for ch := range r.ir {
		for i := range noise {
			noise[i] = r.cfg.rng.Float64()*2 - 1
		}

		r.ir[ch] = make([]float64, n)
		vecmath.MulBlock(r.ir[ch], noise, envelope)
	}
}

// SampleRate returns the sample rate in Hz.
func (r *Reverb) SampleRate() float64 { return r.sampleRate }

// Decay returns the decay time constant in seconds.
func (r *Reverb) Decay() float64 { return r.cfg.decaySeconds }

// Wet returns the wet amount.
func (r *Reverb) Wet() float64 { return r.cfg.wet }

// Mode returns the convolution mode.
func (r *Reverb) Mode() ReverbMode { return r.cfg.mode }

// PredelaySamples returns the predelay in frames.
func (r *Reverb) PredelaySamples() int { return r.predelaySamples }

// IRLength returns the impulse response length in frames.
func (r *Reverb) IRLength() int { return len(r.ir[0]) }

// ImpulseResponse returns a copy of the IR used for input channel ch.
func (r *Reverb) ImpulseResponse(ch int) []float64 {
	return append([]float64(nil), r.ir[ch%2]...)
}

// OutputLength returns the rendered length for an input of n frames.
func (r *Reverb) OutputLength(n int) int {
	return n + r.predelaySamples + r.IRLength()
}

// Apply renders every channel of in into a new buffer and peak-normalizes
// the result if it exceeds 1. in is not modified. ctx is checked every
// blockSize input frames in sparse mode and between FFT blocks in
// convolution mode.
func (r *Reverb) Apply(ctx context.Context, in *buffer.AudioBuffer, blockSize int) (*buffer.AudioBuffer, error) {
	if err := checkApply("reverb", r.sampleRate, in, blockSize); err != nil {
		return nil, err
	}

	out, err := buffer.New(in.ChannelCount(), r.OutputLength(in.FrameCount()), in.SampleRate())
	if err != nil {
		return nil, err
	}

	for ch := range in.ChannelCount() {
		src, dst := in.Channel(ch), out.Channel(ch)
		vecmath.ScaleBlock(dst[:len(src)], src, 1-r.cfg.wet)
	}

	if in.FrameCount() > 0 && r.cfg.wet > 0 {
		switch r.cfg.mode {
		case ReverbConvolution:
			err = r.applyConvolution(ctx, in, out)
		default:
			err = r.applySparse(ctx, in, out, blockSize)
		}

		if err != nil {
			return nil, err
		}
	}

	out.NormalizePeak()

	return out, nil
}

func (r *Reverb) applySparse(ctx context.Context, in, out *buffer.AudioBuffer, blockSize int) error {
	taps := min(r.IRLength(), sparseTaps)
	scratch := make([]float64, min(blockSize, in.FrameCount()))

	return core.ForEachBlock(ctx, in.FrameCount(), blockSize, func(start, end int) error {
		for ch := range in.ChannelCount() {
			src := in.Channel(ch)[start:end]
			dst := out.Channel(ch)
			ir := r.ir[ch%2]
			tmp := scratch[:len(src)]

			for j := 0; j < taps; j += sparseStride {
				offset := start + r.predelaySamples + j
				vecmath.ScaleBlock(tmp, src, ir[j]*r.cfg.wet*reverbWetScale)
				vecmath.AddBlockInPlace(dst[offset:offset+len(src)], tmp)
			}
		}

		return nil
	})
}

func (r *Reverb) applyConvolution(ctx context.Context, in, out *buffer.AudioBuffer) error {
	// Full convolution sums sparseStride times as many taps as sparse mode.
	gain := r.cfg.wet * reverbWetScale / sparseStride

	var engines [2]*conv.OverlapAdd

	for ch := range in.ChannelCount() {
		k := ch % 2
		if engines[k] == nil {
			oa, err := conv.NewOverlapAdd(r.ir[k], 0)
			if err != nil {
				return fmt.Errorf("reverb: %w", err)
			}

			engines[k] = oa
		}

		wet, err := engines[k].ProcessContext(ctx, in.Channel(ch))
		if err != nil {
			return err
		}

		vecmath.ScaleBlockInPlace(wet, gain)

		dst := out.Channel(ch)[r.predelaySamples:]
		vecmath.AddBlockInPlace(dst[:len(wet)], wet)
	}

	return nil
}
