package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
)

const defaultFilterStages = 2

// LowpassParams configures an RBJ low-pass cascade of Stages identical
// sections. Each section is -3 dB at CutoffHz for Q = 1/sqrt(2).
type LowpassParams struct {
	CutoffHz float64 // [20, sampleRate/2-1]
	Q        float64 // > 0
	Stages   int     // [1, 4]
}

// DefaultLowpassParams returns a two-stage Butterworth-Q low-pass at 1 kHz.
func DefaultLowpassParams() LowpassParams {
	return LowpassParams{CutoffHz: 1000, Q: design.DefaultQ, Stages: defaultFilterStages}
}

// Type implements Effect.
func (LowpassParams) Type() string { return "lowpass" }

// Validate implements Effect.
func (p LowpassParams) Validate(sampleRate int) error {
	return validateFilter("lowpass", p.CutoffHz, p.Q, 0, p.Stages, sampleRate)
}

// NewRuntime implements Effect.
func (p LowpassParams) NewRuntime(ctx Context) (Runtime, error) {
	c, err := design.Lowpass(p.CutoffHz, p.Q, ctx.SampleRate)
	if err != nil {
		return nil, err
	}

	return cascade(ctx, p.Stages, c)
}

// HighpassParams configures an RBJ high-pass cascade.
type HighpassParams struct {
	CutoffHz float64 // [20, sampleRate/2-1]
	Q        float64 // > 0
	Stages   int     // [1, 4]
}

// DefaultHighpassParams returns a two-stage Butterworth-Q high-pass at 1 kHz.
func DefaultHighpassParams() HighpassParams {
	return HighpassParams{CutoffHz: 1000, Q: design.DefaultQ, Stages: defaultFilterStages}
}

// Type implements Effect.
func (HighpassParams) Type() string { return "highpass" }

// Validate implements Effect.
func (p HighpassParams) Validate(sampleRate int) error {
	return validateFilter("highpass", p.CutoffHz, p.Q, 0, p.Stages, sampleRate)
}

// NewRuntime implements Effect.
func (p HighpassParams) NewRuntime(ctx Context) (Runtime, error) {
	c, err := design.Highpass(p.CutoffHz, p.Q, ctx.SampleRate)
	if err != nil {
		return nil, err
	}

	return cascade(ctx, p.Stages, c)
}

// BandpassParams configures a constant-skirt band-pass. Exactly one of Q
// and BandwidthOctaves must be set.
type BandpassParams struct {
	CenterHz         float64
	Q                float64
	BandwidthOctaves float64
	Stages           int
}

// DefaultBandpassParams returns a one-octave band-pass at 1 kHz.
func DefaultBandpassParams() BandpassParams {
	return BandpassParams{CenterHz: 1000, BandwidthOctaves: 1, Stages: 1}
}

// Type implements Effect.
func (BandpassParams) Type() string { return "bandpass" }

// Validate implements Effect.
func (p BandpassParams) Validate(sampleRate int) error {
	return validateFilter("bandpass", p.CenterHz, p.Q, p.BandwidthOctaves, p.Stages, sampleRate)
}

// NewRuntime implements Effect.
func (p BandpassParams) NewRuntime(ctx Context) (Runtime, error) {
	var (
		c   biquad.Coefficients
		err error
	)

	if p.BandwidthOctaves > 0 {
		c, err = design.BandpassBW(p.CenterHz, p.BandwidthOctaves, ctx.SampleRate)
	} else {
		c, err = design.Bandpass(p.CenterHz, p.Q, ctx.SampleRate)
	}

	if err != nil {
		return nil, err
	}

	return cascade(ctx, p.Stages, c)
}

// NotchParams configures a notch. Exactly one of Q and BandwidthOctaves
// must be set.
type NotchParams struct {
	CenterHz         float64
	Q                float64
	BandwidthOctaves float64
	Stages           int
}

// DefaultNotchParams returns a narrow 50 Hz hum notch.
func DefaultNotchParams() NotchParams {
	return NotchParams{CenterHz: 50, Q: 10, Stages: 1}
}

// Type implements Effect.
func (NotchParams) Type() string { return "notch" }

// Validate implements Effect.
func (p NotchParams) Validate(sampleRate int) error {
	return validateFilter("notch", p.CenterHz, p.Q, p.BandwidthOctaves, p.Stages, sampleRate)
}

// NewRuntime implements Effect.
func (p NotchParams) NewRuntime(ctx Context) (Runtime, error) {
	var (
		c   biquad.Coefficients
		err error
	)

	if p.BandwidthOctaves > 0 {
		c, err = design.NotchBW(p.CenterHz, p.BandwidthOctaves, ctx.SampleRate)
	} else {
		c, err = design.Notch(p.CenterHz, p.Q, ctx.SampleRate)
	}

	if err != nil {
		return nil, err
	}

	return cascade(ctx, p.Stages, c)
}

// validateFilter checks a cutoff, a stage count and either q or bw. Pass
// bw = 0 for filters that only take q.
func validateFilter(name string, hz, q, bw float64, stages, sampleRate int) error {
	if err := checkCutoff(name+" frequency", hz, sampleRate); err != nil {
		return err
	}

	if err := checkIntRange(name+" stages", stages, 1, maxStages); err != nil {
		return err
	}

	switch {
	case q > 0 && bw > 0:
		return fmt.Errorf("%w: %s takes q or bandwidthOctaves, not both", core.ErrInvalidParameter, name)
	case bw > 0:
		return checkRange(name+" bandwidthOctaves", bw, 0.01, 4)
	default:
		return checkRange(name+" q", q, 0.1, 40)
	}
}

// cascade runs stages copies of c on every channel.
func cascade(ctx Context, stages int, c biquad.Coefficients) (Runtime, error) {
	if stages < 1 {
		return nil, fmt.Errorf("%w: filter stages must be >= 1: %d", core.ErrInvalidParameter, stages)
	}

	coeffs := make([]biquad.Coefficients, stages)
	for i := range coeffs {
		coeffs[i] = c
	}

	return perChannel(ctx,
		func() (*biquad.Chain, error) { return biquad.NewChain(coeffs...), nil },
		func(f *biquad.Chain, buf []float64) error { return f.ProcessBlock(buf) },
	)
}
