package effectchain

import (
	"github.com/cwbudde/algo-audiofx/dsp/effects"
	"github.com/cwbudde/algo-audiofx/dsp/effects/modulation"
)

// BassEnhanceParams configures the bass enhancer: low-passed bass is boosted
// by GainDB and saturated harmonics are mixed in.
type BassEnhanceParams struct {
	CutoffHz         float64 // [20, 500]
	GainDB           float64 // [0, 24]
	HarmonicsPercent float64 // [0, 100]
}

// DefaultBassEnhanceParams returns +6 dB below 100 Hz with 30% harmonics.
func DefaultBassEnhanceParams() BassEnhanceParams {
	return BassEnhanceParams{CutoffHz: 100, GainDB: 6, HarmonicsPercent: 30}
}

// Type implements Effect.
func (BassEnhanceParams) Type() string { return "bassenhance" }

// Validate implements Effect.
func (p BassEnhanceParams) Validate(sampleRate int) error {
	if err := checkRange("bassenhance harmonicsPercent", p.HarmonicsPercent, 0, 100); err != nil {
		return err
	}

	_, err := p.build(float64(sampleRate))

	return err
}

func (p BassEnhanceParams) build(sampleRate float64) (*effects.BassEnhancer, error) {
	return effects.NewBassEnhancer(sampleRate,
		effects.WithBassCutoff(p.CutoffHz),
		effects.WithBassGain(p.GainDB),
		effects.WithBassHarmonics(p.HarmonicsPercent/100),
	)
}

// NewRuntime implements Effect.
func (p BassEnhanceParams) NewRuntime(ctx Context) (Runtime, error) {
	return peakNormalized(perChannel(ctx,
		func() (*effects.BassEnhancer, error) { return p.build(ctx.SampleRate) },
		(*effects.BassEnhancer).ProcessInPlace,
	))
}

// BitCrushParams configures bit depth reduction with sample-and-hold
// downsampling.
type BitCrushParams struct {
	BitDepth   float64 // [1, 16]
	Downsample int     // [1, 64]
	MixPercent float64 // [0, 100]
}

// DefaultBitCrushParams returns an 8-bit crush at the full sample rate.
func DefaultBitCrushParams() BitCrushParams {
	return BitCrushParams{BitDepth: 8, Downsample: 1, MixPercent: 100}
}

// Type implements Effect.
func (BitCrushParams) Type() string { return "bitcrush" }

// Validate implements Effect.
func (p BitCrushParams) Validate(int) error {
	if err := checkRange("bitcrush mixPercent", p.MixPercent, 0, 100); err != nil {
		return err
	}

	_, err := p.build()

	return err
}

func (p BitCrushParams) build() (*effects.BitCrusher, error) {
	return effects.NewBitCrusher(
		effects.WithBitCrusherBitDepth(p.BitDepth),
		effects.WithBitCrusherDownsample(p.Downsample),
		effects.WithBitCrusherMix(p.MixPercent/100),
	)
}

// NewRuntime implements Effect.
func (p BitCrushParams) NewRuntime(ctx Context) (Runtime, error) {
	return perChannel(ctx, p.build, func(bc *effects.BitCrusher, buf []float64) error {
		bc.ProcessInPlace(buf)

		return nil
	})
}

// RingModParams configures the ring modulator.
type RingModParams struct {
	CarrierHz    float64 // (0, sampleRate/2)
	Waveform     modulation.Waveform
	DepthPercent float64 // [0, 100]
	MixPercent   float64 // [0, 100]
}

// DefaultRingModParams returns a 440 Hz sine carrier at full depth and mix.
func DefaultRingModParams() RingModParams {
	return RingModParams{CarrierHz: 440, Waveform: modulation.Sine, DepthPercent: 100, MixPercent: 100}
}

// Type implements Effect.
func (RingModParams) Type() string { return "ringmod" }

// Validate implements Effect.
func (p RingModParams) Validate(sampleRate int) error {
	if err := checkRange("ringmod depthPercent", p.DepthPercent, 0, 100); err != nil {
		return err
	}

	if err := checkRange("ringmod mixPercent", p.MixPercent, 0, 100); err != nil {
		return err
	}

	_, err := p.build(float64(sampleRate))

	return err
}

func (p RingModParams) build(sampleRate float64) (*modulation.RingModulator, error) {
	return modulation.NewRingModulator(sampleRate,
		modulation.WithRingModCarrierHz(p.CarrierHz),
		modulation.WithRingModWaveform(p.Waveform),
		modulation.WithRingModDepth(p.DepthPercent/100),
		modulation.WithRingModMix(p.MixPercent/100),
	)
}

// NewRuntime implements Effect.
func (p RingModParams) NewRuntime(ctx Context) (Runtime, error) {
	return perChannel(ctx,
		func() (*modulation.RingModulator, error) { return p.build(ctx.SampleRate) },
		func(rm *modulation.RingModulator, buf []float64) error {
			rm.ProcessInPlace(buf)

			return nil
		},
	)
}
