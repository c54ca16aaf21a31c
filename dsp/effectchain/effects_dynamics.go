package effectchain

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
	"github.com/cwbudde/algo-vecmath"
)

// DeEsserParams configures the sidechain de-esser.
type DeEsserParams struct {
	FrequencyHz      float64 // [1000, 20000], below Nyquist
	BandwidthOctaves float64 // (0, 4]
	ThresholdDB      float64 // [-60, 0]
	Ratio            float64 // [1, 20]
	AmountPercent    float64 // [0, 100]
}

// DefaultDeEsserParams returns a 6 kHz, one-octave de-esser.
func DefaultDeEsserParams() DeEsserParams {
	return DeEsserParams{FrequencyHz: 6000, BandwidthOctaves: 1, ThresholdDB: -20, Ratio: 4, AmountPercent: 100}
}

// Type implements Effect.
func (DeEsserParams) Type() string { return "deesser" }

// Validate implements Effect.
func (p DeEsserParams) Validate(sampleRate int) error {
	if err := checkRange("deesser amountPercent", p.AmountPercent, 0, 100); err != nil {
		return err
	}

	_, err := p.build(float64(sampleRate))

	return err
}

func (p DeEsserParams) build(sampleRate float64) (*dynamics.DeEsser, error) {
	return dynamics.NewDeEsser(sampleRate,
		dynamics.WithDeEsserFrequency(p.FrequencyHz),
		dynamics.WithDeEsserBandwidth(p.BandwidthOctaves),
		dynamics.WithDeEsserThreshold(p.ThresholdDB),
		dynamics.WithDeEsserRatio(p.Ratio),
		dynamics.WithDeEsserAmount(p.AmountPercent/100),
	)
}

// NewRuntime implements Effect.
func (p DeEsserParams) NewRuntime(ctx Context) (Runtime, error) {
	return perChannel(ctx,
		func() (*dynamics.DeEsser, error) { return p.build(ctx.SampleRate) },
		func(d *dynamics.DeEsser, buf []float64) error { return d.ProcessInPlace(buf) },
	)
}

// NormalizeParams scales the whole buffer so its level under Mode equals
// TargetDB, then clamps to [-1, 1]. Silent input passes through unchanged.
type NormalizeParams struct {
	Mode     dynamics.NormalizeMode
	TargetDB float64 // [-60, 0] dBFS
}

// DefaultNormalizeParams returns peak normalization to -1 dBFS.
func DefaultNormalizeParams() NormalizeParams {
	return NormalizeParams{Mode: dynamics.NormalizePeak, TargetDB: -1}
}

// Type implements Effect.
func (NormalizeParams) Type() string { return "normalize" }

// Validate implements Effect.
func (p NormalizeParams) Validate(int) error {
	if err := checkIntRange("normalize mode", int(p.Mode), int(dynamics.NormalizePeak), int(dynamics.NormalizeLoudness)); err != nil {
		return err
	}

	return checkRange("normalize targetDB", p.TargetDB, -60, 0)
}

// NewRuntime implements Effect.
func (p NormalizeParams) NewRuntime(Context) (Runtime, error) {
	return RuntimeFunc(func(ctx context.Context, in *buffer.AudioBuffer) (*buffer.AudioBuffer, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out := in.Clone()
		if _, err := dynamics.Normalize(out.Channels(), out.SampleRate(), p.Mode, p.TargetDB); err != nil {
			return nil, err
		}

		return out, nil
	}), nil
}

const (
	denoiseHumQ       = 10.0
	denoiseFilterQ    = 0.7
	denoiseThreshold  = -24.0
	denoiseKnee       = 30.0
	denoiseAttack     = 0.003
	denoiseRelease    = 0.25
	defaultDenoiseHum = 50.0
	defaultMakeupGain = 1.2
)

// DenoiseParams configures the voice clean-up chain: high-pass rumble
// filter, low-pass hiss filter, mains hum notch, compressor and makeup gain.
// All filters use RBJ sections with Q 0.7 (notch Q 10).
type DenoiseParams struct {
	HighpassHz float64 // [20, 1000]
	LowpassHz  float64 // [1000, sampleRate/2-1]
	Ratio      float64 // compressor ratio [1, 20]
	HumHz      float64 // 0 disables the notch, else [40, 70]
	MakeupGain float64 // linear [0, 4]
}

// DefaultDenoiseParams returns the "medium" strength chain.
func DefaultDenoiseParams() DenoiseParams {
	p, _ := DenoisePreset("medium")

	return p
}

// DenoisePreset returns the parameters for strength "light", "medium" or
// "strong".
func DenoisePreset(strength string) (DenoiseParams, error) {
	p := DenoiseParams{HumHz: defaultDenoiseHum, MakeupGain: defaultMakeupGain}

	switch strength {
	case "light":
		p.HighpassHz, p.LowpassHz, p.Ratio = 50, 15000, 2
	case "medium", "":
		p.HighpassHz, p.LowpassHz, p.Ratio = 80, 12000, 4
	case "strong":
		p.HighpassHz, p.LowpassHz, p.Ratio = 150, 8000, 8
	default:
		return DenoiseParams{}, fmt.Errorf("%w: unknown denoise strength %q", core.ErrInvalidParameter, strength)
	}

	return p, nil
}

// Type implements Effect.
func (DenoiseParams) Type() string { return "denoise" }

// Validate implements Effect.
func (p DenoiseParams) Validate(sampleRate int) error {
	if err := checkRange("denoise highpassHz", p.HighpassHz, minCutoffHz, 1000); err != nil {
		return err
	}

	if err := checkRange("denoise lowpassHz", p.LowpassHz, 1000, float64(sampleRate)/2-1); err != nil {
		return err
	}

	if err := checkRange("denoise ratio", p.Ratio, 1, 20); err != nil {
		return err
	}

	if p.HumHz != 0 {
		if err := checkRange("denoise humHz", p.HumHz, 40, 70); err != nil {
			return err
		}
	}

	return checkRange("denoise makeupGain", p.MakeupGain, 0, 4)
}

type denoiser struct {
	filters    *biquad.Chain
	compressor *dynamics.Compressor
	makeup     float64
}

func (p DenoiseParams) build(sampleRate float64) (*denoiser, error) {
	hp, err := design.Highpass(p.HighpassHz, denoiseFilterQ, sampleRate)
	if err != nil {
		return nil, err
	}

	lp, err := design.Lowpass(p.LowpassHz, denoiseFilterQ, sampleRate)
	if err != nil {
		return nil, err
	}

	coeffs := []biquad.Coefficients{hp, lp}

	if p.HumHz != 0 {
		notch, err := design.Notch(p.HumHz, denoiseHumQ, sampleRate)
		if err != nil {
			return nil, err
		}

		coeffs = append(coeffs, notch)
	}

	comp, err := dynamics.NewCompressor(sampleRate,
		dynamics.WithCompressorThreshold(denoiseThreshold),
		dynamics.WithCompressorKnee(denoiseKnee),
		dynamics.WithCompressorRatio(p.Ratio),
		dynamics.WithCompressorTimes(denoiseAttack, denoiseRelease),
	)
	if err != nil {
		return nil, err
	}

	return &denoiser{filters: biquad.NewChain(coeffs...), compressor: comp, makeup: p.MakeupGain}, nil
}

func (d *denoiser) process(buf []float64) error {
	if err := d.filters.ProcessBlock(buf); err != nil {
		return err
	}

	d.compressor.ProcessInPlace(buf)
	vecmath.ScaleBlockInPlace(buf, d.makeup)

	return nil
}

// NewRuntime implements Effect.
func (p DenoiseParams) NewRuntime(ctx Context) (Runtime, error) {
	return perChannel(ctx,
		func() (*denoiser, error) { return p.build(ctx.SampleRate) },
		(*denoiser).process,
	)
}
