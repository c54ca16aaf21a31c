package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
)

const (
	defaultBassCutoffHz  = 100.0
	defaultBassGainDB    = 6.0
	defaultBassHarmonics = 0.3

	minBassCutoffHz = 20.0
	maxBassCutoffHz = 500.0
	maxBassGainDB   = 24.0

	bassDrive = 3.0
)

// BassEnhancerOption mutates bass enhancer construction parameters.
type BassEnhancerOption func(*bassEnhancerConfig) error

type bassEnhancerConfig struct {
	cutoffHz  float64
	gainDB    float64
	harmonics float64
}

func defaultBassEnhancerConfig() bassEnhancerConfig {
	return bassEnhancerConfig{
		cutoffHz:  defaultBassCutoffHz,
		gainDB:    defaultBassGainDB,
		harmonics: defaultBassHarmonics,
	}
}

// WithBassCutoff sets the bass band lowpass cutoff in Hz, [20, 500].
func WithBassCutoff(hz float64) BassEnhancerOption {
	return func(cfg *bassEnhancerConfig) error {
		if hz < minBassCutoffHz || hz > maxBassCutoffHz || !core.IsFinite(hz) {
			return fmt.Errorf("%w: bass enhancer cutoff must be in [%g, %g] Hz: %f",
				core.ErrInvalidParameter, minBassCutoffHz, maxBassCutoffHz, hz)
		}

		cfg.cutoffHz = hz

		return nil
	}
}

// WithBassGain sets the bass boost in dB, [0, 24].
func WithBassGain(dB float64) BassEnhancerOption {
	return func(cfg *bassEnhancerConfig) error {
		if dB < 0 || dB > maxBassGainDB || !core.IsFinite(dB) {
			return fmt.Errorf("%w: bass enhancer gain must be in [0, %g] dB: %f",
				core.ErrInvalidParameter, maxBassGainDB, dB)
		}

		cfg.gainDB = dB

		return nil
	}
}

// WithBassHarmonics sets the level of the saturated bass added, [0, 1].
func WithBassHarmonics(amount float64) BassEnhancerOption {
	return func(cfg *bassEnhancerConfig) error {
		if amount < 0 || amount > 1 || !core.IsFinite(amount) {
			return fmt.Errorf("%w: bass enhancer harmonics must be in [0, 1]: %f", core.ErrInvalidParameter, amount)
		}

		cfg.harmonics = amount

		return nil
	}
}

// BassEnhancer adds boosted and saturated low end to a signal:
//
//	bass = lowpass(x)                 (Q 0.707)
//	harm = tanh(3*bass) * harmonics
//	out  = x + bass*gain + harm
//
// The output can exceed [-1, 1]; callers normalize the rendered buffer.
// One BassEnhancer serves one channel.
type BassEnhancer struct {
	cfg     bassEnhancerConfig
	gain    float64
	lowpass *biquad.Section
}

// NewBassEnhancer creates a bass enhancer for the given sample rate.
func NewBassEnhancer(sampleRate float64, opts ...BassEnhancerOption) (*BassEnhancer, error) {
	cfg := defaultBassEnhancerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	coeffs, err := design.Lowpass(cfg.cutoffHz, design.DefaultQ, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("bass enhancer lowpass: %w", err)
	}

	return &BassEnhancer{
		cfg:     cfg,
		gain:    core.DBToLinear(cfg.gainDB),
		lowpass: biquad.NewSection(coeffs),
	}, nil
}

// ProcessSample processes one sample.
func (b *BassEnhancer) ProcessSample(x float64) (float64, error) {
	bass, err := b.lowpass.ProcessSample(x)
	if err != nil {
		return 0, err
	}

	harm := math.Tanh(bassDrive*bass) * b.cfg.harmonics

	return x + bass*b.gain + harm, nil
}

// ProcessInPlace enhances buf in place.
func (b *BassEnhancer) ProcessInPlace(buf []float64) error {
	for i, x := range buf {
		y, err := b.ProcessSample(x)
		if err != nil {
			return fmt.Errorf("bass enhancer sample %d: %w", i, err)
		}

		buf[i] = y
	}

	return nil
}

// Reset clears filter state.
func (b *BassEnhancer) Reset() { b.lowpass.Reset() }

// Cutoff returns the bass band cutoff in Hz.
func (b *BassEnhancer) Cutoff() float64 { return b.cfg.cutoffHz }

// Gain returns the bass boost in dB.
func (b *BassEnhancer) Gain() float64 { return b.cfg.gainDB }

// Harmonics returns the saturation level.
func (b *BassEnhancer) Harmonics() float64 { return b.cfg.harmonics }
