package spatial

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
)

const (
	defaultVocalLowCutHz  = 120.0
	defaultVocalHighCutHz = 8000.0
	defaultVocalStrength  = 1.0

	minVocalCutHz = 20.0
	maxVocalCutHz = 20000.0

	// vocalFilterQ is the Q of both band-limiting sections.
	vocalFilterQ = 1.0
)

// VocalRemoverOption mutates vocal remover construction parameters.
type VocalRemoverOption func(*vocalRemoverConfig) error

type vocalRemoverConfig struct {
	lowCutHz  float64
	highCutHz float64
	strength  float64
}

func defaultVocalRemoverConfig() vocalRemoverConfig {
	return vocalRemoverConfig{
		lowCutHz:  defaultVocalLowCutHz,
		highCutHz: defaultVocalHighCutHz,
		strength:  defaultVocalStrength,
	}
}

// WithVocalLowCut sets the highpass applied to the side signal, [20, 20000] Hz.
func WithVocalLowCut(hz float64) VocalRemoverOption {
	return func(cfg *vocalRemoverConfig) error {
		if hz < minVocalCutHz || hz > maxVocalCutHz || !core.IsFinite(hz) {
			return fmt.Errorf("%w: vocal remover low cut must be in [%g, %g] Hz: %f",
				core.ErrInvalidParameter, minVocalCutHz, maxVocalCutHz, hz)
		}

		cfg.lowCutHz = hz

		return nil
	}
}

// WithVocalHighCut sets the lowpass applied to the side signal, [20, 20000] Hz.
func WithVocalHighCut(hz float64) VocalRemoverOption {
	return func(cfg *vocalRemoverConfig) error {
		if hz < minVocalCutHz || hz > maxVocalCutHz || !core.IsFinite(hz) {
			return fmt.Errorf("%w: vocal remover high cut must be in [%g, %g] Hz: %f",
				core.ErrInvalidParameter, minVocalCutHz, maxVocalCutHz, hz)
		}

		cfg.highCutHz = hz

		return nil
	}
}

// WithVocalStrength sets the blend toward the processed signal, [0, 1].
func WithVocalStrength(strength float64) VocalRemoverOption {
	return func(cfg *vocalRemoverConfig) error {
		if strength < 0 || strength > 1 || !core.IsFinite(strength) {
			return fmt.Errorf("%w: vocal remover strength must be in [0, 1]: %f", core.ErrInvalidParameter, strength)
		}

		cfg.strength = strength

		return nil
	}
}

// VocalRemover cancels center-panned content by keeping only the side
// signal, band-limited to [lowCut, highCut]:
//
//	removed = lowpass(highpass(side))
//	L' = L*(1-strength) + removed*strength
//	R' = R*(1-strength) + removed*strength
//
// At full strength both channels carry the same signal.
type VocalRemover struct {
	cfg  vocalRemoverConfig
	band *biquad.Chain
}

// NewVocalRemover creates a vocal remover for the given sample rate.
func NewVocalRemover(sampleRate float64, opts ...VocalRemoverOption) (*VocalRemover, error) {
	cfg := defaultVocalRemoverConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.lowCutHz >= cfg.highCutHz {
		return nil, fmt.Errorf("%w: vocal remover low cut %g must be below high cut %g",
			core.ErrInvalidParameter, cfg.lowCutHz, cfg.highCutHz)
	}

	hp, err := design.Highpass(cfg.lowCutHz, vocalFilterQ, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("vocal remover low cut: %w", err)
	}

	lp, err := design.Lowpass(cfg.highCutHz, vocalFilterQ, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("vocal remover high cut: %w", err)
	}

	return &VocalRemover{cfg: cfg, band: biquad.NewChain(hp, lp)}, nil
}

// ProcessStereo processes one stereo sample pair.
func (v *VocalRemover) ProcessStereo(left, right float64) (float64, float64, error) {
	_, side := Encode(left, right)

	removed, err := v.band.ProcessSample(side)
	if err != nil {
		return 0, 0, err
	}

	s := v.cfg.strength

	return left*(1-s) + removed*s, right*(1-s) + removed*s, nil
}

// ProcessStereoInPlace processes paired left/right buffers in place.
func (v *VocalRemover) ProcessStereoInPlace(left, right []float64) error {
	if err := checkPair("vocal remover", left, right); err != nil {
		return err
	}

	for i := range left {
		l, r, err := v.ProcessStereo(left[i], right[i])
		if err != nil {
			return fmt.Errorf("vocal remover sample %d: %w", i, err)
		}

		left[i], right[i] = l, r
	}

	return nil
}

// Reset clears filter state.
func (v *VocalRemover) Reset() { v.band.Reset() }

// LowCut returns the side highpass cutoff in Hz.
func (v *VocalRemover) LowCut() float64 { return v.cfg.lowCutHz }

// HighCut returns the side lowpass cutoff in Hz.
func (v *VocalRemover) HighCut() float64 { return v.cfg.highCutHz }

// Strength returns the processed blend.
func (v *VocalRemover) Strength() float64 { return v.cfg.strength }
