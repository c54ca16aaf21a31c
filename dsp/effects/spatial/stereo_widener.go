package spatial

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
)

const (
	defaultWidenerWidth      = 1.0
	defaultWidenerCenterGain = 1.0

	maxWidenerWidth      = 4.0
	maxWidenerCenterGain = 2.0

	minWidenerBassMonoFreq = 20.0
	maxWidenerBassMonoFreq = 500.0
)

// StereoWidenerOption mutates stereo widener construction parameters.
type StereoWidenerOption func(*stereoWidenerConfig) error

type stereoWidenerConfig struct {
	width        float64
	centerGain   float64
	bassMonoFreq float64 // 0 means disabled
}

func defaultStereoWidenerConfig() stereoWidenerConfig {
	return stereoWidenerConfig{
		width:      defaultWidenerWidth,
		centerGain: defaultWidenerCenterGain,
	}
}

// WithWidth sets the side gain: 0 = mono, 1 = unchanged, up to 4.
func WithWidth(width float64) StereoWidenerOption {
	return func(cfg *stereoWidenerConfig) error {
		if width < 0 || width > maxWidenerWidth || !core.IsFinite(width) {
			return fmt.Errorf("%w: stereo widener width must be in [0, %g]: %f",
				core.ErrInvalidParameter, maxWidenerWidth, width)
		}

		cfg.width = width

		return nil
	}
}

// WithCenterGain sets the mid gain in [0, 2].
func WithCenterGain(gain float64) StereoWidenerOption {
	return func(cfg *stereoWidenerConfig) error {
		if gain < 0 || gain > maxWidenerCenterGain || !core.IsFinite(gain) {
			return fmt.Errorf("%w: stereo widener center gain must be in [0, %g]: %f",
				core.ErrInvalidParameter, maxWidenerCenterGain, gain)
		}

		cfg.centerGain = gain

		return nil
	}
}

// WithBassMonoFreq collapses content below freq Hz to mono before widening.
// 0 disables it (default); otherwise the range is [20, 500].
func WithBassMonoFreq(freq float64) StereoWidenerOption {
	return func(cfg *stereoWidenerConfig) error {
		if freq != 0 && (freq < minWidenerBassMonoFreq || freq > maxWidenerBassMonoFreq || !core.IsFinite(freq)) {
			return fmt.Errorf("%w: stereo widener bass mono freq must be 0 (disabled) or in [%g, %g]: %f",
				core.ErrInvalidParameter, minWidenerBassMonoFreq, maxWidenerBassMonoFreq, freq)
		}

		cfg.bassMonoFreq = freq

		return nil
	}
}

// StereoWidener scales the mid and side components of a stereo signal:
//
//	L = mid*centerGain + side*width
//	R = mid*centerGain - side*width
//
// Width 0 yields L == R. With bass mono enabled, a Butterworth crossover
// splits each channel and only the high band is widened; the low band is
// summed to mono.
type StereoWidener struct {
	cfg stereoWidenerConfig

	// Bass mono crossover (nil when disabled).
	bassLPL, bassLPR *biquad.Section
	bassHPL, bassHPR *biquad.Section
}

// NewStereoWidener creates a widener for the given sample rate.
func NewStereoWidener(sampleRate float64, opts ...StereoWidenerOption) (*StereoWidener, error) {
	cfg := defaultStereoWidenerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	w := &StereoWidener{cfg: cfg}

	if cfg.bassMonoFreq > 0 {
		lp, err := design.Lowpass(cfg.bassMonoFreq, design.DefaultQ, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("stereo widener bass mono: %w", err)
		}

		hp, err := design.Highpass(cfg.bassMonoFreq, design.DefaultQ, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("stereo widener bass mono: %w", err)
		}

		w.bassLPL, w.bassLPR = biquad.NewSection(lp), biquad.NewSection(lp)
		w.bassHPL, w.bassHPR = biquad.NewSection(hp), biquad.NewSection(hp)
	}

	return w, nil
}

// ProcessStereo processes one stereo sample pair.
func (w *StereoWidener) ProcessStereo(left, right float64) (float64, float64, error) {
	if w.bassLPL == nil {
		mid, side := Encode(left, right)
		l, r := Decode(mid*w.cfg.centerGain, side*w.cfg.width)

		return l, r, nil
	}

	return w.processBassMono(left, right)
}

func (w *StereoWidener) processBassMono(left, right float64) (float64, float64, error) {
	var bands [4]float64

	for i, step := range []struct {
		s *biquad.Section
		x float64
	}{{w.bassLPL, left}, {w.bassLPR, right}, {w.bassHPL, left}, {w.bassHPR, right}} {
		y, err := step.s.ProcessSample(step.x)
		if err != nil {
			return 0, 0, err
		}

		bands[i] = y
	}

	bassMono := (bands[0] + bands[1]) * 0.5
	mid, side := Encode(bands[2], bands[3])
	l, r := Decode(mid*w.cfg.centerGain, side*w.cfg.width)

	return l + bassMono*w.cfg.centerGain, r + bassMono*w.cfg.centerGain, nil
}

// ProcessStereoInPlace processes paired left/right buffers in place.
func (w *StereoWidener) ProcessStereoInPlace(left, right []float64) error {
	if err := checkPair("stereo widener", left, right); err != nil {
		return err
	}

	for i := range left {
		l, r, err := w.ProcessStereo(left[i], right[i])
		if err != nil {
			return fmt.Errorf("stereo widener sample %d: %w", i, err)
		}

		left[i], right[i] = l, r
	}

	return nil
}

// Reset clears crossover state.
func (w *StereoWidener) Reset() {
	for _, s := range []*biquad.Section{w.bassLPL, w.bassLPR, w.bassHPL, w.bassHPR} {
		if s != nil {
			s.Reset()
		}
	}
}

// Width returns the side gain.
func (w *StereoWidener) Width() float64 { return w.cfg.width }

// CenterGain returns the mid gain.
func (w *StereoWidener) CenterGain() float64 { return w.cfg.centerGain }

// BassMonoFreq returns the bass mono crossover in Hz, or 0 if disabled.
func (w *StereoWidener) BassMonoFreq() float64 { return w.cfg.bassMonoFreq }
