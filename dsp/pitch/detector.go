package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/conv"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	defaultSilenceThreshold = 0.01

	// peakRatio is the fraction of the zero-lag energy a candidate peak must
	// exceed to count as periodic.
	peakRatio = 0.5
)

// Estimate is the result of a successful detection.
type Estimate struct {
	FrequencyHz float64
	// Confidence is the peak autocorrelation divided by the zero-lag value,
	// in [0, 1].
	Confidence float64
}

// DetectorOption mutates detector construction parameters.
type DetectorOption func(*detectorConfig) error

type detectorConfig struct {
	silenceThreshold float64
	minFreqHz        float64
	maxFreqHz        float64
}

func defaultDetectorConfig() detectorConfig {
	return detectorConfig{silenceThreshold: defaultSilenceThreshold}
}

// WithSilenceThreshold sets the RMS level below which input is treated as
// silence, [0, 1].
func WithSilenceThreshold(rms float64) DetectorOption {
	return func(cfg *detectorConfig) error {
		if rms < 0 || rms > 1 || !core.IsFinite(rms) {
			return fmt.Errorf("%w: pitch silence threshold must be in [0, 1]: %f", core.ErrInvalidParameter, rms)
		}

		cfg.silenceThreshold = rms

		return nil
	}
}

// WithMinFrequency limits the search to periods no longer than 1/hz.
// Zero disables the limit.
func WithMinFrequency(hz float64) DetectorOption {
	return func(cfg *detectorConfig) error {
		if hz < 0 || !core.IsFinite(hz) {
			return fmt.Errorf("%w: pitch min frequency must be >= 0: %f", core.ErrInvalidParameter, hz)
		}

		cfg.minFreqHz = hz

		return nil
	}
}

// WithMaxFrequency limits the search to periods no shorter than 1/hz.
// Zero disables the limit.
func WithMaxFrequency(hz float64) DetectorOption {
	return func(cfg *detectorConfig) error {
		if hz < 0 || !core.IsFinite(hz) {
			return fmt.Errorf("%w: pitch max frequency must be >= 0: %f", core.ErrInvalidParameter, hz)
		}

		cfg.maxFreqHz = hz

		return nil
	}
}

// Detector finds the fundamental frequency of a block of samples.
// It holds no per-call state and is safe for concurrent use.
type Detector struct {
	cfg detectorConfig
}

// NewDetector creates a detector with optional overrides.
func NewDetector(opts ...DetectorOption) (*Detector, error) {
	cfg := defaultDetectorConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.minFreqHz > 0 && cfg.maxFreqHz > 0 && cfg.minFreqHz >= cfg.maxFreqHz {
		return nil, fmt.Errorf("%w: pitch min frequency %g must be below max frequency %g",
			core.ErrInvalidParameter, cfg.minFreqHz, cfg.maxFreqHz)
	}

	return &Detector{cfg: cfg}, nil
}

// SilenceThreshold returns the RMS silence threshold.
func (d *Detector) SilenceThreshold() float64 { return d.cfg.silenceThreshold }

// Detect estimates the fundamental frequency of samples.
//
// It returns core.ErrInsufficientSignal when the input is too short or its
// RMS is below the silence threshold, and core.ErrNoPitchDetected when no
// autocorrelation peak exceeds half of the zero-lag energy.
func (d *Detector) Detect(samples []float64, sampleRate int) (Estimate, error) {
	if sampleRate <= 0 {
		return Estimate{}, fmt.Errorf("%w: sample rate must be > 0: %d", core.ErrInvalidParameter, sampleRate)
	}

	if len(samples) < 3 {
		return Estimate{}, fmt.Errorf("%w: need at least 3 samples, got %d", core.ErrInsufficientSignal, len(samples))
	}

	if rms := core.RMS(samples); rms < d.cfg.silenceThreshold || rms == 0 {
		return Estimate{}, fmt.Errorf("%w: rms %g below threshold %g",
			core.ErrInsufficientSignal, rms, d.cfg.silenceThreshold)
	}

	r, err := conv.AutoCorrelate(samples)
	if err != nil {
		return Estimate{}, err
	}

	minLag, maxLag := d.lagWindow(len(r), sampleRate)

	lag, ok := firstPeak(r, minLag, maxLag)
	if !ok {
		return Estimate{}, core.ErrNoPitchDetected
	}

	refined := refineLag(r, lag)

	return Estimate{
		FrequencyHz: float64(sampleRate) / refined,
		Confidence:  core.Clamp(r[lag]/r[0], 0, 1),
	}, nil
}

// lagWindow returns the inclusive lag range searched for peaks. The last lag
// is excluded because refinement needs a right neighbour.
func (d *Detector) lagWindow(n, sampleRate int) (int, int) {
	minLag, maxLag := 1, n-2

	if d.cfg.maxFreqHz > 0 {
		minLag = max(minLag, int(math.Floor(float64(sampleRate)/d.cfg.maxFreqHz)))
	}

	if d.cfg.minFreqHz > 0 {
		maxLag = min(maxLag, int(math.Ceil(float64(sampleRate)/d.cfg.minFreqHz)))
	}

	return minLag, maxLag
}

// firstPeak skips the initial decline from lag 0 and returns the first local
// maximum that exceeds peakRatio of r[0].
func firstPeak(r []float64, minLag, maxLag int) (int, bool) {
	d := 0
	for d+1 < len(r) && r[d] > r[d+1] {
		d++
	}

	threshold := peakRatio * r[0]

	for i := max(d, minLag, 1); i <= maxLag; i++ {
		if r[i] >= r[i-1] && r[i] > r[i+1] && r[i] > threshold {
			return i, true
		}
	}

	return 0, false
}

// refineLag fits a parabola through r[lag-1], r[lag], r[lag+1] and returns
// the lag of its vertex.
func refineLag(r []float64, lag int) float64 {
	y1, y2, y3 := r[lag-1], r[lag], r[lag+1]

	denom := y1 + y3 - 2*y2
	if denom == 0 {
		return float64(lag)
	}

	return float64(lag) - (y3-y1)/(2*denom)
}
