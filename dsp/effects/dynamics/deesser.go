package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-audiofx/dsp/filter/design"
)

const (
	defaultDeEsserFreqHz      = 6000.0
	defaultDeEsserBandwidth   = 1.0
	defaultDeEsserThresholdDB = -20.0
	defaultDeEsserRatio       = 4.0
	defaultDeEsserAmount      = 1.0

	deEsserAttackSeconds  = 0.001
	deEsserReleaseSeconds = 0.05

	minDeEsserFreqHz    = 1000.0
	maxDeEsserFreqHz    = 20000.0
	maxDeEsserBandwidth = 4.0
	minDeEsserThreshDB  = -60.0
	maxDeEsserRatio     = 20.0
)

// DeEsserOption mutates de-esser construction parameters.
type DeEsserOption func(*deEsserConfig) error

type deEsserConfig struct {
	freqHz      float64
	bandwidth   float64
	thresholdDB float64
	ratio       float64
	amount      float64
}

func defaultDeEsserConfig() deEsserConfig {
	return deEsserConfig{
		freqHz:      defaultDeEsserFreqHz,
		bandwidth:   defaultDeEsserBandwidth,
		thresholdDB: defaultDeEsserThresholdDB,
		ratio:       defaultDeEsserRatio,
		amount:      defaultDeEsserAmount,
	}
}

// WithDeEsserFrequency sets the sibilance band center in Hz, [1000, 20000].
func WithDeEsserFrequency(hz float64) DeEsserOption {
	return func(cfg *deEsserConfig) error {
		if hz < minDeEsserFreqHz || hz > maxDeEsserFreqHz || !core.IsFinite(hz) {
			return fmt.Errorf("%w: de-esser frequency must be in [%g, %g]: %f",
				core.ErrInvalidParameter, minDeEsserFreqHz, maxDeEsserFreqHz, hz)
		}

		cfg.freqHz = hz

		return nil
	}
}

// WithDeEsserBandwidth sets the sibilance band width in octaves, (0, 4].
func WithDeEsserBandwidth(octaves float64) DeEsserOption {
	return func(cfg *deEsserConfig) error {
		if octaves <= 0 || octaves > maxDeEsserBandwidth || !core.IsFinite(octaves) {
			return fmt.Errorf("%w: de-esser bandwidth must be in (0, %g] octaves: %f",
				core.ErrInvalidParameter, maxDeEsserBandwidth, octaves)
		}

		cfg.bandwidth = octaves

		return nil
	}
}

// WithDeEsserThreshold sets the detection threshold in dBFS, [-60, 0].
func WithDeEsserThreshold(dB float64) DeEsserOption {
	return func(cfg *deEsserConfig) error {
		if dB < minDeEsserThreshDB || dB > 0 || !core.IsFinite(dB) {
			return fmt.Errorf("%w: de-esser threshold must be in [%g, 0] dB: %f",
				core.ErrInvalidParameter, minDeEsserThreshDB, dB)
		}

		cfg.thresholdDB = dB

		return nil
	}
}

// WithDeEsserRatio sets the band compression ratio, [1, 20].
func WithDeEsserRatio(ratio float64) DeEsserOption {
	return func(cfg *deEsserConfig) error {
		if ratio < 1 || ratio > maxDeEsserRatio || !core.IsFinite(ratio) {
			return fmt.Errorf("%w: de-esser ratio must be in [1, %g]: %f",
				core.ErrInvalidParameter, maxDeEsserRatio, ratio)
		}

		cfg.ratio = ratio

		return nil
	}
}

// WithDeEsserAmount sets how much of the computed reduction is applied, [0, 1].
func WithDeEsserAmount(amount float64) DeEsserOption {
	return func(cfg *deEsserConfig) error {
		if amount < 0 || amount > 1 || !core.IsFinite(amount) {
			return fmt.Errorf("%w: de-esser amount must be in [0, 1]: %f", core.ErrInvalidParameter, amount)
		}

		cfg.amount = amount

		return nil
	}
}

// DeEsser attenuates sibilance with sidechain-selective compression.
//
// A bandpass copy of the input drives an envelope follower (1 ms attack,
// 50 ms release). The gain computed from that envelope is applied to the band
// only, and the reduced part of the band is subtracted from the dry signal:
//
//	final = 1 - amount*(1-gain)
//	out   = x - band*(1-final)
//
// The full-band signal is never gain-reduced directly. One DeEsser serves one
// channel.
type DeEsser struct {
	cfg deEsserConfig

	band     *biquad.Section
	envelope *EnvelopeFollower
	gain     *GainComputer

	minGain float64
}

// NewDeEsser creates a de-esser for the given sample rate.
func NewDeEsser(sampleRate float64, opts ...DeEsserOption) (*DeEsser, error) {
	cfg := defaultDeEsserConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	coeffs, err := design.BandpassBW(cfg.freqHz, cfg.bandwidth, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("de-esser band: %w", err)
	}

	env, err := NewEnvelopeFollower(sampleRate, deEsserAttackSeconds, deEsserReleaseSeconds)
	if err != nil {
		return nil, err
	}

	gc, err := NewGainComputer(core.DBToLinear(cfg.thresholdDB), cfg.ratio)
	if err != nil {
		return nil, err
	}

	return &DeEsser{
		cfg:      cfg,
		band:     biquad.NewSection(coeffs),
		envelope: env,
		gain:     gc,
		minGain:  1,
	}, nil
}

// ProcessSample processes one sample.
func (d *DeEsser) ProcessSample(x float64) (float64, error) {
	band, err := d.band.ProcessSample(x)
	if err != nil {
		return 0, err
	}

	gain := d.gain.Gain(d.envelope.Process(band))
	final := 1 - d.cfg.amount*(1-gain)
	d.minGain = min(d.minGain, final)

	return x - band*(1-final), nil
}

// ProcessInPlace de-esses buf in place.
func (d *DeEsser) ProcessInPlace(buf []float64) error {
	for i, x := range buf {
		y, err := d.ProcessSample(x)
		if err != nil {
			return fmt.Errorf("de-esser sample %d: %w", i, err)
		}

		buf[i] = y
	}

	return nil
}

// MaxReduction returns the smallest applied band gain since the last Reset.
func (d *DeEsser) MaxReduction() float64 { return d.minGain }

// Reset clears filter, envelope and metering state.
func (d *DeEsser) Reset() {
	d.band.Reset()
	d.envelope.Reset()
	d.minGain = 1
}

// Frequency returns the band center in Hz.
func (d *DeEsser) Frequency() float64 { return d.cfg.freqHz }

// Bandwidth returns the band width in octaves.
func (d *DeEsser) Bandwidth() float64 { return d.cfg.bandwidth }

// Threshold returns the detection threshold in dBFS.
func (d *DeEsser) Threshold() float64 { return d.cfg.thresholdDB }

// Ratio returns the band compression ratio.
func (d *DeEsser) Ratio() float64 { return d.cfg.ratio }

// Amount returns the reduction amount in [0, 1].
func (d *DeEsser) Amount() float64 { return d.cfg.amount }
