package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	defaultCompressorThresholdDB = -24.0
	defaultCompressorKneeDB      = 30.0
	defaultCompressorRatio       = 12.0
	defaultCompressorAttack      = 0.003
	defaultCompressorRelease     = 0.25

	minCompressorThresholdDB = -100.0
	maxCompressorKneeDB      = 40.0
	maxCompressorRatio       = 20.0
	maxCompressorTimeSeconds = 1.0
)

// CompressorOption mutates compressor construction parameters.
type CompressorOption func(*compressorConfig) error

type compressorConfig struct {
	thresholdDB float64
	kneeDB      float64
	ratio       float64
	attack      float64
	release     float64
}

func defaultCompressorConfig() compressorConfig {
	return compressorConfig{
		thresholdDB: defaultCompressorThresholdDB,
		kneeDB:      defaultCompressorKneeDB,
		ratio:       defaultCompressorRatio,
		attack:      defaultCompressorAttack,
		release:     defaultCompressorRelease,
	}
}

// WithCompressorThreshold sets the threshold in dBFS, [-100, 0].
func WithCompressorThreshold(dB float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		if dB < minCompressorThresholdDB || dB > 0 || !core.IsFinite(dB) {
			return fmt.Errorf("%w: compressor threshold must be in [%g, 0] dB: %f",
				core.ErrInvalidParameter, minCompressorThresholdDB, dB)
		}

		cfg.thresholdDB = dB

		return nil
	}
}

// WithCompressorKnee sets the soft-knee width in dB, [0, 40].
func WithCompressorKnee(dB float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		if dB < 0 || dB > maxCompressorKneeDB || !core.IsFinite(dB) {
			return fmt.Errorf("%w: compressor knee must be in [0, %g] dB: %f",
				core.ErrInvalidParameter, maxCompressorKneeDB, dB)
		}

		cfg.kneeDB = dB

		return nil
	}
}

// WithCompressorRatio sets the compression ratio, [1, 20].
func WithCompressorRatio(ratio float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		if ratio < 1 || ratio > maxCompressorRatio || !core.IsFinite(ratio) {
			return fmt.Errorf("%w: compressor ratio must be in [1, %g]: %f",
				core.ErrInvalidParameter, maxCompressorRatio, ratio)
		}

		cfg.ratio = ratio

		return nil
	}
}

// WithCompressorTimes sets attack and release in seconds, each in (0, 1].
func WithCompressorTimes(attack, release float64) CompressorOption {
	return func(cfg *compressorConfig) error {
		for _, v := range []float64{attack, release} {
			if v <= 0 || v > maxCompressorTimeSeconds || !core.IsFinite(v) {
				return fmt.Errorf("%w: compressor attack/release must be in (0, %g] s: %f",
					core.ErrInvalidParameter, maxCompressorTimeSeconds, v)
			}
		}

		cfg.attack = attack
		cfg.release = release

		return nil
	}
}

// Compressor is a feed-forward soft-knee peak compressor.
//
// The level detector is an [EnvelopeFollower] on |x|; the static curve is the
// quadratic soft knee
//
//	over < -knee/2:        0 dB
//	|over| <= knee/2:      (1/ratio-1) * (over+knee/2)^2 / (2*knee)
//	over > knee/2:         (1/ratio-1) * over
//
// with over = levelDB - thresholdDB. Defaults are threshold -24 dB, knee
// 30 dB, ratio 12, attack 3 ms and release 250 ms.
type Compressor struct {
	cfg      compressorConfig
	envelope *EnvelopeFollower
}

// NewCompressor creates a compressor for the given sample rate.
func NewCompressor(sampleRate float64, opts ...CompressorOption) (*Compressor, error) {
	cfg := defaultCompressorConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	env, err := NewEnvelopeFollower(sampleRate, cfg.attack, cfg.release)
	if err != nil {
		return nil, err
	}

	return &Compressor{cfg: cfg, envelope: env}, nil
}

// GainDB returns the static gain change in dB for an input level in dBFS.
func (c *Compressor) GainDB(levelDB float64) float64 {
	over := levelDB - c.cfg.thresholdDB
	slope := 1/c.cfg.ratio - 1
	knee := c.cfg.kneeDB

	switch {
	case 2*over < -knee:
		return 0
	case knee > 0 && 2*math.Abs(over) <= knee:
		x := over + knee/2
		return slope * x * x / (2 * knee)
	default:
		return slope * over
	}
}

// ProcessSample compresses one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	level := c.envelope.Process(x)
	if level <= 0 {
		return x
	}

	return x * core.DBToLinear(c.GainDB(core.LinearToDB(level)))
}

// ProcessInPlace compresses buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// Reset clears the detector state.
func (c *Compressor) Reset() {
	c.envelope.Reset()
}

// Threshold returns the threshold in dBFS.
func (c *Compressor) Threshold() float64 { return c.cfg.thresholdDB }

// Knee returns the knee width in dB.
func (c *Compressor) Knee() float64 { return c.cfg.kneeDB }

// Ratio returns the compression ratio.
func (c *Compressor) Ratio() float64 { return c.cfg.ratio }
