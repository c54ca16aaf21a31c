package modulation

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	defaultRingModCarrierHz = 440.0
	defaultRingModDepth     = 1.0
	defaultRingModMix       = 1.0
)

// Waveform selects the carrier shape.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
	Sawtooth
)

// String returns the waveform name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Sawtooth:
		return "sawtooth"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// ParseWaveform parses a waveform name (case-insensitive). "saw" is accepted
// for sawtooth.
func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine", "sin":
		return Sine, nil
	case "square":
		return Square, nil
	case "triangle":
		return Triangle, nil
	case "sawtooth", "saw":
		return Sawtooth, nil
	default:
		return 0, fmt.Errorf("%w: unknown waveform %q", core.ErrInvalidParameter, s)
	}
}

// value evaluates the waveform at phase p in cycles, [0, 1).
func (w Waveform) value(p float64) float64 {
	switch w {
	case Square:
		if math.Sin(2*math.Pi*p) >= 0 {
			return 1
		}

		return -1
	case Triangle:
		return 2*math.Abs(2*(p-math.Floor(p+0.5))) - 1
	case Sawtooth:
		return 2 * (p - math.Floor(p+0.5))
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// RingModulatorOption mutates ring modulator construction parameters.
type RingModulatorOption func(*ringModConfig) error

type ringModConfig struct {
	carrierHz float64
	waveform  Waveform
	depth     float64
	mix       float64
}

func defaultRingModConfig() ringModConfig {
	return ringModConfig{
		carrierHz: defaultRingModCarrierHz,
		waveform:  Sine,
		depth:     defaultRingModDepth,
		mix:       defaultRingModMix,
	}
}

// WithRingModCarrierHz sets the carrier frequency in Hz. It must be below
// Nyquist, which is checked at construction.
func WithRingModCarrierHz(carrierHz float64) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if carrierHz <= 0 || !core.IsFinite(carrierHz) {
			return fmt.Errorf("%w: ring modulator carrier frequency must be > 0 and finite: %f",
				core.ErrInvalidParameter, carrierHz)
		}

		cfg.carrierHz = carrierHz

		return nil
	}
}

// WithRingModWaveform sets the carrier shape.
func WithRingModWaveform(w Waveform) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if w < Sine || w > Sawtooth {
			return fmt.Errorf("%w: unknown ring modulator waveform %d", core.ErrInvalidParameter, int(w))
		}

		cfg.waveform = w

		return nil
	}
}

// WithRingModDepth sets how much of the modulated signal replaces the
// input inside the effect, [0, 1].
func WithRingModDepth(depth float64) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if depth < 0 || depth > 1 || !core.IsFinite(depth) {
			return fmt.Errorf("%w: ring modulator depth must be in [0, 1]: %f", core.ErrInvalidParameter, depth)
		}

		cfg.depth = depth

		return nil
	}
}

// WithRingModMix sets the dry/wet mix in [0, 1], where 0 is fully dry.
func WithRingModMix(mix float64) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if mix < 0 || mix > 1 || !core.IsFinite(mix) {
			return fmt.Errorf("%w: ring modulator mix must be in [0, 1]: %f", core.ErrInvalidParameter, mix)
		}

		cfg.mix = mix

		return nil
	}
}

// RingModulator multiplies the input by a bipolar carrier, producing sum
// and difference frequencies:
//
//	effect = x*carrier(t)*depth + x*(1-depth)
//	out    = effect*mix + x*(1-mix)
//
// The carrier starts at phase 0. One RingModulator serves one channel.
type RingModulator struct {
	sampleRate float64
	cfg        ringModConfig

	phase    float64
	phaseInc float64
}

// NewRingModulator creates a ring modulator for the given sample rate.
func NewRingModulator(sampleRate float64, opts ...RingModulatorOption) (*RingModulator, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: ring modulator sample rate must be > 0 and finite: %f",
			core.ErrInvalidParameter, sampleRate)
	}

	cfg := defaultRingModConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.carrierHz >= sampleRate/2 {
		return nil, fmt.Errorf("%w: ring modulator carrier must be below Nyquist (%g): %f",
			core.ErrInvalidParameter, sampleRate/2, cfg.carrierHz)
	}

	return &RingModulator{
		sampleRate: sampleRate,
		cfg:        cfg,
		phaseInc:   cfg.carrierHz / sampleRate,
	}, nil
}

// Reset returns the carrier to phase 0.
func (r *RingModulator) Reset() {
	r.phase = 0
}

// ProcessSample processes one sample.
func (r *RingModulator) ProcessSample(x float64) float64 {
	carrier := r.cfg.waveform.value(r.phase)

	r.phase += r.phaseInc
	if r.phase >= 1 {
		r.phase -= 1
	}

	effect := x*carrier*r.cfg.depth + x*(1-r.cfg.depth)

	return effect*r.cfg.mix + x*(1-r.cfg.mix)
}

// ProcessInPlace applies ring modulation to buf in place.
func (r *RingModulator) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = r.ProcessSample(buf[i])
	}
}

// SampleRate returns the sample rate in Hz.
func (r *RingModulator) SampleRate() float64 { return r.sampleRate }

// CarrierHz returns the carrier frequency in Hz.
func (r *RingModulator) CarrierHz() float64 { return r.cfg.carrierHz }

// Waveform returns the carrier shape.
func (r *RingModulator) Waveform() Waveform { return r.cfg.waveform }

// Depth returns the modulation depth.
func (r *RingModulator) Depth() float64 { return r.cfg.depth }

// Mix returns the dry/wet mix.
func (r *RingModulator) Mix() float64 { return r.cfg.mix }
