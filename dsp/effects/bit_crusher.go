package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	defaultBitCrusherBitDepth   = 8.0
	defaultBitCrusherDownsample = 1
	defaultBitCrusherMix        = 1.0
	minBitCrusherBitDepth       = 1.0
	maxBitCrusherBitDepth       = 16.0
	maxBitCrusherDownsample     = 64
)

// BitCrusherOption mutates bit crusher construction parameters.
type BitCrusherOption func(*bitCrusherConfig) error

type bitCrusherConfig struct {
	bitDepth   float64
	downsample int
	mix        float64
}

func defaultBitCrusherConfig() bitCrusherConfig {
	return bitCrusherConfig{
		bitDepth:   defaultBitCrusherBitDepth,
		downsample: defaultBitCrusherDownsample,
		mix:        defaultBitCrusherMix,
	}
}

// WithBitCrusherBitDepth sets the quantization depth in bits, [1, 16].
// Fractional depths are allowed.
func WithBitCrusherBitDepth(bitDepth float64) BitCrusherOption {
	return func(cfg *bitCrusherConfig) error {
		if bitDepth < minBitCrusherBitDepth || bitDepth > maxBitCrusherBitDepth || !core.IsFinite(bitDepth) {
			return fmt.Errorf("%w: bit crusher bit depth must be in [%g, %g]: %f",
				core.ErrInvalidParameter, minBitCrusherBitDepth, maxBitCrusherBitDepth, bitDepth)
		}

		cfg.bitDepth = bitDepth

		return nil
	}
}

// WithBitCrusherDownsample sets the sample-and-hold factor, [1, 64].
// 1 disables rate reduction.
func WithBitCrusherDownsample(factor int) BitCrusherOption {
	return func(cfg *bitCrusherConfig) error {
		if factor < 1 || factor > maxBitCrusherDownsample {
			return fmt.Errorf("%w: bit crusher downsample factor must be in [1, %d]: %d",
				core.ErrInvalidParameter, maxBitCrusherDownsample, factor)
		}

		cfg.downsample = factor

		return nil
	}
}

// WithBitCrusherMix sets the dry/wet mix in [0, 1].
func WithBitCrusherMix(mix float64) BitCrusherOption {
	return func(cfg *bitCrusherConfig) error {
		if mix < 0 || mix > 1 || !core.IsFinite(mix) {
			return fmt.Errorf("%w: bit crusher mix must be in [0, 1]: %f", core.ErrInvalidParameter, mix)
		}

		cfg.mix = mix

		return nil
	}
}

// BitCrusher reduces amplitude resolution and effective sample rate.
//
// Every downsample-th input (starting with the first) is captured and held.
// The held value is quantized to 2^bits levels across [-1, 1]:
//
//	crushed = round(held * 2^(bits-1)) / 2^(bits-1)
//	out     = x*(1-mix) + crushed*mix
//
// One BitCrusher serves one channel.
type BitCrusher struct {
	cfg bitCrusherConfig

	halfLevels float64

	holdCounter int
	holdValue   float64
}

// NewBitCrusher creates a bit crusher with optional overrides.
func NewBitCrusher(opts ...BitCrusherOption) (*BitCrusher, error) {
	cfg := defaultBitCrusherConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &BitCrusher{
		cfg:        cfg,
		halfLevels: math.Exp2(cfg.bitDepth - 1),
	}, nil
}

// Reset clears the sample-and-hold state.
func (bc *BitCrusher) Reset() {
	bc.holdCounter = 0
	bc.holdValue = 0
}

// ProcessSample processes one sample.
func (bc *BitCrusher) ProcessSample(input float64) float64 {
	if bc.holdCounter == 0 {
		bc.holdValue = input
	}

	bc.holdCounter++
	if bc.holdCounter >= bc.cfg.downsample {
		bc.holdCounter = 0
	}

	crushed := math.Round(bc.holdValue*bc.halfLevels) / bc.halfLevels

	return input*(1-bc.cfg.mix) + crushed*bc.cfg.mix
}

// ProcessInPlace applies the bit crusher to buf in place.
func (bc *BitCrusher) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = bc.ProcessSample(buf[i])
	}
}

// BitDepth returns the quantization depth in bits.
func (bc *BitCrusher) BitDepth() float64 { return bc.cfg.bitDepth }

// Downsample returns the sample-and-hold factor.
func (bc *BitCrusher) Downsample() int { return bc.cfg.downsample }

// Mix returns the dry/wet mix in [0, 1].
func (bc *BitCrusher) Mix() float64 { return bc.cfg.mix }
