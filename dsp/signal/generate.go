package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed used by Noise.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a signal generator from processor options.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a signal generator with processor and
// generator options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine tone starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: sine samples must be > 0: %d", core.ErrInvalidParameter, samples)
	}

	nyquist := g.cfg.Nyquist()
	if freqHz <= 0 || freqHz >= nyquist || !core.IsFinite(freqHz) {
		return nil, fmt.Errorf("%w: sine frequency must be in (0, %g): %f", core.ErrInvalidParameter, nyquist, freqHz)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / float64(g.cfg.SampleRate)

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// Noise generates reproducible noise of the given color from the
// generator's seed, scaled by amplitude.
func (g *Generator) Noise(noiseType NoiseType, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: noise samples must be > 0: %d", core.ErrInvalidParameter, samples)
	}

	if amplitude < 0 || !core.IsFinite(amplitude) {
		return nil, fmt.Errorf("%w: noise amplitude must be >= 0: %f", core.ErrInvalidParameter, amplitude)
	}

	gen, err := NewNoiseGenerator(noiseType, rand.New(rand.NewSource(g.seed)))
	if err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	gen.Fill(out)
	vecmath.ScaleBlockInPlace(out, amplitude)

	return out, nil
}
