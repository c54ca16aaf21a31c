package signal

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// NoiseType selects the spectral color of generated noise.
type NoiseType int

const (
	// White noise has a flat spectrum.
	White NoiseType = iota
	// Pink noise falls off at about 3 dB per octave (1/f).
	Pink
	// Brown noise falls off at about 6 dB per octave (1/f^2).
	Brown
)

// MaxNoiseSeconds bounds Synthesize durations.
const MaxNoiseSeconds = 600.0

// String returns the lower-case noise name.
func (t NoiseType) String() string {
	switch t {
	case White:
		return "white"
	case Pink:
		return "pink"
	case Brown:
		return "brown"
	default:
		return fmt.Sprintf("NoiseType(%d)", int(t))
	}
}

// ParseNoiseType parses "white", "pink" or "brown" (case-insensitive).
// "red" is accepted as an alias for brown.
func ParseNoiseType(s string) (NoiseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return White, nil
	case "pink":
		return Pink, nil
	case "brown", "red":
		return Brown, nil
	default:
		return 0, fmt.Errorf("%w: unknown noise type %q", core.ErrInvalidParameter, s)
	}
}

// Pink filter bank: pole and white-noise weight per state.
var pinkBank = [6][2]float64{
	{0.99886, 0.0555179},
	{0.99332, 0.0750759},
	{0.96900, 0.1538520},
	{0.86650, 0.3104856},
	{0.55000, 0.5329522},
	{-0.7616, -0.0168980},
}

const (
	pinkDirect     = 0.5362
	pinkCarry      = 0.115926
	pinkScale      = 0.11
	brownStep      = 0.02
	brownLeak      = 1.02
	brownOutputAmp = 3.5
)

// NoiseGenerator produces one noise sample per call.
// It is not safe for concurrent use.
type NoiseGenerator struct {
	noiseType NoiseType
	rng       *rand.Rand

	pink  [7]float64
	brown float64
}

// NewNoiseGenerator creates a generator drawing from rng.
func NewNoiseGenerator(noiseType NoiseType, rng *rand.Rand) (*NoiseGenerator, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: noise generator needs a random source", core.ErrInvalidParameter)
	}

	if noiseType < White || noiseType > Brown {
		return nil, fmt.Errorf("%w: unknown noise type %d", core.ErrInvalidParameter, int(noiseType))
	}

	return &NoiseGenerator{noiseType: noiseType, rng: rng}, nil
}

// Type returns the noise color.
func (g *NoiseGenerator) Type() NoiseType { return g.noiseType }

// Next returns the next sample. White noise is uniform in [-1, 1]; pink and
// brown are unclamped and stay close to that range.
func (g *NoiseGenerator) Next() float64 {
	white := g.rng.Float64()*2 - 1

	switch g.noiseType {
	case Pink:
		sum := 0.0
		for i, c := range pinkBank {
			g.pink[i] = c[0]*g.pink[i] + white*c[1]
			sum += g.pink[i]
		}

		out := (sum + g.pink[6] + white*pinkDirect) * pinkScale
		g.pink[6] = white * pinkCarry

		return out
	case Brown:
		g.brown = (g.brown + brownStep*white) / brownLeak
		return g.brown * brownOutputAmp
	default:
		return white
	}
}

// Fill writes len(dst) consecutive samples into dst.
func (g *NoiseGenerator) Fill(dst []float64) {
	for i := range dst {
		dst[i] = g.Next()
	}
}

// Reset clears filter state. The random source is not rewound.
func (g *NoiseGenerator) Reset() {
	g.pink = [7]float64{}
	g.brown = 0
}

// Synthesize renders durationSeconds of mono noise scaled by volume in
// [0, 1]. Samples are clamped to [-1, 1].
func Synthesize(noiseType NoiseType, durationSeconds, volume float64, sampleRate int, rng *rand.Rand) (*buffer.AudioBuffer, error) {
	if durationSeconds <= 0 || durationSeconds > MaxNoiseSeconds || !core.IsFinite(durationSeconds) {
		return nil, fmt.Errorf("%w: noise duration must be in (0, %g] seconds: %f",
			core.ErrInvalidParameter, MaxNoiseSeconds, durationSeconds)
	}

	if volume < 0 || volume > 1 || !core.IsFinite(volume) {
		return nil, fmt.Errorf("%w: noise volume must be in [0, 1]: %f", core.ErrInvalidParameter, volume)
	}

	gen, err := NewNoiseGenerator(noiseType, rng)
	if err != nil {
		return nil, err
	}

	frames := core.MillisToSamples(durationSeconds*1000, sampleRate)

	buf, err := buffer.New(1, frames, sampleRate)
	if err != nil {
		return nil, err
	}

	out := buf.Channel(0)
	gen.Fill(out)
	vecmath.ScaleBlockInPlace(out, volume)

	for i, v := range out {
		out[i] = core.Clamp(v, -1, 1)
	}

	return buf, nil
}
