package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// GainComputer maps an envelope level to a linear gain <= 1.
//
// Above the threshold the overshoot ratio is compressed by Ratio:
//
//	over   = env / threshold
//	target = 1 + (over-1)/ratio
//	gain   = target / over
type GainComputer struct {
	threshold float64
	ratio     float64
}

// NewGainComputer creates a gain computer. threshold is a linear level in
// (0, 1], ratio must be >= 1.
func NewGainComputer(threshold, ratio float64) (*GainComputer, error) {
	if threshold <= 0 || threshold > 1 || !core.IsFinite(threshold) {
		return nil, fmt.Errorf("%w: gain computer threshold must be in (0, 1]: %f", core.ErrInvalidParameter, threshold)
	}

	if ratio < 1 || !core.IsFinite(ratio) {
		return nil, fmt.Errorf("%w: gain computer ratio must be >= 1: %f", core.ErrInvalidParameter, ratio)
	}

	return &GainComputer{threshold: threshold, ratio: ratio}, nil
}

// Gain returns the gain for the given envelope level.
func (g *GainComputer) Gain(envelope float64) float64 {
	if envelope <= g.threshold {
		return 1
	}

	over := envelope / g.threshold
	target := 1 + (over-1)/g.ratio

	return target / over
}

// Threshold returns the linear threshold.
func (g *GainComputer) Threshold() float64 { return g.threshold }

// Ratio returns the compression ratio.
func (g *GainComputer) Ratio() float64 { return g.ratio }
