package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	minCutoffHz = 20.0
	maxStages   = 4
)

func checkRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi || !core.IsFinite(v) {
		return fmt.Errorf("%w: %s must be in [%g, %g]: %f", core.ErrInvalidParameter, name, lo, hi, v)
	}

	return nil
}

func checkIntRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s must be in [%d, %d]: %d", core.ErrInvalidParameter, name, lo, hi, v)
	}

	return nil
}

// checkCutoff accepts [20, sampleRate/2 - 1] Hz.
func checkCutoff(name string, hz float64, sampleRate int) error {
	return checkRange(name, hz, minCutoffHz, float64(sampleRate)/2-1)
}

func requireStereo(ctx Context, name string) error {
	if ctx.Channels != 2 {
		return fmt.Errorf("%w: %s needs 2 channels, got %d", core.ErrUnsupportedChannelLayout, name, ctx.Channels)
	}

	return nil
}

func checkBuffer(in *buffer.AudioBuffer) error {
	if in == nil {
		return fmt.Errorf("%w: input buffer is nil", core.ErrInvalidParameter)
	}

	return nil
}
