package spatial

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Encode splits a stereo sample into mid and side.
func Encode(left, right float64) (mid, side float64) {
	return (left + right) * 0.5, (left - right) * 0.5
}

// Decode rebuilds a stereo sample from mid and side.
func Decode(mid, side float64) (left, right float64) {
	return mid + side, mid - side
}

func checkPair(name string, left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("%w: %s: left and right buffers must have equal length: %d != %d",
			core.ErrInvalidParameter, name, len(left), len(right))
	}

	return nil
}
