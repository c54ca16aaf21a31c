package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// NormalizeMode selects the level measure a normalizer matches to its target.
type NormalizeMode int

const (
	// NormalizePeak matches the largest absolute sample.
	NormalizePeak NormalizeMode = iota
	// NormalizeRMS matches the RMS level over all channels.
	NormalizeRMS
	// NormalizeLoudness matches the RMS of the loudest 400 ms block
	// (100 ms hop), a simplified short-term loudness without K-weighting.
	NormalizeLoudness
)

const (
	loudnessBlockSeconds = 0.4
	loudnessHopDivisor   = 4
	maxNormalizeTargetDB = 0.0
	minNormalizeTargetDB = -60.0
)

// String returns the mode name used in presets and on the command line.
func (m NormalizeMode) String() string {
	switch m {
	case NormalizePeak:
		return "peak"
	case NormalizeRMS:
		return "rms"
	case NormalizeLoudness:
		return "loudness"
	default:
		return fmt.Sprintf("NormalizeMode(%d)", int(m))
	}
}

// ParseNormalizeMode parses "peak", "rms" or "loudness".
func ParseNormalizeMode(s string) (NormalizeMode, error) {
	switch s {
	case "peak", "":
		return NormalizePeak, nil
	case "rms":
		return NormalizeRMS, nil
	case "loudness", "lufs":
		return NormalizeLoudness, nil
	default:
		return 0, fmt.Errorf("%w: unknown normalize mode %q", core.ErrInvalidParameter, s)
	}
}

// MeasureLevel returns the linear level of channels under mode.
func MeasureLevel(mode NormalizeMode, channels [][]float64, sampleRate int) (float64, error) {
	switch mode {
	case NormalizePeak:
		peak := 0.0
		for _, ch := range channels {
			peak = max(peak, core.Peak(ch))
		}

		return peak, nil

	case NormalizeRMS:
		sum, n := 0.0, 0
		for _, ch := range channels {
			sum += vecmath.DotProduct(ch, ch)
			n += len(ch)
		}

		if n == 0 {
			return 0, nil
		}

		return math.Sqrt(sum / float64(n)), nil

	case NormalizeLoudness:
		return loudestBlockRMS(channels, sampleRate), nil

	default:
		return 0, fmt.Errorf("%w: unknown normalize mode %d", core.ErrInvalidParameter, int(mode))
	}
}

func loudestBlockRMS(channels [][]float64, sampleRate int) float64 {
	block := int(float64(sampleRate) * loudnessBlockSeconds)
	hop := max(block/loudnessHopDivisor, 1)
	loudest := 0.0

	for _, ch := range channels {
		if len(ch) <= block || block == 0 {
			if len(ch) > 0 {
				loudest = max(loudest, vecmath.DotProduct(ch, ch)/float64(len(ch)))
			}

			continue
		}

		for start := 0; start+block <= len(ch); start += hop {
			w := ch[start : start+block]
			loudest = max(loudest, vecmath.DotProduct(w, w)/float64(block))
		}
	}

	return math.Sqrt(loudest)
}

// Normalize scales channels in place so their level under mode equals
// targetDB (dBFS, [-60, 0]), then clamps every sample to [-1, 1]. Silent
// input is left untouched. The applied linear gain is returned.
func Normalize(channels [][]float64, sampleRate int, mode NormalizeMode, targetDB float64) (float64, error) {
	if targetDB < minNormalizeTargetDB || targetDB > maxNormalizeTargetDB || !core.IsFinite(targetDB) {
		return 0, fmt.Errorf("%w: normalize target must be in [%g, %g] dB: %f",
			core.ErrInvalidParameter, minNormalizeTargetDB, maxNormalizeTargetDB, targetDB)
	}

	level, err := MeasureLevel(mode, channels, sampleRate)
	if err != nil {
		return 0, err
	}

	gain := 1.0
	if level > 0 {
		gain = core.DBToLinear(targetDB) / level
	}

	for _, ch := range channels {
		vecmath.ScaleBlockInPlace(ch, gain)

		for i, v := range ch {
			ch[i] = core.Clamp(v, -1, 1)
		}
	}

	return gain, nil
}
