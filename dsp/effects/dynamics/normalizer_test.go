package dynamics

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestNormalizePeak(t *testing.T) {
	channels := [][]float64{{0.1, -0.25, 0.2}, {0.05, 0, -0.1}}
	gain, err := Normalize(channels, 8000, NormalizePeak, 0)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if math.Abs(gain-4) > 1e-12 {
		t.Fatalf("gain = %v, want 4", gain)
	}
	if channels[0][1] != -1 {
		t.Fatalf("peak sample = %v, want -1", channels[0][1])
	}
}

func TestNormalizeRMS(t *testing.T) {
	x := testutil.DeterministicSine(100, 8000, 0.1, 8000)
	channels := [][]float64{x}
	if _, err := Normalize(channels, 8000, NormalizeRMS, -20); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got := core.LinearToDB(core.RMS(channels[0])); math.Abs(got+20) > 1e-6 {
		t.Fatalf("RMS after normalize = %v dB, want -20", got)
	}
}

func TestNormalizeLoudnessUsesLoudestBlock(t *testing.T) {
	const sr = 1000
	x := make([]float64, 2*sr)
	copy(x[sr:], testutil.DC(0.5, sr))

	level, err := MeasureLevel(NormalizeLoudness, [][]float64{x}, sr)
	if err != nil {
		t.Fatalf("MeasureLevel() error = %v", err)
	}
	if math.Abs(level-0.5) > 1e-12 {
		t.Fatalf("loudness level = %v, want 0.5 (loudest block)", level)
	}

	rms, _ := MeasureLevel(NormalizeRMS, [][]float64{x}, sr)
	if rms >= level {
		t.Fatalf("overall RMS %v should be below loudest block %v", rms, level)
	}
}

func TestNormalizeLoudnessMeasuresFinalBlock(t *testing.T) {
	const sr = 8000
	// 0.8 s of silence, then one 400 ms block ending exactly at the last sample.
	x := make([]float64, 1200*sr/1000)
	copy(x[800*sr/1000:], testutil.DC(0.5, 400*sr/1000))

	level, err := MeasureLevel(NormalizeLoudness, [][]float64{x}, sr)
	if err != nil {
		t.Fatalf("MeasureLevel() error = %v", err)
	}
	if math.Abs(level-0.5) > 1e-12 {
		t.Fatalf("loudness level = %v, want 0.5 from the final block", level)
	}
}

func TestNormalizeClampsOutput(t *testing.T) {
	channels := [][]float64{testutil.DeterministicNoise(9, 0.5, 4096)}
	if _, err := Normalize(channels, 8000, NormalizeRMS, 0); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if p := core.Peak(channels[0]); p > 1 {
		t.Fatalf("peak = %v, want <= 1", p)
	}
}

func TestNormalizeSilence(t *testing.T) {
	channels := [][]float64{make([]float64, 16)}
	gain, err := Normalize(channels, 8000, NormalizePeak, -1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if gain != 1 {
		t.Fatalf("gain = %v, want 1 for silence", gain)
	}
}

func TestNormalizeValidation(t *testing.T) {
	if _, err := Normalize([][]float64{{0.1}}, 8000, NormalizePeak, 3); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
	if _, err := ParseNormalizeMode("bogus"); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
	for _, m := range []NormalizeMode{NormalizePeak, NormalizeRMS, NormalizeLoudness} {
		got, err := ParseNormalizeMode(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseNormalizeMode(%q) = %v, %v", m.String(), got, err)
		}
	}
}
