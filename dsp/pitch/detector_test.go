package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/conv"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestDetectSine(t *testing.T) {
	tests := []struct {
		name       string
		freq       float64
		sampleRate int
		length     int
	}{
		{name: "A4 one second", freq: 440, sampleRate: 44100, length: 44100},
		{name: "A4 short window", freq: 440, sampleRate: 44100, length: 4096},
		{name: "low E", freq: 82.41, sampleRate: 48000, length: 8192},
		{name: "high C", freq: 1046.5, sampleRate: 48000, length: 4096},
	}

	d, err := NewDetector()
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := testutil.DeterministicSine(tt.freq, float64(tt.sampleRate), 0.8, tt.length)

			est, err := d.Detect(x, tt.sampleRate)
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}

			if math.Abs(est.FrequencyHz-tt.freq) > 1 {
				t.Fatalf("frequency = %.3f, want %.3f ±1", est.FrequencyHz, tt.freq)
			}

			if est.Confidence < 0.5 || est.Confidence > 1 {
				t.Fatalf("confidence = %f, want in (0.5, 1]", est.Confidence)
			}
		})
	}
}

func TestDetectHarmonicTone(t *testing.T) {
	const sr = 44100

	x := testutil.DeterministicSine(220, sr, 0.5, 8192)
	h := testutil.DeterministicSine(440, sr, 0.3, 8192)
	for i := range x {
		x[i] += h[i]
	}

	d, _ := NewDetector()

	est, err := d.Detect(x, sr)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if math.Abs(est.FrequencyHz-220) > 1 {
		t.Fatalf("frequency = %.3f, want fundamental 220", est.FrequencyHz)
	}
}

func TestDetectSilence(t *testing.T) {
	d, _ := NewDetector()

	tests := []struct {
		name    string
		samples []float64
	}{
		{name: "zeros", samples: make([]float64, 4096)},
		{name: "quiet", samples: testutil.DeterministicSine(440, 44100, 0.005, 4096)},
		{name: "too short", samples: []float64{0.5, -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Detect(tt.samples, 44100)
			if !errors.Is(err, core.ErrInsufficientSignal) {
				t.Fatalf("error = %v, want ErrInsufficientSignal", err)
			}
		})
	}
}

func TestDetectNoise(t *testing.T) {
	d, _ := NewDetector()

	_, err := d.Detect(testutil.DeterministicNoise(3, 0.5, 8192), 44100)
	if !errors.Is(err, core.ErrNoPitchDetected) {
		t.Fatalf("error = %v, want ErrNoPitchDetected", err)
	}
}

func TestDetectFrequencyWindow(t *testing.T) {
	const sr = 44100

	x := testutil.DeterministicSine(440, sr, 0.8, 8192)

	d, err := NewDetector(WithMinFrequency(500), WithMaxFrequency(2000))
	if err != nil {
		t.Fatalf("NewDetector() error = %v", err)
	}

	if _, err := d.Detect(x, sr); !errors.Is(err, core.ErrNoPitchDetected) {
		t.Fatalf("error = %v, want ErrNoPitchDetected outside the window", err)
	}
}

func TestDetectorOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []DetectorOption
	}{
		{name: "negative threshold", opts: []DetectorOption{WithSilenceThreshold(-0.1)}},
		{name: "threshold above one", opts: []DetectorOption{WithSilenceThreshold(1.5)}},
		{name: "NaN min", opts: []DetectorOption{WithMinFrequency(math.NaN())}},
		{name: "inverted window", opts: []DetectorOption{WithMinFrequency(1000), WithMaxFrequency(100)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDetector(tt.opts...); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestFirstPeakSkipsInitialDecline(t *testing.T) {
	x := testutil.DeterministicSine(1000, 48000, 1, 2048)

	r, err := conv.AutoCorrelate(x)
	if err != nil {
		t.Fatalf("AutoCorrelate() error = %v", err)
	}

	lag, ok := firstPeak(r, 1, len(r)-2)
	if !ok {
		t.Fatal("no peak found")
	}

	if lag < 47 || lag > 49 {
		t.Fatalf("lag = %d, want 48 ±1", lag)
	}
}

func TestRefineLag(t *testing.T) {
	// Samples of -(x-10.3)^2 at 9, 10, 11.
	f := func(x float64) float64 { return -(x - 10.3) * (x - 10.3) }
	r := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, f(9), f(10), f(11)}

	if got := refineLag(r, 10); math.Abs(got-10.3) > 1e-12 {
		t.Fatalf("refineLag() = %f, want 10.3", got)
	}
}
