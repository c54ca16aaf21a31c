package effectchain

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/signal"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestNoiseGenerateDeterministic(t *testing.T) {
	t.Parallel()

	p := NoiseParams{Type: signal.Pink, DurationSeconds: 0.5, VolumePercent: 80, Seed: 9}

	a, err := p.Generate(context.Background(), 22050)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	b, _ := p.Generate(context.Background(), 22050)

	if a.ChannelCount() != 1 || a.FrameCount() != 11025 {
		t.Fatalf("layout = %dx%d, want 1x11025", a.ChannelCount(), a.FrameCount())
	}

	testutil.RequireSliceNearlyEqual(t, a.Channel(0), b.Channel(0), 0)
	testutil.RequirePeakAtMost(t, a.Channel(0), 1)
}

func TestNoiseValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    NoiseParams
		sr   int
	}{
		{name: "zero duration", p: NoiseParams{DurationSeconds: 0, VolumePercent: 50}, sr: 44100},
		{name: "too long", p: NoiseParams{DurationSeconds: 601, VolumePercent: 50}, sr: 44100},
		{name: "volume 101", p: NoiseParams{DurationSeconds: 1, VolumePercent: 101}, sr: 44100},
		{name: "unknown type", p: NoiseParams{Type: signal.NoiseType(7), DurationSeconds: 1}, sr: 44100},
		{name: "zero sample rate", p: DefaultNoiseParams(), sr: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tt.p.Generate(context.Background(), tt.sr); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestDetectPitch(t *testing.T) {
	t.Parallel()

	const sr = 44100

	tone := testutil.DeterministicSine(440, sr, 0.5, sr)
	buf, _ := buffer.FromChannels([][]float64{tone, tone}, sr)

	res, err := PitchParams{}.DetectPitch(buf)
	if err != nil {
		t.Fatalf("DetectPitch() error = %v", err)
	}

	if math.Abs(res.FrequencyHz-440) > 1 {
		t.Fatalf("frequency = %g, want 440 +/- 1", res.FrequencyHz)
	}

	if res.Note.Name != "A" || res.Note.Octave != 4 {
		t.Fatalf("note = %v, want A4", res.Note)
	}

	silent, _ := buffer.New(1, sr/10, sr)
	if _, err := (PitchParams{}).DetectPitch(silent); !errors.Is(err, core.ErrInsufficientSignal) {
		t.Fatalf("silence error = %v, want ErrInsufficientSignal", err)
	}

	if _, err := (PitchParams{MinFrequencyHz: 500, MaxFrequencyHz: 100}).DetectPitch(buf); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("window error = %v, want ErrInvalidParameter", err)
	}

	if _, err := (PitchParams{WindowFrames: -1}).DetectPitch(buf); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("negative window error = %v, want ErrInvalidParameter", err)
	}
}

func TestDetectPitchAnalyzesWindowOnly(t *testing.T) {
	t.Parallel()

	const (
		sr     = 44100
		frames = 4 * sr
	)

	// 220 Hz everywhere except the excerpt under test.
	place := func(t *testing.T, start, size int, freq float64) *buffer.AudioBuffer {
		t.Helper()

		data := testutil.DeterministicSine(220, sr, 0.5, frames)
		copy(data[start:start+size], testutil.DeterministicSine(freq, sr, 0.5, size))

		buf, err := buffer.FromChannels([][]float64{data}, sr)
		if err != nil {
			t.Fatalf("FromChannels() error = %v", err)
		}

		return buf
	}

	tests := []struct {
		name   string
		params PitchParams
		start  int
		size   int
		freq   float64
	}{
		{"default quarter offset", PitchParams{}, frames / 4, DefaultPitchWindow, 440},
		{"explicit offset", PitchParams{WindowOffset: 3 * sr, WindowFrames: 8192}, 3 * sr, 8192, 330},
		{"clamped to end", PitchParams{WindowOffset: frames - 100}, frames - DefaultPitchWindow, DefaultPitchWindow, 523.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := tt.params.DetectPitch(place(t, tt.start, tt.size, tt.freq))
			if err != nil {
				t.Fatalf("DetectPitch() error = %v", err)
			}

			if math.Abs(res.FrequencyHz-tt.freq) > 1 {
				t.Fatalf("frequency = %g, want %g +/- 1", res.FrequencyHz, tt.freq)
			}
		})
	}
}

func TestPitchWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		params     PitchParams
		n          int
		start, end int
	}{
		{"short buffer whole", PitchParams{}, 1000, 0, 1000},
		{"exact window whole", PitchParams{}, DefaultPitchWindow, 0, DefaultPitchWindow},
		{"default offset", PitchParams{}, 40000, 10000, 10000 + DefaultPitchWindow},
		{"explicit", PitchParams{WindowFrames: 100, WindowOffset: 7}, 1000, 7, 107},
		{"clamped", PitchParams{WindowFrames: 100, WindowOffset: 950}, 1000, 900, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end := tt.params.window(tt.n)
			if start != tt.start || end != tt.end {
				t.Fatalf("window(%d) = [%d, %d), want [%d, %d)", tt.n, start, end, tt.start, tt.end)
			}
		})
	}
}
