package signal

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestNoiseGeneratorDeterministic(t *testing.T) {
	for _, nt := range []NoiseType{White, Pink, Brown} {
		t.Run(nt.String(), func(t *testing.T) {
			a, _ := NewNoiseGenerator(nt, rand.New(rand.NewSource(7)))
			b, _ := NewNoiseGenerator(nt, rand.New(rand.NewSource(7)))

			x := make([]float64, 256)
			y := make([]float64, 256)
			a.Fill(x)
			b.Fill(y)

			testutil.RequireSliceNearlyEqual(t, x, y, 0)
		})
	}
}

func TestWhiteNoiseRange(t *testing.T) {
	g, _ := NewNoiseGenerator(White, rand.New(rand.NewSource(1)))

	x := make([]float64, 10000)
	g.Fill(x)
	testutil.RequirePeakAtMost(t, x, 1)
}

func TestPinkFirstSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ref := rand.New(rand.NewSource(11))

	g, _ := NewNoiseGenerator(Pink, rng)

	w0 := ref.Float64()*2 - 1
	w1 := ref.Float64()*2 - 1

	// First output: every state holds w0*weight, no carry yet.
	var sum0 float64
	for _, c := range pinkBank {
		sum0 += w0 * c[1]
	}
	want0 := (sum0 + w0*pinkDirect) * pinkScale

	// Second output includes the carried previous white sample.
	var sum1 float64
	for _, c := range pinkBank {
		sum1 += c[0]*w0*c[1] + w1*c[1]
	}
	want1 := (sum1 + w0*pinkCarry + w1*pinkDirect) * pinkScale

	testutil.RequireSliceNearlyEqual(t, []float64{g.Next(), g.Next()}, []float64{want0, want1}, 1e-15)
}

func TestBrownFirstSamples(t *testing.T) {
	ref := rand.New(rand.NewSource(5))
	g, _ := NewNoiseGenerator(Brown, rand.New(rand.NewSource(5)))

	w0 := ref.Float64()*2 - 1
	w1 := ref.Float64()*2 - 1
	y0 := 0.02 * w0 / 1.02
	y1 := (y0 + 0.02*w1) / 1.02

	testutil.RequireSliceNearlyEqual(t, []float64{g.Next(), g.Next()}, []float64{3.5 * y0, 3.5 * y1}, 1e-15)
}

func TestNoiseSpectralOrdering(t *testing.T) {
	const (
		sr     = 44100
		length = 1 << 16
	)

	ratio := make(map[NoiseType]float64)

	for _, nt := range []NoiseType{White, Pink, Brown} {
		g, _ := NewNoiseGenerator(nt, rand.New(rand.NewSource(99)))
		x := make([]float64, length)
		g.Fill(x)

		high, err := testutil.BandEnergyFraction(x, sr, 5000, sr/2+1)
		if err != nil {
			t.Fatalf("BandEnergyFraction() error = %v", err)
		}

		low, err := testutil.BandEnergyFraction(x, sr, 20, 500)
		if err != nil {
			t.Fatalf("BandEnergyFraction() error = %v", err)
		}

		ratio[nt] = high / low
	}

	if !(ratio[White] > ratio[Pink] && ratio[Pink] > ratio[Brown]) {
		t.Fatalf("high/low energy ratios white=%g pink=%g brown=%g, want strictly decreasing",
			ratio[White], ratio[Pink], ratio[Brown])
	}
}

func TestNoiseGeneratorValidation(t *testing.T) {
	if _, err := NewNoiseGenerator(White, nil); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("nil rng error = %v, want ErrInvalidParameter", err)
	}

	if _, err := NewNoiseGenerator(NoiseType(9), rand.New(rand.NewSource(1))); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("bad type error = %v, want ErrInvalidParameter", err)
	}
}

func TestSynthesize(t *testing.T) {
	buf, err := Synthesize(Brown, 0.5, 1, 8000, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if buf.ChannelCount() != 1 || buf.FrameCount() != 4000 || buf.SampleRate() != 8000 {
		t.Fatalf("buffer = %d ch × %d @ %d, want 1 × 4000 @ 8000",
			buf.ChannelCount(), buf.FrameCount(), buf.SampleRate())
	}

	testutil.RequirePeakAtMost(t, buf.Channel(0), 1)
}

func TestSynthesizeVolume(t *testing.T) {
	full, _ := Synthesize(White, 0.1, 1, 8000, rand.New(rand.NewSource(3)))
	half, _ := Synthesize(White, 0.1, 0.5, 8000, rand.New(rand.NewSource(3)))

	for i, v := range full.Channel(0) {
		if got := half.Channel(0)[i]; got != v*0.5 {
			t.Fatalf("sample %d: %v, want %v", i, got, v*0.5)
		}
	}
}

func TestSynthesizeValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name     string
		duration float64
		volume   float64
		sr       int
	}{
		{name: "zero duration", duration: 0, volume: 1, sr: 8000},
		{name: "too long", duration: MaxNoiseSeconds + 1, volume: 1, sr: 8000},
		{name: "volume above one", duration: 1, volume: 1.5, sr: 8000},
		{name: "bad sample rate", duration: 1, volume: 1, sr: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Synthesize(White, tt.duration, tt.volume, tt.sr, rng); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestParseNoiseType(t *testing.T) {
	tests := map[string]NoiseType{"white": White, "Pink": Pink, " brown ": Brown, "red": Brown}
	for in, want := range tests {
		got, err := ParseNoiseType(in)
		if err != nil || got != want {
			t.Fatalf("ParseNoiseType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseNoiseType("blue"); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
}
