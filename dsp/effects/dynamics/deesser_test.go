package dynamics

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestDeEsserReducesSibilanceBand(t *testing.T) {
	const sr = 44100

	d, err := NewDeEsser(sr,
		WithDeEsserFrequency(6000),
		WithDeEsserBandwidth(1),
		WithDeEsserThreshold(-30),
		WithDeEsserRatio(8),
	)
	if err != nil {
		t.Fatalf("NewDeEsser() error = %v", err)
	}

	sib := testutil.DeterministicSine(6000, sr, 0.5, sr/2)
	out := append([]float64(nil), sib...)
	if err := d.ProcessInPlace(out); err != nil {
		t.Fatalf("ProcessInPlace() error = %v", err)
	}

	// Skip the attack transient.
	in := core.RMS(sib[sr/10:])
	got := core.RMS(out[sr/10:])
	if got >= in*0.5 {
		t.Fatalf("sibilant RMS %v -> %v, want at least 6 dB reduction", in, got)
	}
	if d.MaxReduction() >= 1 {
		t.Fatal("MaxReduction() should report applied reduction")
	}
}

func TestDeEsserLeavesLowBandAlone(t *testing.T) {
	const sr = 44100

	d, err := NewDeEsser(sr, WithDeEsserThreshold(-30), WithDeEsserRatio(8))
	if err != nil {
		t.Fatalf("NewDeEsser() error = %v", err)
	}

	low := testutil.DeterministicSine(200, sr, 0.5, sr/2)
	out := append([]float64(nil), low...)
	if err := d.ProcessInPlace(out); err != nil {
		t.Fatalf("ProcessInPlace() error = %v", err)
	}

	in := core.RMS(low[sr/10:])
	got := core.RMS(out[sr/10:])
	if d := core.LinearToDB(got / in); d < -0.5 || d > 0.5 {
		t.Fatalf("low band level change = %.2f dB, want within 0.5 dB", d)
	}
}

func TestDeEsserAmountZeroIsTransparent(t *testing.T) {
	d, err := NewDeEsser(48000, WithDeEsserAmount(0), WithDeEsserThreshold(-60))
	if err != nil {
		t.Fatalf("NewDeEsser() error = %v", err)
	}

	in := testutil.DeterministicNoise(3, 0.8, 4096)
	out := append([]float64(nil), in...)
	if err := d.ProcessInPlace(out); err != nil {
		t.Fatalf("ProcessInPlace() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, in, 1e-12)
}

func TestDeEsserOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  DeEsserOption
	}{
		{name: "freq low", opt: WithDeEsserFrequency(500)},
		{name: "bandwidth zero", opt: WithDeEsserBandwidth(0)},
		{name: "threshold positive", opt: WithDeEsserThreshold(3)},
		{name: "ratio below one", opt: WithDeEsserRatio(0.9)},
		{name: "amount above one", opt: WithDeEsserAmount(1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDeEsser(48000, tt.opt); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestDeEsserAboveNyquist(t *testing.T) {
	_, err := NewDeEsser(16000, WithDeEsserFrequency(9000))
	if !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("error = %v, want ErrInvalidParameter", err)
	}
}
