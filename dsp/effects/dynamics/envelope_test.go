package dynamics

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

func TestEnvelopeCoefficients(t *testing.T) {
	e, err := NewEnvelopeFollower(48000, 0.001, 0.05)
	if err != nil {
		t.Fatalf("NewEnvelopeFollower() error = %v", err)
	}

	st := e.State()
	if want := math.Exp(-1 / 48.0); math.Abs(st.AttackCoef-want) > 1e-15 {
		t.Fatalf("AttackCoef = %v, want %v", st.AttackCoef, want)
	}
	if want := math.Exp(-1 / 2400.0); math.Abs(st.ReleaseCoef-want) > 1e-15 {
		t.Fatalf("ReleaseCoef = %v, want %v", st.ReleaseCoef, want)
	}
}

func TestEnvelopeAttackThenRelease(t *testing.T) {
	e, err := NewEnvelopeFollower(1000, 0.001, 0.1)
	if err != nil {
		t.Fatalf("NewEnvelopeFollower() error = %v", err)
	}
	a := e.State().AttackCoef
	r := e.State().ReleaseCoef

	// Rising input uses the attack coefficient.
	got := e.Process(-1)
	if want := 1 - a; math.Abs(got-want) > 1e-15 {
		t.Fatalf("attack step = %v, want %v", got, want)
	}

	// Falling input uses the release coefficient.
	prev := got
	got = e.Process(0)
	if want := r * prev; math.Abs(got-want) > 1e-15 {
		t.Fatalf("release step = %v, want %v", got, want)
	}

	e.Reset()
	if e.Value() != 0 {
		t.Fatalf("Value() after Reset = %v, want 0", e.Value())
	}
	if e.State().AttackCoef != a {
		t.Fatal("Reset must keep time constants")
	}
}

func TestEnvelopeConvergesToLevel(t *testing.T) {
	e, _ := NewEnvelopeFollower(48000, 0.001, 0.05)
	for range 48000 {
		e.Process(0.5)
	}
	if math.Abs(e.Value()-0.5) > 1e-9 {
		t.Fatalf("steady-state envelope = %v, want 0.5", e.Value())
	}
}

func TestEnvelopeRejectsInvalid(t *testing.T) {
	for _, args := range [][3]float64{{0, 0.01, 0.1}, {48000, 0, 0.1}, {48000, 0.01, -1}, {math.NaN(), 0.01, 0.1}} {
		if _, err := NewEnvelopeFollower(args[0], args[1], args[2]); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("NewEnvelopeFollower(%v) error = %v, want ErrInvalidParameter", args, err)
		}
	}
}
