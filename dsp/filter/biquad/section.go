package biquad

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// State is the Direct Form I history of one section: the two previous
// inputs and the two previous outputs.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

// Section is a single biquad filter with coefficients and history.
// It implements Direct Form I processing:
//
//	y[n] = B0 x[n] + B1 x[n-1] + B2 x[n-2] - A1 y[n-1] - A2 y[n-2]
//
// A Section belongs to exactly one channel. It is not safe for concurrent use.
type Section struct {
	Coefficients

	state State
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
// A non-finite output returns core.ErrFilterInstability and leaves the
// history untouched.
func (s *Section) ProcessSample(x float64) (float64, error) {
	st := &s.state
	y := s.B0*x + s.B1*st.X1 + s.B2*st.X2 - s.A1*st.Y1 - s.A2*st.Y2

	if !core.IsFinite(y) {
		return 0, fmt.Errorf("%w: biquad output %v for input %v", core.ErrFilterInstability, y, x)
	}

	st.X2, st.X1 = st.X1, x
	st.Y2, st.Y1 = st.Y1, y

	return y, nil
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) error {
	return s.ProcessBlockTo(buf, buf)
}

// ProcessBlockTo filters src into dst. Both slices must have the same length;
// dst may alias src. On error dst holds the samples processed so far.
func (s *Section) ProcessBlockTo(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: biquad block length mismatch: %d != %d",
			core.ErrInvalidParameter, len(dst), len(src))
	}

	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	st := s.state

	for i, x := range src {
		y := b0*x + b1*st.X1 + b2*st.X2 - a1*st.Y1 - a2*st.Y2
		if !core.IsFinite(y) {
			s.state = st
			return fmt.Errorf("%w: biquad output %v at sample %d", core.ErrFilterInstability, y, i)
		}

		st.X2, st.X1 = st.X1, x
		st.Y2, st.Y1 = st.Y1, y
		dst[i] = y
	}

	s.state = st

	return nil
}

// Reset clears the filter history to zero.
func (s *Section) Reset() {
	s.state = State{}
}

// State returns the current filter history.
func (s *Section) State() State {
	return s.state
}
