package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// EnvelopeState is the running state of an [EnvelopeFollower].
type EnvelopeState struct {
	Value       float64
	AttackCoef  float64
	ReleaseCoef float64
}

// EnvelopeFollower tracks the rectified level of a signal with separate
// attack and release time constants:
//
//	coef = exp(-1 / (sampleRate * seconds))
//	env  = coef*env + (1-coef)*|x|
//
// The attack coefficient is used while |x| rises above the envelope, the
// release coefficient otherwise.
type EnvelopeFollower struct {
	state EnvelopeState
}

// NewEnvelopeFollower creates a follower with the given attack and release
// times in seconds.
func NewEnvelopeFollower(sampleRate, attackSeconds, releaseSeconds float64) (*EnvelopeFollower, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: envelope sample rate must be > 0 and finite: %f", core.ErrInvalidParameter, sampleRate)
	}

	if attackSeconds <= 0 || !core.IsFinite(attackSeconds) {
		return nil, fmt.Errorf("%w: envelope attack must be > 0 s: %f", core.ErrInvalidParameter, attackSeconds)
	}

	if releaseSeconds <= 0 || !core.IsFinite(releaseSeconds) {
		return nil, fmt.Errorf("%w: envelope release must be > 0 s: %f", core.ErrInvalidParameter, releaseSeconds)
	}

	return &EnvelopeFollower{
		state: EnvelopeState{
			AttackCoef:  timeCoef(sampleRate, attackSeconds),
			ReleaseCoef: timeCoef(sampleRate, releaseSeconds),
		},
	}, nil
}

// Process advances the envelope by one sample and returns the new value.
func (e *EnvelopeFollower) Process(x float64) float64 {
	level := math.Abs(x)

	coef := e.state.ReleaseCoef
	if level > e.state.Value {
		coef = e.state.AttackCoef
	}

	e.state.Value = core.FlushDenormals(coef*e.state.Value + (1-coef)*level)

	return e.state.Value
}

// Value returns the current envelope level.
func (e *EnvelopeFollower) Value() float64 { return e.state.Value }

// State returns a copy of the follower state.
func (e *EnvelopeFollower) State() EnvelopeState { return e.state }

// Reset sets the envelope back to zero, keeping the time constants.
func (e *EnvelopeFollower) Reset() {
	e.state.Value = 0
}

func timeCoef(sampleRate, seconds float64) float64 {
	return math.Exp(-1 / (sampleRate * seconds))
}
