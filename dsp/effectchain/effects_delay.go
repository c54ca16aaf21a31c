package effectchain

import (
	"context"
	"math/rand"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/effects"
)

// EchoParams configures a multi-tap echo. Output is longer than the input
// by DelayMs*Repeats.
type EchoParams struct {
	DelayMs         float64 // [1, 2000]
	FeedbackPercent float64 // [0, 95]
	MixPercent      float64 // [0, 100]
	Repeats         int     // [1, 10]
}

// DefaultEchoParams returns a 250 ms, four-repeat echo.
func DefaultEchoParams() EchoParams {
	return EchoParams{DelayMs: 250, FeedbackPercent: 40, MixPercent: 50, Repeats: 4}
}

// Type implements Effect.
func (EchoParams) Type() string { return "echo" }

// Validate implements Effect.
func (p EchoParams) Validate(int) error {
	if err := checkRange("echo delayMs", p.DelayMs, 1, 2000); err != nil {
		return err
	}

	if err := checkRange("echo feedbackPercent", p.FeedbackPercent, 0, 95); err != nil {
		return err
	}

	if err := checkRange("echo mixPercent", p.MixPercent, 0, 100); err != nil {
		return err
	}

	return checkIntRange("echo repeats", p.Repeats, 1, 10)
}

// NewRuntime implements Effect.
func (p EchoParams) NewRuntime(ctx Context) (Runtime, error) {
	fx, err := effects.NewEcho(ctx.SampleRate,
		effects.WithEchoDelay(p.DelayMs/1000),
		effects.WithEchoFeedback(p.FeedbackPercent/100),
		effects.WithEchoMix(p.MixPercent/100),
		effects.WithEchoRepeats(p.Repeats),
	)
	if err != nil {
		return nil, err
	}

	return RuntimeFunc(func(rctx context.Context, in *buffer.AudioBuffer) (*buffer.AudioBuffer, error) {
		return fx.Apply(rctx, in, ctx.BlockSize)
	}), nil
}

// ReverbParams configures the synthetic-impulse reverb. Output is longer
// than the input by the predelay plus the impulse length (2*DecaySeconds).
type ReverbParams struct {
	DecaySeconds float64 // [0.1, 10]
	WetPercent   float64 // [0, 100]
	PredelayMs   float64 // [0, 200]
	Mode         effects.ReverbMode
	// Seed selects the impulse noise. Zero uses the fixed default sequence.
	Seed int64
}

// DefaultReverbParams returns a 2 s sparse reverb at 30% wet.
func DefaultReverbParams() ReverbParams {
	return ReverbParams{DecaySeconds: 2, WetPercent: 30, PredelayMs: 20, Mode: effects.ReverbSparse}
}

// Type implements Effect.
func (ReverbParams) Type() string { return "reverb" }

// Validate implements Effect.
func (p ReverbParams) Validate(int) error {
	if err := checkRange("reverb decaySeconds", p.DecaySeconds, 0.1, 10); err != nil {
		return err
	}

	if err := checkRange("reverb wetPercent", p.WetPercent, 0, 100); err != nil {
		return err
	}

	if err := checkRange("reverb predelayMs", p.PredelayMs, 0, 200); err != nil {
		return err
	}

	return checkIntRange("reverb mode", int(p.Mode), int(effects.ReverbSparse), int(effects.ReverbConvolution))
}

// NewRuntime implements Effect.
func (p ReverbParams) NewRuntime(ctx Context) (Runtime, error) {
	opts := []effects.ReverbOption{
		effects.WithReverbDecay(p.DecaySeconds),
		effects.WithReverbWet(p.WetPercent / 100),
		effects.WithReverbPredelay(p.PredelayMs / 1000),
		effects.WithReverbMode(p.Mode),
	}

	if p.Seed != 0 {
		opts = append(opts, effects.WithReverbRand(rand.New(rand.NewSource(p.Seed))))
	}

	fx, err := effects.NewReverb(ctx.SampleRate, opts...)
	if err != nil {
		return nil, err
	}

	return RuntimeFunc(func(rctx context.Context, in *buffer.AudioBuffer) (*buffer.AudioBuffer, error) {
		return fx.Apply(rctx, in, ctx.BlockSize)
	}), nil
}
