package effectchain

import (
	"context"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Effect is a fully specified effect: its parameters can be validated
// against a sample rate and turned into a runtime.
type Effect interface {
	// Type returns the registry name of the effect.
	Type() string
	// Validate reports the first parameter outside its range, wrapping
	// core.ErrInvalidParameter.
	Validate(sampleRate int) error
	// NewRuntime builds fresh processing state for one render.
	NewRuntime(ctx Context) (Runtime, error)
}

// Runtime renders one buffer. Implementations must not modify in and must
// return ctx.Err() if ctx is cancelled while rendering.
type Runtime interface {
	Render(ctx context.Context, in *buffer.AudioBuffer) (*buffer.AudioBuffer, error)
}

// RuntimeFunc adapts a function to Runtime.
type RuntimeFunc func(ctx context.Context, in *buffer.AudioBuffer) (*buffer.AudioBuffer, error)

// Render calls f.
func (f RuntimeFunc) Render(ctx context.Context, in *buffer.AudioBuffer) (*buffer.AudioBuffer, error) {
	return f(ctx, in)
}

// blockRuntime runs an in-place processor over a copy of the input, one
// block of every channel at a time.
type blockRuntime struct {
	blockSize int
	process   func(block [][]float64) error
}

func (r blockRuntime) Render(ctx context.Context, in *buffer.AudioBuffer) (*buffer.AudioBuffer, error) {
	out := in.Clone()
	channels := out.Channels()
	block := make([][]float64, len(channels))

	err := core.ForEachBlock(ctx, out.FrameCount(), r.blockSize, func(start, end int) error {
		for ch, data := range channels {
			block[ch] = data[start:end]
		}

		return r.process(block)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// perChannel builds one processor per channel with build and runs process
// on each channel's slice of every block.
func perChannel[T any](ctx Context, build func() (T, error), process func(T, []float64) error) (Runtime, error) {
	procs := make([]T, ctx.Channels)

	for ch := range procs {
		p, err := build()
		if err != nil {
			return nil, err
		}

		procs[ch] = p
	}

	return blockRuntime{
		blockSize: ctx.BlockSize,
		process: func(block [][]float64) error {
			for ch, data := range block {
				if err := process(procs[ch], data); err != nil {
					return err
				}
			}

			return nil
		},
	}, nil
}

// stereoProcessor is implemented by the mid/side effects.
type stereoProcessor interface {
	ProcessStereoInPlace(left, right []float64) error
}

// stereo wraps a mid/side processor; it needs exactly two channels.
func stereo(ctx Context, name string, p stereoProcessor) (Runtime, error) {
	if err := requireStereo(ctx, name); err != nil {
		return nil, err
	}

	return peakNormalized(blockRuntime{
		blockSize: ctx.BlockSize,
		process: func(block [][]float64) error {
			return p.ProcessStereoInPlace(block[0], block[1])
		},
	}, nil)
}

// peakNormalized scales the rendered buffer down to a peak of 1 when any
// sample exceeds it. The scale is taken over the whole render, not per block.
func peakNormalized(rt Runtime, err error) (Runtime, error) {
	if err != nil {
		return nil, err
	}

	return RuntimeFunc(func(ctx context.Context, in *buffer.AudioBuffer) (*buffer.AudioBuffer, error) {
		out, err := rt.Render(ctx, in)
		if err != nil {
			return nil, err
		}

		out.NormalizePeak()

		return out, nil
	}), nil
}
