package effectchain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Chain renders effects in order, each one consuming the previous output.
// A Chain is itself an Effect.
type Chain []Effect

// Type implements Effect.
func (Chain) Type() string { return "chain" }

// Validate checks every effect and joins all failures.
func (c Chain) Validate(sampleRate int) error {
	var errs []error

	for i, fx := range c {
		if fx == nil {
			errs = append(errs, fmt.Errorf("%w: effect %d is nil", core.ErrInvalidParameter, i))

			continue
		}

		if err := fx.Validate(sampleRate); err != nil {
			errs = append(errs, fmt.Errorf("effect %d (%s): %w", i, fx.Type(), err))
		}
	}

	return errors.Join(errs...)
}

// Types returns the effect names in order.
func (c Chain) Types() []string {
	names := make([]string, len(c))
	for i, fx := range c {
		names[i] = fx.Type()
	}

	return names
}

type chainStage struct {
	name    string
	runtime Runtime
}

// NewRuntime builds every stage up front, so layout errors surface before
// any audio is processed.
func (c Chain) NewRuntime(ctx Context) (Runtime, error) {
	stages := make([]chainStage, 0, len(c))

	for i, fx := range c {
		rt, err := fx.NewRuntime(ctx)
		if err != nil {
			return nil, fmt.Errorf("effect %d (%s): %w", i, fx.Type(), err)
		}

		stages = append(stages, chainStage{name: fx.Type(), runtime: rt})
	}

	logger := ctx.logger()

	return RuntimeFunc(func(rctx context.Context, in *buffer.AudioBuffer) (*buffer.AudioBuffer, error) {
		if len(stages) == 0 {
			return in.Clone(), rctx.Err()
		}

		cur := in

		for i, st := range stages {
			start := time.Now()

			out, err := st.runtime.Render(rctx, cur)
			if err != nil {
				return nil, fmt.Errorf("effect %d (%s): %w", i, st.name, err)
			}

			logger.Debug("chain stage rendered",
				"index", i,
				"effect", st.name,
				"frames_in", cur.FrameCount(),
				"frames_out", out.FrameCount(),
				"elapsed", time.Since(start),
			)

			cur = out
		}

		return cur, nil
	}), nil
}
