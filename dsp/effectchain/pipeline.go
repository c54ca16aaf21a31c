package effectchain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// DefaultBlockSize is the number of frames rendered between cancellation
// checks.
const DefaultBlockSize = core.DefaultBlockSize

// PipelineOption mutates pipeline construction parameters.
type PipelineOption func(*pipelineConfig) error

type pipelineConfig struct {
	blockSize int
	logger    *slog.Logger
	registry  *Registry
}

func defaultPipelineConfig() pipelineConfig {
	return pipelineConfig{
		blockSize: DefaultBlockSize,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// WithBlockSize sets the frames rendered between cancellation checks.
func WithBlockSize(frames int) PipelineOption {
	return func(cfg *pipelineConfig) error {
		if frames <= 0 {
			return fmt.Errorf("%w: pipeline block size must be > 0: %d", core.ErrInvalidParameter, frames)
		}

		cfg.blockSize = frames

		return nil
	}
}

// WithLogger sets the logger used for debug tracing. nil keeps the
// discarding default.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(cfg *pipelineConfig) error {
		if l != nil {
			cfg.logger = l
		}

		return nil
	}
}

// WithRegistry sets the registry used by Build. The default is
// DefaultRegistry().
func WithRegistry(r *Registry) PipelineOption {
	return func(cfg *pipelineConfig) error {
		if r == nil {
			return fmt.Errorf("%w: pipeline registry is nil", core.ErrInvalidParameter)
		}

		cfg.registry = r

		return nil
	}
}

// Pipeline renders effects over whole buffers. A Pipeline holds no audio
// state and may be shared by concurrent renders.
type Pipeline struct {
	cfg pipelineConfig
}

// NewPipeline creates a pipeline.
func NewPipeline(opts ...PipelineOption) (*Pipeline, error) {
	cfg := defaultPipelineConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}

	return &Pipeline{cfg: cfg}, nil
}

// BlockSize returns the cancellation granularity in frames.
func (p *Pipeline) BlockSize() int { return p.cfg.blockSize }

// Registry returns the registry used by Build.
func (p *Pipeline) Registry() *Registry { return p.cfg.registry }

// Build converts loosely typed params into a Chain using the pipeline's
// registry.
func (p *Pipeline) Build(params []Params) (Chain, error) {
	return p.cfg.registry.Build(params)
}

// Render validates fx against in, then renders it into a new buffer. in is
// never modified. If ctx is cancelled the partial output is discarded and
// ctx.Err() is returned.
func (p *Pipeline) Render(ctx context.Context, in *buffer.AudioBuffer, fx Effect) (*buffer.AudioBuffer, error) {
	if err := checkBuffer(in); err != nil {
		return nil, err
	}

	if fx == nil {
		return nil, fmt.Errorf("%w: effect is nil", core.ErrInvalidParameter)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := fx.Validate(in.SampleRate()); err != nil {
		return nil, err
	}

	rt, err := fx.NewRuntime(Context{
		SampleRate: float64(in.SampleRate()),
		Channels:   in.ChannelCount(),
		BlockSize:  p.cfg.blockSize,
		Logger:     p.cfg.logger,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()

	out, err := rt.Render(ctx, in)
	if err != nil {
		p.cfg.logger.Debug("render failed", "effect", fx.Type(), "error", err)

		return nil, err
	}

	p.cfg.logger.Debug("render done",
		"effect", fx.Type(),
		"channels", in.ChannelCount(),
		"sample_rate", in.SampleRate(),
		"frames_in", in.FrameCount(),
		"frames_out", out.FrameCount(),
		"peak", out.Peak(),
		"elapsed", time.Since(start),
	)

	return out, nil
}

// Render renders fx with a default pipeline.
func Render(ctx context.Context, in *buffer.AudioBuffer, fx Effect) (*buffer.AudioBuffer, error) {
	p := &Pipeline{cfg: defaultPipelineConfig()}

	return p.Render(ctx, in, fx)
}
