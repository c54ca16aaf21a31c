package main

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/effectchain"
	"github.com/cwbudde/algo-audiofx/internal/preset"
)

// ChainFlags selects the effect chain shared by render and batch.
type ChainFlags struct {
	Preset    string   `short:"p" type:"existingfile" help:"YAML preset describing the effect chain."`
	Effects   []string `name:"fx" short:"e" sep:"none" help:"Effect as type:key=value,... Repeatable; runs after the preset. Prefix with ! to bypass."`
	BlockSize int      `help:"Frames rendered between cancellation checks. 0 uses the preset or the default."`
}

// build resolves the flags into a pipeline and a chain from the default
// registry. A preset log level is applied to g.
func (f ChainFlags) build(g *globals) (*effectchain.Pipeline, effectchain.Chain, error) {
	var params []effectchain.Params

	blockSize := f.BlockSize

	if f.Preset != "" {
		p, err := preset.Load(f.Preset)
		if err != nil {
			return nil, nil, err
		}

		if p.LogLevel != "" {
			if err := g.level.UnmarshalText([]byte(p.LogLevel)); err != nil {
				return nil, nil, fmt.Errorf("preset %q: %w", f.Preset, err)
			}
		}

		if blockSize == 0 {
			blockSize = p.BlockSize
		}

		pp, err := p.Params()
		if err != nil {
			return nil, nil, fmt.Errorf("preset %q: %w", f.Preset, err)
		}

		params = append(params, pp...)
	}

	for _, s := range f.Effects {
		p, err := effectchain.ParseParams(s)
		if err != nil {
			return nil, nil, fmt.Errorf("--fx %q: %w", s, err)
		}

		params = append(params, p)
	}

	opts := []effectchain.PipelineOption{effectchain.WithLogger(g.logger)}
	if blockSize > 0 {
		opts = append(opts, effectchain.WithBlockSize(blockSize))
	}

	pipe, err := effectchain.NewPipeline(opts...)
	if err != nil {
		return nil, nil, err
	}

	chain, err := pipe.Build(params)
	if err != nil {
		return nil, nil, err
	}

	g.logger.Debug("chain built", "effects", chain.Types(), "block_size", pipe.BlockSize())

	return pipe, chain, nil
}
