package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-audiofx/dsp/codec/wav"
	"github.com/cwbudde/algo-audiofx/dsp/effectchain"
	"github.com/cwbudde/algo-audiofx/internal/hostio"
)

// RenderCmd applies a chain to one file.
type RenderCmd struct {
	Chain ChainFlags `embed:""`

	Input  string `arg:"" type:"existingfile" help:"Input audio file (wav, mp3, ogg)."`
	Output string `arg:"" type:"path" help:"Output WAV file."`
}

// Run renders the input through the chain.
func (c *RenderCmd) Run(g *globals) error {
	pipe, chain, err := c.Chain.build(g)
	if err != nil {
		return err
	}

	return renderFile(g, pipe, chain, c.Input, c.Output)
}

// BatchCmd applies a chain to many files.
type BatchCmd struct {
	Chain ChainFlags `embed:""`

	OutDir string   `short:"o" required:"" type:"path" help:"Directory receiving the rendered WAV files."`
	Jobs   int      `short:"j" default:"4" help:"Files rendered concurrently."`
	Files  []string `arg:"" type:"existingfile" help:"Input audio files."`
}

// Run renders every file. The first failure cancels the remaining work.
func (c *BatchCmd) Run(g *globals) error {
	if c.Jobs < 1 {
		return fmt.Errorf("--jobs must be >= 1, got %d", c.Jobs)
	}

	outputs, err := batchOutputs(c.OutDir, c.Files)
	if err != nil {
		return err
	}

	pipe, chain, err := c.Chain.build(g)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return fmt.Errorf("create %q: %w", c.OutDir, err)
	}

	eg, ctx := errgroup.WithContext(g.ctx)
	eg.SetLimit(c.Jobs)

	fileGlobals := *g
	fileGlobals.ctx = ctx

	for i, in := range c.Files {
		out := outputs[i]

		eg.Go(func() error {
			return renderFile(&fileGlobals, pipe, chain, in, out)
		})
	}

	return eg.Wait()
}

// batchOutputs maps every input to its output path and rejects inputs
// that would overwrite each other, such as take.wav and take.mp3.
func batchOutputs(dir string, files []string) ([]string, error) {
	outputs := make([]string, len(files))
	owner := make(map[string]string, len(files))

	for i, in := range files {
		out := batchOutputPath(dir, in)
		if prev, ok := owner[out]; ok {
			return nil, fmt.Errorf("%q and %q both render to %q", prev, in, out)
		}

		owner[out] = in
		outputs[i] = out
	}

	return outputs, nil
}

// batchOutputPath maps an input file to <dir>/<stem>.wav.
func batchOutputPath(dir, in string) string {
	base := filepath.Base(in)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, stem+wav.Extension)
}

func renderFile(g *globals, pipe *effectchain.Pipeline, chain effectchain.Chain, in, out string) error {
	start := time.Now()

	buf, err := hostio.DecodeFile(in)
	if err != nil {
		return err
	}

	g.logger.Debug("decoded", "file", in,
		"channels", buf.ChannelCount(), "frames", buf.FrameCount(), "sample_rate", buf.SampleRate())

	rendered, err := pipe.Render(g.ctx, buf, chain)
	if err != nil {
		return fmt.Errorf("render %q: %w", in, err)
	}

	if err := hostio.EncodeFile(out, rendered); err != nil {
		return err
	}

	g.logger.Info("rendered", "input", in, "output", out,
		"duration", rendered.Duration(), "elapsed", time.Since(start).Round(time.Millisecond))

	return nil
}
