package effectchain

import (
	"context"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

// gainEffect multiplies every sample by a fixed gain.
type gainEffect struct {
	gain float64
}

func (gainEffect) Type() string { return "gain" }

func (gainEffect) Validate(int) error { return nil }

func (g gainEffect) NewRuntime(ctx Context) (Runtime, error) {
	return blockRuntime{
		blockSize: ctx.BlockSize,
		process: func(block [][]float64) error {
			for _, ch := range block {
				for i := range ch {
					ch[i] *= g.gain
				}
			}

			return nil
		},
	}, nil
}

// countingEffect counts processed blocks and cancels after a number of them.
type countingEffect struct {
	blocks int
	cancel context.CancelFunc
	after  int
}

func (*countingEffect) Type() string { return "counting" }

func (*countingEffect) Validate(int) error { return nil }

func (c *countingEffect) NewRuntime(ctx Context) (Runtime, error) {
	return blockRuntime{
		blockSize: ctx.BlockSize,
		process: func([][]float64) error {
			c.blocks++
			if c.cancel != nil && c.blocks == c.after {
				c.cancel()
			}

			return nil
		},
	}, nil
}

func stereoSine(t *testing.T, freqHz float64, sampleRate, frames int) *buffer.AudioBuffer {
	t.Helper()

	left := testutil.DeterministicSine(freqHz, float64(sampleRate), 0.5, frames)
	right := testutil.DeterministicSine(freqHz*1.5, float64(sampleRate), 0.4, frames)

	buf, err := buffer.FromChannels([][]float64{left, right}, sampleRate)
	if err != nil {
		t.Fatalf("FromChannels() error = %v", err)
	}

	return buf
}

func monoSine(t *testing.T, freqHz, amplitude float64, sampleRate, frames int) *buffer.AudioBuffer {
	t.Helper()

	buf, err := buffer.FromChannels([][]float64{testutil.DeterministicSine(freqHz, float64(sampleRate), amplitude, frames)}, sampleRate)
	if err != nil {
		t.Fatalf("FromChannels() error = %v", err)
	}

	return buf
}

func requireUnchanged(t *testing.T, got, want *buffer.AudioBuffer) {
	t.Helper()

	if got.ChannelCount() != want.ChannelCount() || got.FrameCount() != want.FrameCount() {
		t.Fatalf("input layout changed: %dx%d, want %dx%d",
			got.ChannelCount(), got.FrameCount(), want.ChannelCount(), want.FrameCount())
	}

	for ch := range want.ChannelCount() {
		testutil.RequireSliceNearlyEqual(t, got.Channel(ch), want.Channel(ch), 0)
	}
}
