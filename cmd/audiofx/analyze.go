package main

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-audiofx/dsp/codec/wav"
	"github.com/cwbudde/algo-audiofx/dsp/effectchain"
	"github.com/cwbudde/algo-audiofx/dsp/signal"
	"github.com/cwbudde/algo-audiofx/internal/hostio"
)

// NoiseCmd writes generated noise.
type NoiseCmd struct {
	Output     string  `arg:"" type:"path" help:"Output WAV file."`
	Type       string  `short:"t" default:"white" enum:"white,pink,brown" help:"Noise colour (white, pink, brown)."`
	Duration   float64 `short:"d" default:"10" help:"Length in seconds."`
	Volume     float64 `default:"50" help:"Volume in percent."`
	SampleRate int     `default:"44100" help:"Sample rate in Hz."`
	Seed       int64   `help:"Random seed. 0 seeds from the clock."`
}

// Run generates and writes the noise.
func (c *NoiseCmd) Run(g *globals) error {
	typ, err := signal.ParseNoiseType(c.Type)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := effectchain.NoiseParams{Type: typ, DurationSeconds: c.Duration, VolumePercent: c.Volume, Seed: seed}

	buf, err := p.Generate(g.ctx, c.SampleRate)
	if err != nil {
		return err
	}

	if err := hostio.EncodeFile(c.Output, buf); err != nil {
		return err
	}

	g.logger.Info("noise written", "file", c.Output, "type", typ, "duration", buf.Duration(), "seed", seed)

	return nil
}

// PitchCmd reports the pitch of a file.
type PitchCmd struct {
	Input     string  `arg:"" type:"existingfile" help:"Input audio file."`
	MinHz     float64 `help:"Lowest frequency considered. 0 uses the detector default."`
	MaxHz     float64 `help:"Highest frequency considered. 0 uses the detector default."`
	Threshold float64 `help:"RMS below which the input counts as silence. 0 uses the detector default."`
	Window    int     `default:"4096" help:"Frames analyzed. Shorter files are analyzed whole."`
	Offset    int     `help:"First analyzed frame. 0 starts a quarter into the file."`
}

// Run prints frequency, note and confidence.
func (c *PitchCmd) Run(g *globals) error {
	buf, err := hostio.DecodeFile(c.Input)
	if err != nil {
		return err
	}

	res, err := effectchain.PitchParams{
		SilenceThreshold: c.Threshold,
		MinFrequencyHz:   c.MinHz,
		MaxFrequencyHz:   c.MaxHz,
		WindowFrames:     c.Window,
		WindowOffset:     c.Offset,
	}.DetectPitch(buf)
	if err != nil {
		return fmt.Errorf("pitch %q: %w", c.Input, err)
	}

	_, err = fmt.Fprintf(g.stdout, "%.2f Hz\t%s\tconfidence %.2f\n", res.FrequencyHz, res.Note, res.Confidence)

	return err
}

// InfoCmd describes files.
type InfoCmd struct {
	CPU     bool     `help:"Print the SIMD features used by the vector kernels."`
	Effects bool     `help:"List the registered effect types."`
	Files   []string `arg:"" optional:"" type:"existingfile" help:"Audio files to describe."`
}

// Run prints one row per file.
func (c *InfoCmd) Run(g *globals) error {
	if c.CPU {
		f := cpu.DetectFeatures()
		fmt.Fprintf(g.stdout, "arch %s  sse2=%t avx2=%t neon=%t\n", runtime.GOARCH, f.HasSSE2, f.HasAVX2, f.HasNEON)
	}

	if c.Effects {
		for _, t := range effectchain.DefaultRegistry().Types() {
			fmt.Fprintln(g.stdout, t)
		}
	}

	if len(c.Files) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(g.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tFORMAT\tCHANNELS\tRATE\tDURATION\tPEAK")

	for _, path := range c.Files {
		buf, err := hostio.DecodeFile(path)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n", path, describeFormat(path),
			buf.ChannelCount(), buf.SampleRate(), buf.Duration().Round(time.Millisecond), peakDB(buf.Peak()))
	}

	return tw.Flush()
}

// describeFormat names the container, adding the bit depth for canonical
// WAV headers.
func describeFormat(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()

	head := make([]byte, wav.HeaderSize)

	n, _ := f.Read(head)
	if h, err := wav.ParseHeader(head[:n]); err == nil {
		return fmt.Sprintf("wav/pcm%d", h.BitsPerSample)
	}

	return hostio.Sniff(head[:n]).String()
}

func peakDB(peak float64) string {
	if peak <= 0 {
		return "-inf dBFS"
	}

	return fmt.Sprintf("%.1f dBFS", 20*math.Log10(peak))
}
