// Command audiofx renders effect chains over audio files and analyses them
// offline.
//
// Examples:
//
//	audiofx render in.wav out.wav --fx highpass:cutoffHz=120 --fx normalize:mode=peak,targetDb=-1
//	audiofx render in.mp3 out.wav --preset podcast.yaml
//	audiofx batch --preset podcast.yaml --out-dir rendered *.wav
//	audiofx noise pink.wav --type pink --duration 30
//	audiofx pitch note.wav
//	audiofx info --cpu in.wav
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	LogLevel string           `help:"Log level (debug, info, warn, error)." default:"info" enum:"debug,info,warn,error"`
	Version  kong.VersionFlag `short:"v" help:"Show version information."`

	Render RenderCmd `cmd:"" help:"Apply an effect chain to an audio file and write WAV."`
	Batch  BatchCmd  `cmd:"" help:"Apply one effect chain to many files concurrently."`
	Noise  NoiseCmd  `cmd:"" help:"Generate a noise WAV file."`
	Pitch  PitchCmd  `cmd:"" help:"Estimate the fundamental frequency of an audio file."`
	Info   InfoCmd   `cmd:"" help:"Describe audio files and the effect catalogue."`
}

// globals is handed to every command's Run method.
type globals struct {
	ctx    context.Context
	logger *slog.Logger
	level  *slog.LevelVar
	stdout io.Writer
}

func newGlobals(ctx context.Context, stdout, stderr io.Writer, level string) (*globals, error) {
	lv := new(slog.LevelVar)
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	return &globals{
		ctx:    ctx,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lv})),
		level:  lv,
		stdout: stdout,
	}, nil
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("audiofx"),
		kong.Description("Offline audio effects and analysis"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, err := newGlobals(ctx, os.Stdout, os.Stderr, cli.LogLevel)
	kctx.FatalIfErrorf(err)

	kctx.FatalIfErrorf(kctx.Run(g))
}
