package effectchain

import "log/slog"

// Context provides environmental information that effect runtimes need.
type Context struct {
	SampleRate float64
	Channels   int
	BlockSize  int
	Logger     *slog.Logger
}

func (c Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return c.Logger
}
