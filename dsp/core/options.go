package core

import "fmt"

// DefaultBlockSize is the number of frames processed between cancellation
// checks in whole-buffer renders.
const DefaultBlockSize = 4096

// ProcessorConfig is the stream layout a processor is built for.
type ProcessorConfig struct {
	SampleRate int
	Channels   int
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 44.1 kHz stereo with DefaultBlockSize.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		Channels:   2,
		BlockSize:  DefaultBlockSize,
	}
}

// WithSampleRate sets the processing sample rate. Non-positive values are ignored.
func WithSampleRate(sampleRate int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChannels sets the channel count. Non-positive values are ignored.
func WithChannels(channels int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithBlockSize sets the processing block size. Non-positive values are ignored.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Nyquist returns half the sample rate.
func (c ProcessorConfig) Nyquist() float64 {
	return float64(c.SampleRate) / 2
}

// Validate reports a config built by hand with non-positive fields.
func (c ProcessorConfig) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidParameter, c.SampleRate)
	case c.Channels <= 0:
		return fmt.Errorf("%w: channel count must be > 0: %d", ErrInvalidParameter, c.Channels)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size must be > 0: %d", ErrInvalidParameter, c.BlockSize)
	}

	return nil
}
