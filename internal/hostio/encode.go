package hostio

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/codec/wav"
)

// EncodeFile writes buf to path as 16-bit PCM WAV, replacing any existing file.
func EncodeFile(path string, buf *buffer.AudioBuffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hostio: create %q: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("hostio: close %q: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)

	if err := wav.Encode(w, buf); err != nil {
		return fmt.Errorf("hostio: encode %q: %w", path, err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("hostio: flush %q: %w", path, err)
	}

	return nil
}
