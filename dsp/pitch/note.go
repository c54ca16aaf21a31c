package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// ReferenceA4 is the concert pitch used for note mapping, in Hz.
const ReferenceA4 = 440.0

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is the nearest equal-tempered note to a frequency.
type Note struct {
	Name   string
	Octave int
	MIDI   int
	// Cents is the deviation of the frequency from the note, in [-50, 50].
	Cents float64
}

// String formats the note as e.g. "A4 +3.0c".
func (n Note) String() string {
	return fmt.Sprintf("%s%d %+.1fc", n.Name, n.Octave, n.Cents)
}

// NoteFromFrequency maps hz to the nearest MIDI note using
// 12*log2(hz/440)+69.
func NoteFromFrequency(hz float64) (Note, error) {
	if hz <= 0 || !core.IsFinite(hz) {
		return Note{}, fmt.Errorf("%w: frequency must be > 0: %f", core.ErrInvalidParameter, hz)
	}

	midi := int(math.Round(12*math.Log2(hz/ReferenceA4) + 69))
	exact := FrequencyFromMIDI(midi)

	return Note{
		Name:   noteNames[((midi%12)+12)%12],
		Octave: floorDiv(midi, 12) - 1,
		MIDI:   midi,
		Cents:  1200 * math.Log2(hz/exact),
	}, nil
}

// FrequencyFromMIDI returns the equal-tempered frequency of a MIDI note.
func FrequencyFromMIDI(midi int) float64 {
	return ReferenceA4 * math.Exp2(float64(midi-69)/12)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
