// Package pitch estimates the fundamental frequency of a mono signal.
//
// [Detector] uses time-domain autocorrelation: the lag of the first strong
// autocorrelation peak after the initial decline is the period. The peak is
// refined with parabolic interpolation, so estimates are not restricted to
// integer-sample periods. [NoteFromFrequency] maps a frequency to the nearest
// equal-tempered note with a cents deviation for tuner-style readouts.
package pitch
