// Package dynamics provides envelope-driven level processors: an
// attack/release envelope follower, a threshold/ratio gain computer, a
// sidechain de-esser, a soft-knee compressor and whole-buffer normalizers.
//
// Processors operate on plain []float64 slices and keep their own state, so
// one instance serves exactly one channel. None of them are safe for
// concurrent use.
package dynamics
