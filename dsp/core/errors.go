package core

import "errors"

// Error taxonomy shared by every package of the engine. Packages wrap these
// with fmt.Errorf("%w: ...") so callers can match with errors.Is.
var (
	// ErrInvalidParameter reports a value outside its documented range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedChannelLayout reports a buffer whose channel count the
	// operation cannot handle, e.g. a mono buffer given to a stereo effect.
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")

	// ErrInsufficientSignal reports analysis input that is too quiet or short.
	ErrInsufficientSignal = errors.New("insufficient signal")

	// ErrNoPitchDetected reports that no qualifying periodicity was found.
	ErrNoPitchDetected = errors.New("no pitch detected")

	// ErrFilterInstability reports a filter that produced NaN or Inf.
	ErrFilterInstability = errors.New("filter instability")

	// ErrDecodeFailure reports a container that could not be decoded.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrEncodeFailure reports a container that could not be written.
	ErrEncodeFailure = errors.New("encode failure")
)
