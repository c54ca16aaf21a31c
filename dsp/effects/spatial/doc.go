// Package spatial provides mid/side stereo processors.
//
// All processors split a stereo pair into
//
//	mid  = (L + R) / 2
//	side = (L - R) / 2
//
// modify mid and side independently and rebuild L = mid + side,
// R = mid - side.
//
// Included processors:
//   - StereoWidener: side gain (width) and center gain, optional bass mono.
//   - VocalRemover: replaces both channels with a band-limited side signal.
//   - KaraokeMaker: attenuates the high-passed center with optional room delay.
//
// Processors are stereo only and not thread-safe.
package spatial
