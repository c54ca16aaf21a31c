// Package buffer provides AudioBuffer, the planar PCM container every stage
// of the engine reads and writes.
//
// A buffer never resamples and never changes its channel layout on its own;
// callers that need mono-from-stereo call [AudioBuffer.Mono] explicitly.
package buffer
