// Package wav reads and writes canonical PCM WAV containers.
//
// Encode always produces the fixed 44-byte RIFF/WAVE header followed by
// interleaved 16-bit little-endian samples. Decode accepts integer PCM at
// 16, 24 or 32 bits through github.com/go-audio/wav and converts samples
// to float64 in [-1, 1].
package wav
