// Package hostio moves audio between files and AudioBuffers for the command
// line host. WAV is read and written; MP3 and Ogg Vorbis are decode only.
package hostio
