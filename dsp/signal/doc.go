// Package signal synthesizes test and utility signals.
//
// [NoiseGenerator] produces white, pink and brown noise from a caller
// supplied *rand.Rand, so output is reproducible under a fixed seed.
// [Synthesize] renders a mono noise buffer for a duration and volume.
// [Generator] produces deterministic sine tones from a shared
// core.ProcessorConfig.
package signal
