// Package effectchain renders whole audio buffers through named effects.
//
// Every effect is described by a parameter struct (EchoParams, ReverbParams,
// LowpassParams, ...) that validates itself against a sample rate and builds
// a Runtime. A Pipeline validates parameters before touching any audio,
// renders block by block so a context can cancel long renders, and never
// mutates the caller's buffer. Chain composes effects in order.
//
// A Registry maps effect type names to factories that turn loosely typed
// Params (as read from presets or command lines) into parameter structs.
package effectchain
