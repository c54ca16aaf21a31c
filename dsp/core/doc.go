// Package core holds the numeric helpers, processing options and error
// taxonomy shared by every other package of the engine.
package core
