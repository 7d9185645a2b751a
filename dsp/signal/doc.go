// Package signal defines the Signal contract and the operators used to
// compose generators into one root signal.
//
// A Signal maps elapsed time in seconds to an amplitude. Implementations may
// carry private state (phase accumulators, filter memory, random sources) but
// must never allocate, block or panic while being evaluated, because every
// Value call happens on the real-time render path.
//
// Composition operators:
//   - Add, Mul, Scale, Clamp: arithmetic on one or two signals.
//   - Sum, Weighted, Mix, Crossfade: mixing helpers.
//
// Nominal ranges are documented per generator: audio sources stay in [-1, 1],
// envelopes and modulation depths in [0, 1].
package signal
