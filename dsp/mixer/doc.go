// Package mixer sums weighted signals, runs the sum through a serial effect
// chain and applies a master gain.
//
// Output evaluates one sample; OutputBlock fills a caller-owned buffer and
// is bit-identical to calling Output once per frame at
// t = startTime + i/sampleRate. Every produced sample lies in [-1, 1];
// non-finite results become 0.
//
// A Mixer is not safe for concurrent use. The render bridge owns it and
// serializes all access on its render thread.
package mixer
