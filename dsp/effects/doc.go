// Package effects provides the stateful audio transforms of the mixer chain:
// a Chamberlin state-variable filter (plain, parameter-smoothed and
// cascaded), a Schroeder/Freeverb-style reverb and a tanh soft limiter.
//
// Every effect implements Effect. Effects that can process a whole buffer
// faster than sample by sample also implement BlockProcessor, and effects
// whose coefficients depend on the sample rate implement SampleRateSetter.
// Constructors never fail; parameters are clamped to their documented
// ranges. Non-finite values are replaced with 0 before they reach filter
// state or output.
//
// The hot paths do not allocate. Only constructors and SetSampleRate may.
package effects
