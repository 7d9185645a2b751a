// Package generator provides the sound sources of the engine: oscillators,
// noise, low-frequency modulators and envelopes.
//
// Every generator is a small value type with named mutable fields and a
// Value(t) method, so each one satisfies signal.Signal through its pointer.
//
// Phase-carrying generators (oscillators, LFOs, wander, drift, breathing,
// chimes) advance by the delta between successive evaluation times rather
// than recomputing phase from absolute time. The first evaluation advances by
// zero, a negative delta (the render cursor restarted) or a gap longer than
// MaxPhaseStep (a pause) also advances by zero, so a source continues where
// it stopped instead of jumping.
//
// Constructors never fail: out-of-range parameters are clamped to documented
// bounds when assigned.
package generator
