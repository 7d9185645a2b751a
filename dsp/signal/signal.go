package signal

// Signal is a time-to-amplitude mapping evaluated once per requested sample time.
type Signal interface {
	Value(t float64) float64
}

// Func adapts an ordinary function to the Signal interface.
type Func func(t float64) float64

// Value calls f(t).
func (f Func) Value(t float64) float64 {
	return f(t)
}

// Constant is a Signal that always returns the same amplitude.
type Constant float64

// Value returns c regardless of t.
func (c Constant) Value(float64) float64 {
	return float64(c)
}

// Silence is the zero signal.
var Silence Signal = Constant(0)

func orSilence(s Signal) Signal {
	if s == nil {
		return Silence
	}
	return s
}

// EffectResetter is implemented by signals that hold effect state, such as
// a layer filtered before mixing, and by the combinators that may wrap
// them. Oscillator phase and noise state are not effect state.
type EffectResetter interface {
	ResetEffects()
}

// ResetEffects clears the effect state reachable from s, if any.
func ResetEffects(s Signal) {
	if r, ok := s.(EffectResetter); ok {
		r.ResetEffects()
	}
}
