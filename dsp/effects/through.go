package effects

import "github.com/cwbudde/algo-ambient/dsp/signal"

type through struct {
	src signal.Signal
	fx  Effect
}

func (s through) Value(t float64) float64 {
	return s.fx.Process(s.src.Value(t), t)
}

// ResetEffects resets fx and any effect state inside the source.
func (s through) ResetEffects() {
	s.fx.Reset()
	signal.ResetEffects(s.src)
}

// Through returns a signal that feeds s through fx one sample at a time,
// so a single layer can be filtered before it is mixed. fx must not also
// sit in a mixer chain. The result is a signal.EffectResetter, so a mixer
// holding it resets fx together with its chain.
func Through(s signal.Signal, fx Effect) signal.Signal {
	if s == nil {
		s = signal.Silence
	}
	if fx == nil {
		return s
	}
	return through{src: s, fx: fx}
}
