package effects

import "github.com/cwbudde/algo-ambient/dsp/core"

// SoftLimiter saturates with ceiling·tanh(drive·x/ceiling) and then hard
// clamps to ±ceiling. It is stateless.
type SoftLimiter struct {
	drive   float64
	ceiling float64
}

// NewSoftLimiter clamps drive to [0.1, 10] and ceiling to [0.1, 1].
func NewSoftLimiter(drive, ceiling float64) *SoftLimiter {
	l := &SoftLimiter{}
	l.SetDrive(drive)
	l.SetCeiling(ceiling)
	return l
}

func (l *SoftLimiter) SetDrive(drive float64)     { l.drive = core.Clamp(drive, 0.1, 10) }
func (l *SoftLimiter) SetCeiling(ceiling float64) { l.ceiling = core.Clamp(ceiling, 0.1, 1) }
func (l *SoftLimiter) Drive() float64             { return l.drive }
func (l *SoftLimiter) Ceiling() float64           { return l.ceiling }

func (l *SoftLimiter) Process(input, _ float64) float64 {
	x := core.Sanitize(input)
	y := l.ceiling * mathTanh(l.drive*x/l.ceiling)
	return core.Clamp(core.Sanitize(y), -l.ceiling, l.ceiling)
}

func (l *SoftLimiter) ProcessBlock(in, out []float64, _, _ float64) {
	for i, x := range in {
		out[i] = l.Process(x, 0)
	}
}

// Reset is a no-op.
func (l *SoftLimiter) Reset() {}
