package spectrum

import "math"

// Floor is the level reported in dB for silence.
const Floor = -300.0

// Levels holds time-domain level statistics of a block.
type Levels struct {
	RMS  float64
	Peak float64
}

// Measure computes the RMS and absolute peak of data.
func Measure(data []float64) Levels {
	if len(data) == 0 {
		return Levels{}
	}

	var sum, peak float64
	for _, v := range data {
		sum += v * v
		peak = max(peak, math.Abs(v))
	}

	return Levels{RMS: math.Sqrt(sum / float64(len(data))), Peak: peak}
}

// MeasureFloat32 is Measure for rendered float32 output.
func MeasureFloat32(data []float32) Levels {
	if len(data) == 0 {
		return Levels{}
	}

	var sum, peak float64
	for _, s := range data {
		v := float64(s)
		sum += v * v
		peak = max(peak, math.Abs(v))
	}

	return Levels{RMS: math.Sqrt(sum / float64(len(data))), Peak: peak}
}

// RMSdB returns the RMS level in dBFS.
func (l Levels) RMSdB() float64 { return DB(l.RMS) }

// PeakdB returns the peak level in dBFS.
func (l Levels) PeakdB() float64 { return DB(l.Peak) }

// Crest returns the peak-to-RMS ratio in dB, or 0 for silence.
func (l Levels) Crest() float64 {
	if l.RMS <= 0 {
		return 0
	}

	return DB(l.Peak / l.RMS)
}

// DB converts an amplitude to decibels with a floor at [Floor].
func DB(amplitude float64) float64 {
	if amplitude <= 1e-15 {
		return Floor
	}

	return 20 * math.Log10(amplitude)
}
