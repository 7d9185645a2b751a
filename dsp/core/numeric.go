package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
// NaN is mapped to min so that a poisoned parameter can never escape the range.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min || math.IsNaN(value) {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Sanitize replaces NaN and ±Inf with 0.
func Sanitize(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}

	return x
}

// SanitizeClamp replaces non-finite values with 0 and clamps the rest to
// [-1, 1]. It is the last step before any sample leaves the engine.
func SanitizeClamp(x float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0):
		return 0
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Filter and reverb registers call this on every write so that a decaying
// tail reaches true silence instead of idling in the denormal range.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// CentsToRatio converts a pitch offset in cents to a frequency ratio.
func CentsToRatio(cents float64) float64 {
	return math.Pow(2, cents/1200)
}

// OnePoleCoeff returns the smoothing coefficient 1 - e^(-1/(timeConstant*sampleRate))
// used by one-pole followers. A non-positive time constant yields 1 (no smoothing).
func OnePoleCoeff(timeConstant, sampleRate float64) float64 {
	if timeConstant <= 0 || sampleRate <= 0 {
		return 1
	}

	return 1 - math.Exp(-1/(timeConstant*sampleRate))
}
