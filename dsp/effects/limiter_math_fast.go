//go:build fastmath

package effects

import "github.com/meko-christian/algo-approx"

// Beyond this magnitude tanh is ±1 to double precision.
const tanhSaturation = 20.0

// mathTanh computes tanh(x) using fast approximation.
// Uses the identity: tanh(x) = 1 - 2/(e^(2x)+1)
func mathTanh(x float64) float64 {
	if x > tanhSaturation {
		return 1
	}
	if x < -tanhSaturation {
		return -1
	}
	return 1 - 2/(approx.FastExp(2*x)+1)
}
