package utils

import (
	"math"
)

// ConstArray returns a slice of n copies of val.
func ConstArray(n int, val float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = val
	}
	return v
}

// POW multiplies out integer powers up to |p| = 8 and falls back to
// math.Pow beyond that.
func POW(x float64, p int) (y float64) {
	n := p
	if n < 0 {
		n = -n
	}
	if n > 8 {
		return math.Pow(x, float64(p))
	}
	y = 1
	for ; n >= 2; n -= 2 {
		y *= x * x
	}
	if n == 1 {
		y *= x
	}
	if p < 0 {
		y = 1. / y
	}
	return
}
