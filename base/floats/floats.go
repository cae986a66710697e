package floats

import (
	"math"
	"slices"
)

func midpoint(x, y float64) float64 {
	return x + (y-x)/2.0
}

func Median(fs []float64) float64 {
	n := len(fs)
	if n == 0 {
		panic("unexpected number of values")
	}
	slices.Sort(fs)
	i := n / 2
	if n%2 != 0 {
		return fs[i]
	}
	return midpoint(fs[i-1], fs[i])
}

// ApproxEqual reports whether x and y differ by at most tol.
func ApproxEqual(x, y, tol float64) bool {
	return math.Abs(x-y) <= tol
}

// Steps returns the number of whole steps of the given size that fit into
// span. A quotient within tol of the next integer is rounded up, so that
// spans which are exact multiples of step in decimal notation are not lost
// to binary rounding.
func Steps(span, step, tol float64) float64 {
	return math.Floor(span/step + tol)
}

// Finite reports whether x is neither NaN nor infinite.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
