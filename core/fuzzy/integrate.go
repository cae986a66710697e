package fuzzy

import (
	"fmt"
	"math"

	"example.com/fuzzy-cruise/base/floats"
)

const (
	// MaxIntegrationSteps bounds the number of samples taken per set.
	MaxIntegrationSteps = 1 << 20

	stepTolerance = 1e-9

	// Breakpoints far from zero are only known to within a few ulps; sample
	// positions and spans within this relative distance are considered equal.
	positionTolerance = 64 * 0x1p-52
)

// COG defuzzifies v by its center of gravity. Every set with a nonzero clip
// is sampled from its lower to its upper breakpoint, both inclusive, at
// intervals of step; the result is the membership-weighted mean of the
// sample positions. Sets are summed, not merged, so overlapping supports
// count twice.
func (v *Variable) COG(step float64) (float64, error) {
	if !floats.Finite(step) || step <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrStep, step)
	}
	var num, den float64
	for _, f := range v.fns {
		if f.Clip == 0 {
			continue
		}
		n, d, err := integrate(f, step)
		if err != nil {
			return 0, fmt.Errorf("variable %q: %w", v.name, err)
		}
		num += n
		den += d
	}
	if den == 0 {
		return 0, fmt.Errorf("%w: variable %q", ErrNoRegion, v.name)
	}
	return num / den, nil
}

func integrate(f MembershipFunction, step float64) (num, den float64, err error) {
	lo, hi := f.Lower(), f.Upper()
	tol := max(stepTolerance*step, positionTolerance*max(1, math.Abs(lo), math.Abs(hi)))
	n := floats.Steps(hi-lo, step, tol/step)
	if !floats.Finite(n) || n+2 > MaxIntegrationSteps {
		return 0, 0, fmt.Errorf("%w: %q spans [%v, %v] at step %v",
			ErrNonTerminating, f.Name, lo, hi, step)
	}
	sample := func(p float64) {
		m := f.Fuzzify(p)
		num += p * m
		den += m
	}
	k := int(n)
	var p float64
	for i := 0; i <= k; i++ {
		p = lo + float64(i)*step
		sample(p)
	}
	if !floats.ApproxEqual(p, hi, tol) && p < hi {
		sample(hi)
	}
	return num, den, nil
}
