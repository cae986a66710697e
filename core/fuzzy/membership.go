package fuzzy

import (
	"fmt"
	"math"
)

// Shape identifies one of the piecewise-linear membership function forms.
type Shape int

const (
	// InverseGrade is 1 below X0, ramps down to 0 at X1 and stays 0 beyond.
	InverseGrade Shape = iota
	// Triangle rises from 0 at X0 to 1 at X1 and falls back to 0 at X2.
	Triangle
	// Grade is 0 below X0, ramps up to 1 at X1 and stays 1 beyond.
	Grade
)

func (s Shape) String() string {
	switch s {
	case InverseGrade:
		return "InverseGrade"
	case Triangle:
		return "Triangle"
	case Grade:
		return "Grade"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// MembershipFunction maps a position on a variable's axis to a degree in
// [0, Clip]. X2 is only meaningful for triangles.
type MembershipFunction struct {
	Shape Shape
	Name  string
	X0    float64
	X1    float64
	X2    float64

	// Clip caps the raw membership degree. In a definition it weights sets
	// that are rarely fully engaged; after aggregation it holds the strength
	// with which the set was asserted by the rules.
	Clip float64
}

func NewInverseGrade(name string, x0, x1, clip float64) MembershipFunction {
	return MembershipFunction{Shape: InverseGrade, Name: name, X0: x0, X1: x1, Clip: clip}
}

func NewTriangle(name string, x0, x1, x2, clip float64) MembershipFunction {
	return MembershipFunction{Shape: Triangle, Name: name, X0: x0, X1: x1, X2: x2, Clip: clip}
}

func NewGrade(name string, x0, x1, clip float64) MembershipFunction {
	return MembershipFunction{Shape: Grade, Name: name, X0: x0, X1: x1, Clip: clip}
}

func (f MembershipFunction) Fuzzify(position float64) float64 {
	var v float64
	switch f.Shape {
	case InverseGrade:
		switch {
		case position <= f.X0:
			v = 1.0
		case position >= f.X1:
			v = 0.0
		default:
			v = (f.X1 - position) / (f.X1 - f.X0)
		}
	case Triangle:
		// Both edges are scaled by the rising span X1-X0, so a triangle whose
		// spans differ is asymmetric in slope, not just in width.
		if position >= f.X0 && position <= f.X1 {
			v = (position - f.X0) / (f.X1 - f.X0)
		} else if position >= f.X1 && position <= f.X2 {
			v = (f.X2 - position) / (f.X1 - f.X0)
		}
	case Grade:
		switch {
		case position >= f.X1:
			v = 1.0
		case position <= f.X0:
			v = 0.0
		default:
			v = (position - f.X0) / (f.X1 - f.X0)
		}
	}
	if v > f.Clip {
		v = f.Clip
	}
	return v
}

// Lower returns the start of the function's integration support.
func (f MembershipFunction) Lower() float64 {
	return f.X0
}

// Upper returns the end of the function's integration support.
func (f MembershipFunction) Upper() float64 {
	if f.Shape == Triangle {
		return f.X2
	}
	return f.X1
}

func (f MembershipFunction) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: empty %s name", ErrLabel, f.Shape)
	}
	if math.IsNaN(f.Clip) || f.Clip < 0 || f.Clip > 1 {
		return fmt.Errorf("%w: %s %q has clip %v", ErrClip, f.Shape, f.Name, f.Clip)
	}
	switch f.Shape {
	case InverseGrade, Grade:
		if !(f.X0 < f.X1) || math.IsInf(f.X0, 0) || math.IsInf(f.X1, 0) {
			return fmt.Errorf("%w: %s %q has breakpoints %v, %v",
				ErrDegenerate, f.Shape, f.Name, f.X0, f.X1)
		}
	case Triangle:
		if !(f.X0 < f.X1 && f.X1 < f.X2) || math.IsInf(f.X0, 0) || math.IsInf(f.X2, 0) {
			return fmt.Errorf("%w: %s %q has breakpoints %v, %v, %v",
				ErrDegenerate, f.Shape, f.Name, f.X0, f.X1, f.X2)
		}
	default:
		return fmt.Errorf("%w: %s", ErrShape, f.Shape)
	}
	return nil
}
