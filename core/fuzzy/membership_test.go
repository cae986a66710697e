package fuzzy_test

import (
	"errors"
	"math"
	"testing"

	"example.com/fuzzy-cruise/core/fuzzy"
)

func TestInverseGrade(t *testing.T) {
	f := fuzzy.NewInverseGrade("VerySmall", 1.0, 2.5, 1.0)
	tests := []struct {
		position, want float64
	}{
		{position: 0.0, want: 1.0},
		{position: 1.0, want: 1.0},
		{position: 1.75, want: 0.5},
		{position: 2.5, want: 0.0},
		{position: 10.0, want: 0.0},
	}
	for _, tt := range tests {
		got := f.Fuzzify(tt.position)
		if math.Abs(got-tt.want) > tolerance {
			t.Errorf("Fuzzify(%v) = %v, want %v", tt.position, got, tt.want)
		}
	}
}

func TestInverseGradeBoundaries(t *testing.T) {
	for _, clip := range []float64{0.0, 0.25, 0.5, 1.0} {
		f := fuzzy.NewInverseGrade("Low", -2.0, 3.0, clip)
		if got := f.Fuzzify(f.X0); got != clip {
			t.Errorf("clip %v: Fuzzify(x0) = %v, want %v", clip, got, clip)
		}
		if got := f.Fuzzify(f.X1); got != 0 {
			t.Errorf("clip %v: Fuzzify(x1) = %v, want 0", clip, got)
		}
	}
}

func TestGradeMonotonic(t *testing.T) {
	f := fuzzy.NewGrade("High", 7.5, 9.0, 0.8)
	prev := f.Fuzzify(f.X0)
	if prev != 0 {
		t.Errorf("Fuzzify(x0) = %v, want 0", prev)
	}
	for p := f.X0; p <= f.X1+1.0; p += 0.01 {
		got := f.Fuzzify(p)
		if got < prev {
			t.Fatalf("Fuzzify(%v) = %v, decreased from %v", p, got, prev)
		}
		prev = got
	}
	if got := f.Fuzzify(f.X1); got != f.Clip {
		t.Errorf("Fuzzify(x1) = %v, want %v", got, f.Clip)
	}
	if got := f.Fuzzify(100); got != f.Clip {
		t.Errorf("Fuzzify(100) = %v, want %v", got, f.Clip)
	}
}

func TestTriangle(t *testing.T) {
	f := fuzzy.NewTriangle("Small", 1.5, 3.0, 4.5, 1.0)
	tests := []struct {
		position, want float64
	}{
		{position: 1.0, want: 0.0},
		{position: 1.5, want: 0.0},
		{position: 2.25, want: 0.5},
		{position: 3.0, want: 1.0},
		{position: 3.7, want: (4.5 - 3.7) / (3.0 - 1.5)},
		{position: 4.5, want: 0.0},
		{position: 5.0, want: 0.0},
	}
	for _, tt := range tests {
		got := f.Fuzzify(tt.position)
		if math.Abs(got-tt.want) > tolerance {
			t.Errorf("Fuzzify(%v) = %v, want %v", tt.position, got, tt.want)
		}
	}
	if got := f.Fuzzify(3.7); math.Abs(got-0.5333) > 1e-4 {
		t.Errorf("Fuzzify(3.7) = %v, want ~0.5333", got)
	}
}

func TestTrianglePeakIsClip(t *testing.T) {
	for _, clip := range []float64{0.1, 0.46666, 1.0} {
		f := fuzzy.NewTriangle("Mid", -3.0, 0.0, 3.0, clip)
		if got := f.Fuzzify(f.X1); got != clip {
			t.Errorf("Fuzzify(x1) = %v, want %v", got, clip)
		}
	}
}

func TestTriangleFallingEdgeUsesRisingSpan(t *testing.T) {
	// Rising span 1, falling span 4: the falling edge keeps the rising slope.
	f := fuzzy.NewTriangle("Skewed", 0.0, 1.0, 5.0, 1.0)
	if got := f.Fuzzify(3.0); got != 1.0 {
		t.Errorf("Fuzzify(3.0) = %v, want 1.0 (capped (5-3)/1)", got)
	}
	if got := f.Fuzzify(4.5); math.Abs(got-0.5) > tolerance {
		t.Errorf("Fuzzify(4.5) = %v, want 0.5", got)
	}
}

func TestClipCapsDegree(t *testing.T) {
	f := fuzzy.NewGrade("High", 0.0, 1.0, 0.3)
	if got := f.Fuzzify(0.5); got != 0.3 {
		t.Errorf("Fuzzify(0.5) = %v, want 0.3", got)
	}
	if got := f.Fuzzify(0.1); math.Abs(got-0.1) > tolerance {
		t.Errorf("Fuzzify(0.1) = %v, want 0.1", got)
	}
}

func TestSupport(t *testing.T) {
	tri := fuzzy.NewTriangle("T", 1, 2, 4, 1)
	if tri.Lower() != 1 || tri.Upper() != 4 {
		t.Errorf("triangle support = [%v, %v], want [1, 4]", tri.Lower(), tri.Upper())
	}
	g := fuzzy.NewGrade("G", 5, 8, 1)
	if g.Lower() != 5 || g.Upper() != 8 {
		t.Errorf("grade support = [%v, %v], want [5, 8]", g.Lower(), g.Upper())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		f    fuzzy.MembershipFunction
		want error
	}{
		{name: "Valid grade", f: fuzzy.NewGrade("G", 0, 1, 1)},
		{name: "Valid triangle", f: fuzzy.NewTriangle("T", 0, 1, 2, 0)},
		{name: "Zero width grade", f: fuzzy.NewGrade("G", 1, 1, 1), want: fuzzy.ErrDegenerate},
		{name: "Reversed inverse grade", f: fuzzy.NewInverseGrade("I", 2, 1, 1), want: fuzzy.ErrDegenerate},
		{name: "Zero width rising edge", f: fuzzy.NewTriangle("T", 1, 1, 2, 1), want: fuzzy.ErrDegenerate},
		{name: "Zero width falling edge", f: fuzzy.NewTriangle("T", 0, 1, 1, 1), want: fuzzy.ErrDegenerate},
		{name: "NaN breakpoint", f: fuzzy.NewGrade("G", math.NaN(), 1, 1), want: fuzzy.ErrDegenerate},
		{name: "Negative clip", f: fuzzy.NewGrade("G", 0, 1, -0.1), want: fuzzy.ErrClip},
		{name: "Clip above one", f: fuzzy.NewGrade("G", 0, 1, 1.5), want: fuzzy.ErrClip},
		{name: "Empty name", f: fuzzy.NewGrade("", 0, 1, 1), want: fuzzy.ErrLabel},
		{name: "Unknown shape", f: fuzzy.MembershipFunction{Shape: 7, Name: "X", X1: 1}, want: fuzzy.ErrShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
