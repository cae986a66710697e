package floats_test

import (
	"math"
	"testing"

	"example.com/fuzzy-cruise/base/floats"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name      string
		input     []float64
		want      float64
		wantPanic bool
	}{
		{
			name:      "Nil slice",
			input:     nil,
			wantPanic: true,
		},
		{
			name:      "Empty slice",
			input:     []float64{},
			wantPanic: true,
		},
		{
			name:  "Single element",
			input: []float64{42.0},
			want:  42.0,
		},
		{
			name:  "Two elements",
			input: []float64{1.0, 2.0},
			want:  1.5,
		},
		{
			name:  "Three elements",
			input: []float64{3.0, 1.0, 2.0},
			want:  2.0,
		},
		{
			name:  "Four elements",
			input: []float64{4.0, 1.0, 3.0, 2.0},
			want:  2.5,
		},
		{
			name:  "Negative values",
			input: []float64{-1.0, -2.0, -3.0, -4.0, -5.0},
			want:  -3.0,
		},
		{
			name:  "Mixed positive and negative values",
			input: []float64{-1.0, 2.0, -3.0, 4.0, -5.0, 6.0},
			want:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("expected panic, got none")
					}
				}()
				_ = floats.Median(tt.input)
			} else {
				got := floats.Median(tt.input)
				if got != tt.want {
					t.Errorf("Median(%v) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}

func TestSteps(t *testing.T) {
	tests := []struct {
		name       string
		span, step float64
		want       float64
	}{
		{name: "Exact halves", span: 6.0, step: 0.5, want: 12},
		{name: "Tenths", span: 0.3, step: 0.1, want: 3},
		{name: "Remainder", span: 1.0, step: 0.3, want: 3},
		{name: "Step larger than span", span: 0.2, step: 0.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := floats.Steps(tt.span, tt.step, 1e-9)
			if got != tt.want {
				t.Errorf("Steps(%v, %v) = %v, want %v", tt.span, tt.step, got, tt.want)
			}
		})
	}
}

func TestFinite(t *testing.T) {
	if !floats.Finite(1.5) {
		t.Errorf("Finite(1.5) = false, want true")
	}
	if floats.Finite(math.NaN()) {
		t.Errorf("Finite(NaN) = true, want false")
	}
	if floats.Finite(math.Inf(-1)) {
		t.Errorf("Finite(-Inf) = true, want false")
	}
}

func TestApproxEqual(t *testing.T) {
	if !floats.ApproxEqual(0.1+0.2, 0.3, 1e-12) {
		t.Errorf("ApproxEqual(0.1+0.2, 0.3) = false, want true")
	}
	if floats.ApproxEqual(1.0, 1.1, 1e-3) {
		t.Errorf("ApproxEqual(1.0, 1.1) = true, want false")
	}
}
