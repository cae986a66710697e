package fuzzy_test

import (
	"testing"

	"example.com/fuzzy-cruise/core/fuzzy"
)

const tolerance = 1e-9

func mustVariable(t *testing.T, name string, start fuzzy.MembershipFunction,
	triangles []fuzzy.MembershipFunction, end fuzzy.MembershipFunction) *fuzzy.Variable {
	t.Helper()
	v, err := fuzzy.NewVariable(name, start, triangles, end)
	if err != nil {
		t.Fatalf("NewVariable(%q) failed: %v", name, err)
	}
	return v
}

func distanceVariable(t *testing.T) *fuzzy.Variable {
	return mustVariable(t, "distance",
		fuzzy.NewInverseGrade("VerySmall", 1.0, 2.5, 1.0),
		[]fuzzy.MembershipFunction{
			fuzzy.NewTriangle("Small", 1.5, 3.0, 4.5, 1.0),
			fuzzy.NewTriangle("Perfect", 3.5, 5.0, 6.5, 1.0),
			fuzzy.NewTriangle("Big", 5.5, 7.0, 8.5, 1.0),
		},
		fuzzy.NewGrade("VeryBig", 7.5, 9.0, 0.0),
	)
}

func deltaVariable(t *testing.T) *fuzzy.Variable {
	return mustVariable(t, "delta",
		fuzzy.NewInverseGrade("ShrinkingFast", -4.0, -2.5, 1.0),
		[]fuzzy.MembershipFunction{
			fuzzy.NewTriangle("Shrinking", -3.5, -2.0, -0.5, 1.0),
			fuzzy.NewTriangle("Stable", -1.5, 0.0, 1.5, 1.0),
			fuzzy.NewTriangle("Growing", 0.5, 2.0, 3.5, 1.0),
		},
		fuzzy.NewGrade("GrowingFast", 2.5, 4.0, 1.0),
	)
}

func actionVariable(t *testing.T) *fuzzy.Variable {
	return mustVariable(t, "action",
		fuzzy.NewInverseGrade("BrakeHard", -8.0, -5.0, 0.0),
		[]fuzzy.MembershipFunction{
			fuzzy.NewTriangle("SlowDown", -7.0, -4.0, -1.0, 0.2),
			fuzzy.NewTriangle("None", -3.0, 0.0, 3.0, 0.46666),
			fuzzy.NewTriangle("SpeedUp", 1.0, 4.0, 7.0, 0.133333),
		},
		fuzzy.NewGrade("FloorIt", 5.0, 8.0, 0.0),
	)
}
