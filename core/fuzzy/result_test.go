package fuzzy_test

import (
	"testing"

	"example.com/fuzzy-cruise/core/fuzzy"
)

func TestIs(t *testing.T) {
	r := fuzzy.Result{{Label: "Small", Degree: 0.533}, {Label: "Perfect", Degree: 0.133}}
	if got := r.Is("Small"); got != (fuzzy.Bool{True: true, Value: 0.533}) {
		t.Errorf("Is(Small) = %v", got)
	}
	if got := r.Is("Big"); got != (fuzzy.Bool{}) {
		t.Errorf("Is(Big) = %v, want zero value", got)
	}
}

func TestIsRepeatedLabel(t *testing.T) {
	r := fuzzy.Result{{Label: "Small", Degree: 0.5}, {Label: "Small", Degree: 0.7}}
	if got := r.Is("Small"); got != (fuzzy.Bool{}) {
		t.Errorf("Is(Small) = %v, want zero value", got)
	}
}

func TestRuleWithMissingSetDoesNotFire(t *testing.T) {
	action := actionVariable(t)
	distance := fuzzy.Result{{Label: "Small", Degree: 0.533}, {Label: "Perfect", Degree: 0.133}}
	delta := fuzzy.Result{{Label: "Stable", Degree: 0.2}}

	got := distance.Is("Small").And(delta.Is("Growing")).Then(action, "None")
	if !got.Empty() {
		t.Errorf("rule result = %v, want empty", got)
	}
}

func TestResultClone(t *testing.T) {
	r := fuzzy.Result{{Label: "A", Degree: 0.1}}
	c := r.Clone()
	c[0].Degree = 0.9
	if r[0].Degree != 0.1 {
		t.Errorf("Clone shares storage with original")
	}
	if fuzzy.Result(nil).Clone() != nil {
		t.Errorf("Clone of nil result is not nil")
	}
}

func TestResultString(t *testing.T) {
	r := fuzzy.Result{{Label: "Small", Degree: 0.5}, {Label: "Perfect", Degree: 0.25}}
	want := `[("Small", 0.5), ("Perfect", 0.25)]`
	if got := r.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
