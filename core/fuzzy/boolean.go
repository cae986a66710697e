package fuzzy

// Bool is a fuzzy truth value. True records whether every referenced set was
// present in its fuzzification; Value carries the degree. The two channels
// are propagated independently.
type Bool struct {
	True  bool
	Value float64
}

func (b Bool) And(o Bool) Bool {
	return Bool{
		True:  b.True && o.True,
		Value: min(b.Value, o.Value),
	}
}

// Or takes the maximum degree. The truth flag is the conjunction of both
// flags, as for And: a disjunction only fires when both operands were found.
func (b Bool) Or(o Bool) Bool {
	return Bool{
		True:  b.True && o.True,
		Value: max(b.Value, o.Value),
	}
}

// Not complements the degree and leaves the truth flag unchanged.
func (b Bool) Not() Bool {
	return Bool{
		True:  b.True,
		Value: 1.0 - b.Value,
	}
}

// Then fires a rule: if b holds and target has a set named label, the
// result asserts label with b's degree. Otherwise the result is empty.
func (b Bool) Then(target *Variable, label string) Result {
	if !b.True || !target.Contains(label) {
		return Result{}
	}
	return Result{{Label: label, Degree: b.Value}}
}
