package fuzzy

import (
	"fmt"
)

// Variable partitions one numeric axis into named, overlapping linguistic
// sets: an InverseGrade at the low end, any number of Triangles, and a Grade
// at the high end. A Variable is never modified after construction;
// Aggregate returns a new one.
type Variable struct {
	name string
	fns  []MembershipFunction // start, triangles..., end
}

func NewVariable(name string, start MembershipFunction, triangles []MembershipFunction,
	end MembershipFunction) (*Variable, error) {
	if start.Shape != InverseGrade {
		return nil, fmt.Errorf("%w: variable %q starts with %s", ErrShape, name, start.Shape)
	}
	if end.Shape != Grade {
		return nil, fmt.Errorf("%w: variable %q ends with %s", ErrShape, name, end.Shape)
	}
	fns := make([]MembershipFunction, 0, len(triangles)+2)
	fns = append(fns, start)
	for _, t := range triangles {
		if t.Shape != Triangle {
			return nil, fmt.Errorf("%w: variable %q has %s %q among its triangles",
				ErrShape, name, t.Shape, t.Name)
		}
		fns = append(fns, t)
	}
	fns = append(fns, end)

	seen := make(map[string]struct{}, len(fns))
	for _, f := range fns {
		err := f.Validate()
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		if _, ok := seen[f.Name]; ok {
			return nil, fmt.Errorf("%w: variable %q defines %q more than once",
				ErrLabel, name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return &Variable{name: name, fns: fns}, nil
}

func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) Clone() *Variable {
	fns := make([]MembershipFunction, len(v.fns))
	copy(fns, v.fns)
	return &Variable{name: v.name, fns: fns}
}

// Functions returns a copy of the membership functions in declaration order.
func (v *Variable) Functions() []MembershipFunction {
	return v.Clone().fns
}

func (v *Variable) Function(label string) (MembershipFunction, bool) {
	for _, f := range v.fns {
		if f.Name == label {
			return f, true
		}
	}
	return MembershipFunction{}, false
}

func (v *Variable) Labels() []string {
	ls := make([]string, len(v.fns))
	for i, f := range v.fns {
		ls[i] = f.Name
	}
	return ls
}

func (v *Variable) Contains(label string) bool {
	_, ok := v.Function(label)
	return ok
}

// Fuzzify evaluates every membership function against input and keeps the
// labels with a positive degree.
func (v *Variable) Fuzzify(input float64) Result {
	r := Result{}
	for _, f := range v.fns {
		d := f.Fuzzify(input)
		if d > 0 {
			r = append(r, Membership{Label: f.Name, Degree: d})
		}
	}
	return r
}

// Aggregate returns a copy of v whose clips hold the degrees asserted by
// conclusions; sets that no conclusion mentions get a clip of 0. A label
// asserted more than once keeps the last degree, not the maximum.
func (v *Variable) Aggregate(conclusions []Result) *Variable {
	a := v.Clone()
	for i := range a.fns {
		a.fns[i].Clip = 0
	}
	for _, c := range conclusions {
		for _, m := range c {
			for i := range a.fns {
				if a.fns[i].Name == m.Label {
					a.fns[i].Clip = m.Degree
				}
			}
		}
	}
	return a
}

// FinalSelection names the single set that cog belongs to, or returns the
// empty string if cog belongs to none or to several sets of v.
func (v *Variable) FinalSelection(cog float64) string {
	r := v.Fuzzify(cog)
	if len(r) != 1 {
		return ""
	}
	return r[0].Label
}
