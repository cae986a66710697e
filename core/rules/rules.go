package rules

import (
	"fmt"

	"go.uber.org/multierr"

	"example.com/fuzzy-cruise/core/fuzzy"
)

// Expr is a rule antecedent. A leaf names an input variable and one of its
// labels; a composite combines its children with And (All) or Or (Any).
// Not complements the node's value after it has been evaluated.
type Expr struct {
	Input string `toml:"input,omitempty"`
	Is    string `toml:"is,omitempty"`
	Not   bool   `toml:"not,omitempty"`
	All   []Expr `toml:"all,omitempty"`
	Any   []Expr `toml:"any,omitempty"`
}

// Rule asserts the output label Then with the strength of When.
type Rule struct {
	Name string `toml:"name"`
	When Expr   `toml:"when"`
	Then string `toml:"then"`
}

func Is(input, label string) Expr {
	return Expr{Input: input, Is: label}
}

func All(es ...Expr) Expr {
	return Expr{All: es}
}

func Any(es ...Expr) Expr {
	return Expr{Any: es}
}

func Not(e Expr) Expr {
	e.Not = !e.Not
	return e
}

func (e Expr) leaf() bool {
	return e.Input != "" || e.Is != ""
}

// Eval evaluates e against the fuzzified inputs, keyed by variable name. An
// input without a fuzzification behaves like one in which no set matched.
func (e Expr) Eval(inputs map[string]fuzzy.Result) fuzzy.Bool {
	var b fuzzy.Bool
	switch {
	case e.leaf():
		b = inputs[e.Input].Is(e.Is)
	case len(e.All) != 0:
		b = e.All[0].Eval(inputs)
		for _, x := range e.All[1:] {
			b = b.And(x.Eval(inputs))
		}
	case len(e.Any) != 0:
		b = e.Any[0].Eval(inputs)
		for _, x := range e.Any[1:] {
			b = b.Or(x.Eval(inputs))
		}
	}
	if e.Not {
		b = b.Not()
	}
	return b
}

func (r Rule) Eval(inputs map[string]fuzzy.Result, output *fuzzy.Variable) fuzzy.Result {
	return r.When.Eval(inputs).Then(output, r.Then)
}

func (e Expr) String() string {
	var s string
	switch {
	case e.leaf():
		s = fmt.Sprintf("%s is %s", e.Input, e.Is)
	case len(e.All) != 0:
		s = join(e.All, " and ")
	case len(e.Any) != 0:
		s = join(e.Any, " or ")
	default:
		s = "?"
	}
	if e.Not {
		return "not (" + s + ")"
	}
	return s
}

func join(es []Expr, sep string) string {
	s := "("
	for i, e := range es {
		if i != 0 {
			s += sep
		}
		s += e.String()
	}
	return s + ")"
}

func (r Rule) String() string {
	return fmt.Sprintf("if %s then %s", r.When, r.Then)
}

func (e Expr) validate(inputs map[string]*fuzzy.Variable) error {
	forms := 0
	if e.leaf() {
		forms++
	}
	if len(e.All) != 0 {
		forms++
	}
	if len(e.Any) != 0 {
		forms++
	}
	if forms != 1 {
		return fmt.Errorf("%w: %s", errMalformedExpr, e)
	}
	if e.leaf() {
		if e.Input == "" || e.Is == "" {
			return fmt.Errorf("%w: %s", errMalformedExpr, e)
		}
		v, ok := inputs[e.Input]
		if !ok {
			return fmt.Errorf("%w: %q", errUnknownInput, e.Input)
		}
		if !v.Contains(e.Is) {
			return fmt.Errorf("%w: %q is not a set of %q", errUnknownLabel, e.Is, e.Input)
		}
		return nil
	}
	var err error
	for _, x := range e.All {
		err = multierr.Append(err, x.validate(inputs))
	}
	for _, x := range e.Any {
		err = multierr.Append(err, x.validate(inputs))
	}
	return err
}

// Validate checks rs against the variables they refer to and reports every
// problem found. A rule that names a label its variable does not define
// would otherwise never fire.
func Validate(rs []Rule, inputs map[string]*fuzzy.Variable, output *fuzzy.Variable) error {
	var err error
	names := make(map[string]struct{}, len(rs))
	for i, r := range rs {
		id := r.Name
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		} else {
			if _, ok := names[r.Name]; ok {
				err = multierr.Append(err, fmt.Errorf("%w: %q", errDuplicateRule, r.Name))
			}
			names[r.Name] = struct{}{}
		}
		if !output.Contains(r.Then) {
			err = multierr.Append(err, fmt.Errorf("rule %s: %w: %q is not a set of %q",
				id, errUnknownLabel, r.Then, output.Name()))
		}
		if verr := r.When.validate(inputs); verr != nil {
			err = multierr.Append(err, fmt.Errorf("rule %s: %w", id, verr))
		}
	}
	return err
}
