package fuzzy

import (
	"strconv"
	"strings"
)

// Membership is one (label, degree) pair of a fuzzification.
type Membership struct {
	Label  string
	Degree float64
}

// Result holds the memberships produced by one fuzzification or one fired
// rule, in the order of the variable's membership functions.
type Result []Membership

// Is looks up label. The lookup only succeeds when label occurs exactly
// once; a result with repeated labels answers as if label were absent.
func (r Result) Is(label string) Bool {
	var (
		n      int
		degree float64
	)
	for _, m := range r {
		if m.Label == label {
			n++
			degree = m.Degree
		}
	}
	if n != 1 {
		return Bool{}
	}
	return Bool{True: true, Value: degree}
}

func (r Result) Empty() bool {
	return len(r) == 0
}

func (r Result) Clone() Result {
	if r == nil {
		return nil
	}
	c := make(Result, len(r))
	copy(c, r)
	return c
}

func (r Result) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, m := range r {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		b.WriteString(strconv.Quote(m.Label))
		b.WriteString(", ")
		b.WriteString(strconv.FormatFloat(m.Degree, 'g', -1, 64))
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}
