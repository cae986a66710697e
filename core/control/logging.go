package control

import (
	"sort"

	"go.uber.org/zap/zapcore"

	"example.com/fuzzy-cruise/core/fuzzy"
)

type membershipMarshaler struct {
	m fuzzy.Membership
}

func (m membershipMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("label", m.m.Label)
	enc.AddFloat64("degree", m.m.Degree)
	return nil
}

type resultMarshaler struct {
	result fuzzy.Result
}

func (m resultMarshaler) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	var err error
	for _, x := range m.result {
		err = enc.AppendObject(membershipMarshaler{m: x})
		if err != nil {
			return err
		}
	}
	return nil
}

type conclusionsMarshaler struct {
	conclusions []fuzzy.Result
}

func (m conclusionsMarshaler) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	var err error
	for _, c := range m.conclusions {
		err = enc.AppendArray(resultMarshaler{result: c})
		if err != nil {
			return err
		}
	}
	return nil
}

type inputsMarshaler struct {
	inputs map[string]fuzzy.Result
}

func (m inputsMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	names := make([]string, 0, len(m.inputs))
	for n := range m.inputs {
		names = append(names, n)
	}
	sort.Strings(names)
	var err error
	for _, n := range names {
		err = enc.AddArray(n, resultMarshaler{result: m.inputs[n]})
		if err != nil {
			return err
		}
	}
	return nil
}

type DecisionMarshaler struct {
	Decision Decision
}

func (m DecisionMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	var err error
	err = enc.AddObject("inputs", inputsMarshaler{inputs: m.Decision.Inputs})
	if err != nil {
		return err
	}
	err = enc.AddArray("fired", zapcore.ArrayMarshalerFunc(func(enc zapcore.ArrayEncoder) error {
		for _, f := range m.Decision.Fired {
			enc.AppendString(f)
		}
		return nil
	}))
	if err != nil {
		return err
	}
	enc.AddFloat64("value", m.Decision.Value)
	enc.AddString("label", m.Decision.Label)
	return nil
}
