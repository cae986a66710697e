package rules

import (
	"errors"
)

var (
	errMalformedExpr = errors.New("malformed rule expression")
	errUnknownInput  = errors.New("unknown input variable")
	errUnknownLabel  = errors.New("unknown label")
	errDuplicateRule = errors.New("duplicate rule name")
)
