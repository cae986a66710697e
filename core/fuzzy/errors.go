package fuzzy

import (
	"errors"
)

var (
	ErrDegenerate     = errors.New("degenerate membership function")
	ErrClip           = errors.New("clip out of range [0, 1]")
	ErrShape          = errors.New("unexpected membership function shape")
	ErrLabel          = errors.New("invalid or duplicate label")
	ErrStep           = errors.New("invalid integration step")
	ErrNoRegion       = errors.New("no defuzzifiable region")
	ErrNonTerminating = errors.New("non-terminating integration")
)
