package control

import (
	"errors"
)

var (
	errMissingInput = errors.New("missing input reading")
	errInvalidInput = errors.New("invalid input reading")
)
