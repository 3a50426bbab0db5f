package rendering

import "errors"

var (
	ErrEmptySeries    = errors.New("empty series")
	ErrLengthMismatch = errors.New("series lengths do not match")
	ErrInvalidAlpha   = errors.New("alpha must be between 0 and 1")
	ErrInvalidVMax    = errors.New("vmax must be positive")
	ErrSaveFrame      = errors.New("could not save frame")
)
