package animating

import "errors"

var (
	ErrFrameNotFound = errors.New("frame not found")
	ErrInvalidYears  = errors.New("end year before start year")
	ErrNoFrames      = errors.New("no frames to encode")
	ErrInvalidFPS    = errors.New("fps must be positive")
	ErrInvalidOutput = errors.New("invalid gif output")
)
