package sim

import "errors"

var (
	// ErrUnknownParam indicates a tunable name Params does not define.
	ErrUnknownParam = errors.New("sim: unknown parameter")

	// ErrParamBounds indicates a parameter value outside its valid range.
	ErrParamBounds = errors.New("sim: parameter out of valid bounds")
)
