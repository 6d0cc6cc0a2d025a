package lua

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script runs longer than the
	// configured timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned when a called global is missing or is not
	// a function.
	ErrNotFunction = errors.New("lua global is not a function")

	// ErrBadResult is returned when a function returns a value of the wrong
	// type.
	ErrBadResult = errors.New("lua function returned an unexpected value")
)
