package app

import (
	"errors"
	"fmt"
)

var (
	// ErrQuit signals that the viewer should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrLineOutOfRange indicates a line number outside the document.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrNoChange indicates a line that is unchanged or has no base text.
	ErrNoChange = errors.New("line has no change with base text")

	// ErrSessionClosed indicates use of a closed session.
	ErrSessionClosed = errors.New("session closed")
)

// OperationError records the operation and target of a failure.
type OperationError struct {
	Op     string // e.g. "open", "reload", "old"
	Target string // file path or line
	Err    error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
