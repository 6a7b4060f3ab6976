package errs

import (
	"errors"
	"fmt"
)

// DynToolsError is the base interface for all dyntools errors.
type DynToolsError interface {
	error
	IsDynToolsError() bool
}

// Compile-time verification that all error types implement DynToolsError.
var (
	_ DynToolsError = (*ToolNotFoundError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrSessionClosed indicates the session has been destroyed and can no
	// longer dispatch or list tools.
	ErrSessionClosed = errors.New("session closed")

	// ErrDivideByZero indicates an arithmetic expression divided by zero.
	ErrDivideByZero = errors.New("division by zero")

	// ErrInvalidExpression indicates an arithmetic expression could not be
	// parsed.
	ErrInvalidExpression = errors.New("invalid expression")
)

// ToolNotFoundError indicates an invocation named a tool absent from the
// session's registry at the start of the call. It is the only condition
// surfaced as a hard fault rather than an IsError result.
type ToolNotFoundError struct {
	Tool    string
	Session string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("tool not found: %q (session %s)", e.Tool, e.Session)
}

// IsDynToolsError implements DynToolsError.
func (e *ToolNotFoundError) IsDynToolsError() bool { return true }
