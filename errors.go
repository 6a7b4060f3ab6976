package dyntools

import "github.com/wagiedev/dyntools-go/internal/errs"

// Re-export error types from the internal package.

// ToolNotFoundError indicates an invocation named a tool absent from the
// session's registry at the start of the call. It is a protocol-level
// fault: no handler ran, the counter and registry are untouched.
type ToolNotFoundError = errs.ToolNotFoundError

// DynToolsError is the base interface for all dyntools errors.
type DynToolsError = errs.DynToolsError

// Re-export sentinel errors from the internal package.
var (
	// ErrSessionClosed indicates the session has been destroyed.
	ErrSessionClosed = errs.ErrSessionClosed
)
