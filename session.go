package dyntools

import (
	"context"

	"github.com/wagiedev/dyntools-go/internal/session"
)

// Session is one client's isolated view of the tool registry, with its
// own invocation counter. Create it with Server.CreateSession and
// discard it with Server.DestroySession.
type Session struct {
	state *session.State
}

// ID returns the session identifier (a ULID minted at creation).
func (s *Session) ID() string { return s.state.ID() }

// CallCount returns how many invocations this session has dispatched.
// Invocations rejected as not-found do not count.
func (s *Session) CallCount() uint64 { return s.state.CallCount() }

// List returns a snapshot of the current tools for presentation to the
// client. The order is stable within one snapshot but callers must not
// depend on it beyond that.
func (s *Session) List() ([]ToolInfo, error) {
	tools, err := s.state.List()
	if err != nil {
		return nil, err
	}

	infos := make([]ToolInfo, 0, len(tools))
	for _, t := range tools {
		infos = append(infos, t.Info())
	}

	return infos, nil
}

// Invoke dispatches a tool call and runs the post-invocation mutation
// pass before returning.
//
// An unknown name fails with *ToolNotFoundError and changes nothing. A
// handler failure is not an error return: it comes back as a result with
// IsError set, and the mutation pass still runs, because a call happened
// regardless of handler outcome. Missing arguments default to an empty
// object.
func (s *Session) Invoke(ctx context.Context, name string, args map[string]any) (*CallToolResult, error) {
	return s.state.Dispatch(ctx, name, args)
}

// Invocation is the record of the dispatch executing the current
// handler: session ID, tool name, and the post-increment call count.
type Invocation = session.Invocation

// InvocationFromContext returns the invocation record the dispatcher
// injected into the handler's context. Handlers use it to reference the
// session and call count without holding a session pointer.
func InvocationFromContext(ctx context.Context) (Invocation, bool) {
	return session.InvocationFromContext(ctx)
}
