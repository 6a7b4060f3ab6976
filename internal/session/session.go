// Package session implements the per-session state machine: one registry,
// one invocation counter, the policy chain, and the change notifier.
//
// Dispatches on one session are serialized by a mutex, so the sequence
// lookup → counter increment → handler → mutation pass → notification
// enqueue never interleaves with another dispatch on the same session.
// Sessions share nothing, so dispatches across sessions run fully
// concurrently.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/dyntools-go/internal/errs"
	"github.com/wagiedev/dyntools-go/internal/policy"
	"github.com/wagiedev/dyntools-go/internal/registry"
)

// Notifier delivers a content-free "tool list changed" signal to the
// session's client. It is supplied by the transport collaborator and may
// fail; failures are logged and never affect the committed mutation.
type Notifier func(ctx context.Context, sessionID string) error

// Invocation is the record injected into a handler's context: which
// session is dispatching, which tool, and the post-increment call count.
type Invocation struct {
	SessionID string
	Tool      string
	Count     uint64
}

type invocationKey struct{}

// WithInvocation returns a context carrying the invocation record.
func WithInvocation(ctx context.Context, inv Invocation) context.Context {
	return context.WithValue(ctx, invocationKey{}, inv)
}

// InvocationFromContext returns the invocation record of the dispatch
// that is executing the current handler, if any.
func InvocationFromContext(ctx context.Context) (Invocation, bool) {
	inv, ok := ctx.Value(invocationKey{}).(Invocation)

	return inv, ok
}

// State owns one session's registry, counter, and policy chain. Create it
// when the session begins and Close it when the session ends; nothing in
// it outlives the session.
type State struct {
	id       string
	log      *slog.Logger
	store    *registry.Store
	policies []policy.Policy
	notify   Notifier

	// dispatchMu serializes dispatches; count is atomic only so
	// CallCount can be read without taking it.
	dispatchMu sync.Mutex
	count      atomic.Uint64
	closed     atomic.Bool
}

// New creates a session with the given seed tools and policies. A nil
// notifier disables change notification.
func New(id string, log *slog.Logger, seed []*registry.Tool, policies []policy.Policy, notify Notifier) *State {
	s := &State{
		id:       id,
		log:      log.With("component", "session", "session", id),
		store:    registry.New(),
		policies: policies,
		notify:   notify,
	}

	for _, t := range seed {
		s.store.Add(t)
	}

	return s
}

// ID returns the session identifier.
func (s *State) ID() string { return s.id }

// CallCount returns how many dispatches have completed the lookup stage.
// Not-found dispatches do not count.
func (s *State) CallCount() uint64 { return s.count.Load() }

// List returns the current descriptors, stable within one snapshot.
func (s *State) List() ([]*registry.Tool, error) {
	if s.closed.Load() {
		return nil, errs.ErrSessionClosed
	}

	return s.store.Snapshot(), nil
}

// Get returns the descriptor for name, if present.
func (s *State) Get(name string) (*registry.Tool, bool) {
	return s.store.Get(name)
}

// Close marks the session destroyed. Subsequent dispatches and listings
// fail with ErrSessionClosed. Idempotent.
func (s *State) Close() {
	s.closed.Store(true)
}

// Dispatch invokes a tool and runs the post-invocation mutation pass.
//
// An unknown name is a hard fault (*errs.ToolNotFoundError) and leaves
// the counter and registry untouched. A known name increments the
// counter, runs the handler (a handler error becomes an IsError result,
// never a fault), applies the merged policy ChangeSet atomically, and,
// if the pass changed anything, enqueues exactly one notification
// before returning.
//
// Handlers must not call Dispatch on their own session; that would
// deadlock on the dispatch mutex. Listing from a handler is safe.
func (s *State) Dispatch(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if s.closed.Load() {
		return nil, errs.ErrSessionClosed
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	tool, ok := s.store.Get(name)
	if !ok {
		return nil, &errs.ToolNotFoundError{Tool: name, Session: s.id}
	}

	count := s.count.Add(1)

	result := s.runHandler(ctx, tool, count, args)

	inv := policy.Invocation{Tool: name, Count: count}

	cs := policy.Chain(s.policies, s.store.Snapshot(), inv)
	if s.store.Commit(cs) {
		s.log.Debug("registry changed",
			"tool", name,
			"count", count,
			"added", len(cs.Add),
			"removed", len(cs.Remove),
		)

		s.enqueueNotify()
	}

	return result, nil
}

// runHandler executes the descriptor's handler with the supplied
// arguments, converting handler-level failure into an IsError result.
func (s *State) runHandler(ctx context.Context, tool *registry.Tool, count uint64, args map[string]any) *mcp.CallToolResult {
	if args == nil {
		args = make(map[string]any)
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return registry.ErrorResult("invalid arguments: " + err.Error())
	}

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      tool.Name,
			Arguments: raw,
		},
	}

	ctx = WithInvocation(ctx, Invocation{
		SessionID: s.id,
		Tool:      tool.Name,
		Count:     count,
	})

	result, err := tool.Handler(ctx, req)
	if err != nil {
		return registry.ErrorResult(err.Error())
	}

	if result == nil {
		return &mcp.CallToolResult{}
	}

	return result
}

// enqueueNotify fires the change signal without blocking the dispatch.
// The mutation already committed is authoritative: a lost signal only
// delays the client until its next listing.
func (s *State) enqueueNotify() {
	if s.notify == nil {
		return
	}

	go func() {
		if err := s.notify(context.Background(), s.id); err != nil {
			s.log.Warn("list-changed notification failed", "error", err)
		}
	}()
}
