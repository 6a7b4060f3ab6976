package main

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dyntools "github.com/wagiedev/dyntools-go"
)

// fakeMounter records what the bridge mounts and unmounts.
type fakeMounter struct {
	mu       sync.Mutex
	handlers map[string]mcp.ToolHandler
	removed  []string
}

func newFakeMounter() *fakeMounter {
	return &fakeMounter{handlers: make(map[string]mcp.ToolHandler)}
}

func (f *fakeMounter) AddTool(t *mcp.Tool, h mcp.ToolHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers[t.Name] = h
}

func (f *fakeMounter) RemoveTools(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, name := range names {
		delete(f.handlers, name)
	}

	f.removed = append(f.removed, names...)
}

func (f *fakeMounter) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]string, 0, len(f.handlers))
	for name := range f.handlers {
		result = append(result, name)
	}

	sort.Strings(result)

	return result
}

func (f *fakeMounter) handler(name string) mcp.ToolHandler {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.handlers[name]
}

func (f *fakeMounter) removedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.removed...)
}

func callProxy(t *testing.T, h mcp.ToolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	payload, err := json.Marshal(args)
	require.NoError(t, err)

	result, err := h(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Arguments: payload},
	})
	require.NoError(t, err)

	return result
}

func TestBridgeMountsSeedTools(t *testing.T) {
	mounter := newFakeMounter()

	srv := dyntools.NewServer("test", "0.0.0",
		dyntools.WithTools(dyntools.DemoTools()...),
		dyntools.WithPolicies(dyntools.DemoUnlockPolicy()),
	)

	b := newBridge(dyntools.NopLogger(), srv, mounter)
	defer srv.DestroySession(b.core)

	assert.Equal(t, []string{"greet"}, mounter.names())
}

func TestBridgeSyncsUnlockedTools(t *testing.T) {
	mounter := newFakeMounter()

	srv := dyntools.NewServer("test", "0.0.0",
		dyntools.WithTools(dyntools.DemoTools()...),
		dyntools.WithPolicies(dyntools.DemoUnlockPolicy()),
	)

	b := newBridge(dyntools.NopLogger(), srv, mounter)
	defer srv.DestroySession(b.core)

	result := callProxy(t, mounter.handler("greet"), map[string]any{"name": "Alice"})
	assert.False(t, result.IsError)

	// The notifier drives sync from its own goroutine.
	require.Eventually(t, func() bool {
		return len(mounter.names()) == 4
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"evaluate", "farewell", "greet", "status"}, mounter.names())
	assert.Empty(t, mounter.removedNames())
}

func TestBridgeUnmountsPrunedTools(t *testing.T) {
	mounter := newFakeMounter()

	srv := dyntools.NewServer("test", "0.0.0",
		dyntools.WithTools(dyntools.GreetTool()),
		dyntools.WithPolicies(&dyntools.SlidingWindow{Window: 1}),
	)

	b := newBridge(dyntools.NopLogger(), srv, mounter)
	defer srv.DestroySession(b.core)

	greet := mounter.handler("greet")

	callProxy(t, greet, nil)

	require.Eventually(t, func() bool {
		return len(mounter.names()) == 2
	}, time.Second, 5*time.Millisecond)

	// The second call's mint pushes the first follow-up out of the
	// window; the re-sync must unmount it.
	callProxy(t, greet, nil)

	require.Eventually(t, func() bool {
		return len(mounter.removedNames()) == 1
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(mounter.names()) == 2
	}, time.Second, 5*time.Millisecond)

	names := mounter.names()
	assert.Equal(t, "greet", names[1])
	assert.Contains(t, names[0], "followup_")
	assert.Contains(t, mounter.removedNames()[0], "followup_")
	assert.NotEqual(t, names[0], mounter.removedNames()[0])
}

func TestBridgeProxyPropagatesDispatchFault(t *testing.T) {
	mounter := newFakeMounter()

	srv := dyntools.NewServer("test", "0.0.0",
		dyntools.WithTools(dyntools.GreetTool()),
	)

	b := newBridge(dyntools.NopLogger(), srv, mounter)

	// Destroying the session makes every proxied dispatch fail; the
	// proxy surfaces that as a handler error for the SDK to report.
	srv.DestroySession(b.core)

	_, err := mounter.handler("greet")(context.Background(), &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{},
	})
	assert.Error(t, err)
}