package main

import (
	"context"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	dyntools "github.com/wagiedev/dyntools-go"
)

// toolMounter is the slice of *mcp.Server the bridge needs: mounting
// and unmounting tools. The SDK notifies connected clients of both.
type toolMounter interface {
	AddTool(t *mcp.Tool, h mcp.ToolHandler)
	RemoveTools(names ...string)
}

// bridge mirrors one core session onto an official MCP SDK server.
//
// Stdio carries exactly one client, so the process maps to one session.
// Every tool in the session's registry is mounted as a proxy handler
// that dispatches back into the core; when the core's change notifier
// fires, the bridge re-syncs the mounted set with AddTool/RemoveTools
// and the SDK pushes notifications/tools/list_changed to the client.
type bridge struct {
	log     *slog.Logger
	mounter toolMounter
	core    *dyntools.Session

	mu      sync.Mutex
	mounted map[string]bool
}

func newBridge(log *slog.Logger, srv *dyntools.Server, mounter toolMounter) *bridge {
	b := &bridge{
		log:     log.With("component", "bridge"),
		mounter: mounter,
		mounted: make(map[string]bool, 8),
	}

	b.core = srv.CreateSession(
		dyntools.WithListChangedNotifier(func(_ context.Context, _ string) error {
			b.sync()

			return nil
		}),
	)

	b.sync()

	return b
}

// sync reconciles the MCP server's mounted tools with the core
// session's registry.
func (b *bridge) sync() {
	b.mu.Lock()
	defer b.mu.Unlock()

	infos, err := b.core.List()
	if err != nil {
		b.log.Warn("listing session tools failed", "error", err)

		return
	}

	current := make(map[string]bool, len(infos))

	for _, info := range infos {
		current[info.Name] = true

		if b.mounted[info.Name] {
			continue
		}

		b.mounter.AddTool(&mcp.Tool{
			Name:        info.Name,
			Description: info.Description,
			InputSchema: info.InputSchema,
		}, b.proxy(info.Name))

		b.mounted[info.Name] = true
	}

	var stale []string

	for name := range b.mounted {
		if !current[name] {
			stale = append(stale, name)

			delete(b.mounted, name)
		}
	}

	if len(stale) > 0 {
		b.mounter.RemoveTools(stale...)
	}

	b.log.Debug("synced tools", "mounted", len(current), "removed", len(stale))
}

// proxy adapts an MCP tool call into a core dispatch. A not-found fault
// surfaces as a handler error (the SDK maps it to a protocol error);
// handler failures come back as IsError results untouched.
func (b *bridge) proxy(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := dyntools.ParseArguments(req)
		if err != nil {
			return dyntools.ErrorResult(err.Error()), nil
		}

		return b.core.Invoke(ctx, name, args)
	}
}
