// Command dyntoolsd serves the demo dynamic toolset over MCP stdio.
//
// The client starts with a single greet tool; invoking it unlocks the
// rest, and (when enabled) a sliding-window policy mints follow-up and
// milestone tools as calls accumulate. The client is told about every
// change through standard tools/list_changed notifications.
//
// Usage:
//
//	dyntoolsd [-config dyntoolsd.yaml]
//
// Configuration can also come from DYNTOOLSD_* environment variables,
// e.g. DYNTOOLSD_WINDOW_ENABLED=true.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	dyntools "github.com/wagiedev/dyntools-go"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "dyntoolsd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Stdout is the protocol channel; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.slogLevel(),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var policies []dyntools.Policy

	if cfg.Unlock.Enabled {
		policies = append(policies, dyntools.DemoUnlockPolicy())
	}

	if cfg.Window.Enabled {
		policies = append(policies, &dyntools.SlidingWindow{
			Window:    cfg.Window.Size,
			Milestone: cfg.Window.Milestone,
		})
	}

	srv := dyntools.NewServer("dyntoolsd", version,
		dyntools.WithLogger(log),
		dyntools.WithTools(dyntools.DemoTools()...),
		dyntools.WithPolicies(policies...),
	)

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "dyntoolsd",
		Version: version,
	}, nil)

	b := newBridge(log, srv, mcpServer)
	defer srv.DestroySession(b.core)

	log.Info("serving on stdio",
		"unlock", cfg.Unlock.Enabled,
		"window", cfg.Window.Enabled,
	)

	return mcpServer.Run(ctx, &mcp.StdioTransport{})
}
