// Package dyntools implements a session-scoped dynamic tool registry: a
// set of invocable tools that mutates as a side effect of invoking them.
//
// A Server is a template describing the seed tools and the mutation
// policies; each client session gets its own Session with an isolated
// registry and invocation counter. Invoking a tool runs its handler,
// applies the configured policies as one atomic mutation pass, and, if
// the pass changed anything, fires a single content-free "list changed"
// signal so the client re-queries the registry.
//
// # Basic Usage
//
//	srv := dyntools.NewServer("demo", "1.0.0",
//	    dyntools.WithTools(dyntools.DemoTools()...),
//	    dyntools.WithPolicies(dyntools.DemoUnlockPolicy()),
//	)
//
//	sess := srv.CreateSession(
//	    dyntools.WithListChangedNotifier(func(ctx context.Context, id string) error {
//	        return transport.EmitListChanged(ctx, id)
//	    }),
//	)
//	defer srv.DestroySession(sess)
//
//	result, err := sess.Invoke(ctx, "greet", map[string]any{"name": "Alice"})
//	if err != nil {
//	    // *dyntools.ToolNotFoundError: no such tool, nothing ran.
//	    log.Fatal(err)
//	}
//	if result.IsError {
//	    // The handler failed; the session is unaffected.
//	}
//
// # Custom Tools
//
//	echo := dyntools.NewTool("echo", "Echo the input back",
//	    dyntools.SimpleSchema(map[string]string{"text": "string"}),
//	    func(ctx context.Context, req *dyntools.CallToolRequest) (*dyntools.CallToolResult, error) {
//	        args, err := dyntools.ParseArguments(req)
//	        if err != nil {
//	            return dyntools.ErrorResult(err.Error()), nil
//	        }
//	        text, _ := args["text"].(string)
//	        return dyntools.TextResult(text), nil
//	    },
//	)
//
// # Mutation Policies
//
// Policies are pure transforms over (registry snapshot, invocation
// record). Two are provided: UnlockOnFirstInvoke adds a fixed tool set
// the first time a seed tool runs, and SlidingWindow mints one follow-up
// tool per call, keeps the most recent N, and adds milestone tools at a
// configurable call-count modulus. Custom policies implement the Policy
// interface.
//
// # Concurrency
//
// Dispatches on one session are serialized; dispatches across sessions
// run concurrently. Sessions share nothing. The mutation pass is atomic:
// no reader ever observes it half-applied, and it is fully committed
// before the triggering invocation returns.
package dyntools
