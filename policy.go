package dyntools

import "github.com/wagiedev/dyntools-go/internal/policy"

// Re-export the mutation policy surface.
type (
	// Policy decides what changes in a session's registry after an
	// invocation. It is a pure transform over (registry snapshot,
	// invocation record) producing a ChangeSet; it never fails.
	Policy = policy.Policy

	// PolicyInvocation parameterizes one policy pass: the tool just
	// invoked and the session's post-increment call counter.
	PolicyInvocation = policy.Invocation

	// UnlockOnFirstInvoke adds a fixed set of tools the first time the
	// seed tool is invoked. It never removes anything.
	UnlockOnFirstInvoke = policy.UnlockOnFirstInvoke

	// SlidingWindow mints one follow-up tool per invocation, named by
	// the session counter, retains the most recent Window of them, and
	// mints milestone tools at a call-count modulus. It only ever prunes
	// tools carrying its own prefix, so seed tools are safe from it by
	// construction.
	SlidingWindow = policy.SlidingWindow
)
