package policy

import (
	"github.com/wagiedev/dyntools-go/internal/registry"
)

// Compile-time verification that all policies implement Policy.
var (
	_ Policy = (*UnlockOnFirstInvoke)(nil)
	_ Policy = (*SlidingWindow)(nil)
)

// UnlockOnFirstInvoke adds a fixed set of tools the first time the seed
// tool is invoked. It never removes anything, so the seed always survives
// it. Repeat seed invocations are no-ops: only unlock tools not already
// present are added.
type UnlockOnFirstInvoke struct {
	// Seed is the name of the gateway tool that triggers the unlock.
	Seed string

	// Unlock is the fixed set of tools added when the seed first runs.
	Unlock []*registry.Tool
}

// Name implements Policy.
func (p *UnlockOnFirstInvoke) Name() string { return "unlock_on_first_invoke" }

// Apply implements Policy.
func (p *UnlockOnFirstInvoke) Apply(snap []*registry.Tool, inv Invocation) registry.ChangeSet {
	if inv.Tool != p.Seed {
		return registry.ChangeSet{}
	}

	var cs registry.ChangeSet

	for _, t := range p.Unlock {
		if contains(snap, t.Name) {
			continue
		}

		cs.Add = append(cs.Add, t)
	}

	return cs
}
