// Package policy implements the mutation policies that evolve a session's
// tool registry as a side effect of invocations.
//
// A Policy is a pure function: given a registry snapshot and the record of
// the invocation that just completed, it produces a ChangeSet and never
// touches the store itself. The session merges the ChangeSets of all
// configured policies and commits them in one atomic pass. Policies never
// fail; a panic inside one is a programming defect, not a runtime
// condition.
package policy

import (
	"github.com/wagiedev/dyntools-go/internal/registry"
)

// Invocation parameterizes one policy pass: which tool just ran and the
// session's post-increment call counter. It is ephemeral and never
// persisted.
type Invocation struct {
	Tool  string
	Count uint64
}

// Policy decides what changes in the registry after an invocation.
type Policy interface {
	// Name identifies the policy in logs.
	Name() string

	// Apply inspects the snapshot and the invocation and returns the
	// resulting ChangeSet. An empty ChangeSet means no change. Apply must
	// not mutate snap.
	Apply(snap []*registry.Tool, inv Invocation) registry.ChangeSet
}

// Chain runs policies in order against an evolving snapshot and returns
// the merged ChangeSet. Later policies see the registry as earlier ones
// left it, but nothing commits until the caller applies the result.
func Chain(policies []Policy, snap []*registry.Tool, inv Invocation) registry.ChangeSet {
	var merged registry.ChangeSet

	for _, p := range policies {
		cs := p.Apply(snap, inv)
		if cs.Empty() {
			continue
		}

		merged = merged.Merge(cs)
		snap = registry.ApplySnapshot(snap, cs)
	}

	return merged
}

func contains(snap []*registry.Tool, name string) bool {
	for _, t := range snap {
		if t.Name == name {
			return true
		}
	}

	return false
}
