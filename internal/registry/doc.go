// Package registry implements the per-session tool descriptor store.
//
// A Store maps tool names to descriptors and hands out insertion-ordered
// snapshots. Mutation passes computed by the policy engine are applied
// through Commit, which takes effect under a single write lock so no
// reader ever observes a half-applied pass.
//
// The package also carries the descriptor type itself and the schema and
// result helpers shared by tool authors.
package registry
