package registry

import (
	"slices"
	"sync"
)

// Store is the mutable tool registry owned by one session.
//
// Writes arrive on a single path (the session's mutation pass); reads may
// come from any goroutine. Snapshots preserve insertion order so listings
// are stable within one call, though callers must not depend on the order
// beyond that.
type Store struct {
	mu    sync.RWMutex
	tools map[string]*Tool
	order []string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		tools: make(map[string]*Tool, 8),
	}
}

// Add inserts or overwrites a descriptor. It never fails. Overwriting
// keeps the name's original position in the insertion order.
func (s *Store) Add(t *Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.add(t)
}

// Remove deletes a descriptor if present and reports whether a deletion
// occurred. It never fails.
func (s *Store) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remove(name)
}

// Get returns the descriptor for name, if present.
func (s *Store) Get(name string) (*Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tools[name]

	return t, ok
}

// Len returns the number of registered descriptors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tools)
}

// Snapshot returns the current descriptors in insertion order. The slice
// is a copy; later mutations do not affect it.
func (s *Store) Snapshot() []*Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Tool, 0, len(s.tools))
	for _, name := range s.order {
		result = append(result, s.tools[name])
	}

	return result
}

// Commit applies one mutation pass under a single write lock, so no
// concurrent reader observes the pass half-applied. It reports whether
// anything actually changed (additions always count; removals only when
// the name was present).
func (s *Store) Commit(cs ChangeSet) bool {
	if cs.Empty() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false

	for _, t := range cs.Add {
		s.add(t)

		changed = true
	}

	for _, name := range cs.Remove {
		if s.remove(name) {
			changed = true
		}
	}

	return changed
}

// add and remove assume s.mu is held for writing.

func (s *Store) add(t *Tool) {
	if _, exists := s.tools[t.Name]; !exists {
		s.order = append(s.order, t.Name)
	}

	s.tools[t.Name] = t
}

func (s *Store) remove(name string) bool {
	if _, exists := s.tools[name]; !exists {
		return false
	}

	delete(s.tools, name)

	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })

	return true
}

// ChangeSet is the output of one policy pass: descriptors to add and
// names to remove. Additions apply before removals, matching the policy
// engine's mint-then-prune shape.
type ChangeSet struct {
	Add    []*Tool
	Remove []string
}

// Empty reports whether the ChangeSet would change nothing structurally.
func (c ChangeSet) Empty() bool {
	return len(c.Add) == 0 && len(c.Remove) == 0
}

// Merge appends another ChangeSet's operations after this one's. It is
// order-faithful: a name the later set re-adds is dropped from the
// earlier set's removals, so committing the merged set leaves the
// registry exactly as applying the two sets in sequence would.
func (c ChangeSet) Merge(other ChangeSet) ChangeSet {
	remove := c.Remove

	if len(remove) > 0 && len(other.Add) > 0 {
		readded := make(map[string]bool, len(other.Add))
		for _, t := range other.Add {
			readded[t.Name] = true
		}

		kept := make([]string, 0, len(remove))

		for _, name := range remove {
			if !readded[name] {
				kept = append(kept, name)
			}
		}

		remove = kept
	}

	return ChangeSet{
		Add:    append(append([]*Tool(nil), c.Add...), other.Add...),
		Remove: append(append([]string(nil), remove...), other.Remove...),
	}
}

// ApplySnapshot applies a ChangeSet to a snapshot without touching any
// Store, preserving insertion-order semantics. Chained policies use it to
// see the registry as left by earlier policies in the same pass.
func ApplySnapshot(snap []*Tool, cs ChangeSet) []*Tool {
	result := make([]*Tool, 0, len(snap)+len(cs.Add))

	index := make(map[string]int, len(snap)+len(cs.Add))
	for _, t := range snap {
		index[t.Name] = len(result)
		result = append(result, t)
	}

	for _, t := range cs.Add {
		if i, exists := index[t.Name]; exists {
			result[i] = t

			continue
		}

		index[t.Name] = len(result)
		result = append(result, t)
	}

	for _, name := range cs.Remove {
		result = slices.DeleteFunc(result, func(t *Tool) bool { return t.Name == name })
	}

	return result
}
