// SPDX-License-Identifier: MIT
// File: methods_clone.go
// Role: Cloning and clearing stores.
// Determinism:
//   - Clone carries nextSeq and every insertion rank, so enumerations on the
//     clone match the source.
// Concurrency:
//   - Read lock on the source while snapshotting; the clone is fresh.

package core

// Clone returns an independent copy of the store: nodes, adjacency, registered
// segments, index and configuration. Node and segment values are copied;
// kernel back-references are shared.
//
// Use Clone for snapshot-and-swap: mutate the copy, then publish it.
//
// Complexity: O(V + E).
func (s *Store) Clone() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := &Store{
		logger:    s.logger,
		index:     s.index.Clone(),
		metric:    s.metric,
		synth:     s.synth,
		tolerance: s.tolerance,
		nextSeq:   s.nextSeq,
		seq:       make(map[string]uint64, len(s.seq)),
		nodes:     make(map[string]*Node, len(s.nodes)),
		adjacency: make(map[string]map[string]struct{}, len(s.adjacency)),
		segments:  make(map[pairKey]*Segment, len(s.segments)),
		segIDs:    make(map[string]pairKey, len(s.segIDs)),
	}
	for id, n := range s.nodes {
		c.nodes[id] = &Node{ID: n.ID, Pos: n.Pos, Ref: n.Ref}
		c.seq[id] = s.seq[id]
	}
	for id, nbrs := range s.adjacency {
		m := make(map[string]struct{}, len(nbrs))
		for nb := range nbrs {
			m[nb] = struct{}{}
		}
		c.adjacency[id] = m
	}
	for k, seg := range s.segments {
		c.segments[k] = &Segment{ID: seg.ID, A: c.nodes[seg.A.ID], B: c.nodes[seg.B.ID], Ref: seg.Ref}
		c.segIDs[seg.ID] = k
	}

	return c
}

// Clear removes every node and segment while keeping configuration.
//
// Complexity: O(V) to drain the index.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.nodes {
		s.index.Remove(id)
	}
	s.seq = make(map[string]uint64)
	s.nodes = make(map[string]*Node)
	s.adjacency = make(map[string]map[string]struct{})
	s.segments = make(map[pairKey]*Segment)
	s.segIDs = make(map[string]pairKey)
	s.nextSeq = 0
}
