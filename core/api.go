// SPDX-License-Identifier: MIT
// File: api.go
// Role: Read-only summaries and kernel adapters.

package core

import (
	"fmt"

	"github.com/katalvlaran/topograph/geom"
)

// StoreStats is a snapshot of catalog sizes.
type StoreStats struct {
	Nodes     int
	Segments  int
	SelfLoops int
	Isolated  int
}

// Stats produces a consistent snapshot of catalog sizes.
//
// Implementation:
//   - Stage 1: Acquire the read lock.
//   - Stage 2: Count nodes and segments, then scan adjacency once for
//     self-loops and empty neighbour sets.
//
// Complexity:
//   - Time O(V), Space O(1).
func (s *Store) Stats() StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := StoreStats{Nodes: len(s.nodes), Segments: len(s.segments)}
	for id, nbrs := range s.adjacency {
		if len(nbrs) == 0 {
			st.Isolated++
		}
		if _, loop := nbrs[id]; loop {
			st.SelfLoops++
		}
	}

	return st
}

// NodesFrom builds unregistered nodes for kernel point entities.
// Entities the accessor cannot place are reported with their index.
func NodesFrom(k geom.PointAccessor, entities ...geom.Entity) ([]*Node, error) {
	out := make([]*Node, 0, len(entities))
	for i, e := range entities {
		p, ok := k.Position(e)
		if !ok {
			return nil, fmt.Errorf("NodesFrom: entity %d (%T): %w", i, e, ErrNilNode)
		}
		out = append(out, &Node{Pos: p, Ref: e})
	}

	return out, nil
}

// SegmentKernel is what SegmentsFrom needs from a kernel.
type SegmentKernel interface {
	geom.PointAccessor
	geom.EdgeAccessor
}

// SegmentsFrom builds unregistered segments for kernel connector entities,
// with endpoint nodes taken from the connector's endpoint entities.
func SegmentsFrom(k SegmentKernel, entities ...geom.Entity) ([]*Segment, error) {
	out := make([]*Segment, 0, len(entities))
	for i, e := range entities {
		a, b, ok := k.Endpoints(e)
		if !ok {
			return nil, fmt.Errorf("SegmentsFrom: entity %d (%T): %w", i, e, ErrNilNode)
		}
		ends, err := NodesFrom(k, a, b)
		if err != nil {
			return nil, fmt.Errorf("SegmentsFrom: entity %d: %w", i, err)
		}
		out = append(out, &Segment{A: ends[0], B: ends[1], Ref: e})
	}

	return out, nil
}
