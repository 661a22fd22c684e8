// SPDX-License-Identifier: MIT
// File: methods_nodes.go
// Role: Node lifecycle and node queries.
//
// Determinism:
//   - Every enumeration (Nodes, AdjacentNodes, NeighborIDs) is in node
//     insertion order.
//
// Concurrency:
//   - Mutations take the write lock; queries take the read lock.
//   - Returned *Node values are the stored nodes and must be treated as read-only.

package core

import (
	"context"
	"fmt"
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"

	"github.com/katalvlaran/topograph/internal/telemetry"
)

// AddNodes inserts every node that has no coincident representative under tol.
//
// Implementation:
//   - Stage 1: Validate tol and reject nil entries before touching state.
//   - Stage 2: Under the write lock, look each node up in the coincidence index;
//     insert a copy with an empty neighbour set when none matches.
//
// Behavior highlights:
//   - Two inputs within tol of each other collapse into the first one.
//   - Stored nodes are copies; a caller-supplied ID is kept when it is free.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0; ErrNilNode for a nil entry. No partial mutation.
//
// Complexity:
//   - Time O(n·V) with the linear index, O(n·log V) typical with the R-tree index.
func (s *Store) AddNodes(nodes []*Node, tol float64) error {
	if tol <= 0 {
		return fmt.Errorf("AddNodes: tol=%g: %w", tol, ErrInvalidTolerance)
	}
	for i, n := range nodes {
		if n == nil {
			return fmt.Errorf("AddNodes: index %d: %w", i, ErrNilNode)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, n := range nodes {
		if _, ok := s.index.Find(n.Pos, tol); ok {
			continue
		}
		s.insertLocked(n)
		added++
	}
	s.logger.Debug("nodes added", "op", "add_nodes", "added", added, "merged", len(nodes)-added, "tol", tol)
	telemetry.RecordMutation(context.Background(), "add_nodes", added)

	return nil
}

// RemoveNodes deletes each node, every adjacency entry that points at it and
// every registered segment touching it. It returns the number of nodes removed.
//
// Nodes are matched by ID when the ID is stored, otherwise by coincidence
// under the store tolerance. Unknown nodes are skipped.
//
// Complexity: O(Σ deg(n)) plus the index removal cost.
func (s *Store) RemoveNodes(nodes []*Node) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, segs := 0, 0
	for _, n := range nodes {
		id, ok := s.lookupLocked(n)
		if !ok {
			continue
		}
		for nb := range s.adjacency[id] {
			delete(s.adjacency[nb], id)
			if s.unlinkLocked(keyOf(id, nb)) {
				segs++
			}
		}
		delete(s.adjacency, id)
		delete(s.nodes, id)
		delete(s.seq, id)
		s.index.Remove(id)
		removed++
	}
	s.logger.Debug("nodes removed", "op", "remove_nodes", "removed", removed, "segments", segs)
	telemetry.RecordMutation(context.Background(), "remove_nodes", removed)

	return removed
}

// ContainsNode reports whether a stored node is coincident with p under tol.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0.
//
// Complexity: one index lookup.
func (s *Store) ContainsNode(p v3.Vec, tol float64) (bool, error) {
	_, ok, err := s.FindCoincident(p, tol)

	return ok, err
}

// FindCoincident returns the first stored node (insertion order) coincident
// with p under tol. ok is false when nothing matches; err is
// ErrInvalidTolerance when tol ≤ 0.
func (s *Store) FindCoincident(p v3.Vec, tol float64) (n *Node, ok bool, err error) {
	if tol <= 0 {
		return nil, false, fmt.Errorf("FindCoincident: tol=%g: %w", tol, ErrInvalidTolerance)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, found := s.index.Find(p, tol)
	if !found {
		return nil, false, nil
	}

	return s.nodes[id], true, nil
}

// Resolve maps n to its stored representative: by ID first, then by
// coincidence under tol. It returns false for nil or unknown nodes.
func (s *Store) Resolve(n *Node, tol float64) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if stored, ok := s.nodes[n.ID]; ok && n.ID != "" {
		return stored, true
	}
	if tol <= 0 {
		return nil, false
	}
	id, ok := s.index.Find(n.Pos, tol)
	if !ok {
		return nil, false
	}

	return s.nodes[id], true
}

// Node returns the stored node with the given ID.
func (s *Store) Node(id string) (*Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]

	return n, ok
}

// NodeDegree returns the number of neighbours of n, plus one when n is its
// own neighbour. Unknown nodes have degree 0.
//
// Complexity: O(1) after resolution.
func (s *Store) NodeDegree(n *Node) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.lookupLocked(n)
	if !ok {
		return 0
	}

	return s.degreeLocked(id)
}

// Degree is NodeDegree keyed by stored node ID.
func (s *Store) Degree(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes[id]; !ok {
		return 0
	}

	return s.degreeLocked(id)
}

// AdjacentNodes returns the neighbours of n in insertion order, or nil for
// an unknown node. A self-loop lists n itself.
func (s *Store) AdjacentNodes(n *Node) []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.lookupLocked(n)
	if !ok {
		return nil
	}
	ids := s.neighborIDsLocked(id)
	out := make([]*Node, len(ids))
	for i, nb := range ids {
		out[i] = s.nodes[nb]
	}

	return out
}

// NeighborIDs returns the neighbour IDs of the stored node id in insertion
// order, or nil when id is unknown.
func (s *Store) NeighborIDs(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes[id]; !ok {
		return nil
	}

	return s.neighborIDsLocked(id)
}

// Nodes returns every stored node in insertion order.
//
// Complexity: O(V log V).
func (s *Store) Nodes() []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	s.sortLocked(ids)
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = s.nodes[id]
	}

	return out
}

// Len returns the number of stored nodes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.nodes)
}

// NodesAtCoordinates returns every stored node whose Euclidean distance to p
// is below |tol|, in insertion order. Unlike FindCoincident it always uses
// the Euclidean metric.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0.
func (s *Store) NodesAtCoordinates(p v3.Vec, tol float64) ([]*Node, error) {
	if tol <= 0 {
		return nil, fmt.Errorf("NodesAtCoordinates: tol=%g: %w", tol, ErrInvalidTolerance)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.index.Within(p, math.Abs(tol))
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.nodes[id])
	}

	return out, nil
}

// insertLocked stores a copy of n and returns it. Caller holds the write lock.
func (s *Store) insertLocked(n *Node) *Node {
	id := n.ID
	if _, taken := s.nodes[id]; id == "" || taken {
		id = uuid.NewString()
	}
	stored := &Node{ID: id, Pos: n.Pos, Ref: n.Ref}
	s.nodes[id] = stored
	s.seq[id] = s.nextSeq
	s.nextSeq++
	s.adjacency[id] = make(map[string]struct{})
	s.index.Insert(id, n.Pos)

	return stored
}

// resolveOrInsertLocked returns the representative of n under tol, inserting
// n when nothing coincides.
func (s *Store) resolveOrInsertLocked(n *Node, tol float64) (string, bool) {
	if id, ok := s.index.Find(n.Pos, tol); ok {
		return id, false
	}

	return s.insertLocked(n).ID, true
}

// lookupLocked resolves n by stored ID, then by coincidence at the store tolerance.
func (s *Store) lookupLocked(n *Node) (string, bool) {
	if n == nil {
		return "", false
	}
	if _, ok := s.nodes[n.ID]; ok && n.ID != "" {
		return n.ID, true
	}

	return s.index.Find(n.Pos, s.tolerance)
}

func (s *Store) degreeLocked(id string) int {
	nbrs := s.adjacency[id]
	d := len(nbrs)
	if _, loop := nbrs[id]; loop {
		d++
	}

	return d
}

func (s *Store) neighborIDsLocked(id string) []string {
	nbrs := s.adjacency[id]
	ids := make([]string, 0, len(nbrs))
	for nb := range nbrs {
		ids = append(ids, nb)
	}
	s.sortLocked(ids)

	return ids
}

func (s *Store) sortLocked(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.seq[ids[i]] < s.seq[ids[j]] })
}
