// SPDX-License-Identifier: MIT
// File: methods_segments.go
// Role: Segment registration, removal, stitching and segment queries.
//
// Determinism:
//   - Segments() orders by the insertion rank of the earlier endpoint, then the later one.
//
// Concurrency:
//   - Same locking policy as methods_nodes.go.

package core

import (
	"context"
	"fmt"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/uuid"

	"github.com/katalvlaran/topograph/internal/telemetry"
)

// AddSegments registers each segment by its resolved endpoints.
//
// Implementation:
//   - Stage 1: Validate tol and reject nil segments or endpoints.
//   - Stage 2: Resolve both endpoints under tol; an endpoint with no coincident
//     node is inserted as a new node.
//   - Stage 3: If the resolved pair is not adjacent yet, add both adjacency
//     entries and register a copy of the segment bound to the stored nodes.
//
// Behavior highlights:
//   - A second segment between the same resolved pair is ignored.
//   - A segment whose endpoints coincide becomes a self-loop.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0; ErrNilNode for nil input. No partial mutation.
//
// Complexity:
//   - Time O(m·V) with the linear index.
func (s *Store) AddSegments(segments []*Segment, tol float64) error {
	if tol <= 0 {
		return fmt.Errorf("AddSegments: tol=%g: %w", tol, ErrInvalidTolerance)
	}
	for i, seg := range segments {
		if seg == nil || seg.A == nil || seg.B == nil {
			return fmt.Errorf("AddSegments: index %d: %w", i, ErrNilNode)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, seg := range segments {
		a, _ := s.resolveOrInsertLocked(seg.A, tol)
		b, _ := s.resolveOrInsertLocked(seg.B, tol)
		if _, exists := s.adjacency[a][b]; exists {
			continue
		}
		s.linkLocked(a, b, seg.ID, seg.Ref)
		added++
	}
	s.logger.Debug("segments added", "op", "add_segments", "added", added, "skipped", len(segments)-added, "tol", tol)
	telemetry.RecordMutation(context.Background(), "add_segments", added)

	return nil
}

// RemoveSegments removes the adjacency entries and the registered segment for
// each input whose endpoints both resolve under tol. Unresolved inputs are
// skipped. It returns the number of segments removed.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0.
func (s *Store) RemoveSegments(segments []*Segment, tol float64) (int, error) {
	if tol <= 0 {
		return 0, fmt.Errorf("RemoveSegments: tol=%g: %w", tol, ErrInvalidTolerance)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, seg := range segments {
		if seg == nil || seg.A == nil || seg.B == nil {
			continue
		}
		a, okA := s.index.Find(seg.A.Pos, tol)
		b, okB := s.index.Find(seg.B.Pos, tol)
		if !okA || !okB {
			continue
		}
		if _, exists := s.adjacency[a][b]; !exists {
			continue
		}
		delete(s.adjacency[a], b)
		delete(s.adjacency[b], a)
		s.unlinkLocked(keyOf(a, b))
		removed++
	}
	s.logger.Debug("segments removed", "op", "remove_segments", "removed", removed, "tol", tol)
	telemetry.RecordMutation(context.Background(), "remove_segments", removed)

	return removed, nil
}

// ContainsSegment reports whether the nodes coincident with a and b under
// tol are adjacent.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0.
func (s *Store) ContainsSegment(a, b v3.Vec, tol float64) (bool, error) {
	if tol <= 0 {
		return false, fmt.Errorf("ContainsSegment: tol=%g: %w", tol, ErrInvalidTolerance)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ia, okA := s.index.Find(a, tol)
	ib, okB := s.index.Find(b, tol)
	if !okA || !okB {
		return false, nil
	}
	_, ok := s.adjacency[ia][ib]

	return ok, nil
}

// Connect stitches two equally long node lists pairwise. For each pair the
// endpoints are resolved under tol (inserted when new) and, if they are not
// adjacent yet, linked with a synthesized segment. The connector entity comes
// from the store synthesizer; without one, or when it fails, the segment has
// a nil Ref. It returns the number of segments created.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0; ErrLengthMismatch; ErrNilNode.
func (s *Store) Connect(as, bs []*Node, tol float64) (int, error) {
	if tol <= 0 {
		return 0, fmt.Errorf("Connect: tol=%g: %w", tol, ErrInvalidTolerance)
	}
	if len(as) != len(bs) {
		return 0, fmt.Errorf("Connect: %d vs %d: %w", len(as), len(bs), ErrLengthMismatch)
	}
	for i := range as {
		if as[i] == nil || bs[i] == nil {
			return 0, fmt.Errorf("Connect: pair %d: %w", i, ErrNilNode)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for i := range as {
		a, _ := s.resolveOrInsertLocked(as[i], tol)
		b, _ := s.resolveOrInsertLocked(bs[i], tol)
		if _, exists := s.adjacency[a][b]; exists {
			continue
		}
		var ref any
		if s.synth != nil {
			r, err := s.synth.Synthesize(s.nodes[a].Ref, s.nodes[b].Ref)
			if err != nil {
				s.logger.Warn("segment synthesis failed", "op", "connect", "a", a, "b", b, "err", err)
			} else {
				ref = r
			}
		}
		s.linkLocked(a, b, "", ref)
		added++
	}
	s.logger.Debug("nodes connected", "op", "connect", "pairs", len(as), "added", added, "tol", tol)
	telemetry.RecordMutation(context.Background(), "connect", added)

	return added, nil
}

// Segment returns the registered segment between the nodes coincident with a
// and b under tol, or nil when either does not resolve or they are not adjacent.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0.
func (s *Store) Segment(a, b v3.Vec, tol float64) (*Segment, error) {
	if tol <= 0 {
		return nil, fmt.Errorf("Segment: tol=%g: %w", tol, ErrInvalidTolerance)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ia, okA := s.index.Find(a, tol)
	ib, okB := s.index.Find(b, tol)
	if !okA || !okB {
		return nil, nil
	}

	return s.segments[keyOf(ia, ib)], nil
}

// SegmentBetween returns the registered segment between two stored node IDs.
func (s *Store) SegmentBetween(aID, bID string) (*Segment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seg, ok := s.segments[keyOf(aID, bID)]

	return seg, ok
}

// IncidentSegments returns the registered segments touching the node
// coincident with p under tol, in neighbour order. An unresolved p yields nil.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0.
func (s *Store) IncidentSegments(p v3.Vec, tol float64) ([]*Segment, error) {
	if tol <= 0 {
		return nil, fmt.Errorf("IncidentSegments: tol=%g: %w", tol, ErrInvalidTolerance)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.index.Find(p, tol)
	if !ok {
		return nil, nil
	}
	var out []*Segment
	for _, nb := range s.neighborIDsLocked(id) {
		if seg, ok := s.segments[keyOf(id, nb)]; ok {
			out = append(out, seg)
		}
	}

	return out, nil
}

// Segments returns every registered segment exactly once.
//
// Complexity: O(E log E).
func (s *Store) Segments() []*Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Segment, 0, len(s.segments))
	for _, seg := range s.segments {
		out = append(out, seg)
	}
	rank := func(seg *Segment) (uint64, uint64) {
		x, y := s.seq[seg.A.ID], s.seq[seg.B.ID]
		if y < x {
			x, y = y, x
		}
		return x, y
	}
	sort.Slice(out, func(i, j int) bool {
		ai, bi := rank(out[i])
		aj, bj := rank(out[j])
		if ai != aj {
			return ai < aj
		}
		return bi < bj
	})

	return out
}

// SegmentCount returns the number of registered segments.
func (s *Store) SegmentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.segments)
}

// linkLocked adds the symmetric adjacency for (a,b) and registers a segment.
// A caller ID is kept when no registered segment holds it; otherwise the
// segment gets a fresh UUID.
func (s *Store) linkLocked(a, b, id string, ref any) *Segment {
	s.adjacency[a][b] = struct{}{}
	s.adjacency[b][a] = struct{}{}
	if _, taken := s.segIDs[id]; id == "" || taken {
		id = uuid.NewString()
	}
	k := keyOf(a, b)
	seg := &Segment{ID: id, A: s.nodes[a], B: s.nodes[b], Ref: ref}
	s.segments[k] = seg
	s.segIDs[id] = k

	return seg
}

// unlinkLocked drops the segment registered for k, reporting whether one was.
// Adjacency is left to the caller.
func (s *Store) unlinkLocked(k pairKey) bool {
	seg, ok := s.segments[k]
	if !ok {
		return false
	}
	delete(s.segments, k)
	delete(s.segIDs, seg.ID)

	return true
}
