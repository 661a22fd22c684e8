// Package metrics computes degree statistics and distance measures over a
// core.Store: degree sequence, density, completeness, isolated nodes,
// minimum and maximum degree, the Erdős–Gallai test, eccentricity and
// diameter.
//
// Every function reads the store through its public API and takes no lock of
// its own, so a result reflects the store as it was during each call into it.
// Callers that mutate concurrently should compute metrics on a Clone.
package metrics

import (
	"context"
	"math"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/topograph/bfs"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/internal/telemetry"
)

// densityEpsilon is the |denominator| below which Density reports MaxFloat64.
const densityEpsilon = 0.0001

// completeThreshold is the density above which a store counts as complete.
const completeThreshold = 0.9999

// DegreeSequence returns the degree of every node, sorted descending.
//
// Complexity: O(V log V).
func DegreeSequence(s *core.Store) []int {
	nodes := s.Nodes()
	seq := make([]int, len(nodes))
	for i, n := range nodes {
		seq[i] = s.Degree(n.ID)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(seq)))

	return seq
}

// Density returns 2|E| / (|V|(|V|-1)), where |E| counts registered segments
// once each. A store with fewer than two nodes has a zero denominator and
// reports math.MaxFloat64.
func Density(s *core.Store) float64 {
	v := float64(s.Len())
	den := v * (v - 1)
	if math.Abs(den) < densityEpsilon {
		return math.MaxFloat64
	}

	return 2 * float64(s.SegmentCount()) / den
}

// IsComplete reports whether Density exceeds 0.9999.
func IsComplete(s *core.Store) bool { return Density(s) > completeThreshold }

// IsolatedNodes returns the nodes with no neighbours, in insertion order.
func IsolatedNodes(s *core.Store) []*core.Node {
	var out []*core.Node
	for _, n := range s.Nodes() {
		if len(s.NeighborIDs(n.ID)) == 0 {
			out = append(out, n)
		}
	}

	return out
}

// MinDegree returns the smallest node degree, or math.MaxInt for an empty store.
func MinDegree(s *core.Store) int {
	m := math.MaxInt
	for _, n := range s.Nodes() {
		if d := s.Degree(n.ID); d < m {
			m = d
		}
	}

	return m
}

// MaxDegree returns the largest node degree, or 0 for an empty store.
func MaxDegree(s *core.Store) int {
	m := 0
	for _, n := range s.Nodes() {
		if d := s.Degree(n.ID); d > m {
			m = d
		}
	}

	return m
}

// IsErdoesGallai reports whether seq passes the Erdős–Gallai test for being
// the degree sequence of a simple graph.
//
// Implementation:
//   - Stage 1: Reject a sequence that is not non-increasing.
//   - Stage 2: Reject an odd degree sum.
//   - Stage 3: For k = 1..n require
//     Σ_{i≤k} d_i ≤ k(k-1) + Σ_{i>k} min(d_i, k).
//
// The empty sequence passes.
//
// Complexity: O(n²).
func IsErdoesGallai(seq []int) bool {
	for i := 1; i < len(seq); i++ {
		if seq[i] > seq[i-1] {
			return false
		}
	}
	sum := 0
	for _, d := range seq {
		sum += d
	}
	if sum%2 != 0 {
		return false
	}

	left := 0
	for k := 1; k <= len(seq); k++ {
		left += seq[k-1]
		right := k * (k - 1)
		for _, d := range seq[k:] {
			right += min(d, k)
		}
		if left > right {
			return false
		}
	}

	return true
}

// TopologicalDistance is bfs.TopologicalDistance.
func TopologicalDistance(s *core.Store, a, b *core.Node, tol float64) (int, error) {
	return bfs.TopologicalDistance(s, a, b, tol)
}

// Eccentricity returns the largest hop distance from n to any of its direct
// neighbours: 1 when n has a neighbour other than itself, 0 for an isolated
// node, and bfs.Unreachable when n does not resolve under the store tolerance.
//
// The measure is deliberately local; use bfs.BFS for the classical
// whole-graph eccentricity.
func Eccentricity(s *core.Store, n *core.Node) int {
	root, ok := s.Resolve(n, s.Tolerance())
	if !ok {
		return bfs.Unreachable
	}
	ecc := 0
	for _, id := range s.NeighborIDs(root.ID) {
		nb, _ := s.Node(id)
		d, err := bfs.TopologicalDistance(s, root, nb, s.Tolerance())
		if err != nil {
			continue
		}
		if d > ecc {
			ecc = d
		}
	}

	return ecc
}

// Diameter returns the largest TopologicalDistance over all node pairs.
// A store with nodes in more than one component reports bfs.Unreachable;
// an empty or single-node store has diameter 0.
//
// Implementation:
//   - One BFS per node; a BFS that misses any node ends the scan with
//     bfs.Unreachable, otherwise its deepest level is that node's
//     eccentricity and the diameter is their maximum.
//
// Complexity: O(V·(V + E)).
func Diameter(s *core.Store) int {
	began := time.Now()
	ctx, span := telemetry.Start(context.Background(), "metrics.Diameter",
		attribute.Int("store.nodes", s.Len()))

	diam := 0
	nodes := s.Nodes()
	for _, n := range nodes {
		res, err := bfs.BFS(s, n)
		if err != nil {
			// n was removed between Nodes and BFS.
			continue
		}
		if len(res.Depth) < len(nodes) {
			diam = bfs.Unreachable

			break
		}
		for _, d := range res.Depth {
			diam = max(diam, d)
		}
	}
	telemetry.EndSearch(ctx, span, "diameter", began, 1, false, nil)

	return diam
}
