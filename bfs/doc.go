// Package bfs provides breadth-first search over a core.Store, returning
// hop distances, parent links and visit order.
//
// What
//
//   - Explore nodes in non-decreasing hop count from a start node.
//   - Returns a Result containing:
//   - Order: visit sequence (node IDs)
//   - Depth: node ID → hop distance from start
//   - Parent: node ID → predecessor in the BFS tree
//   - TopologicalDistance answers the single-pair question and stops as soon
//     as the target is reached.
//
// Determinism
//
//	Neighbours are enqueued in node insertion order (core.Store.NeighborIDs),
//	so the visit sequence is reproducible for a given build order.
//
// Complexity (V = |Nodes|, E = |Segments|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.BFS(store, startNode, bfs.WithMaxDepth(3))
//	hops, err := bfs.TopologicalDistance(store, a, b, core.DefaultTolerance)
//	if hops == bfs.Unreachable { ... }
//
// Options
//
//   - WithContext(ctx):        cancellation, checked once per dequeue.
//   - WithMaxDepth(d):         stop exploring beyond depth d (>0).
//   - WithFilterNeighbor(fn):  skip steps for which fn(curr, nbr) == false.
//   - WithOnVisit(fn):         hook during visit; returning an error aborts.
//
// Errors
//
//   - ErrStoreNil, ErrStartNotFound, ErrOptionViolation.
//   - core.ErrInvalidTolerance from TopologicalDistance.
//   - Wrapped OnVisit errors and ctx.Err().
package bfs
