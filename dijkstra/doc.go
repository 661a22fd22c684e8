// SPDX-License-Identifier: MIT

// Package dijkstra provides the weighted searches over a core.Store, with
// step costs read from the geometry kernel's attributes.
//
// Overview:
//
//   - ShortestPath computes one minimum-cost path between two positions in
//     O((V + E) log V) using a binary heap with lazy decrease-key.
//   - ShortestPaths collects every minimum-cost path between two positions
//     with a label-correcting FIFO search bounded by a wall-clock limit.
//   - TopologicalDistance counts hops between two positions (delegates to
//     the bfs package).
//
// Costs are resolved on demand for every step, so updating a kernel
// attribute changes the next search without touching the store. A segment
// that disappears from the store between neighbour lookup and cost
// resolution is impassable (+Inf).
//
// Determinism:
//
//   - Neighbours are relaxed in node insertion order and heap ties go to the
//     earlier inserted node, so equal-cost graphs always yield the same path.
//   - ShortestPaths reports paths in the order their labels reach the end.
//
// Example:
//
//	p, err := dijkstra.ShortestPath(store, from, to, "", "length",
//		dijkstra.WithKernel(kernel))
//	if err != nil {
//		return err
//	}
//	if p == nil {
//		// unreachable or unresolved
//	}
//	fmt.Println(p, p.Cost)
//
// See the types.go documentation for the full cost model.
package dijkstra
