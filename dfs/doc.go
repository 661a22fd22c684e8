// SPDX-License-Identifier: MIT

// Package dfs implements depth-first search over a core.Store: traversal,
// connected components, cycle detection and simple-path enumeration.
//
// What:
//
//   - DFS: explores as far as possible along each branch before
//     backtracking. Supports pre-order and post-order hooks, cancellation via
//     context.Context, depth limiting, neighbour filtering and forest
//     traversal (WithFullTraversal).
//   - Components: the connected components, ordered by their earliest node.
//   - DetectCycles: the independent cycles found through back edges, using
//     vertex colouring (White, Gray, Black) and canonical rotation so each
//     ring is reported once.
//   - Path: one simple path between two positions, the first a depth-first
//     walk in insertion order reaches.
//   - AllPaths: every simple path between two positions found within an
//     optional time limit.
//
// Path and AllPaths use an explicit stack rather than recursion, so deep
// stores cannot overflow the goroutine stack, and they poll the time budget
// once per step. Both resolve their endpoints through the store's coincidence
// index, return nil when an endpoint does not resolve, and give hop-count
// costs.
//
// Determinism:
//
// Neighbours are always visited in node insertion order, so every function
// returns the same result for the same sequence of store mutations.
//
// Complexity:
//
//   - DFS, Components, Path: O(V + E).
//   - DetectCycles: O(V + E + C·L).
//   - AllPaths: exponential in the worst case.
//
// Errors:
//
//   - ErrStoreNil          a nil store was passed.
//   - ErrStartNotFound     DFS could not resolve its start.
//   - ErrInvalidTimeLimit  WithTimeLimit received d ≤ 0.
package dfs
