// Package core provides the adjacency graph store: a set of point nodes, a
// symmetric adjacency relation between them and the set of registered
// segments that back each adjacent pair.
//
// Nodes have no hashable identity. Two points are the same node when they are
// coincident under the tolerance passed to the operation at hand, so the store
// keeps a coincidence index (package coincidence) next to its maps:
//
//	nodes[id]           = *Node
//	adjacency[id][nbID] = struct{}{}        symmetric
//	segments[{lo,hi}]   = *Segment          one per adjacent pair
//
// Invariants:
//
//   - adjacency is symmetric.
//   - a pair is adjacent iff a segment is registered for it.
//   - a self-loop adds one extra to the node degree.
//   - tolerance is never stored on a node; each call brings its own.
//
// Configuration (Option):
//
//	– WithLogger(*slog.Logger)          structured debug logging of mutations
//	– WithIndex(coincidence.Index)      swap the linear scan for the R-tree index
//	– WithMetric(coincidence.Metric)    squared (default) or euclidean tolerance
//	– WithSynthesizer(geom.SegmentSynthesizer)  kernel used by Connect
//	– WithDefaultTolerance(float64)     tolerance for ID-less lookups
//
// Core methods:
//
//	// construction
//	New(opts...) *Store
//	NewStore(nodes, segments, tol, opts...) (*Store, error)
//
//	// mutation
//	AddNodes(nodes, tol) error               O(n·V)
//	AddSegments(segments, tol) error         O(m·V)
//	RemoveNodes(nodes) int                   O(Σ deg)
//	RemoveSegments(segments, tol) (int, error)
//	Connect(as, bs, tol) (int, error)
//	Clear()
//
//	// queries
//	ContainsNode(p, tol) (bool, error)
//	ContainsSegment(a, b, tol) (bool, error)
//	FindCoincident(p, tol) (*Node, bool, error)
//	NodeDegree(n) int, AdjacentNodes(n) []*Node
//	Nodes(), Segments(), Segment(a, b, tol), IncidentSegments(p, tol)
//	NodesAtCoordinates(p, tol)
//	Clone() *Store
//
// Errors:
//
//	ErrInvalidTolerance - a tolerance ≤ 0 was passed to a validating call.
//	ErrLengthMismatch   - Connect received lists of different length.
//	ErrNilNode          - nil node or nil segment endpoint.
//
// Concurrency:
//
// Every method is atomic under one sync.RWMutex. Sequences of calls are not;
// callers that need a consistent multi-call view work on a Clone.
package core
