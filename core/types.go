// SPDX-License-Identifier: MIT
// File: types.go
// Role: Node, Segment and Store declarations, store options, sentinel errors.
//
// Identity:
//   - A node is identified by coordinate coincidence under the tolerance passed
//     to each operation. Node.ID is a stable handle assigned by the store.
//   - A segment is identified by its unordered pair of endpoint IDs.
//
// Concurrency:
//   - One RWMutex guards nodes, adjacency, segments and the coincidence index.

package core

import (
	"errors"
	"log/slog"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/coincidence"
	"github.com/katalvlaran/topograph/geom"
)

// DefaultTolerance is the coincidence tolerance used when a call does not
// supply one (ID-less lookups in RemoveNodes, NodeDegree, AdjacentNodes).
const DefaultTolerance = 0.0001

// Sentinel errors for store operations.
var (
	// ErrInvalidTolerance indicates a tolerance ≤ 0 was supplied.
	ErrInvalidTolerance = errors.New("core: tolerance must be positive")

	// ErrLengthMismatch indicates Connect received lists of different length.
	ErrLengthMismatch = errors.New("core: node lists differ in length")

	// ErrNilNode indicates a nil node, or a segment with a nil endpoint.
	ErrNilNode = errors.New("core: nil node")
)

// Node is a point in the graph.
//
// Pos is the only identity the store uses for matching. Ref is the
// back-reference to the kernel entity the node stands for; the store never
// dereferences it.
type Node struct {
	// ID is a store-assigned handle (a UUID unless the caller set a free one).
	ID string

	// Pos is the node position.
	Pos v3.Vec

	// Ref is the kernel entity, passed through untouched.
	Ref geom.Entity
}

// Segment is an undirected connector between two nodes.
type Segment struct {
	// ID uniquely identifies the segment within its store.
	ID string

	// A and B are the endpoints; after registration they point at stored nodes.
	A, B *Node

	// Ref is the kernel connector entity, or nil for a connector the store
	// synthesized without a kernel.
	Ref geom.Entity
}

// Other returns the endpoint of s that is not n, or A for a self-loop.
func (s *Segment) Other(n *Node) *Node {
	if s.A != nil && n != nil && s.A.ID == n.ID {
		return s.B
	}

	return s.A
}

// pairKey is the unordered endpoint-ID pair used to key registered segments.
type pairKey struct{ lo, hi string }

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}

	return pairKey{lo: a, hi: b}
}

// Option configures a Store before it is populated.
type Option func(*Store)

// WithLogger routes store diagnostics to l. The default logger discards.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("core: WithLogger(nil)")
	}

	return func(s *Store) { s.logger = l }
}

// WithIndex replaces the coincidence index. The index must be empty.
func WithIndex(idx coincidence.Index) Option {
	if idx == nil {
		panic("core: WithIndex(nil)")
	}

	return func(s *Store) { s.index = idx }
}

// WithMetric selects the coincidence metric for the default linear index.
// It has no effect when combined with WithIndex.
func WithMetric(m coincidence.Metric) Option {
	return func(s *Store) { s.metric = m }
}

// WithSynthesizer sets the kernel used by Connect to create connectors.
func WithSynthesizer(k geom.SegmentSynthesizer) Option {
	if k == nil {
		panic("core: WithSynthesizer(nil)")
	}

	return func(s *Store) { s.synth = k }
}

// WithDefaultTolerance overrides DefaultTolerance for ID-less lookups.
func WithDefaultTolerance(tol float64) Option {
	if tol <= 0 {
		panic("core: WithDefaultTolerance(tol<=0)")
	}

	return func(s *Store) { s.tolerance = tol }
}

// Store is the adjacency graph: nodes, a symmetric adjacency relation and the
// set of registered segments.
//
// Invariants:
//   - adjacency[a][b] exists iff adjacency[b][a] exists.
//   - a pair is adjacent iff segments holds an entry for it.
//   - every node in nodes has an adjacency entry and an index entry.
type Store struct {
	mu sync.RWMutex

	logger    *slog.Logger
	index     coincidence.Index
	metric    coincidence.Metric
	synth     geom.SegmentSynthesizer
	tolerance float64

	nextSeq   uint64
	seq       map[string]uint64              // node ID -> insertion rank
	nodes     map[string]*Node               // node ID -> node
	adjacency map[string]map[string]struct{} // node ID -> neighbour IDs
	segments  map[pairKey]*Segment           // unordered pair -> registered segment
	segIDs    map[string]pairKey             // segment ID -> its pair
}

// New returns an empty Store configured by opts.
//
// Complexity: O(1).
func New(opts ...Option) *Store {
	s := &Store{
		logger:    slog.New(slog.DiscardHandler),
		tolerance: DefaultTolerance,
		seq:       make(map[string]uint64),
		nodes:     make(map[string]*Node),
		adjacency: make(map[string]map[string]struct{}),
		segments:  make(map[pairKey]*Segment),
		segIDs:    make(map[string]pairKey),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.index == nil {
		s.index = coincidence.NewLinear(s.metric)
	}

	return s
}

// NewStore builds a Store from an initial node and segment list, merging
// coincident duplicates under tol. Nodes are added before segments.
//
// Errors:
//   - ErrInvalidTolerance if tol ≤ 0.
//   - ErrNilNode for a nil node or a segment with a nil endpoint.
//
// Complexity: O((V+E)·V) with the linear index.
func NewStore(nodes []*Node, segments []*Segment, tol float64, opts ...Option) (*Store, error) {
	s := New(opts...)
	if err := s.AddNodes(nodes, tol); err != nil {
		return nil, err
	}
	if err := s.AddSegments(segments, tol); err != nil {
		return nil, err
	}

	return s, nil
}

// Tolerance returns the tolerance used for ID-less lookups.
func (s *Store) Tolerance() float64 { return s.tolerance }

// Logger returns the store logger so algorithms can log in the same stream.
func (s *Store) Logger() *slog.Logger { return s.logger }

// Metric returns the coincidence metric of the store index.
func (s *Store) Metric() coincidence.Metric { return s.index.Metric() }
