// SPDX-License-Identifier: MIT
// Package route defines the Path result shared by the search packages and
// ConstructPath, which turns an ordered node sequence into a Path by reusing
// registered segments and synthesizing transient ones for the gaps.
//
// Transient segments are never stored in the core.Store; they carry an empty
// ID so callers can tell them apart from registered ones.
package route

import (
	"fmt"
	"strings"
	"time"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/geom"
	"github.com/katalvlaran/topograph/internal/deadline"
)

// ErrInvalidTimeLimit is returned when WithTimeLimit receives d ≤ 0.
var ErrInvalidTimeLimit = deadline.ErrInvalidTimeLimit

// Path is an ordered walk through a store.
//
// Nodes has one more element than Segments, except for the degenerate
// single-node path, which has no segments. Segments[i] joins Nodes[i] and
// Nodes[i+1].
type Path struct {
	Nodes    []*core.Node
	Segments []*core.Segment

	// Cost is set by the search that produced the path: accumulated
	// edge and vertex cost for dijkstra, hop count for dfs.
	Cost float64
}

// Single returns the degenerate path made of n alone.
func Single(n *core.Node) *Path {
	return &Path{Nodes: []*core.Node{n}}
}

// Hops returns the number of segments in p.
func (p *Path) Hops() int { return len(p.Segments) }

// Start returns the first node, or nil for an empty path.
func (p *Path) Start() *core.Node {
	if len(p.Nodes) == 0 {
		return nil
	}

	return p.Nodes[0]
}

// End returns the last node, or nil for an empty path.
func (p *Path) End() *core.Node {
	if len(p.Nodes) == 0 {
		return nil
	}

	return p.Nodes[len(p.Nodes)-1]
}

// Positions returns the node positions in walk order.
func (p *Path) Positions() []v3.Vec {
	out := make([]v3.Vec, len(p.Nodes))
	for i, n := range p.Nodes {
		out[i] = n.Pos
	}

	return out
}

// Transient returns how many segments of p were synthesized rather than
// taken from the store.
func (p *Path) Transient() int {
	n := 0
	for _, s := range p.Segments {
		if s.ID == "" {
			n++
		}
	}

	return n
}

// String renders p as "(x,y,z) -> (x,y,z) ...".
func (p *Path) String() string {
	var b strings.Builder
	for i, n := range p.Nodes {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(&b, "(%g,%g,%g)", n.Pos.X, n.Pos.Y, n.Pos.Z)
	}

	return b.String()
}

type options struct {
	synth  geom.SegmentSynthesizer
	tol    float64
	budget deadline.Budget
	err    error
}

// Option configures ConstructPath.
type Option func(*options)

// WithSynthesizer sets the kernel asked for a connector entity when two
// consecutive nodes have no registered segment.
func WithSynthesizer(k geom.SegmentSynthesizer) Option {
	if k == nil {
		panic("route: WithSynthesizer(nil)")
	}

	return func(o *options) { o.synth = k }
}

// WithTolerance sets the coincidence tolerance used to resolve nodes that
// carry no stored ID. The default is the store tolerance.
func WithTolerance(tol float64) Option {
	if tol <= 0 {
		panic("route: WithTolerance(tol<=0)")
	}

	return func(o *options) { o.tol = tol }
}

// WithTimeLimit bounds ConstructPath to d of wall-clock time.
func WithTimeLimit(d time.Duration) Option {
	return func(o *options) {
		b, err := deadline.New(d)
		if err != nil {
			o.err = err
			return
		}
		o.budget = b
	}
}

// WithBudget shares an already running budget, so a search and the paths it
// assembles draw on the same deadline.
func WithBudget(b deadline.Budget) Option {
	return func(o *options) { o.budget = b }
}

// ConstructPath assembles a Path through nodes in order.
//
// Implementation:
//   - Stage 1: Resolve each node to its stored representative (by ID, then by
//     coincidence); unresolved nodes are kept as given.
//   - Stage 2: For each consecutive pair, reuse the registered segment when
//     the store has one; otherwise build a transient segment whose Ref comes
//     from the synthesizer (nil without one or on failure).
//   - Stage 3: Check the budget once per pair.
//
// Returns nil, nil when nodes has fewer than two entries or the budget runs
// out before the path is complete.
//
// Errors:
//   - core.ErrNilNode for a nil entry; ErrInvalidTimeLimit from WithTimeLimit.
//
// Complexity: O(k) store lookups for k nodes.
func ConstructPath(s *core.Store, nodes []*core.Node, opts ...Option) (*Path, error) {
	o := options{tol: s.Tolerance(), budget: deadline.Unlimited()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("ConstructPath: %w", o.err)
	}
	for i, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("ConstructPath: index %d: %w", i, core.ErrNilNode)
		}
	}
	if len(nodes) < 2 {
		return nil, nil
	}

	resolved := make([]*core.Node, len(nodes))
	for i, n := range nodes {
		if stored, ok := s.Resolve(n, o.tol); ok {
			resolved[i] = stored
		} else {
			resolved[i] = n
		}
	}

	p := &Path{Nodes: resolved, Segments: make([]*core.Segment, 0, len(nodes)-1)}
	for i := 0; i+1 < len(resolved); i++ {
		if o.budget.Expired() {
			s.Logger().Debug("time budget exhausted", "op", "construct_path", "assembled", i)
			return nil, nil
		}
		a, b := resolved[i], resolved[i+1]
		if seg, ok := s.SegmentBetween(a.ID, b.ID); ok && a.ID != "" && b.ID != "" {
			p.Segments = append(p.Segments, seg)
			continue
		}
		p.Segments = append(p.Segments, transient(s, o.synth, a, b))
	}

	return p, nil
}

// transient builds an unregistered segment between a and b.
func transient(s *core.Store, k geom.SegmentSynthesizer, a, b *core.Node) *core.Segment {
	seg := &core.Segment{A: a, B: b}
	if k == nil {
		return seg
	}
	ref, err := k.Synthesize(a.Ref, b.Ref)
	if err != nil {
		s.Logger().Debug("segment synthesis failed", "op", "construct_path", "err", err)
		return seg
	}
	seg.Ref = ref

	return seg
}
