package dfs

import (
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/internal/deadline"
	"github.com/katalvlaran/topograph/internal/telemetry"
	"github.com/katalvlaran/topograph/route"
)

// frame is one level of the explicit search stack.
type frame struct {
	id   string
	nbrs []string
	next int
}

// search holds the resolved inputs shared by Path and AllPaths.
type search struct {
	s      *core.Store
	o      Options
	budget deadline.Budget
	src    *core.Node
	dst    *core.Node
}

func prepare(s *core.Store, start, end *core.Node, opts []Option) (*search, bool, error) {
	if s == nil {
		return nil, false, ErrStoreNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Tolerance <= 0 {
		o.Tolerance = s.Tolerance()
	}
	budget := deadline.Unlimited()
	if o.limitSet {
		b, err := deadline.New(o.TimeLimit)
		if err != nil {
			return nil, false, err
		}
		budget = b
	}

	src, okS := s.Resolve(start, o.Tolerance)
	dst, okD := s.Resolve(end, o.Tolerance)
	if !okS || !okD {
		return nil, false, nil
	}

	return &search{s: s, o: o, budget: budget, src: src, dst: dst}, true, nil
}

// Path returns one simple path between the nodes start and end resolve to,
// the first one a depth-first walk in insertion order reaches.
//
// Implementation:
//   - Stage 1: Resolve both endpoints; either unresolved gives nil, nil and
//     identical endpoints give route.Single.
//   - Stage 2: Walk an explicit stack. A node is entered at most once per
//     search, so the walk is linear and the stack always holds a simple path.
//   - Stage 3: On reaching end, assemble the stack with route.ConstructPath.
//     Cost is the hop count.
//
// Returns nil, nil when end is unreachable or the time limit lapses first.
//
// Errors:
//   - ErrStoreNil; ErrInvalidTimeLimit if WithTimeLimit(d ≤ 0) was given.
//
// Complexity: O(V + E).
func Path(s *core.Store, start, end *core.Node, opts ...Option) (*route.Path, error) {
	sr, ok, err := prepare(s, start, end, opts)
	if err != nil || !ok {
		return nil, err
	}

	began := time.Now()
	ctx, span := telemetry.Start(sr.o.Ctx, "dfs.Path", attribute.Int("store.nodes", s.Len()))
	p, partial, err := sr.first()
	results := 0
	if p != nil {
		results = 1
	}
	telemetry.EndSearch(ctx, span, "dfs", began, results, partial, err)

	return p, err
}

func (sr *search) first() (*route.Path, bool, error) {
	if sr.src.ID == sr.dst.ID {
		return route.Single(sr.src), false, nil
	}

	entered := map[string]bool{sr.src.ID: true}
	stack := []frame{{id: sr.src.ID, nbrs: sr.s.NeighborIDs(sr.src.ID)}}
	for len(stack) > 0 {
		if sr.budget.Expired() {
			sr.s.Logger().Debug("dfs: Path time limit reached", "entered", len(entered))

			return nil, true, nil
		}
		top := &stack[len(stack)-1]
		if top.next >= len(top.nbrs) {
			stack = stack[:len(stack)-1]
			continue
		}
		nb := top.nbrs[top.next]
		top.next++
		if entered[nb] {
			continue
		}
		if nb == sr.dst.ID {
			p, err := sr.assemble(stack, nb)

			return p, false, err
		}
		entered[nb] = true
		stack = append(stack, frame{id: nb, nbrs: sr.s.NeighborIDs(nb)})
	}

	return nil, false, nil
}

// AllPaths returns every simple path between the nodes start and end resolve
// to that a depth-first walk in insertion order finds before the time limit.
//
// Implementation:
//   - Stage 1: Resolve both endpoints; either unresolved gives nil, nil and
//     identical endpoints give the single degenerate path.
//   - Stage 2: Walk an explicit stack, checking the budget once per step.
//     A neighbour already on the stack is rejected, so every recorded walk is
//     simple and the search terminates on any cycle. A neighbour equal to
//     end records the stack plus end and is not expanded.
//   - Stage 3: Assemble each recorded walk with route.ConstructPath, in
//     discovery order. Cost is the hop count.
//
// When the budget runs out the walks found so far are returned; that is
// not an error.
//
// Errors:
//   - ErrStoreNil; ErrInvalidTimeLimit if WithTimeLimit(d ≤ 0) was given.
//
// Complexity: exponential in the worst case; bound it with WithTimeLimit.
func AllPaths(s *core.Store, start, end *core.Node, opts ...Option) ([]*route.Path, error) {
	sr, ok, err := prepare(s, start, end, opts)
	if err != nil || !ok {
		return nil, err
	}

	began := time.Now()
	ctx, span := telemetry.Start(sr.o.Ctx, "dfs.AllPaths",
		attribute.Int64("search.limit_ms", sr.o.TimeLimit.Milliseconds()),
		attribute.Int("store.nodes", s.Len()))
	paths, partial, err := sr.all()
	telemetry.EndSearch(ctx, span, "dfs_all", began, len(paths), partial, err)

	return paths, err
}

func (sr *search) all() ([]*route.Path, bool, error) {
	if sr.src.ID == sr.dst.ID {
		return []*route.Path{route.Single(sr.src)}, false, nil
	}

	var (
		walks   [][]string
		partial bool
	)
	onStack := map[string]bool{sr.src.ID: true}
	stack := []frame{{id: sr.src.ID, nbrs: sr.s.NeighborIDs(sr.src.ID)}}
	for len(stack) > 0 {
		if sr.budget.Expired() {
			sr.s.Logger().Debug("dfs: AllPaths time limit reached", "found", len(walks))
			partial = true
			break
		}
		top := &stack[len(stack)-1]
		if top.next >= len(top.nbrs) {
			onStack[top.id] = false
			stack = stack[:len(stack)-1]
			continue
		}
		nb := top.nbrs[top.next]
		top.next++
		if onStack[nb] {
			continue
		}
		if nb == sr.dst.ID {
			walks = append(walks, stackIDs(stack, nb))
			continue
		}
		onStack[nb] = true
		stack = append(stack, frame{id: nb, nbrs: sr.s.NeighborIDs(nb)})
	}

	out := make([]*route.Path, 0, len(walks))
	for _, ids := range walks {
		p, err := sr.build(ids)
		if err != nil {
			return out, partial, err
		}
		if p != nil {
			out = append(out, p)
		}
	}

	return out, partial, nil
}

func stackIDs(stack []frame, last string) []string {
	ids := make([]string, 0, len(stack)+1)
	for _, f := range stack {
		ids = append(ids, f.id)
	}

	return append(ids, last)
}

func (sr *search) assemble(stack []frame, last string) (*route.Path, error) {
	return sr.build(stackIDs(stack, last))
}

// build turns a walk of node IDs into a route with hop-count cost.
func (sr *search) build(ids []string) (*route.Path, error) {
	nodes := make([]*core.Node, 0, len(ids))
	for _, id := range ids {
		n, ok := sr.s.Node(id)
		if !ok {
			return nil, nil
		}
		nodes = append(nodes, n)
	}
	ropts := []route.Option{route.WithTolerance(sr.o.Tolerance)}
	if sr.o.Synth != nil {
		ropts = append(ropts, route.WithSynthesizer(sr.o.Synth))
	}
	p, err := route.ConstructPath(sr.s, nodes, ropts...)
	if err != nil || p == nil {
		return nil, err
	}
	p.Cost = float64(p.Hops())

	return p, nil
}
