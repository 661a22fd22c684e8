package dijkstra

import (
	"container/heap"
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/topograph/bfs"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/internal/telemetry"
	"github.com/katalvlaran/topograph/route"
)

// ShortestPath returns a minimum-cost path between the nodes start and end
// resolve to, under the cost model described in the package documentation.
//
// Returns:
//
//   - nil, nil when either endpoint does not resolve or end is unreachable.
//   - route.Single(start) with Cost 0 when both resolve to the same node.
//   - otherwise a Path whose Cost is the accumulated step cost.
//
// Preconditions and validation (in order):
//  1. s must be non-nil (ErrNilStore).
//  2. every step cost met must be non-negative (ErrNegativeCost).
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func ShortestPath(s *core.Store, start, end *core.Node, vertexKey, edgeKey string, opts ...Option) (*route.Path, error) {
	if s == nil {
		return nil, ErrNilStore
	}
	cfg := applyOptions(s, opts)

	began := time.Now()
	ctx, span := telemetry.Start(cfg.Ctx, "dijkstra.ShortestPath",
		attribute.String("search.vertex_key", vertexKey),
		attribute.String("search.edge_key", edgeKey),
		attribute.Int("store.nodes", s.Len()))

	p, err := shortestPath(s, cfg, start, end, vertexKey, edgeKey)
	results := 0
	if p != nil {
		results = 1
	}
	telemetry.EndSearch(ctx, span, "dijkstra", began, results, false, err)

	return p, err
}

func shortestPath(s *core.Store, cfg Options, start, end *core.Node, vertexKey, edgeKey string) (*route.Path, error) {
	src, okS := s.Resolve(start, cfg.Tolerance)
	dst, okD := s.Resolve(end, cfg.Tolerance)
	if !okS || !okD {
		return nil, nil
	}
	if src.ID == dst.ID {
		return route.Single(src), nil
	}

	r := newRunner(s, cfg, vertexKey, edgeKey)
	r.init(src.ID)
	if err := r.process(dst.ID); err != nil {
		return nil, errorf("ShortestPath", err)
	}
	if math.IsInf(r.dist[dst.ID], 1) {
		return nil, nil
	}

	ids := r.pathTo(dst.ID)
	nodes := make([]*core.Node, len(ids))
	for i, id := range ids {
		nodes[i], _ = s.Node(id)
	}
	p, err := route.ConstructPath(s, nodes, routeOptions(r.cfg)...)
	if err != nil || p == nil {
		return nil, err
	}
	p.Cost = r.dist[dst.ID]

	return p, nil
}

// TopologicalDistance is bfs.TopologicalDistance.
func TopologicalDistance(s *core.Store, a, b *core.Node, tol float64) (int, error) {
	return bfs.TopologicalDistance(s, a, b, tol)
}

func applyOptions(s *core.Store, opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = s.Tolerance()
	}
	if cfg.Ctx == nil {
		cfg.Ctx = context.Background()
	}

	return cfg
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	s       *core.Store
	cfg     Options
	cost    *costModel
	rank    map[string]int     // node ID → insertion rank, for tie-breaking
	dist    map[string]float64 // node ID → best known cost from the source
	prev    map[string]string  // node ID → predecessor on the best path
	visited map[string]bool    // finalised nodes
	pq      nodePQ
}

func newRunner(s *core.Store, cfg Options, vertexKey, edgeKey string) *runner {
	nodes := s.Nodes()
	r := &runner{
		s:       s,
		cfg:     cfg,
		cost:    newCostModel(s, cfg, vertexKey, edgeKey),
		rank:    make(map[string]int, len(nodes)),
		dist:    make(map[string]float64, len(nodes)),
		prev:    make(map[string]string, len(nodes)),
		visited: make(map[string]bool, len(nodes)),
		pq:      make(nodePQ, 0, len(nodes)),
	}
	for i, n := range nodes {
		r.rank[n.ID] = i
		r.dist[n.ID] = math.Inf(1)
	}

	return r
}

// init seeds the heap with the source at cost 0.
func (r *runner) init(src string) {
	r.dist[src] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: src, dist: 0, rank: r.rank[src]})
}

// process pops nodes in cost order until dst is finalised or the heap drains.
func (r *runner) process(dst string) error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue
		}
		r.visited[item.id] = true
		if item.id == dst {
			return nil
		}
		if err := r.relax(item.id); err != nil {
			return err
		}
	}

	return nil
}

// relax tries to improve the cost of every neighbour of u.
func (r *runner) relax(u string) error {
	un, ok := r.s.Node(u)
	if !ok {
		return nil
	}
	for _, v := range r.s.NeighborIDs(u) {
		if v == u || r.visited[v] {
			// A self-loop never shortens a path.
			continue
		}
		vn, ok := r.s.Node(v)
		if !ok {
			continue
		}
		w, err := r.cost.step(un, vn)
		if err != nil {
			return err
		}
		if math.IsInf(w, 1) {
			continue
		}
		nd := r.dist[u] + w
		if nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		r.prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd, rank: r.rank[v]})
	}

	return nil
}

// pathTo walks prev back from dst.
func (r *runner) pathTo(dst string) []string {
	var ids []string
	for cur := dst; cur != ""; cur = r.prev[cur] {
		ids = append(ids, cur)
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}

	return ids
}

func routeOptions(cfg Options) []route.Option {
	opts := []route.Option{route.WithTolerance(cfg.Tolerance)}
	if cfg.Synth != nil {
		opts = append(opts, route.WithSynthesizer(cfg.Synth))
	}

	return opts
}

// nodeItem represents a node and its tentative cost from the source.
type nodeItem struct {
	id   string
	dist float64
	rank int
}

// nodePQ is a min-heap of *nodeItem ordered by cost, then insertion rank.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].rank < pq[j].rank
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// errorf wraps err with the search name.
func errorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
