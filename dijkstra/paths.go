package dijkstra

import (
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/internal/deadline"
	"github.com/katalvlaran/topograph/internal/telemetry"
	"github.com/katalvlaran/topograph/route"
)

// label is one partial walk in the ShortestPaths worklist.
type label struct {
	id   string
	path []string
	dist float64
}

// ShortestPaths returns every minimum-cost path between the nodes start and
// end resolve to, found within limit.
//
// Implementation:
//   - Stage 1: Seed a FIFO worklist with the start label (cost 0) and record
//     the start's best cost as 0.
//   - Stage 2: Pop a label (checking the budget first). If it sits on end
//     and its cost is ≤ the best end cost so far, record it and lower the
//     bound. If its cost is ≤ the bound, extend it to every neighbour not
//     already on its walk whose recorded cost is ≥ the label cost, and record
//     the extended cost for that neighbour.
//   - Stage 3: Keep the recorded end labels whose cost equals the final
//     bound and whose walk has at least two nodes, and assemble them with
//     route.ConstructPath.
//
// When the budget runs out the labels recorded so far are still filtered and
// returned; that is not an error.
//
// Errors:
//   - ErrNilStore; ErrInvalidTimeLimit if limit ≤ 0; ErrNegativeCost.
//
// Complexity: bounded by limit.
func ShortestPaths(s *core.Store, start, end *core.Node, vertexKey, edgeKey string, limit time.Duration, opts ...Option) ([]*route.Path, error) {
	if s == nil {
		return nil, ErrNilStore
	}
	budget, err := deadline.New(limit)
	if err != nil {
		return nil, errorf("ShortestPaths", err)
	}
	cfg := applyOptions(s, opts)

	began := time.Now()
	ctx, span := telemetry.Start(cfg.Ctx, "dijkstra.ShortestPaths",
		attribute.String("search.vertex_key", vertexKey),
		attribute.String("search.edge_key", edgeKey),
		attribute.Int64("search.limit_ms", limit.Milliseconds()),
		attribute.Int("store.nodes", s.Len()))

	paths, partial, err := shortestPaths(s, cfg, budget, start, end, vertexKey, edgeKey)
	telemetry.EndSearch(ctx, span, "dijkstra_all", began, len(paths), partial, err)

	return paths, err
}

func shortestPaths(s *core.Store, cfg Options, budget deadline.Budget, start, end *core.Node, vertexKey, edgeKey string) ([]*route.Path, bool, error) {
	src, okS := s.Resolve(start, cfg.Tolerance)
	dst, okD := s.Resolve(end, cfg.Tolerance)
	if !okS || !okD {
		return nil, false, nil
	}

	cost := newCostModel(s, cfg, vertexKey, edgeKey)
	best := make(map[string]float64, s.Len())
	best[src.ID] = 0
	bestOf := func(id string) float64 {
		if d, ok := best[id]; ok {
			return d
		}
		return math.Inf(1)
	}

	queue := []label{{id: src.ID, path: []string{src.ID}}}
	bound := math.Inf(1)
	var found []label
	partial := false

	for len(queue) > 0 {
		if budget.Expired() {
			partial = true
			s.Logger().Debug("time budget exhausted", "op", "shortest_paths", "queued", len(queue), "found", len(found))
			break
		}
		cur := queue[0]
		queue = queue[1:]

		if cur.id == dst.ID && cur.dist <= bound {
			bound = cur.dist
			found = append(found, cur)
		}
		if cur.dist > bound {
			continue
		}

		un, ok := s.Node(cur.id)
		if !ok {
			continue
		}
		for _, nb := range s.NeighborIDs(cur.id) {
			if onPath(cur.path, nb) || bestOf(nb) < cur.dist {
				continue
			}
			vn, ok := s.Node(nb)
			if !ok {
				continue
			}
			w, err := cost.step(un, vn)
			if err != nil {
				return nil, partial, errorf("ShortestPaths", err)
			}
			if math.IsInf(w, 1) {
				continue
			}
			next := label{id: nb, dist: cur.dist + w, path: make([]string, len(cur.path)+1)}
			copy(next.path, cur.path)
			next.path[len(cur.path)] = nb
			best[nb] = next.dist
			queue = append(queue, next)
		}
	}

	var out []*route.Path
	for _, l := range found {
		if l.dist > bound || len(l.path) < 2 {
			continue
		}
		nodes := make([]*core.Node, len(l.path))
		for i, id := range l.path {
			nodes[i], _ = s.Node(id)
		}
		p, err := route.ConstructPath(s, nodes, routeOptions(cfg)...)
		if err != nil {
			return out, partial, errorf("ShortestPaths", err)
		}
		if p != nil {
			p.Cost = l.dist
			out = append(out, p)
		}
	}

	return out, partial, nil
}

func onPath(path []string, id string) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}

	return false
}
