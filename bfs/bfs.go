// Package bfs provides breadth-first search over a core.Store, returning hop
// distances, parent links and visit order, and the TopologicalDistance query
// built on it.
package bfs

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/internal/telemetry"
)

// queueItem pairs a node ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	store   *core.Store
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *Result
	found   bool
}

// BFS runs breadth-first search on s from start, applying any number of
// functional Options. start is resolved by ID, then by coincidence under the
// store tolerance.
//
// Returns ErrStoreNil or ErrStartNotFound for invalid input,
// ErrOptionViolation for bad options, or any OnVisit error.
//
// Complexity: O(V + E).
func BFS(s *core.Store, start *core.Node, opts ...Option) (*Result, error) {
	if s == nil {
		return nil, ErrStoreNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	root, ok := s.Resolve(start, s.Tolerance())
	if !ok {
		return nil, ErrStartNotFound
	}

	w := newWalker(s, o)
	w.enqueue(root.ID, 0, "")

	return w.res, w.loop()
}

// TopologicalDistance returns the number of segments on a shortest walk
// between the nodes a and b resolve to under tol.
//
// Behavior highlights:
//   - 0 when a and b resolve to the same node.
//   - Unreachable when either does not resolve or no walk joins them.
//   - The walk stops as soon as b's node is reached.
//
// Errors:
//   - core.ErrInvalidTolerance if tol ≤ 0.
//
// Complexity: O(V + E) worst case.
func TopologicalDistance(s *core.Store, a, b *core.Node, tol float64) (int, error) {
	if tol <= 0 {
		return Unreachable, fmt.Errorf("TopologicalDistance: tol=%g: %w", tol, core.ErrInvalidTolerance)
	}
	if s == nil {
		return Unreachable, ErrStoreNil
	}
	began := time.Now()
	ctx, span := telemetry.Start(context.Background(), "bfs.TopologicalDistance",
		attribute.Int("store.nodes", s.Len()))

	ra, okA := s.Resolve(a, tol)
	rb, okB := s.Resolve(b, tol)
	if !okA || !okB {
		telemetry.EndSearch(ctx, span, "bfs", began, 0, false, nil)
		return Unreachable, nil
	}
	if ra.ID == rb.ID {
		telemetry.EndSearch(ctx, span, "bfs", began, 1, false, nil)
		return 0, nil
	}

	o := DefaultOptions()
	o.target = rb.ID
	w := newWalker(s, o)
	w.enqueue(ra.ID, 0, "")
	_ = w.loop() // no hooks, no cancellation: loop cannot fail

	d := w.res.DistanceTo(rb.ID)
	results := 0
	if d != Unreachable {
		results = 1
	}
	telemetry.EndSearch(ctx, span, "bfs", began, results, false, nil)

	return d, nil
}

func newWalker(s *core.Store, o Options) *walker {
	n := s.Len()

	return &walker{
		store:   s,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &Result{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
}

// enqueue marks id visited at depth d, records its parent and queues it.
func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
	if id == w.opts.target {
		w.found = true
	}
}

// loop processes the queue until empty, error, cancellation or target hit.
func (w *walker) loop() error {
	for len(w.queue) > 0 && !w.found {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		w.enqueueNeighbors(item)
	}

	return nil
}

// enqueueNeighbors applies filtering and MaxDepth and enqueues each unseen
// neighbour in insertion order.
func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, nbr := range w.store.NeighborIDs(item.id) {
		if w.visited[nbr] || !w.opts.FilterNeighbor(item.id, nbr) {
			continue
		}
		w.enqueue(nbr, next, item.id)
		if w.found {
			return
		}
	}
}
