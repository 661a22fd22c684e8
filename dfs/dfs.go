package dfs

import (
	"fmt"

	"github.com/katalvlaran/topograph/core"
)

// walker encapsulates state during DFS.
type walker struct {
	store *core.Store
	opts  Options
	res   *Result
}

// DFS performs depth-first search on s. With WithFullTraversal it covers
// every component in insertion order; otherwise it starts from the node
// start resolves to (ignored in full mode, may be nil).
func DFS(s *core.Store, start *core.Node, opts ...Option) (*Result, error) {
	if s == nil {
		return nil, ErrStoreNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	var root *core.Node
	if !o.FullTraversal {
		r, ok := s.Resolve(start, s.Tolerance())
		if !ok {
			return nil, ErrStartNotFound
		}
		root = r
	}

	nodes := s.Nodes()
	res := &Result{
		Order:   make([]string, 0, len(nodes)),
		Depth:   make(map[string]int, len(nodes)),
		Parent:  make(map[string]string, len(nodes)),
		Visited: make(map[string]bool, len(nodes)),
	}
	w := &walker{store: s, opts: o, res: res}

	if o.FullTraversal {
		for _, n := range nodes {
			if res.Visited[n.ID] {
				continue
			}
			if err := w.traverse(n.ID, 0); err != nil {
				return res, err
			}
		}
	} else if err := w.traverse(root.ID, 0); err != nil {
		return res, err
	}
	res.SkippedNeighbors = w.opts.SkippedNeighbors

	return res, nil
}

// traverse visits id at depth, recursing to neighbours in insertion order.
func (w *walker) traverse(id string, depth int) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	w.res.Visited[id] = true
	w.res.Depth[id] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			w.res.Order = nil

			return fmt.Errorf("dfs: OnVisit hook for %q: %w", id, err)
		}
	}

	for _, nid := range w.store.NeighborIDs(id) {
		if nid == id {
			continue
		}
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(nid) {
			w.opts.SkippedNeighbors++
			continue
		}
		if w.res.Visited[nid] {
			continue
		}
		w.res.Parent[nid] = id
		if err := w.traverse(nid, depth+1); err != nil {
			return err
		}
	}

	if w.opts.OnExit != nil {
		if err := w.opts.OnExit(id); err != nil {
			w.res.Order = nil

			return fmt.Errorf("dfs: OnExit hook for %q: %w", id, err)
		}
	}
	w.res.Order = append(w.res.Order, id)

	return nil
}

// Components returns the connected components of s. Components are ordered
// by their earliest node, and nodes within a component by insertion order.
//
// Complexity: O(V + E) plus O(V log V) for ordering.
func Components(s *core.Store) ([][]*core.Node, error) {
	if s == nil {
		return nil, ErrStoreNil
	}
	root := make(map[string]string)
	res, err := DFS(s, nil, WithFullTraversal())
	if err != nil {
		return nil, err
	}
	for _, id := range res.Order {
		r := id
		for {
			p, ok := res.Parent[r]
			if !ok {
				break
			}
			r = p
		}
		root[id] = r
	}

	index := make(map[string]int)
	var out [][]*core.Node
	for _, n := range s.Nodes() {
		r, ok := root[n.ID]
		if !ok {
			continue
		}
		i, seen := index[r]
		if !seen {
			i = len(out)
			index[r] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], n)
	}

	return out, nil
}
