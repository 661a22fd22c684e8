package bfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/bfs"
	"github.com/katalvlaran/topograph/core"
)

const tol = core.DefaultTolerance

func at(x, y float64) *core.Node { return &core.Node{Pos: v3.Vec{X: x, Y: y}} }

// square builds the 4-cycle (0,0)-(1,0)-(1,1)-(0,1) plus an isolated node at (5,5).
func square(t *testing.T) *core.Store {
	t.Helper()
	s, err := core.NewStore([]*core.Node{at(5, 5)}, []*core.Segment{
		{A: at(0, 0), B: at(1, 0)},
		{A: at(1, 0), B: at(1, 1)},
		{A: at(1, 1), B: at(0, 1)},
		{A: at(0, 1), B: at(0, 0)},
	}, tol)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	return s
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	if _, err := bfs.BFS(nil, at(0, 0)); !errors.Is(err, bfs.ErrStoreNil) {
		t.Errorf("nil store: want ErrStoreNil, got %v", err)
	}
	s := square(t)
	if _, err := bfs.BFS(s, at(9, 9)); !errors.Is(err, bfs.ErrStartNotFound) {
		t.Errorf("missing start: want ErrStartNotFound, got %v", err)
	}
	if _, err := bfs.BFS(s, at(0, 0), bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
}

// TestBFS_CycleDepths checks depths and parent links on the square.
func TestBFS_CycleDepths(t *testing.T) {
	s := square(t)
	res, err := bfs.BFS(s, at(0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Order) != 4 {
		t.Fatalf("Order = %v; want 4 nodes (isolated one unreachable)", res.Order)
	}
	far, _, _ := s.FindCoincident(v3.Vec{X: 1, Y: 1}, tol)
	if d := res.DistanceTo(far.ID); d != 2 {
		t.Errorf("DistanceTo(1,1) = %d; want 2", d)
	}
	lone, _, _ := s.FindCoincident(v3.Vec{X: 5, Y: 5}, tol)
	if d := res.DistanceTo(lone.ID); d != bfs.Unreachable {
		t.Errorf("DistanceTo(isolated) = %d; want Unreachable", d)
	}
	path, err := res.PathTo(far.ID)
	if err != nil || len(path) != 3 {
		t.Errorf("PathTo(1,1) = %v, %v; want 3 IDs", path, err)
	}
	if _, err := res.PathTo(lone.ID); err == nil {
		t.Error("PathTo(isolated): want error")
	}
}

// TestBFS_MaxDepthAndFilter limits exploration.
func TestBFS_MaxDepthAndFilter(t *testing.T) {
	s := square(t)
	res, err := bfs.BFS(s, at(0, 0), bfs.WithMaxDepth(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Order) != 3 {
		t.Errorf("MaxDepth(1) visited %d nodes; want 3", len(res.Order))
	}

	origin, _, _ := s.FindCoincident(v3.Vec{}, tol)
	blocked, _, _ := s.FindCoincident(v3.Vec{X: 1, Y: 0}, tol)
	res, err = bfs.BFS(s, at(0, 0), bfs.WithFilterNeighbor(func(cur, nb string) bool {
		return cur != origin.ID || nb != blocked.ID
	}))
	if err != nil {
		t.Fatal(err)
	}
	if _, seen := res.Depth[blocked.ID]; !seen {
		// (1,0) is still reachable the long way round through (1,1).
		t.Errorf("filtered node should be reached via the other side")
	}
	if d := res.Depth[blocked.ID]; d != 3 {
		t.Errorf("Depth(1,0) with direct step filtered = %d; want 3", d)
	}
}

// TestBFS_HookAndCancel checks that hook errors and cancellation surface.
func TestBFS_HookAndCancel(t *testing.T) {
	s := square(t)
	boom := errors.New("boom")
	_, err := bfs.BFS(s, at(0, 0), bfs.WithOnVisit(func(string, int) error { return boom }))
	if !errors.Is(err, boom) {
		t.Errorf("want wrapped hook error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(s, at(0, 0), bfs.WithContext(ctx))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

// TestTopologicalDistance covers the documented outcomes.
func TestTopologicalDistance(t *testing.T) {
	s := square(t)
	cases := []struct {
		name string
		a, b *core.Node
		want int
	}{
		{"same node", at(0, 0), at(0, 0), 0},
		{"coincident", at(0, 0), at(0.001, 0), 0},
		{"adjacent", at(0, 0), at(1, 0), 1},
		{"opposite corner", at(0, 0), at(1, 1), 2},
		{"isolated", at(0, 0), at(5, 5), bfs.Unreachable},
		{"unresolved", at(0, 0), at(7, 7), bfs.Unreachable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := bfs.TopologicalDistance(s, tc.a, tc.b, tol)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %d; want %d", got, tc.want)
			}
		})
	}

	if _, err := bfs.TopologicalDistance(s, at(0, 0), at(1, 0), 0); !errors.Is(err, core.ErrInvalidTolerance) {
		t.Errorf("tol=0: want ErrInvalidTolerance, got %v", err)
	}
}

// TestTopologicalDistance_Symmetric compares both directions for every
// node pair of the square and of a five-node chain with a branch.
func TestTopologicalDistance_Symmetric(t *testing.T) {
	chain, err := core.NewStore(nil, []*core.Segment{
		{A: at(0, 0), B: at(1, 0)},
		{A: at(1, 0), B: at(2, 0)},
		{A: at(2, 0), B: at(3, 0)},
		{A: at(1, 0), B: at(1, 1)},
	}, tol)
	if err != nil {
		t.Fatal(err)
	}
	for name, s := range map[string]*core.Store{"square": square(t), "chain": chain} {
		nodes := s.Nodes()
		for i, a := range nodes {
			for _, b := range nodes[i:] {
				ab, err := bfs.TopologicalDistance(s, a, b, tol)
				if err != nil {
					t.Fatal(err)
				}
				ba, err := bfs.TopologicalDistance(s, b, a, tol)
				if err != nil {
					t.Fatal(err)
				}
				if ab != ba {
					t.Errorf("%s: d(%v,%v) = %d but d(%v,%v) = %d", name, a.Pos, b.Pos, ab, b.Pos, a.Pos, ba)
				}
			}
		}
	}

	// Spot-check a long pair so the loop is not vacuous.
	if d, _ := bfs.TopologicalDistance(chain, at(3, 0), at(1, 1), tol); d != 3 {
		t.Errorf("chain d((3,0),(1,1)) = %d; want 3", d)
	}
}

// TestBFS_OrderFollowsInsertion checks the deterministic visit order.
func TestBFS_OrderFollowsInsertion(t *testing.T) {
	s, err := core.NewStore(nil, []*core.Segment{
		{A: at(0, 0), B: at(3, 0)},
		{A: at(0, 0), B: at(1, 0)},
		{A: at(0, 0), B: at(2, 0)},
	}, tol)
	if err != nil {
		t.Fatal(err)
	}
	res, err := bfs.BFS(s, at(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	var xs []float64
	for _, id := range res.Order {
		n, _ := s.Node(id)
		xs = append(xs, n.Pos.X)
	}
	if want := []float64{0, 3, 1, 2}; !reflect.DeepEqual(xs, want) {
		t.Errorf("order = %v; want %v", xs, want)
	}
}
