// Package dijkstra_test validates the weighted searches: the cost model,
// unreachable and degenerate endpoints, and ShortestPaths enumeration.
package dijkstra_test

import (
	"context"
	"testing"
	"time"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topograph/bfs"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/dijkstra"
	"github.com/katalvlaran/topograph/geom"
)

const tol = core.DefaultTolerance

var (
	pA = v3.Vec{X: 0}
	pB = v3.Vec{X: 1}
	pC = v3.Vec{X: 2}
	pD = v3.Vec{X: 1, Y: 1}
)

func at(p v3.Vec) *core.Node { return &core.Node{Pos: p} }

// fixture is a kernel-backed store with named vertices and edges.
type fixture struct {
	k     *geom.Memory
	s     *core.Store
	v     map[string]*geom.Vertex
	edges map[string]*geom.Edge
}

func newFixture(t *testing.T, pts map[string]v3.Vec, links ...string) *fixture {
	t.Helper()
	f := &fixture{k: geom.NewMemory(), v: map[string]*geom.Vertex{}, edges: map[string]*geom.Edge{}}
	names := []string{"A", "B", "C", "D"}
	var verts []geom.Entity
	for _, n := range names {
		if p, ok := pts[n]; ok {
			f.v[n] = f.k.NewVertex(p)
			verts = append(verts, f.v[n])
		}
	}
	var es []geom.Entity
	for _, l := range links {
		e := f.k.NewEdge(f.v[l[:1]], f.v[l[1:]])
		f.edges[l] = e
		es = append(es, e)
	}
	nodes, err := core.NodesFrom(f.k, verts...)
	require.NoError(t, err)
	segs, err := core.SegmentsFrom(f.k, es...)
	require.NoError(t, err)
	f.s, err = core.NewStore(nodes, segs, tol)
	require.NoError(t, err)

	return f
}

func line(t *testing.T) *fixture {
	return newFixture(t, map[string]v3.Vec{"A": pA, "B": pB, "C": pC}, "AB", "BC")
}

func TestShortestPath_UnitCost(t *testing.T) {
	f := line(t)
	p, err := dijkstra.ShortestPath(f.s, at(pA), at(pC), "", "")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []v3.Vec{pA, pB, pC}, p.Positions())
	assert.Equal(t, 2, p.Hops())
	assert.InDelta(t, 2.0, p.Cost, 1e-12)
	assert.Zero(t, p.Transient(), "every hop uses a registered segment")
}

func TestShortestPath_LengthAttribute(t *testing.T) {
	f := line(t)
	require.NoError(t, f.k.SetAttribute(f.edges["AB"], "length", 5))
	require.NoError(t, f.k.SetAttribute(f.edges["BC"], "length", 1))

	p, err := dijkstra.ShortestPath(f.s, at(pA), at(pC), "", "Length", dijkstra.WithKernel(f.k))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.InDelta(t, 6.0, p.Cost, 1e-12)
	assert.Equal(t, []v3.Vec{pA, pB, pC}, p.Positions())
}

func TestShortestPath_DistanceFallsBackToLength(t *testing.T) {
	f := newFixture(t, map[string]v3.Vec{"A": pA, "B": pB, "C": pC, "D": pD}, "AB", "BC", "AD", "DC")
	// A-D-C is √2 + √2 ≈ 2.83; A-B-C is 2.
	p, err := dijkstra.ShortestPath(f.s, at(pA), at(pC), "", "distance", dijkstra.WithKernel(f.k))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.InDelta(t, 2.0, p.Cost, 1e-12)
	assert.Equal(t, []v3.Vec{pA, pB, pC}, p.Positions())

	// Without a kernel the endpoint distance gives the same answer.
	p, err = dijkstra.ShortestPath(f.s, at(pA), at(pC), "", "distance")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p.Cost, 1e-12)
}

func TestShortestPath_UnknownKeyCostsOne(t *testing.T) {
	f := line(t)
	p, err := dijkstra.ShortestPath(f.s, at(pA), at(pC), "", "weight", dijkstra.WithKernel(f.k))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p.Cost, 1e-12)
}

func TestShortestPath_VertexCost(t *testing.T) {
	f := newFixture(t, map[string]v3.Vec{"A": pA, "B": pB, "C": pC, "D": pD}, "AB", "BC", "AD", "DC")
	require.NoError(t, f.k.SetAttribute(f.v["B"], "Toll", 10))
	require.NoError(t, f.k.SetAttribute(f.v["A"], "Toll", 100))

	p, err := dijkstra.ShortestPath(f.s, at(pA), at(pC), "Toll", "", dijkstra.WithKernel(f.k))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []v3.Vec{pA, pD, pC}, p.Positions(), "tolled B is avoided")
	assert.InDelta(t, 2.0, p.Cost, 1e-12, "start vertex cost is not added")

	// The vertex key is case-sensitive.
	p, err = dijkstra.ShortestPath(f.s, at(pA), at(pC), "toll", "", dijkstra.WithKernel(f.k))
	require.NoError(t, err)
	assert.Equal(t, []v3.Vec{pA, pB, pC}, p.Positions(), "ties go to the earlier inserted node")
}

func TestShortestPath_Disconnected(t *testing.T) {
	f := newFixture(t, map[string]v3.Vec{"A": pA, "B": pB})
	p, err := dijkstra.ShortestPath(f.s, at(pA), at(pB), "", "")
	require.NoError(t, err)
	assert.Nil(t, p)

	d, err := dijkstra.TopologicalDistance(f.s, at(pA), at(pB), tol)
	require.NoError(t, err)
	assert.Equal(t, bfs.Unreachable, d)
}

func TestShortestPath_Endpoints(t *testing.T) {
	f := line(t)
	p, err := dijkstra.ShortestPath(f.s, at(pA), at(v3.Vec{X: 9}), "", "")
	require.NoError(t, err)
	assert.Nil(t, p, "unresolved end")

	p, err = dijkstra.ShortestPath(f.s, at(pB), at(pB), "", "")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Len(t, p.Nodes, 1)
	assert.Zero(t, p.Cost)

	_, err = dijkstra.ShortestPath(nil, at(pA), at(pB), "", "")
	require.ErrorIs(t, err, dijkstra.ErrNilStore)
}

func TestShortestPath_SelfLoopIgnored(t *testing.T) {
	f := line(t)
	require.NoError(t, f.s.AddSegments([]*core.Segment{{A: at(pB), B: at(pB)}}, tol))
	p, err := dijkstra.ShortestPath(f.s, at(pA), at(pC), "", "", dijkstra.WithContext(context.Background()))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p.Cost, 1e-12)
}

func TestShortestPath_NegativeCost(t *testing.T) {
	f := line(t)
	require.NoError(t, f.k.SetAttribute(f.edges["AB"], "cost", -3))
	_, err := dijkstra.ShortestPath(f.s, at(pA), at(pC), "", "cost", dijkstra.WithKernel(f.k))
	require.ErrorIs(t, err, dijkstra.ErrNegativeCost)
}

func TestShortestPaths_AllMinimal(t *testing.T) {
	// Two equal routes A-B-C and A-D-C under unit cost.
	f := newFixture(t, map[string]v3.Vec{"A": pA, "B": pB, "C": pC, "D": pD}, "AB", "BC", "AD", "DC")
	paths, err := dijkstra.ShortestPaths(f.s, at(pA), at(pC), "", "", time.Second)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	var mids []v3.Vec
	for _, p := range paths {
		assert.InDelta(t, 2.0, p.Cost, 1e-12)
		mids = append(mids, p.Nodes[1].Pos)
	}
	assert.ElementsMatch(t, []v3.Vec{pB, pD}, mids)

	// Weighting one route leaves a single minimum.
	require.NoError(t, f.k.SetAttribute(f.edges["AD"], "length", 3))
	paths, err = dijkstra.ShortestPaths(f.s, at(pA), at(pC), "", "length", time.Second, dijkstra.WithKernel(f.k))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, []v3.Vec{pA, pB, pC}, paths[0].Positions())
}

func TestShortestPaths_Degenerate(t *testing.T) {
	f := line(t)
	paths, err := dijkstra.ShortestPaths(f.s, at(pA), at(pA), "", "", time.Second)
	require.NoError(t, err)
	assert.Empty(t, paths, "single-node candidates are dropped")

	paths, err = dijkstra.ShortestPaths(f.s, at(pA), at(v3.Vec{Z: 4}), "", "", time.Second)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestShortestPaths_TimeLimit(t *testing.T) {
	f := line(t)
	_, err := dijkstra.ShortestPaths(f.s, at(pA), at(pC), "", "", 0)
	require.ErrorIs(t, err, dijkstra.ErrInvalidTimeLimit)
	_, err = dijkstra.ShortestPaths(f.s, at(pA), at(pC), "", "", -time.Second)
	require.ErrorIs(t, err, dijkstra.ErrInvalidTimeLimit)
}

func TestWithTolerancePanics(t *testing.T) {
	assert.Panics(t, func() { dijkstra.WithTolerance(0) })
}
