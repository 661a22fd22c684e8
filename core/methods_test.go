// SPDX-License-Identifier: MIT
package core_test

import (
	"errors"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topograph/coincidence"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/geom"
)

func TestAddNodes_MergesCoincident(t *testing.T) {
	s := core.New()
	near := v3.Vec{X: 0.001, Y: 0, Z: 0} // squared distance 1e-6 < Tol
	require.NoError(t, s.AddNodes([]*core.Node{node(PA), node(near), node(PB)}, Tol))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []v3.Vec{PA, PB}, positions(s.Nodes()), "first inserted representative wins")

	// Adding the same positions again changes nothing.
	require.NoError(t, s.AddNodes([]*core.Node{node(PB), node(PA)}, Tol))
	assert.Equal(t, 2, s.Len())
}

func TestAddNodes_Validation(t *testing.T) {
	s := core.New()
	err := s.AddNodes([]*core.Node{node(PA)}, 0)
	require.ErrorIs(t, err, core.ErrInvalidTolerance)

	err = s.AddNodes([]*core.Node{node(PA), nil}, Tol)
	require.ErrorIs(t, err, core.ErrNilNode)
	assert.Zero(t, s.Len(), "no partial mutation")
}

func TestAddNodes_KeepsFreeID(t *testing.T) {
	s := core.New()
	require.NoError(t, s.AddNodes([]*core.Node{{ID: "root", Pos: PA}}, Tol))
	require.NoError(t, s.AddNodes([]*core.Node{{ID: "root", Pos: PB}}, Tol))

	root, ok := s.Node("root")
	require.True(t, ok)
	assert.Equal(t, PA, root.Pos)

	other, ok, _ := s.FindCoincident(PB, Tol)
	require.True(t, ok)
	assert.NotEqual(t, "root", other.ID, "taken IDs are replaced")
	assert.NotEmpty(t, other.ID)
}

func TestAddNodes_StoresCopies(t *testing.T) {
	s := core.New()
	in := node(PA)
	require.NoError(t, s.AddNodes([]*core.Node{in}, Tol))
	in.Pos = PC

	assert.True(t, hasNode(t, s, PA, Tol))
	assert.False(t, hasNode(t, s, PC, Tol))
}

func TestAddSegments_SymmetricAdjacency(t *testing.T) {
	s := core.New()
	require.NoError(t, s.AddSegments([]*core.Segment{seg(PA, PB)}, Tol))

	a, _, _ := s.FindCoincident(PA, Tol)
	b, _, _ := s.FindCoincident(PB, Tol)
	assert.Equal(t, []*core.Node{b}, s.AdjacentNodes(a))
	assert.Equal(t, []*core.Node{a}, s.AdjacentNodes(b))
	assert.True(t, hasSegment(t, s, PA, PB, Tol))
	assert.True(t, hasSegment(t, s, PB, PA, Tol))
	assert.Equal(t, 1, s.SegmentCount())
}

func TestAddSegments_SkipsDuplicatePair(t *testing.T) {
	s := core.New()
	first := seg(PA, PB)
	first.ID = "first"
	second := seg(PB, PA)
	second.ID = "second"
	require.NoError(t, s.AddSegments([]*core.Segment{first, second}, Tol))

	assert.Equal(t, 1, s.SegmentCount())
	got, err := s.Segment(PA, PB, Tol)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)
}

func TestAddSegments_KeepsFreeID(t *testing.T) {
	s := core.New()
	ab, bc := seg(PA, PB), seg(PB, PC)
	ab.ID, bc.ID = "s1", "s1"
	require.NoError(t, s.AddSegments([]*core.Segment{ab, bc}, Tol))

	first, err := s.Segment(PA, PB, Tol)
	require.NoError(t, err)
	assert.Equal(t, "s1", first.ID)
	second, err := s.Segment(PB, PC, Tol)
	require.NoError(t, err)
	assert.NotEqual(t, "s1", second.ID, "taken IDs are replaced")
	assert.NotEmpty(t, second.ID)

	// Removing the holder frees the ID again.
	n, err := s.RemoveSegments([]*core.Segment{seg(PA, PB)}, Tol)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	cd := seg(PC, PD)
	cd.ID = "s1"
	require.NoError(t, s.AddSegments([]*core.Segment{cd}, Tol))
	got, err := s.Segment(PC, PD, Tol)
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)

	// A clone keeps the same reservations.
	c := s.Clone()
	dup := seg(PA, PD)
	dup.ID = "s1"
	require.NoError(t, c.AddSegments([]*core.Segment{dup}, Tol))
	got, err = c.Segment(PA, PD, Tol)
	require.NoError(t, err)
	assert.NotEqual(t, "s1", got.ID)
}

func TestAddSegments_Validation(t *testing.T) {
	s := core.New()
	require.ErrorIs(t, s.AddSegments([]*core.Segment{seg(PA, PB)}, -1), core.ErrInvalidTolerance)
	require.ErrorIs(t, s.AddSegments([]*core.Segment{{A: node(PA)}}, Tol), core.ErrNilNode)
	assert.Zero(t, s.Len())
}

func TestSelfLoopDegree(t *testing.T) {
	s := core.New()
	require.NoError(t, s.AddSegments([]*core.Segment{seg(PA, PA), seg(PA, PB)}, Tol))

	a, _, _ := s.FindCoincident(PA, Tol)
	assert.Equal(t, 3, s.NodeDegree(a), "loop counts twice")
	assert.Equal(t, 3, s.Degree(a.ID))

	st := s.Stats()
	assert.Equal(t, 1, st.SelfLoops)
	assert.Equal(t, 2, st.Segments)
}

func TestRemoveNodes_CleansAdjacency(t *testing.T) {
	s := starStore()
	a, _, _ := s.FindCoincident(PA, Tol)

	removed := s.RemoveNodes([]*core.Node{a, node(v3.Vec{X: 9, Y: 9, Z: 9})})
	assert.Equal(t, 1, removed)
	assert.Equal(t, 3, s.Len())
	assert.Zero(t, s.SegmentCount())
	for _, n := range s.Nodes() {
		assert.Empty(t, s.AdjacentNodes(n))
		assert.Zero(t, s.NodeDegree(n))
	}
	assert.Equal(t, 3, s.Stats().Isolated)
}

func TestRemoveNodes_ByPosition(t *testing.T) {
	s := starStore()
	assert.Equal(t, 1, s.RemoveNodes([]*core.Node{node(PB)}))
	assert.False(t, hasNode(t, s, PB, Tol))
	assert.False(t, hasSegment(t, s, PA, PB, Tol))
	assert.Equal(t, 2, s.SegmentCount())
}

func TestRemoveSegments(t *testing.T) {
	s := starStore()
	n, err := s.RemoveSegments([]*core.Segment{seg(PB, PA), seg(PB, PC), nil}, Tol)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, hasSegment(t, s, PA, PB, Tol))
	assert.True(t, hasNode(t, s, PB, Tol), "nodes survive segment removal")

	_, err = s.RemoveSegments(nil, 0)
	require.ErrorIs(t, err, core.ErrInvalidTolerance)
}

func TestConnect(t *testing.T) {
	k := geom.NewMemory()
	va, vb := k.NewVertex(PA), k.NewVertex(PB)
	s := core.New(core.WithSynthesizer(k))

	n, err := s.Connect(
		[]*core.Node{{Pos: PA, Ref: va}, node(PC)},
		[]*core.Node{{Pos: PB, Ref: vb}, node(PA)},
		Tol,
	)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, s.Len())

	ab, err := s.Segment(PA, PB, Tol)
	require.NoError(t, err)
	require.NotNil(t, ab)
	e, ok := ab.Ref.(*geom.Edge)
	require.True(t, ok, "synthesized connector is a kernel edge")
	assert.Same(t, va, e.Start)
	assert.Same(t, vb, e.End)

	// Re-connecting an adjacent pair is a no-op.
	n, err = s.Connect([]*core.Node{node(PB)}, []*core.Node{node(PA)}, Tol)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConnect_SynthesisFailureKeepsSegment(t *testing.T) {
	k := geom.NewMemory()
	s := core.New(core.WithSynthesizer(k))

	n, err := s.Connect([]*core.Node{node(PA)}, []*core.Node{node(PB)}, Tol)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	ab, _ := s.Segment(PA, PB, Tol)
	require.NotNil(t, ab)
	assert.Nil(t, ab.Ref)
}

func TestConnect_Validation(t *testing.T) {
	s := core.New()
	_, err := s.Connect([]*core.Node{node(PA)}, nil, Tol)
	require.ErrorIs(t, err, core.ErrLengthMismatch)
	_, err = s.Connect(nil, nil, 0)
	require.ErrorIs(t, err, core.ErrInvalidTolerance)
	_, err = s.Connect([]*core.Node{nil}, []*core.Node{node(PA)}, Tol)
	require.ErrorIs(t, err, core.ErrNilNode)
}

func TestNonPositiveToleranceIsRejected(t *testing.T) {
	s := starStore()
	for _, tol := range []float64{0, -1} {
		ok, err := s.ContainsNode(PA, tol)
		require.ErrorIs(t, err, core.ErrInvalidTolerance)
		assert.False(t, ok)

		ok, err = s.ContainsSegment(PA, PB, tol)
		require.ErrorIs(t, err, core.ErrInvalidTolerance)
		assert.False(t, ok)

		n, ok, err := s.FindCoincident(PA, tol)
		require.ErrorIs(t, err, core.ErrInvalidTolerance)
		assert.False(t, ok)
		assert.Nil(t, n)
	}

	_, err := s.Segment(PA, PB, 0)
	require.ErrorIs(t, err, core.ErrInvalidTolerance)
	_, err = s.IncidentSegments(PA, 0)
	require.ErrorIs(t, err, core.ErrInvalidTolerance)
	_, err = s.NodesAtCoordinates(PA, 0)
	require.ErrorIs(t, err, core.ErrInvalidTolerance)
}

func TestIncidentSegments(t *testing.T) {
	s := starStore()
	segs, err := s.IncidentSegments(PA, Tol)
	require.NoError(t, err)
	require.Len(t, segs, 3)
	a, _, _ := s.FindCoincident(PA, Tol)
	var others []v3.Vec
	for _, sg := range segs {
		others = append(others, sg.Other(a).Pos)
	}
	assert.Equal(t, []v3.Vec{PB, PC, PD}, others)

	segs, err = s.IncidentSegments(v3.Vec{X: 5}, Tol)
	require.NoError(t, err)
	assert.Nil(t, segs)
}

func TestNodesAtCoordinates_Euclidean(t *testing.T) {
	s := core.New()
	require.NoError(t, s.AddNodes([]*core.Node{node(PA), node(PB), node(PC)}, Tol))

	// Euclidean radius 1.5 reaches A and B, not C.
	got, err := s.NodesAtCoordinates(v3.Vec{X: 0.5}, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []v3.Vec{PA, PB}, positions(got))
}

func TestEuclideanMetric(t *testing.T) {
	s := core.New(core.WithMetric(coincidence.MetricEuclidean))
	assert.Equal(t, coincidence.MetricEuclidean, s.Metric())
	require.NoError(t, s.AddNodes([]*core.Node{node(PA)}, 0.5))

	// 0.3 is within a Euclidean 0.5 but its square 0.09 is not below 0.05.
	assert.True(t, hasNode(t, s, v3.Vec{X: 0.3}, 0.5))
	sq := core.New()
	require.NoError(t, sq.AddNodes([]*core.Node{node(PA)}, 0.05))
	assert.False(t, hasNode(t, sq, v3.Vec{X: 0.3}, 0.05))
}

func TestSpatialIndexMatchesLinear(t *testing.T) {
	idx, err := coincidence.New(coincidence.KindSpatial, coincidence.MetricSquared)
	require.NoError(t, err)
	sp := core.New(core.WithIndex(idx))
	ln := core.New()

	segs := []*core.Segment{seg(PA, PB), seg(PB, PC), seg(PC, PD), seg(PD, PA)}
	require.NoError(t, sp.AddSegments(segs, Tol))
	require.NoError(t, ln.AddSegments(segs, Tol))

	assert.Equal(t, positions(ln.Nodes()), positions(sp.Nodes()))
	assert.Equal(t, ln.Stats(), sp.Stats())
	for _, p := range []v3.Vec{PA, PB, PC, PD} {
		a, _, _ := ln.FindCoincident(p, Tol)
		b, _, _ := sp.FindCoincident(p, Tol)
		assert.Equal(t, positions(ln.AdjacentNodes(a)), positions(sp.AdjacentNodes(b)))
	}
}

func TestClone_Independent(t *testing.T) {
	s := starStore()
	c := s.Clone()

	require.NoError(t, c.AddSegments([]*core.Segment{seg(PB, PC)}, Tol))
	c.RemoveNodes([]*core.Node{node(PD)})

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 3, s.SegmentCount())
	assert.False(t, hasSegment(t, s, PB, PC, Tol))
	assert.Equal(t, 3, c.Len())
	assert.True(t, hasSegment(t, c, PB, PC, Tol))

	// Insertion order survives the copy.
	assert.Equal(t, positions(s.Nodes())[:3], positions(c.Nodes()))
}

func TestClear(t *testing.T) {
	s := starStore()
	s.Clear()
	assert.Zero(t, s.Len())
	assert.Zero(t, s.SegmentCount())
	assert.False(t, hasNode(t, s, PA, Tol))

	require.NoError(t, s.AddNodes([]*core.Node{node(PC)}, Tol))
	assert.Equal(t, 1, s.Len())
}

func TestSegmentsFromKernel(t *testing.T) {
	k := geom.NewMemory()
	a, b, c := k.NewVertex(PA), k.NewVertex(PB), k.NewVertex(PC)
	ab, bc := k.NewEdge(a, b), k.NewEdge(b, c)

	segs, err := core.SegmentsFrom(k, ab, bc)
	require.NoError(t, err)
	s, err := core.NewStore(nil, segs, Tol)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	reg, err := s.Segment(PB, PC, Tol)
	require.NoError(t, err)
	assert.Same(t, bc, reg.Ref)
	bn, _, _ := s.FindCoincident(PB, Tol)
	assert.Same(t, b, bn.Ref)

	_, err = core.SegmentsFrom(k, "not an edge")
	assert.True(t, errors.Is(err, core.ErrNilNode))
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { core.WithLogger(nil) })
	assert.Panics(t, func() { core.WithIndex(nil) })
	assert.Panics(t, func() { core.WithSynthesizer(nil) })
	assert.Panics(t, func() { core.WithDefaultTolerance(0) })
}
