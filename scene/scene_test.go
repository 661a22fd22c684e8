package scene_test

import (
	"bytes"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topograph/builder"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/dijkstra"
	"github.com/katalvlaran/topograph/scene"
)

const triangle = `
points:
  - id: a
    at: [0, 0, 0]
  - id: b
    at: [1, 0, 0]
    attrs: {toll: 7}
  - id: c
    at: [1, 1, 0]
segments:
  - id: ab
    from: a
    to: b
    attrs: {length: 5}
  - from: b
    to: c
  - from: a
    to: c
`

func TestDecodeAndBuild(t *testing.T) {
	doc, err := scene.Decode(strings.NewReader(triangle))
	require.NoError(t, err)
	require.Len(t, doc.Points, 3)
	require.Len(t, doc.Segments, 3)
	assert.Equal(t, v3.Vec{X: 1, Y: 1}, doc.Points[2].Pos())

	sc, err := scene.Build(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, sc.Store.Len())
	assert.Equal(t, 3, sc.Store.SegmentCount())
	assert.Equal(t, 3, sc.Kernel.Vertices())
	assert.Equal(t, 3, sc.Kernel.Edges())

	n, ok := sc.Store.Node("b")
	require.True(t, ok, "point ids become node ids")
	toll, ok := sc.Kernel.Attribute(n.Ref, "toll")
	require.True(t, ok)
	assert.InDelta(t, 7.0, toll, 0)

	seg, ok := sc.Store.SegmentBetween("a", "b")
	require.True(t, ok)
	assert.Equal(t, "ab", seg.ID)
	length, ok := sc.Kernel.Attribute(seg.Ref, "length")
	require.True(t, ok)
	assert.InDelta(t, 5.0, length, 0)
}

func TestBuildFeedsWeightedSearch(t *testing.T) {
	doc, err := scene.Decode(strings.NewReader(triangle))
	require.NoError(t, err)
	sc, err := scene.Build(doc)
	require.NoError(t, err)

	a, _ := sc.Store.Node("a")
	b, _ := sc.Store.Node("b")
	p, err := dijkstra.ShortestPath(sc.Store, a, b, "", "length", dijkstra.WithKernel(sc.Kernel))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Hops(), "the long a-b segment is bypassed through c")
}

func TestBuildMergesCoincidentPoints(t *testing.T) {
	doc := &scene.Document{
		Points: []scene.Point{
			{ID: "p", At: [3]float64{0, 0, 0}},
			{ID: "q", At: [3]float64{0.001, 0, 0}},
			{ID: "r", At: [3]float64{2, 0, 0}},
		},
		Segments: []scene.Segment{{From: "q", To: "r"}},
	}
	sc, err := scene.Build(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, sc.Store.Len())
	assert.Equal(t, 1, sc.Store.Degree("p"), "q resolved onto p")
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"empty id", "points:\n  - at: [0,0,0]\n", scene.ErrEmptyID},
		{"duplicate", "points:\n  - {id: a, at: [0,0,0]}\n  - {id: a, at: [1,0,0]}\n", scene.ErrDuplicateID},
		{"duplicate segment", "points:\n  - {id: a, at: [0,0,0]}\n  - {id: b, at: [1,0,0]}\nsegments:\n  - {id: s, from: a, to: b}\n  - {id: s, from: b, to: a}\n", scene.ErrDuplicateID},
		{"unknown point", "points:\n  - {id: a, at: [0,0,0]}\nsegments:\n  - {from: a, to: z}\n", scene.ErrUnknownPoint},
		{"non-finite", "points:\n  - {id: a, at: [.nan,0,0]}\n", scene.ErrNonFinite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scene.Decode(strings.NewReader(tc.body))
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := scene.Decode(strings.NewReader("points: []\nextra: 1\n"))
	require.Error(t, err, "unknown keys are rejected")

	_, err = scene.Decode(strings.NewReader(strings.Repeat(" ", scene.MaxDocumentSize+1)))
	require.ErrorIs(t, err, scene.ErrTooLarge)

	doc, err := scene.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Points)
}

func TestFromStoreRoundTrip(t *testing.T) {
	sc, err := builder.BuildScene(nil,
		[]builder.BuilderOption{builder.WithWeightKey("length"), builder.WithConstantWeight(2)},
		builder.Cycle(4))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, scene.Encode(&buf, scene.FromStore(sc.Store)))

	doc, err := scene.Decode(&buf)
	require.NoError(t, err)
	again, err := scene.Build(doc, core.WithDefaultTolerance(sc.Store.Tolerance()))
	require.NoError(t, err)
	assert.Equal(t, sc.Store.Len(), again.Store.Len())
	assert.Equal(t, sc.Store.SegmentCount(), again.Store.SegmentCount())
	for _, seg := range again.Store.Segments() {
		w, ok := again.Kernel.Attribute(seg.Ref, "length")
		require.True(t, ok)
		assert.InDelta(t, 2.0, w, 0)
	}
}
