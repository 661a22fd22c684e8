package bfs_test

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/bfs"
	"github.com/katalvlaran/topograph/core"
)

// ExampleTopologicalDistance counts hops across a 3×3 lattice of points.
func ExampleTopologicalDistance() {
	var segs []*core.Segment
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p := &core.Node{Pos: v3.Vec{X: float64(i), Y: float64(j)}}
			if i+1 < 3 {
				segs = append(segs, &core.Segment{A: p, B: &core.Node{Pos: v3.Vec{X: float64(i + 1), Y: float64(j)}}})
			}
			if j+1 < 3 {
				segs = append(segs, &core.Segment{A: p, B: &core.Node{Pos: v3.Vec{X: float64(i), Y: float64(j + 1)}}})
			}
		}
	}
	s, err := core.NewStore(nil, segs, core.DefaultTolerance)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	corner := &core.Node{Pos: v3.Vec{X: 0, Y: 0}}
	opposite := &core.Node{Pos: v3.Vec{X: 2, Y: 2}}
	hops, err := bfs.TopologicalDistance(s, corner, opposite, core.DefaultTolerance)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("hops:", hops)
	// Output:
	// hops: 4
}
