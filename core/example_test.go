package core_test

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/core"
)

// ExampleNewStore builds a triangle whose corners arrive slightly perturbed
// and shows that coincident endpoints collapse into one node.
func ExampleNewStore() {
	a := v3.Vec{X: 0, Y: 0, Z: 0}
	b := v3.Vec{X: 1, Y: 0, Z: 0}
	c := v3.Vec{X: 0, Y: 1, Z: 0}
	aNear := v3.Vec{X: 0.001, Y: 0, Z: 0}

	s, err := core.NewStore(nil, []*core.Segment{
		{A: &core.Node{Pos: a}, B: &core.Node{Pos: b}},
		{A: &core.Node{Pos: b}, B: &core.Node{Pos: c}},
		{A: &core.Node{Pos: c}, B: &core.Node{Pos: aNear}},
	}, core.DefaultTolerance)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	hub, _, _ := s.FindCoincident(a, core.DefaultTolerance)
	fmt.Println("nodes:", s.Len())
	fmt.Println("segments:", s.SegmentCount())
	fmt.Println("degree(a):", s.NodeDegree(hub))
	// Output:
	// nodes: 3
	// segments: 3
	// degree(a): 2
}

// ExampleStore_Connect stitches two rows of nodes into ladder rungs.
func ExampleStore_Connect() {
	s := core.New()
	var top, bottom []*core.Node
	for i := 0; i < 3; i++ {
		top = append(top, &core.Node{Pos: v3.Vec{X: float64(i), Y: 1}})
		bottom = append(bottom, &core.Node{Pos: v3.Vec{X: float64(i), Y: 0}})
	}

	n, err := s.Connect(top, bottom, core.DefaultTolerance)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("rungs:", n)
	fmt.Println("nodes:", s.Len())
	// Output:
	// rungs: 3
	// nodes: 6
}
