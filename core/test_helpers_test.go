// SPDX-License-Identifier: MIT
// Package core_test contains fixtures shared by the store tests.

package core_test

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/topograph/core"
)

// Common tolerances used across store tests.
const (
	Tol     = 0.0001 // squared metric: matches within 0.01
	TolWide = 0.25   // squared metric: matches within 0.5
)

// Common positions used across store tests.
var (
	PA = v3.Vec{X: 0, Y: 0, Z: 0}
	PB = v3.Vec{X: 1, Y: 0, Z: 0}
	PC = v3.Vec{X: 2, Y: 0, Z: 0}
	PD = v3.Vec{X: 0, Y: 1, Z: 0}
)

// node returns an unregistered node at p.
func node(p v3.Vec) *core.Node { return &core.Node{Pos: p} }

// seg returns an unregistered segment between p and q.
func seg(p, q v3.Vec) *core.Segment { return &core.Segment{A: node(p), B: node(q)} }

// positions maps nodes to their positions for order-sensitive assertions.
func positions(ns []*core.Node) []v3.Vec {
	out := make([]v3.Vec, len(ns))
	for i, n := range ns {
		out[i] = n.Pos
	}

	return out
}

// starStore builds A at the centre with spokes to B, C and D.
func starStore() *core.Store {
	s, err := core.NewStore(nil, []*core.Segment{seg(PA, PB), seg(PA, PC), seg(PA, PD)}, Tol)
	if err != nil {
		panic(err)
	}

	return s
}

func hasNode(t testing.TB, s *core.Store, p v3.Vec, tol float64) bool {
	t.Helper()
	ok, err := s.ContainsNode(p, tol)
	require.NoError(t, err)

	return ok
}

func hasSegment(t testing.TB, s *core.Store, a, b v3.Vec, tol float64) bool {
	t.Helper()
	ok, err := s.ContainsSegment(a, b, tol)
	require.NoError(t, err)

	return ok
}
