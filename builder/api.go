// SPDX-License-Identifier: MIT
// Package: topograph/builder
//
// api.go - the scene orchestrator and the Scene type.
//
// Design contract:
//   - One orchestrator: BuildScene(sopts, bopts, cons...). Creates the kernel and
//     the store, resolves cfg, runs cons in order.
//   - Every node is backed by a geom.Vertex and every segment by a geom.Edge,
//     so kernel attributes reach the searches through Node.Ref/Segment.Ref.
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical scenes.
//   - Safety: constructors never panic; they return wrapped sentinel errors.

package builder

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/geom"
)

// Constructor adds a deterministic point/segment layout to sc using the
// resolved builderConfig. Constructors validate parameters before touching
// the scene and return sentinel errors.
type Constructor func(sc *Scene, cfg builderConfig) error

// Scene pairs the reference kernel with the store built over it.
type Scene struct {
	Kernel *geom.Memory
	Store  *core.Store
}

// BuildScene creates an empty kernel and a store configured with sopts,
// resolves the builder configuration from bopts, and applies every
// constructor in order. Coincident points from different constructors merge
// into one node.
//
// Errors:
//   - ErrConstructFailed for a nil constructor.
//   - Any constructor error, wrapped with "BuildScene: %w".
func BuildScene(sopts []core.Option, bopts []BuilderOption, cons ...Constructor) (*Scene, error) {
	sc := &Scene{Kernel: geom.NewMemory(), Store: core.New(sopts...)}
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildScene: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(sc, cfg); err != nil {
			return nil, fmt.Errorf("BuildScene: %w", err)
		}
	}

	return sc, nil
}

// Scoped runs c with opts applied over the scene-wide configuration, so one
// constructor can be offset or re-spaced without affecting the others.
func Scoped(c Constructor, opts ...BuilderOption) Constructor {
	return func(sc *Scene, cfg builderConfig) error {
		if c == nil {
			return fmt.Errorf("Scoped: nil constructor: %w", ErrConstructFailed)
		}
		for _, opt := range opts {
			opt(&cfg)
		}

		return c(sc, cfg)
	}
}

// Node returns the stored node at p, if any.
func (sc *Scene) Node(p v3.Vec) (*core.Node, bool) {
	n, ok, _ := sc.Store.FindCoincident(p, sc.Store.Tolerance())

	return n, ok
}

// =============================================================================
// Layout factories - implemented in impl_*.go
// =============================================================================
//
// Positions are relative to cfg.origin. "Spacing" is cfg.spacing and
// "radius" is cfg.radius; both default to 1.
//
// Path(n)                    n ≥ 2; points along +X, spacing apart.
// Cycle(n)                   n ≥ 3; regular n-gon of the radius in the XY plane.
// Star(n)                    n ≥ 2; "Center" at the origin, n-1 leaves on the circle.
// Wheel(n)                   n ≥ 4; Star(n) plus the rim cycle.
// Complete(n)                n ≥ 1; n-gon with every chord.
// CompleteBipartite(n1, n2)  n1, n2 ≥ 1; two parallel columns, every cross link.
// Grid(rows, cols)           rows, cols ≥ 1; 4-neighbour lattice, IDs "r,c".
// RandomSparse(n, p)         n ≥ 1, p ∈ [0,1]; n-gon, each chord kept with probability p.
