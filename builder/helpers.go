// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math"
	"strconv"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/geom"
)

// point places a kernel vertex at cfg.origin+rel and registers its node
// under id. A point coincident with an existing node reuses that node.
func (sc *Scene) point(method, id string, rel v3.Vec, cfg builderConfig) (*core.Node, error) {
	p := cfg.origin.Add(rel)
	if n, ok := sc.Node(p); ok {
		return n, nil
	}
	v := sc.Kernel.NewVertex(p)
	n := &core.Node{ID: id, Pos: p, Ref: v}
	if err := sc.Store.AddNodes([]*core.Node{n}, sc.Store.Tolerance()); err != nil {
		return nil, fmt.Errorf("%s: AddNodes(%s): %w", method, id, err)
	}
	stored, ok := sc.Node(p)
	if !ok {
		return nil, fmt.Errorf("%s: node %s not stored: %w", method, id, ErrConstructFailed)
	}

	return stored, nil
}

// link joins a and b with a kernel edge carrying the configured weight
// attribute. An existing segment between them is left alone.
func (sc *Scene) link(method string, a, b *core.Node, cfg builderConfig) error {
	if _, ok := sc.Store.SegmentBetween(a.ID, b.ID); ok {
		return nil
	}
	va, okA := a.Ref.(*geom.Vertex)
	vb, okB := b.Ref.(*geom.Vertex)
	if !okA || !okB {
		return fmt.Errorf("%s: %s-%s: endpoints are not kernel vertices: %w", method, a.ID, b.ID, ErrConstructFailed)
	}
	e := sc.Kernel.NewEdge(va, vb)
	if cfg.weightKey != "" {
		if err := sc.Kernel.SetAttribute(e, cfg.weightKey, cfg.weigh(va.At, vb.At)); err != nil {
			return fmt.Errorf("%s: SetAttribute(%s): %w", method, cfg.weightKey, err)
		}
	}
	if err := sc.Store.AddSegments([]*core.Segment{{A: a, B: b, Ref: e}}, sc.Store.Tolerance()); err != nil {
		return fmt.Errorf("%s: AddSegments(%s-%s): %w", method, a.ID, b.ID, err)
	}

	return nil
}

// ring places n points on the configured circle, starting on +X and going
// counter-clockwise, with IDs from cfg.idFn(offset+i).
func (sc *Scene) ring(method string, n, offset int, cfg builderConfig) ([]*core.Node, error) {
	nodes := make([]*core.Node, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		rel := v3.Vec{X: cfg.radius * math.Cos(angle), Y: cfg.radius * math.Sin(angle)}
		nd, err := sc.point(method, cfg.idFn(offset+i), rel, cfg)
		if err != nil {
			return nil, err
		}
		nodes[i] = nd
	}

	return nodes, nil
}

// closeRing links consecutive ring nodes, including last to first.
func (sc *Scene) closeRing(method string, nodes []*core.Node, cfg builderConfig) error {
	for i := range nodes {
		if err := sc.link(method, nodes[i], nodes[(i+1)%len(nodes)], cfg); err != nil {
			return err
		}
	}

	return nil
}

// linkAll joins every pair of nodes in index order.
func (sc *Scene) linkAll(method string, nodes []*core.Node, cfg builderConfig) error {
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if err := sc.link(method, nodes[i], nodes[j], cfg); err != nil {
				return err
			}
		}
	}

	return nil
}

func vertexID(prefix string, i int) string {
	return prefix + strconv.Itoa(i)
}

func gridVertexID(r, c int) string {
	return strconv.Itoa(r) + "," + strconv.Itoa(c)
}
