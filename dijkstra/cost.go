package dijkstra

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/geom"
)

// costModel resolves step costs for one search. Keys are normalised once.
type costModel struct {
	store     *core.Store
	opts      Options
	edgeKey   string // lowercased
	vertexKey string // as given
	metric    bool   // edgeKey is "distance" or "length"
}

func newCostModel(s *core.Store, o Options, vertexKey, edgeKey string) *costModel {
	k := strings.ToLower(edgeKey)

	return &costModel{
		store:     s,
		opts:      o,
		edgeKey:   k,
		vertexKey: vertexKey,
		metric:    k == "distance" || k == "length",
	}
}

// edge returns the cost of moving along the registered segment a→b.
// A missing segment is impassable (+Inf).
func (c *costModel) edge(a, b *core.Node) float64 {
	seg, ok := c.store.SegmentBetween(a.ID, b.ID)
	if !ok {
		return math.Inf(1)
	}
	if c.edgeKey == "" {
		return 1.0
	}
	if c.opts.Attributes != nil && seg.Ref != nil {
		if v, ok := c.opts.Attributes.Attribute(seg.Ref, c.edgeKey); ok {
			return v
		}
	}
	if !c.metric {
		return 1.0
	}
	if c.opts.Lengths != nil && seg.Ref != nil {
		if l, ok := c.opts.Lengths.Length(seg.Ref); ok {
			return l
		}
	}

	return geom.Distance(a.Pos, b.Pos)
}

// vertex returns the cost of entering n.
func (c *costModel) vertex(n *core.Node) float64 {
	if c.vertexKey == "" || c.opts.Attributes == nil || n.Ref == nil {
		return 0
	}
	if v, ok := c.opts.Attributes.Attribute(n.Ref, c.vertexKey); ok {
		return v
	}

	return 0
}

// step returns edge(a,b) + vertex(b), rejecting negative totals.
func (c *costModel) step(a, b *core.Node) (float64, error) {
	e := c.edge(a, b)
	if math.IsInf(e, 1) {
		return e, nil
	}
	w := e + c.vertex(b)
	if w < 0 {
		return 0, fmt.Errorf("%w: %s→%s cost=%g", ErrNegativeCost, a.ID, b.ID, w)
	}

	return w, nil
}
