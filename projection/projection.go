// SPDX-License-Identifier: MIT

// Package projection turns higher-dimensional topologies (faces, shells,
// cells, complexes, apertures) into graph nodes and segments inside a
// core.Store.
//
// The input is a closed set of variants behind the sealed Topology
// interface; each variant has one projection rule and dispatch is a type
// switch. Variants carry geometry the kernel already computed (centroids,
// interior points, shared boundary parts by pointer identity), so this
// package never measures surfaces or solids itself.
//
// A boundary part is shared when two or more owners list the same value: an
// edge in two faces of a shell, a face in two cells of a complex. Shared
// parts follow the ViaShared flags, unshared parts the ToExterior flags.
//
// Projected nodes carry the Ref of the part they stand for, so attribute
// lookups on the store resolve against the source entity.
package projection

import (
	"fmt"

	"github.com/katalvlaran/topograph/core"
)

// Projection is the node and segment set a topology projects to. Segment
// endpoints are fresh nodes; coincident points merge when added to a store.
type Projection struct {
	Nodes    []*core.Node
	Segments []*core.Segment
}

// Project computes the projection of t without touching any store.
// A nil t projects to nothing.
func Project(t Topology, opts ...Option) *Projection {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	p := &projector{o: o}
	p.project(t)

	return &Projection{Nodes: p.nodes, Segments: p.segs}
}

// ByTopology projects every topology and adds the result to s: nodes first,
// then segments, both under the option tolerance (or the store's).
//
// Errors:
//   - ErrNilStore if s is nil.
//   - ErrNilTopology (wrapped with the index) for a nil entry.
//   - core.ErrInvalidTolerance from the store.
func ByTopology(s *core.Store, topologies []Topology, opts ...Option) error {
	if s == nil {
		return ErrNilStore
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	tol := o.Tolerance
	if tol <= 0 {
		tol = s.Tolerance()
	}

	p := &projector{o: o}
	for i, t := range topologies {
		if t == nil {
			return fmt.Errorf("ByTopology: index %d: %w", i, ErrNilTopology)
		}
		p.project(t)
	}
	if err := s.AddNodes(p.nodes, tol); err != nil {
		return fmt.Errorf("ByTopology: %w", err)
	}
	if err := s.AddSegments(p.segs, tol); err != nil {
		return fmt.Errorf("ByTopology: %w", err)
	}
	s.Logger().Debug("topologies projected", "op", "by_topology",
		"inputs", len(topologies), "nodes", len(p.nodes), "segments", len(p.segs))

	return nil
}

// projector accumulates the output of one projection.
type projector struct {
	o     Options
	nodes []*core.Node
	segs  []*core.Segment
}

func (p *projector) node(pt Point) {
	p.nodes = append(p.nodes, &core.Node{Pos: pt.Pos, Ref: pt.Ref})
}

// link emits a segment and both endpoints.
func (p *projector) link(a, b Point, ref any) {
	p.node(a)
	p.node(b)
	p.segs = append(p.segs, &core.Segment{
		A:   &core.Node{Pos: a.Pos, Ref: a.Ref},
		B:   &core.Node{Pos: b.Pos, Ref: b.Ref},
		Ref: ref,
	})
}

func (p *projector) project(t Topology) {
	switch v := t.(type) {
	case *Vertex:
		p.vertex(v)
	case *Edge:
		p.edge(v)
	case *Wire:
		p.wire(v)
	case *Face:
		p.face(v)
	case *Shell:
		p.shell(v)
	case *Cell:
		p.cell(v)
	case *CellComplex:
		p.cellComplex(v)
	case *Cluster:
		for _, m := range v.Members {
			p.project(m)
		}
	case *Aperture:
		p.project(v.Topology)
	}
}

// apertureVertex is the graph node standing for a.
func (p *projector) apertureVertex(a *Aperture) Point {
	if p.o.UseFaceInternalVertex && a.Internal != nil {
		return *a.Internal
	}

	return a.Centroid
}

func (p *projector) faceVertex(f *Face) Point {
	if p.o.UseFaceInternalVertex && f.Internal != nil {
		return *f.Internal
	}

	return f.Centroid
}

// vertex links v to its apertures, or emits v alone when it has none.
func (p *projector) vertex(v *Vertex) {
	linked := false
	if p.o.ToExteriorApertures {
		for _, a := range v.Apertures {
			if a == nil {
				continue
			}
			p.link(v.Point, p.apertureVertex(a), nil)
			linked = true
		}
	}
	if !linked {
		p.node(v.Point)
	}
}

func (p *projector) edge(e *Edge) {
	if p.o.Direct {
		p.link(e.A, e.B, e.Ref)
	}
	if p.o.ToExteriorApertures {
		p.edgeApertures(e)
	}
}

// edgeApertures links every aperture of e to both endpoints.
func (p *projector) edgeApertures(e *Edge) {
	for _, a := range e.Apertures {
		if a == nil {
			continue
		}
		c := p.apertureVertex(a)
		p.link(e.A, c, nil)
		p.link(e.B, c, nil)
	}
}

func (p *projector) wire(w *Wire) {
	if !p.o.Direct && !p.o.ToExteriorApertures {
		return
	}
	for _, e := range w.Edges {
		if e == nil {
			continue
		}
		p.link(e.A, e.B, e.Ref)
	}
	if p.o.ToExteriorApertures {
		for _, e := range w.Edges {
			if e != nil {
				p.edgeApertures(e)
			}
		}
	}
}

// face emits the face vertex and links it to edge centres and to apertures
// hosted on its edges.
func (p *projector) face(f *Face) {
	fv := p.faceVertex(f)
	p.node(fv)
	for _, e := range f.Edges {
		if e == nil {
			continue
		}
		if p.o.ToExteriorTopologies {
			p.link(fv, e.centre(), nil)
		}
		if p.o.ToExteriorApertures {
			for _, a := range e.Apertures {
				if a != nil {
					p.link(p.apertureVertex(a), fv, nil)
				}
			}
		}
	}
}

// shell links adjacent face vertices (Direct) and connects each edge centre
// and its apertures to the faces the edge bounds.
func (p *projector) shell(sh *Shell) {
	owners, order := edgeOwners(sh.Faces)

	if p.o.Direct {
		for i, f := range sh.Faces {
			if f == nil {
				continue
			}
			for _, g := range sh.Faces[i+1:] {
				if g != nil && g != f && sharesEdge(f, g) {
					p.link(p.faceVertex(f), p.faceVertex(g), nil)
				}
			}
		}
	}

	for _, e := range order {
		faces := owners[e]
		shared := len(faces) > 1
		for _, f := range faces {
			fv := p.faceVertex(f)
			if (shared && p.o.ViaSharedTopologies) || (!shared && p.o.ToExteriorTopologies) {
				p.link(e.centre(), fv, nil)
			}
			if (shared && p.o.ViaSharedApertures) || (!shared && p.o.ToExteriorApertures) {
				for _, a := range e.Apertures {
					if a != nil {
						p.link(p.apertureVertex(a), fv, nil)
					}
				}
			}
		}
	}
}

// cell emits the cell centroid and links it to face vertices and to
// apertures hosted on its faces.
func (p *projector) cell(c *Cell) {
	p.node(c.Centroid)
	for _, f := range c.Faces {
		if f == nil {
			continue
		}
		if p.o.ToExteriorTopologies {
			p.link(interior(f), c.Centroid, nil)
		}
		if p.o.ToExteriorApertures {
			for _, a := range f.Apertures {
				if a != nil {
					p.link(p.apertureVertex(a), c.Centroid, nil)
				}
			}
		}
	}
}

// cellComplex links adjacent cell centroids (Direct) and connects each face
// vertex and its apertures to the cells the face bounds.
func (p *projector) cellComplex(cc *CellComplex) {
	owners, order := faceOwners(cc.Cells)

	if p.o.Direct {
		for i, c := range cc.Cells {
			if c == nil {
				continue
			}
			for _, d := range cc.Cells[i+1:] {
				if d != nil && d != c && sharesFace(c, d) {
					p.link(c.Centroid, d.Centroid, nil)
				}
			}
		}
	}

	for _, f := range order {
		cells := owners[f]
		shared := len(cells) > 1
		fv := p.faceVertex(f)
		for _, c := range cells {
			if (shared && p.o.ViaSharedTopologies) || (!shared && p.o.ToExteriorTopologies) {
				p.link(fv, c.Centroid, nil)
			}
			if (shared && p.o.ViaSharedApertures) || (!shared && p.o.ToExteriorApertures) {
				for _, a := range f.Apertures {
					if a != nil {
						p.link(p.apertureVertex(a), c.Centroid, nil)
					}
				}
			}
		}
	}
}

// interior is the face's interior point when known, else its centroid.
func interior(f *Face) Point {
	if f.Internal != nil {
		return *f.Internal
	}

	return f.Centroid
}

// edgeOwners maps each distinct edge to the faces listing it, and returns
// the edges in first-seen order.
func edgeOwners(faces []*Face) (map[*Edge][]*Face, []*Edge) {
	owners := make(map[*Edge][]*Face)
	var order []*Edge
	for _, f := range faces {
		if f == nil {
			continue
		}
		for _, e := range f.Edges {
			if e == nil || containsFace(owners[e], f) {
				continue
			}
			if _, seen := owners[e]; !seen {
				order = append(order, e)
			}
			owners[e] = append(owners[e], f)
		}
	}

	return owners, order
}

func faceOwners(cells []*Cell) (map[*Face][]*Cell, []*Face) {
	owners := make(map[*Face][]*Cell)
	var order []*Face
	for _, c := range cells {
		if c == nil {
			continue
		}
		for _, f := range c.Faces {
			if f == nil || containsCell(owners[f], c) {
				continue
			}
			if _, seen := owners[f]; !seen {
				order = append(order, f)
			}
			owners[f] = append(owners[f], c)
		}
	}

	return owners, order
}

func sharesEdge(f, g *Face) bool {
	for _, e := range f.Edges {
		for _, x := range g.Edges {
			if e != nil && e == x {
				return true
			}
		}
	}

	return false
}

func sharesFace(c, d *Cell) bool {
	for _, f := range c.Faces {
		for _, x := range d.Faces {
			if f != nil && f == x {
				return true
			}
		}
	}

	return false
}

func containsFace(fs []*Face, f *Face) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}

	return false
}

func containsCell(cs []*Cell, c *Cell) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}

	return false
}
