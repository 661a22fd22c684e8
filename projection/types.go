// SPDX-License-Identifier: MIT

package projection

import (
	"errors"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/geom"
)

var (
	// ErrNilStore is returned when a nil *core.Store is passed.
	ErrNilStore = errors.New("projection: store is nil")

	// ErrNilTopology indicates a nil entry in the input list.
	ErrNilTopology = errors.New("projection: nil topology")
)

// Kind names a topology variant.
type Kind int

// Topology variants, lowest dimension first.
const (
	KindVertex Kind = iota
	KindEdge
	KindWire
	KindFace
	KindShell
	KindCell
	KindCellComplex
	KindCluster
	KindAperture
)

var kindNames = [...]string{"vertex", "edge", "wire", "face", "shell", "cell", "cellcomplex", "cluster", "aperture"}

// String returns the lower-case variant name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

// Topology is the closed set of inputs ByTopology understands. Only the
// variant types of this package implement it.
type Topology interface {
	Kind() Kind
	sealed()
}

// Point is a position plus the kernel entity whose attributes the projected
// node should answer with.
type Point struct {
	Pos v3.Vec
	Ref geom.Entity
}

// Aperture is an opening hosted by an edge, face or vertex. Its graph node
// is Centroid, or Internal when internal vertices are requested and one was
// supplied. As a top-level input it projects its Topology.
type Aperture struct {
	Topology Topology
	Centroid Point
	Internal *Point
}

// Vertex is a single point with optional apertures.
type Vertex struct {
	Point
	Apertures []*Aperture
}

// Edge is a straight or curved connector between A and B. Centroid defaults
// to the midpoint of A and B.
type Edge struct {
	A, B      Point
	Ref       geom.Entity
	Centroid  *Point
	Apertures []*Aperture
}

// Wire is a chain of edges.
type Wire struct {
	Edges []*Edge
}

// Face is a bounded surface. Edges shared with other faces must be the same
// *Edge value so that Shell can detect adjacency.
type Face struct {
	Centroid  Point
	Internal  *Point
	Edges     []*Edge
	Apertures []*Aperture
}

// Shell is a set of faces connected through shared edges.
type Shell struct {
	Faces []*Face
}

// Cell is a closed volume. Centroid should be an interior point. Faces
// shared with other cells must be the same *Face value.
type Cell struct {
	Centroid Point
	Faces    []*Face
}

// CellComplex is a set of cells connected through shared faces.
type CellComplex struct {
	Cells []*Cell
}

// Cluster is an arbitrary collection projected member by member.
type Cluster struct {
	Members []Topology
}

func (*Vertex) Kind() Kind      { return KindVertex }
func (*Edge) Kind() Kind        { return KindEdge }
func (*Wire) Kind() Kind        { return KindWire }
func (*Face) Kind() Kind        { return KindFace }
func (*Shell) Kind() Kind       { return KindShell }
func (*Cell) Kind() Kind        { return KindCell }
func (*CellComplex) Kind() Kind { return KindCellComplex }
func (*Cluster) Kind() Kind     { return KindCluster }
func (*Aperture) Kind() Kind    { return KindAperture }

func (*Vertex) sealed()      {}
func (*Edge) sealed()        {}
func (*Wire) sealed()        {}
func (*Face) sealed()        {}
func (*Shell) sealed()       {}
func (*Cell) sealed()        {}
func (*CellComplex) sealed() {}
func (*Cluster) sealed()     {}
func (*Aperture) sealed()    {}

// centre returns the edge centroid or the endpoint midpoint.
func (e *Edge) centre() Point {
	if e.Centroid != nil {
		return *e.Centroid
	}

	return Point{Pos: geom.Midpoint(e.A.Pos, e.B.Pos), Ref: e.Ref}
}

// Option configures ByTopology.
type Option func(*Options)

// Options selects which relations become segments.
type Options struct {
	// Direct links the topology's own structure: an edge's endpoints, a
	// wire's edges, adjacent faces of a shell, adjacent cells of a complex.
	Direct bool

	// ViaSharedTopologies links a shared edge (shell) or face (complex) to
	// every face or cell it joins.
	ViaSharedTopologies bool

	// ViaSharedApertures links apertures on shared edges or faces to every
	// face or cell the host joins.
	ViaSharedApertures bool

	// ToExteriorTopologies links unshared boundary parts to their owner.
	ToExteriorTopologies bool

	// ToExteriorApertures links apertures on unshared boundary parts to
	// their owner.
	ToExteriorApertures bool

	// UseFaceInternalVertex picks a face's Internal point over its Centroid.
	UseFaceInternalVertex bool

	// Tolerance merges coincident projected points; zero means the store's.
	Tolerance float64
}

// DefaultOptions returns Direct only.
func DefaultOptions() Options {
	return Options{Direct: true}
}

// WithDirect toggles Direct.
func WithDirect(on bool) Option { return func(o *Options) { o.Direct = on } }

// WithViaSharedTopologies toggles ViaSharedTopologies.
func WithViaSharedTopologies(on bool) Option {
	return func(o *Options) { o.ViaSharedTopologies = on }
}

// WithViaSharedApertures toggles ViaSharedApertures.
func WithViaSharedApertures(on bool) Option {
	return func(o *Options) { o.ViaSharedApertures = on }
}

// WithToExteriorTopologies toggles ToExteriorTopologies.
func WithToExteriorTopologies(on bool) Option {
	return func(o *Options) { o.ToExteriorTopologies = on }
}

// WithToExteriorApertures toggles ToExteriorApertures.
func WithToExteriorApertures(on bool) Option {
	return func(o *Options) { o.ToExteriorApertures = on }
}

// WithUseFaceInternalVertex toggles UseFaceInternalVertex.
func WithUseFaceInternalVertex(on bool) Option {
	return func(o *Options) { o.UseFaceInternalVertex = on }
}

// WithTolerance sets the merge tolerance.
func WithTolerance(tol float64) Option {
	if tol <= 0 {
		panic("projection: WithTolerance(tol<=0)")
	}

	return func(o *Options) { o.Tolerance = tol }
}
