// Package geom declares the contracts through which the graph engine talks to
// an external geometry kernel, plus a small in-memory kernel (Memory) that
// satisfies all of them.
//
// The engine never builds or owns geometry. It only needs to:
//   - read the coordinates of a point entity (PointAccessor),
//   - read the two endpoint entities of a connector (EdgeAccessor),
//   - ask the kernel to create a connector between two points (SegmentSynthesizer),
//   - read a numeric attribute by name (AttributeSource),
//   - measure the length of a connector (LengthMeasurer).
//
// Entities are opaque to the engine; whatever the kernel hands out is stored as
// a back-reference and handed back on later calls.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Entity is an opaque back-reference to a kernel object (point or connector).
type Entity = any

// PointAccessor returns the coordinates of a point entity.
type PointAccessor interface {
	Position(e Entity) (v3.Vec, bool)
}

// EdgeAccessor returns the endpoint entities of a connector entity.
type EdgeAccessor interface {
	Endpoints(e Entity) (a, b Entity, ok bool)
}

// SegmentSynthesizer creates a new connector between two point entities.
type SegmentSynthesizer interface {
	Synthesize(a, b Entity) (Entity, error)
}

// AttributeSource looks up a named numeric attribute on an entity.
// The boolean reports presence, so a stored zero is distinguishable from
// a missing key.
type AttributeSource interface {
	Attribute(e Entity, key string) (float64, bool)
}

// LengthMeasurer returns the geometric length of a connector entity.
type LengthMeasurer interface {
	Length(e Entity) (float64, bool)
}

// Kernel bundles every contract the engine consumes.
type Kernel interface {
	PointAccessor
	EdgeAccessor
	SegmentSynthesizer
	AttributeSource
	LengthMeasurer
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b v3.Vec) float64 {
	return a.Sub(b).Length()
}

// SquaredDistance returns |a-b|².
func SquaredDistance(a, b v3.Vec) float64 {
	d := a.Sub(b)

	return d.Dot(d)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b v3.Vec) v3.Vec {
	return a.Add(b).MulScalar(0.5)
}

// Centroid returns the arithmetic mean of pts, or the origin for an empty input.
func Centroid(pts ...v3.Vec) v3.Vec {
	if len(pts) == 0 {
		return v3.Vec{}
	}
	var sum v3.Vec
	for _, p := range pts {
		sum = sum.Add(p)
	}

	return sum.MulScalar(1 / float64(len(pts)))
}

// Finite reports whether every component of p is a finite number.
func Finite(p v3.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}
