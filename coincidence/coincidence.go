// Package coincidence implements tolerance-keyed point identity: given a query
// point and a tolerance, find the stored point that "is" the query point.
//
// Two indexes are provided. Linear scans every entry in insertion order.
// Spatial answers the same question through an R-tree window query and then
// re-checks candidates exactly, so both indexes return the same ID for the
// same sequence of calls.
//
// Tolerance units depend on the Metric:
//
//	MetricSquared   (default)  coincident iff |p-q|² < tol
//	MetricEuclidean            coincident iff |p-q|  < tol
//
// MetricSquared compares the squared distance against the raw tolerance, so
// the effective radius is √tol. Call sites that pass 0.0001 therefore match
// within 0.01. MetricEuclidean is the metrically correct alternative.
package coincidence

import (
	"errors"
	"fmt"
	"math"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/geom"
)

// ErrUnknownMetric is returned by ParseMetric for an unrecognized name.
var ErrUnknownMetric = errors.New("coincidence: unknown metric")

// Metric selects how a tolerance is compared against point separation.
type Metric uint8

const (
	// MetricSquared compares the squared distance against the tolerance.
	MetricSquared Metric = iota
	// MetricEuclidean compares the distance against the tolerance.
	MetricEuclidean
)

// String returns the config name of m.
func (m Metric) String() string {
	switch m {
	case MetricSquared:
		return "squared"
	case MetricEuclidean:
		return "euclidean"
	default:
		return fmt.Sprintf("Metric(%d)", uint8(m))
	}
}

// ParseMetric maps a config name ("squared", "euclidean") to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "squared":
		return MetricSquared, nil
	case "euclidean":
		return MetricEuclidean, nil
	default:
		return 0, fmt.Errorf("ParseMetric(%q): %w", s, ErrUnknownMetric)
	}
}

// Coincident reports whether p and q are the same point under tol.
func (m Metric) Coincident(p, q v3.Vec, tol float64) bool {
	if m == MetricEuclidean {
		return geom.Distance(p, q) < tol
	}

	return geom.SquaredDistance(p, q) < tol
}

// Radius converts tol into a search radius in coordinate units.
func (m Metric) Radius(tol float64) float64 {
	if tol <= 0 {
		return 0
	}
	if m == MetricEuclidean {
		return tol
	}

	return math.Sqrt(tol)
}

// Index maps stored point IDs to positions and answers coincidence queries.
// Implementations are not safe for concurrent use; the owning store
// serializes access.
type Index interface {
	// Insert stores id at p. Re-inserting an existing id moves it and keeps
	// its original insertion rank.
	Insert(id string, p v3.Vec)
	// Remove deletes id; unknown ids are ignored.
	Remove(id string)
	// Find returns the earliest inserted id coincident with p under tol.
	Find(p v3.Vec, tol float64) (string, bool)
	// Within returns every id whose Euclidean distance to p is below radius,
	// in insertion order.
	Within(p v3.Vec, radius float64) []string
	// Len returns the number of stored ids.
	Len() int
	// Metric returns the metric used by Find.
	Metric() Metric
	// Clone returns an independent copy.
	Clone() Index
}

// Kind names an Index implementation for configuration.
type Kind string

const (
	// KindLinear selects NewLinear.
	KindLinear Kind = "linear"
	// KindSpatial selects NewSpatial.
	KindSpatial Kind = "rtree"
)

// ErrUnknownKind is returned by New for an unrecognized Kind.
var ErrUnknownKind = errors.New("coincidence: unknown index kind")

// New builds an empty Index of the requested kind.
func New(kind Kind, m Metric) (Index, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case "", KindLinear:
		return NewLinear(m), nil
	case KindSpatial:
		return NewSpatial(m), nil
	default:
		return nil, fmt.Errorf("New(%q): %w", kind, ErrUnknownKind)
	}
}
