// Package dijkstra defines the options, sentinel errors and cost model for
// the weighted searches over a core.Store.
//
// Cost model:
//
//	– Edge cost (moving along the registered segment a→b):
//	   • edgeKey == ""                       → 1.0
//	   • attribute strings.ToLower(edgeKey) on the segment's kernel entity
//	   • absent, key is "distance"/"length"  → segment length (LengthMeasurer),
//	                                           else Euclidean endpoint distance
//	   • absent, any other key               → 1.0
//	– Vertex cost (entering node b): vertexKey == "" or absent attribute → 0,
//	  otherwise the attribute on b's kernel entity. The key is used as given.
//	– Step cost = edge cost + vertex cost of the node entered. The start node's
//	  vertex cost is never added.
//
// Options:
//
//	– WithAttributes(geom.AttributeSource)    attribute lookups
//	– WithLengths(geom.LengthMeasurer)        "distance"/"length" fallback
//	– WithKernel(geom.Kernel)                 both of the above plus synthesis
//	– WithSynthesizer(geom.SegmentSynthesizer) forwarded to route.ConstructPath
//	– WithTolerance(float64)                  resolution of start and end
//	– WithContext(context.Context)            parent for the search span
//
// Errors (sentinel):
//
//	– ErrNilStore          if the store pointer is nil.
//	– ErrNegativeCost      if a resolved step cost is negative.
//	– ErrInvalidTimeLimit  if ShortestPaths receives a limit ≤ 0.
package dijkstra

import (
	"context"
	"errors"

	"github.com/katalvlaran/topograph/geom"
	"github.com/katalvlaran/topograph/internal/deadline"
)

// Sentinel errors returned by the searches.
var (
	// ErrNilStore indicates that a nil *core.Store was passed.
	ErrNilStore = errors.New("dijkstra: store is nil")

	// ErrNegativeCost indicates an attribute produced a negative step cost.
	ErrNegativeCost = errors.New("dijkstra: negative step cost encountered")

	// ErrInvalidTimeLimit indicates a time limit ≤ 0.
	ErrInvalidTimeLimit = deadline.ErrInvalidTimeLimit
)

// Options configures the searches.
//
// Attributes – attribute source for edge and vertex keys; nil means every
// attribute is absent.
// Lengths    – length source for the "distance"/"length" fallback; nil means
// Euclidean endpoint distance.
// Synth      – connector source for route.ConstructPath.
// Tolerance  – coincidence tolerance used to resolve start and end. Zero
// means the store tolerance.
// Ctx        – parent context for telemetry spans. Searches are not
// cancelled through it; ShortestPaths is bounded by its time limit.
type Options struct {
	Attributes geom.AttributeSource
	Lengths    geom.LengthMeasurer
	Synth      geom.SegmentSynthesizer
	Tolerance  float64
	Ctx        context.Context
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// DefaultOptions returns Options with no kernel, the store tolerance and a
// background context.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithAttributes sets the attribute source.
func WithAttributes(a geom.AttributeSource) Option {
	return func(o *Options) { o.Attributes = a }
}

// WithLengths sets the length source used for "distance" and "length" keys.
func WithLengths(l geom.LengthMeasurer) Option {
	return func(o *Options) { o.Lengths = l }
}

// WithSynthesizer sets the connector source used when assembling paths.
func WithSynthesizer(k geom.SegmentSynthesizer) Option {
	return func(o *Options) { o.Synth = k }
}

// WithKernel sets attributes, lengths and synthesis from one kernel.
func WithKernel(k geom.Kernel) Option {
	return func(o *Options) {
		o.Attributes = k
		o.Lengths = k
		o.Synth = k
	}
}

// WithTolerance sets the tolerance used to resolve start and end.
// Must be positive; a non-positive value panics.
func WithTolerance(tol float64) Option {
	if tol <= 0 {
		panic("dijkstra: WithTolerance(tol<=0)")
	}

	return func(o *Options) { o.Tolerance = tol }
}

// WithContext sets the parent context for the search span.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}
