// SPDX-License-Identifier: MIT

package dfs

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/topograph/geom"
	"github.com/katalvlaran/topograph/internal/deadline"
)

// Visitation state of a node during cycle detection.
const (
	White = iota // not visited yet
	Gray         // on the current DFS stack
	Black        // it and all its descendants have been explored
)

var (
	// ErrStoreNil is returned when a nil *core.Store is passed.
	ErrStoreNil = errors.New("dfs: store is nil")

	// ErrStartNotFound indicates that the start node does not resolve.
	ErrStartNotFound = errors.New("dfs: start node not found")

	// ErrInvalidTimeLimit indicates WithTimeLimit received d ≤ 0.
	ErrInvalidTimeLimit = deadline.ErrInvalidTimeLimit
)

// Option configures a traversal or path search.
type Option func(*Options)

// Options holds the parameters shared by DFS, Path and AllPaths.
// Hooks, MaxDepth, FilterNeighbor and FullTraversal apply to DFS only;
// TimeLimit, Tolerance and Synth apply to Path and AllPaths.
type Options struct {
	// Ctx allows cancellation of DFS and parents the search spans of Path
	// and AllPaths. Defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked on discovering a node (pre-order).
	// Returning an error aborts traversal with that error.
	OnVisit func(id string) error

	// OnExit, if non-nil, is invoked after all descendants of a node have
	// been explored (post-order). Returning an error aborts traversal.
	OnExit func(id string) error

	// MaxDepth, if non-negative, limits the traversal depth. A depth of 0
	// visits only the start node. Default is -1 (no limit).
	MaxDepth int

	// FilterNeighbor, if non-nil, is called for each neighbour ID.
	// Return false to skip it.
	FilterNeighbor func(id string) bool

	// FullTraversal restarts DFS from every unvisited node, covering
	// every connected component.
	FullTraversal bool

	// SkippedNeighbors counts neighbours rejected by FilterNeighbor.
	SkippedNeighbors int

	// TimeLimit bounds Path and AllPaths; zero means unlimited.
	TimeLimit time.Duration

	// Tolerance resolves start and end; zero means the store tolerance.
	Tolerance float64

	// Synth supplies connectors when assembling paths.
	Synth geom.SegmentSynthesizer

	limitSet bool
}

// DefaultOptions returns Options with a background context, no hooks, no
// depth limit, no filtering, single-source traversal and no time limit.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the context. Passing nil has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as a pre-order hook.
func WithOnVisit(fn func(id string) error) Option {
	return func(o *Options) { o.OnVisit = fn }
}

// WithOnExit installs fn as a post-order hook.
func WithOnExit(fn func(id string) error) Option {
	return func(o *Options) { o.OnExit = fn }
}

// WithMaxDepth limits traversal depth to limit.
func WithMaxDepth(limit int) Option {
	return func(o *Options) { o.MaxDepth = limit }
}

// WithFilterNeighbor filters neighbour IDs; fn(id) == false skips id.
func WithFilterNeighbor(fn func(id string) bool) Option {
	return func(o *Options) { o.FilterNeighbor = fn }
}

// WithFullTraversal makes DFS cover every connected component.
func WithFullTraversal() Option {
	return func(o *Options) { o.FullTraversal = true }
}

// WithTimeLimit bounds Path and AllPaths to d of wall-clock time, polled
// once per worklist step. d ≤ 0 makes the search fail with ErrInvalidTimeLimit.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		o.TimeLimit = d
		o.limitSet = true
	}
}

// WithTolerance sets the tolerance used to resolve start and end.
func WithTolerance(tol float64) Option {
	if tol <= 0 {
		panic("dfs: WithTolerance(tol<=0)")
	}

	return func(o *Options) { o.Tolerance = tol }
}

// WithSynthesizer sets the connector source used when assembling paths.
func WithSynthesizer(k geom.SegmentSynthesizer) Option {
	return func(o *Options) { o.Synth = k }
}

// Result captures the outcome of a depth-first traversal.
type Result struct {
	// Order records node IDs in the sequence they finished (post-order).
	Order []string

	// Depth maps each node ID to its tree depth from its root.
	Depth map[string]int

	// Parent maps each node ID to the node it was discovered from.
	// Roots do not appear.
	Parent map[string]string

	// Visited flags the nodes reached.
	Visited map[string]bool

	// SkippedNeighbors reports how many neighbours FilterNeighbor rejected.
	SkippedNeighbors int
}
