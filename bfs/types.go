// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
)

// Unreachable is reported as the hop count between nodes in different
// components, or when either endpoint does not resolve.
const Unreachable = math.MaxInt

var (
	ErrStartNotFound   = errors.New("bfs: start node not found")
	ErrStoreNil        = errors.New("bfs: store is nil")
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option adjusts a walk. A bad option does not panic; BFS reports it as
// ErrOptionViolation before touching the store.
type Option func(*Options)

// Options is the resolved walk configuration.
type Options struct {
	Ctx context.Context

	// OnVisit runs once per dequeued node; an error ends the walk.
	OnVisit func(id string, depth int) error

	// MaxDepth of zero leaves the walk unbounded.
	MaxDepth int

	// FilterNeighbor vetoes the step curr -> neighbor when it returns false.
	FilterNeighbor func(curr, neighbor string) bool

	target string // set by TopologicalDistance; enqueuing it ends the walk
	err    error
}

// DefaultOptions is an unbounded, unfiltered walk under context.Background.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		OnVisit:        func(string, int) error { return nil },
		FilterNeighbor: func(string, string) bool { return true },
	}
}

// WithContext cancels the walk with ctx. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			return
		}
		o.Ctx = ctx
	}
}

func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		o.OnVisit = fn
	}
}

// WithMaxDepth stops expanding nodes at hop d. Zero removes the bound;
// negative values are rejected.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: negative depth bound %d", ErrOptionViolation, d)

			return
		}
		o.MaxDepth = d
	}
}

func WithFilterNeighbor(fn func(curr, neighbor string) bool) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		o.FilterNeighbor = fn
	}
}

// Result is the breadth-first tree rooted at the start node. Depth holds
// every reached ID; Parent omits the root.
type Result struct {
	Order  []string
	Depth  map[string]int
	Parent map[string]string
}

// DistanceTo is the hop count to id, or Unreachable.
func (r *Result) DistanceTo(id string) int {
	d, ok := r.Depth[id]
	if !ok {
		return Unreachable
	}

	return d
}

// PathTo walks Parent back from dest and returns the IDs root first.
func (r *Result) PathTo(dest string) ([]string, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: %q was not reached", dest)
	}
	ids := []string{dest}
	for prev, ok := r.Parent[dest]; ok; prev, ok = r.Parent[prev] {
		ids = append(ids, prev)
	}
	slices.Reverse(ids)

	return ids, nil
}
