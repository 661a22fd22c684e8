// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BuilderOption mutates builderConfig before constructors run.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the node ID scheme. A nil fn is ignored.
func WithIDScheme(fn IDFn) BuilderOption {
	return func(c *builderConfig) {
		if fn != nil {
			c.idFn = fn
		}
	}
}

// WithRand sets the random source. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeightFn sets the edge weight distribution. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}

	return func(c *builderConfig) { c.weightFn = fn }
}

// WithWeightKey names the edge attribute the weight distribution is written
// to, for example "length" or "cost". Panics on an empty key.
func WithWeightKey(key string) BuilderOption {
	if key == "" {
		panic("builder: WithWeightKey(\"\")")
	}

	return func(c *builderConfig) { c.weightKey = key }
}

// WithPartitionPrefix sets the bipartite side prefixes; empty means default.
func WithPartitionPrefix(left, right string) BuilderOption {
	return func(c *builderConfig) {
		c.leftPrefix, c.rightPrefix = left, right
	}
}

// WithOrigin translates every layout by o.
func WithOrigin(o v3.Vec) BuilderOption {
	return func(c *builderConfig) { c.origin = o }
}

// WithSpacing sets the distance between neighbouring points of Path, Grid
// and CompleteBipartite. Panics if d ≤ 0.
func WithSpacing(d float64) BuilderOption {
	if d <= 0 {
		panic("builder: WithSpacing(d<=0)")
	}

	return func(c *builderConfig) { c.spacing = d }
}

// WithRadius sets the circle radius of Cycle, Star, Wheel, Complete and
// RandomSparse. Panics if r ≤ 0.
func WithRadius(r float64) BuilderOption {
	if r <= 0 {
		panic("builder: WithRadius(r<=0)")
	}

	return func(c *builderConfig) { c.radius = r }
}
