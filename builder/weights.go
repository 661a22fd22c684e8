// SPDX-License-Identifier: MIT

package builder

import (
	"math"
	"math/rand"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/geom"
)

// DefaultSegmentWeight is written under the weight key when no weight
// function is configured.
const DefaultSegmentWeight = 1.0

// WeightFn computes the attribute value of a new segment from its endpoint
// positions and the configured random source (nil unless seeded).
// Results are clamped to ≥ 0 before they reach the kernel, since the
// weighted searches reject negative step costs.
type WeightFn func(rng *rand.Rand, a, b v3.Vec) float64

// ConstantWeight returns w for every segment.
func ConstantWeight(w float64) WeightFn {
	return func(*rand.Rand, v3.Vec, v3.Vec) float64 { return w }
}

// LengthWeight returns scale times the segment length.
func LengthWeight(scale float64) WeightFn {
	return func(_ *rand.Rand, a, b v3.Vec) float64 { return scale * geom.Distance(a, b) }
}

// UniformWeight draws from [lo, hi). Without a random source it returns
// the midpoint.
func UniformWeight(lo, hi float64) WeightFn {
	return func(rng *rand.Rand, _, _ v3.Vec) float64 {
		if rng == nil {
			return (lo + hi) / 2
		}
		return lo + rng.Float64()*(hi-lo)
	}
}

// NormalWeight draws from N(mean, stddev). Without a random source it
// returns mean.
func NormalWeight(mean, stddev float64) WeightFn {
	return func(rng *rand.Rand, _, _ v3.Vec) float64 {
		if rng == nil {
			return mean
		}
		return mean + rng.NormFloat64()*stddev
	}
}

// ExponentialWeight draws from Exp(rate). Without a random source it
// returns the mean 1/rate.
func ExponentialWeight(rate float64) WeightFn {
	return func(rng *rand.Rand, _, _ v3.Vec) float64 {
		if rng == nil {
			return 1 / rate
		}
		return rng.ExpFloat64() / rate
	}
}

// weigh evaluates cfg.weightFn for a→b, clamped at zero.
func (cfg builderConfig) weigh(a, b v3.Vec) float64 {
	w := cfg.weightFn(cfg.rng, a, b)
	if math.IsNaN(w) || w < 0 {
		return 0
	}

	return w
}

// WithConstantWeight writes w on every segment.
func WithConstantWeight(w float64) BuilderOption { return WithWeightFn(ConstantWeight(w)) }

// WithLengthWeight writes scale·length on every segment.
func WithLengthWeight(scale float64) BuilderOption { return WithWeightFn(LengthWeight(scale)) }

// WithUniformWeight draws segment weights from [lo, hi). Panics if hi < lo.
func WithUniformWeight(lo, hi float64) BuilderOption {
	if hi < lo {
		panic("builder: WithUniformWeight(hi<lo)")
	}

	return WithWeightFn(UniformWeight(lo, hi))
}

// WithNormalWeight draws segment weights from N(mean, stddev). Panics if stddev < 0.
func WithNormalWeight(mean, stddev float64) BuilderOption {
	if stddev < 0 {
		panic("builder: WithNormalWeight(stddev<0)")
	}

	return WithWeightFn(NormalWeight(mean, stddev))
}

// WithExponentialWeight draws segment weights from Exp(rate). Panics if rate ≤ 0.
func WithExponentialWeight(rate float64) BuilderOption {
	if rate <= 0 {
		panic("builder: WithExponentialWeight(rate<=0)")
	}

	return WithWeightFn(ExponentialWeight(rate))
}
