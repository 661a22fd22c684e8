// SPDX-License-Identifier: MIT
// Package: topograph/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • idFn       = DecimalIDs         ("0","1","2",...)
//   • rng        = nil                (pure/deterministic unless seeded)
//   • weightFn   = ConstantWeight(DefaultSegmentWeight)
//   • weightKey  = ""                 (no edge attribute written)
//   • left/right = "L" / "R"
//   • origin     = (0,0,0), spacing = 1, radius = 1

package builder

import (
	"math/rand"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	idFn IDFn
	rng  *rand.Rand

	// weightFn feeds the weightKey attribute of every edge created.
	weightFn  WeightFn
	weightKey string

	leftPrefix  string
	rightPrefix string

	origin  v3.Vec
	spacing float64
	radius  float64
}

const (
	defaultLeftPrefix  = "L"
	defaultRightPrefix = "R"
	defaultSpacing     = 1.0
	defaultRadius      = 1.0
)

// newBuilderConfig constructs a config with deterministic defaults and
// applies all options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:        DecimalIDs,
		weightFn:    ConstantWeight(DefaultSegmentWeight),
		leftPrefix:  defaultLeftPrefix,
		rightPrefix: defaultRightPrefix,
		spacing:     defaultSpacing,
		radius:      defaultRadius,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.leftPrefix == "" {
		cfg.leftPrefix = defaultLeftPrefix
	}
	if cfg.rightPrefix == "" {
		cfg.rightPrefix = defaultRightPrefix
	}

	return cfg
}
