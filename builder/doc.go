// Package builder lays out deterministic point/segment scenes for tests,
// examples, benchmarks and the CLI "generate" command.
//
// A scene is a geom.Memory kernel plus a core.Store over it: every node
// carries a *geom.Vertex as Ref and every segment a *geom.Edge, so kernel
// attributes (weights written through WithWeightKey) are visible to the
// weighted searches.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – BuildScene(storeOpts, builderOpts, constructors...)
//     – Constructor: func(*Scene, builderConfig) error
//   - Layouts (impl_*.go):
//     – Path, Cycle, Star, Wheel, Complete, CompleteBipartite, Grid, RandomSparse
//   - Node ID schemes (IDFn, ParseIDScheme):
//     – DecimalIDs ("0","1",…), LetterIDs ("A"…"Z","AA",…), HexIDs,
//     Base36IDs, PrefixedIDs(prefix)
//   - Segment weights (WeightFn, written under WithWeightKey):
//     – ConstantWeight, LengthWeight, UniformWeight, NormalWeight,
//     ExponentialWeight; values are clamped at zero
//   - Geometry knobs: WithOrigin, WithSpacing, WithRadius.
//
// Guarantees:
//
//   - Composition: constructors run in order; coincident points merge, and an
//     existing segment between two nodes is never duplicated.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors never panic; they return ErrTooFewVertices,
//     ErrInvalidProbability, ErrNeedRandSource or ErrConstructFailed wrapped
//     with the method name.
//   - Same inputs, options and seed give the same scene.
//
// Circle layouts place points 2·r·sin(π/n) apart; keep that above the
// store's coincidence radius or neighbouring points will merge.
package builder
