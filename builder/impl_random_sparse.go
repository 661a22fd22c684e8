// SPDX-License-Identifier: MIT

package builder

import "fmt"

// RandomSparse lays out n points on the circle and keeps each chord i<j
// independently with probability p (Erdős–Rényi G(n,p)). It requires a
// random source (WithSeed or WithRand).
//
// Complexity: O(n²) pair checks. Deterministic per seed.
func RandomSparse(n int, p float64) Constructor {
	return func(sc *Scene, cfg builderConfig) error {
		if err := validateMin(MethodRandomSparse, n, 1); err != nil {
			return err
		}
		if err := validateProbability(MethodRandomSparse, p); err != nil {
			return err
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", MethodRandomSparse, ErrNeedRandSource)
		}

		nodes, err := sc.ring(MethodRandomSparse, n, 0, cfg)
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if cfg.rng.Float64() >= p {
					continue
				}
				if err = sc.link(MethodRandomSparse, nodes[i], nodes[j], cfg); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
