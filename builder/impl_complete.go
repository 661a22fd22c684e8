// SPDX-License-Identifier: MIT

package builder

import v3 "github.com/deadsy/sdfx/vec/v3"

// Complete lays out K_n on the circle with every chord. K_1 is a single
// point at the origin.
//
// Complexity: O(n) nodes and O(n²) segments.
func Complete(n int) Constructor {
	return func(sc *Scene, cfg builderConfig) error {
		if err := validateMin(MethodComplete, n, 1); err != nil {
			return err
		}
		if n == 1 {
			_, err := sc.point(MethodComplete, cfg.idFn(0), v3.Vec{}, cfg)

			return err
		}
		nodes, err := sc.ring(MethodComplete, n, 0, cfg)
		if err != nil {
			return err
		}

		return sc.linkAll(MethodComplete, nodes, cfg)
	}
}
