// SPDX-License-Identifier: MIT

package builder

import v3 "github.com/deadsy/sdfx/vec/v3"

// Path lays out P_n: n points along +X, cfg.spacing apart, linked in order.
//
// Complexity: O(n) nodes and O(n-1) segments.
func Path(n int) Constructor {
	return func(sc *Scene, cfg builderConfig) error {
		if err := validateMin(MethodPath, n, MinPathNodes); err != nil {
			return err
		}
		prev, err := sc.point(MethodPath, cfg.idFn(0), v3.Vec{}, cfg)
		if err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			cur, err := sc.point(MethodPath, cfg.idFn(i), v3.Vec{X: float64(i) * cfg.spacing}, cfg)
			if err != nil {
				return err
			}
			if err = sc.link(MethodPath, prev, cur, cfg); err != nil {
				return err
			}
			prev = cur
		}

		return nil
	}
}
