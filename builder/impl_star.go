// SPDX-License-Identifier: MIT

package builder

import v3 "github.com/deadsy/sdfx/vec/v3"

// Star lays out a hub "Center" at the origin and n-1 leaves evenly spaced on
// the circle, each linked to the hub. Leaf IDs are cfg.idFn(0..n-2).
//
// Complexity: O(n) nodes and O(n-1) segments.
func Star(n int) Constructor {
	return func(sc *Scene, cfg builderConfig) error {
		if err := validateMin(MethodStar, n, MinStarNodes); err != nil {
			return err
		}
		hub, err := sc.point(MethodStar, CenterVertexID, v3.Vec{}, cfg)
		if err != nil {
			return err
		}
		leaves, err := sc.ring(MethodStar, n-1, 0, cfg)
		if err != nil {
			return err
		}
		for _, leaf := range leaves {
			if err = sc.link(MethodStar, hub, leaf, cfg); err != nil {
				return err
			}
		}

		return nil
	}
}
