// SPDX-License-Identifier: MIT

package builder

import v3 "github.com/deadsy/sdfx/vec/v3"

// Wheel lays out W_n: the rim C_{n-1} on the circle plus the hub "Center",
// with spokes emitted before the rim.
//
// Complexity: O(n) nodes and O(2n-2) segments.
func Wheel(n int) Constructor {
	return func(sc *Scene, cfg builderConfig) error {
		if err := validateMin(MethodWheel, n, MinWheelNodes); err != nil {
			return err
		}
		hub, err := sc.point(MethodWheel, CenterVertexID, v3.Vec{}, cfg)
		if err != nil {
			return err
		}
		rim, err := sc.ring(MethodWheel, n-1, 0, cfg)
		if err != nil {
			return err
		}
		for _, r := range rim {
			if err = sc.link(MethodWheel, hub, r, cfg); err != nil {
				return err
			}
		}

		return sc.closeRing(MethodWheel, rim, cfg)
	}
}
