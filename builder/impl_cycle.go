// SPDX-License-Identifier: MIT

package builder

// Cycle lays out C_n as a regular n-gon of radius cfg.radius.
//
// Complexity: O(n) nodes and O(n) segments.
func Cycle(n int) Constructor {
	return func(sc *Scene, cfg builderConfig) error {
		if err := validateMin(MethodCycle, n, MinCycleNodes); err != nil {
			return err
		}
		nodes, err := sc.ring(MethodCycle, n, 0, cfg)
		if err != nil {
			return err
		}

		return sc.closeRing(MethodCycle, nodes, cfg)
	}
}
