// SPDX-License-Identifier: MIT

package builder

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/core"
)

// CompleteBipartite lays out K_{n1,n2}: the left side on x=0 and the right
// side on x=spacing, both stepping along +Y, with every cross link. IDs are
// leftPrefix+i and rightPrefix+j. Links are emitted right node by right node.
//
// Complexity: O(n1+n2) nodes and O(n1·n2) segments.
func CompleteBipartite(n1, n2 int) Constructor {
	return func(sc *Scene, cfg builderConfig) error {
		if err := validatePartition(MethodCompleteBipartite, n1, n2); err != nil {
			return err
		}

		left := make([]*core.Node, 0, n1)
		for i := 0; i < n1; i++ {
			rel := v3.Vec{Y: float64(i) * cfg.spacing}
			nd, err := sc.point(MethodCompleteBipartite, vertexID(cfg.leftPrefix, i), rel, cfg)
			if err != nil {
				return err
			}
			left = append(left, nd)
		}
		for j := 0; j < n2; j++ {
			rel := v3.Vec{X: cfg.spacing, Y: float64(j) * cfg.spacing}
			r, err := sc.point(MethodCompleteBipartite, vertexID(cfg.rightPrefix, j), rel, cfg)
			if err != nil {
				return err
			}
			for _, l := range left {
				if err = sc.link(MethodCompleteBipartite, l, r, cfg); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
