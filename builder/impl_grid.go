// SPDX-License-Identifier: MIT

package builder

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/core"
)

// Grid lays out a rows×cols 4-neighbour lattice in the XY plane: column c at
// x = c·spacing, row r at y = r·spacing, IDs "r,c". Points are placed
// row-major; each point links right, then up.
//
// Complexity: O(R·C) nodes and O(2·R·C) segments.
func Grid(rows, cols int) Constructor {
	return func(sc *Scene, cfg builderConfig) error {
		if err := validateMin(MethodGrid, rows, MinGridDim); err != nil {
			return err
		}
		if err := validateMin(MethodGrid, cols, MinGridDim); err != nil {
			return err
		}

		nodes := make([][]*core.Node, rows)
		for r := 0; r < rows; r++ {
			nodes[r] = make([]*core.Node, cols)
			for c := 0; c < cols; c++ {
				rel := v3.Vec{X: float64(c) * cfg.spacing, Y: float64(r) * cfg.spacing}
				nd, err := sc.point(MethodGrid, gridVertexID(r, c), rel, cfg)
				if err != nil {
					return err
				}
				nodes[r][c] = nd
			}
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err := sc.link(MethodGrid, nodes[r][c], nodes[r][c+1], cfg); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := sc.link(MethodGrid, nodes[r][c], nodes[r+1][c], cfg); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
