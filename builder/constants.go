// SPDX-License-Identifier: MIT

package builder

// Method names used as error context.
const (
	MethodCycle             = "Cycle"
	MethodPath              = "Path"
	MethodStar              = "Star"
	MethodWheel             = "Wheel"
	MethodComplete          = "Complete"
	MethodCompleteBipartite = "CompleteBipartite"
	MethodRandomSparse      = "RandomSparse"
	MethodGrid              = "Grid"
)

// CenterVertexID is the fixed ID of the hub in Star and Wheel.
const CenterVertexID = "Center"

// Minimum sizes per constructor.
const (
	MinCycleNodes = 3
	MinPathNodes  = 2
	MinStarNodes  = 2
	MinWheelNodes = 4
	MinGridDim    = 1
	MinPartition  = 1
)

// Probability bounds for RandomSparse.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)
