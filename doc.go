// Package topograph is an adjacency engine for point-and-segment geometry:
// nodes are positions matched by a coincidence tolerance, segments are the
// undirected connectors between them, and the searches answer how those
// positions reach each other.
//
// What lives where:
//
//	coincidence/ tolerance metric plus linear and R-tree position indexes
//	core/        Store: thread-safe node catalog, adjacency and segments
//	geom/        kernel interfaces and the in-memory Memory kernel
//	route/       Path values and ConstructPath
//	bfs/         breadth-first traversal and topological distance
//	dfs/         depth-first traversal, components, cycles, Path, AllPaths
//	dijkstra/    attribute-weighted ShortestPath and ShortestPaths
//	metrics/     degrees, density, diameter, eccentricity, Erdős–Gallai
//	projection/  builds a store from a topology hierarchy
//	builder/     generated layouts (path, cycle, grid, wheel, …)
//	scene/       YAML scene documents
//	config/      tolerance, metric, index, time limit, logging
//	cmd/topograph command-line front end
//
// Quick ASCII example:
//
//	(0,1)───(1,1)
//	  │    ╱  │
//	(0,0)───(1,0)
//
//	represents a square with a diagonal: four nodes, five segments,
//	two independent cycles, diameter 2.
//
// Positions within the tolerance of a stored node resolve to that node, so
// callers query with coordinates rather than handles:
//
//	s, _ := core.NewStore(nil, segments, core.DefaultTolerance)
//	d, _ := bfs.TopologicalDistance(s, &core.Node{Pos: from}, &core.Node{Pos: to}, s.Tolerance())
//
//	go install github.com/katalvlaran/topograph/cmd/topograph@latest
package topograph
