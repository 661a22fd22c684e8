package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/katalvlaran/topograph/bfs"
	"github.com/katalvlaran/topograph/builder"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/dfs"
	"github.com/katalvlaran/topograph/dijkstra"
	"github.com/katalvlaran/topograph/metrics"
	"github.com/katalvlaran/topograph/route"
)

var (
	errNoScene       = errors.New("no scene: pass --scene")
	errBadEndpoint   = errors.New("endpoint is neither a node id nor x,y,z")
	errUnknownQuery  = errors.New("unknown query")
	errQueryArgCount = errors.New("query needs exactly two endpoints")
)

// Query kinds understood by the single-query commands and by batch.
const (
	queryDistance = "distance"
	queryPath     = "path"
	queryAllPaths = "all-paths"
	queryShortest = "shortest"
)

// endpoint turns a node id or an "x,y,z" triple into a lookup node.
func endpoint(s *core.Store, arg string) (*core.Node, error) {
	if n, ok := s.Node(arg); ok {
		return n, nil
	}
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%q: %w", arg, errBadEndpoint)
	}
	var xyz [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", arg, errBadEndpoint)
		}
		xyz[i] = f
	}

	return &core.Node{Pos: v3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
}

// query is one request against a loaded scene.
type query struct {
	kind      string
	from, to  string
	vertexKey string
	edgeKey   string
	all       bool
}

// run answers q and returns its printable result lines.
func (a *app) run(ctx context.Context, sc *builder.Scene, q query) ([]string, error) {
	start, err := endpoint(sc.Store, q.from)
	if err != nil {
		return nil, err
	}
	end, err := endpoint(sc.Store, q.to)
	if err != nil {
		return nil, err
	}

	switch q.kind {
	case queryDistance:
		d, err := metrics.TopologicalDistance(sc.Store, start, end, a.cfg.Tolerance)
		if err != nil {
			return nil, err
		}
		return []string{hops(d)}, nil

	case queryPath:
		p, err := dfs.Path(sc.Store, start, end,
			dfs.WithContext(ctx),
			dfs.WithTimeLimit(a.cfg.TimeLimit),
			dfs.WithTolerance(a.cfg.Tolerance),
			dfs.WithSynthesizer(sc.Kernel))
		if err != nil {
			return nil, err
		}
		return formatPaths(p), nil

	case queryAllPaths:
		ps, err := dfs.AllPaths(sc.Store, start, end,
			dfs.WithContext(ctx),
			dfs.WithTimeLimit(a.cfg.TimeLimit),
			dfs.WithTolerance(a.cfg.Tolerance),
			dfs.WithSynthesizer(sc.Kernel))
		if err != nil {
			return nil, err
		}
		return formatPaths(ps...), nil

	case queryShortest:
		opts := []dijkstra.Option{
			dijkstra.WithContext(ctx),
			dijkstra.WithTolerance(a.cfg.Tolerance),
			dijkstra.WithKernel(sc.Kernel),
		}
		if q.all {
			ps, err := dijkstra.ShortestPaths(sc.Store, start, end, q.vertexKey, q.edgeKey, a.cfg.TimeLimit, opts...)
			if err != nil {
				return nil, err
			}
			return formatPaths(ps...), nil
		}
		p, err := dijkstra.ShortestPath(sc.Store, start, end, q.vertexKey, q.edgeKey, opts...)
		if err != nil {
			return nil, err
		}
		return formatPaths(p), nil

	default:
		return nil, fmt.Errorf("%q: %w", q.kind, errUnknownQuery)
	}
}

// formatPaths renders one line per path; nil paths are dropped and an empty
// result reads "no path".
func formatPaths(ps ...*route.Path) []string {
	var out []string
	for _, p := range ps {
		if p == nil {
			continue
		}
		out = append(out, fmt.Sprintf("%s  [hops %d, cost %g]", p, p.Hops(), p.Cost))
	}
	if len(out) == 0 {
		return []string{"no path"}
	}

	return out
}

// hops formats a hop count, spelling out bfs.Unreachable.
func hops(d int) string {
	if d == bfs.Unreachable {
		return "unreachable"
	}

	return strconv.Itoa(d)
}
