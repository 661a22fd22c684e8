package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// parseQueries reads one query per line: KIND FROM TO [EDGE_KEY [VERTEX_KEY]].
// Blank lines and lines starting with # are skipped.
func parseQueries(r io.Reader) ([]query, error) {
	var qs []query
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f := strings.Fields(text)
		if len(f) < 3 {
			return nil, fmt.Errorf("line %d: %w", line, errQueryArgCount)
		}
		q := query{kind: f[0], from: f[1], to: f[2]}
		switch q.kind {
		case queryDistance, queryPath, queryAllPaths, queryShortest:
		case "shortest-all":
			q.kind, q.all = queryShortest, true
		default:
			return nil, fmt.Errorf("line %d: %q: %w", line, f[0], errUnknownQuery)
		}
		if len(f) > 3 {
			q.edgeKey = f[3]
		}
		if len(f) > 4 {
			q.vertexKey = f[4]
		}
		qs = append(qs, q)
	}

	return qs, sc.Err()
}

func newBatchCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Answer a file of queries concurrently",
		Long: `Answer a file of queries concurrently against one loaded scene.

Each line holds KIND FROM TO [EDGE_KEY [VERTEX_KEY]], where KIND is one of
distance, path, all-paths, shortest or shortest-all. Use - to read stdin.
Results are printed in input order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			qs, err := parseQueries(r)
			if err != nil {
				return err
			}
			sc, err := a.loadScene()
			if err != nil {
				return err
			}

			if workers < 1 {
				workers = 1
			}
			results := make([][]string, len(qs))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(workers)
			for i, q := range qs {
				g.Go(func() error {
					lines, err := a.run(ctx, sc, q)
					if err != nil {
						return fmt.Errorf("query %d (%s %s %s): %w", i+1, q.kind, q.from, q.to, err)
					}
					results[i] = lines
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, q := range qs {
				heading(w, fmt.Sprintf("%d. %s %s %s", i+1, q.kind, q.from, q.to))
				for _, l := range results[i] {
					fmt.Fprintln(w, "  "+l)
				}
			}
			a.log.Debug("batch done", "queries", len(qs), "workers", workers)

			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "concurrent queries")

	return cmd
}
