package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newQueryCmd builds a two-endpoint command answering kind.
func newQueryCmd(a *app, kind, short string, configure func(*cobra.Command, *query)) *cobra.Command {
	q := &query{kind: kind}
	cmd := &cobra.Command{
		Use:   kind + " FROM TO",
		Short: short,
		Long: short + `.

FROM and TO are node ids from the scene or "x,y,z" coordinates resolved
under the configured tolerance.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.loadScene()
			if err != nil {
				return err
			}
			q.from, q.to = args[0], args[1]
			lines, err := a.run(cmd.Context(), sc, *q)
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}

			return nil
		},
	}
	if configure != nil {
		configure(cmd, q)
	}

	return cmd
}

func newDistanceCmd(a *app) *cobra.Command {
	return newQueryCmd(a, queryDistance, "Count the segments on a shortest route", nil)
}

func newPathCmd(a *app) *cobra.Command {
	return newQueryCmd(a, queryPath, "Print the first depth-first path", nil)
}

func newAllPathsCmd(a *app) *cobra.Command {
	return newQueryCmd(a, queryAllPaths, "Print every simple path found within the time limit", nil)
}

func newShortestCmd(a *app) *cobra.Command {
	return newQueryCmd(a, queryShortest, "Print a minimum-cost path", func(cmd *cobra.Command, q *query) {
		f := cmd.Flags()
		f.StringVar(&q.vertexKey, "vertex-key", "", "vertex attribute added on entering a node")
		f.StringVar(&q.edgeKey, "edge-key", "", `segment attribute; "length" or "distance" fall back to geometry`)
		f.BoolVar(&q.all, "all", false, "print every minimum-cost path found within the time limit")
	})
}
