package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/topograph/dfs"
	"github.com/katalvlaran/topograph/metrics"
)

func newStatsCmd(a *app) *cobra.Command {
	var showDegrees bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the scene graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := a.loadScene()
			if err != nil {
				return err
			}
			s := sc.Store
			st := s.Stats()
			comps, err := dfs.Components(s)
			if err != nil {
				return err
			}
			cyclic, cycles, err := dfs.DetectCycles(s)
			if err != nil {
				return err
			}
			seq := metrics.DegreeSequence(s)

			w := cmd.OutOrStdout()
			heading(w, "Scene")
			row(w, "nodes", st.Nodes)
			row(w, "segments", st.Segments)
			row(w, "self-loops", st.SelfLoops)
			row(w, "isolated", st.Isolated)
			row(w, "components", len(comps))

			heading(w, "Metrics")
			row(w, "density", fmt.Sprintf("%.4g", metrics.Density(s)))
			row(w, "complete", metrics.IsComplete(s))
			row(w, "min degree", metrics.MinDegree(s))
			row(w, "max degree", metrics.MaxDegree(s))
			row(w, "diameter", hops(metrics.Diameter(s)))
			row(w, "graphical", metrics.IsErdoesGallai(seq))
			row(w, "cyclic", cyclic)
			row(w, "cycles", len(cycles))
			if showDegrees {
				row(w, "degrees", seq)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&showDegrees, "degrees", false, "also print the degree sequence")

	return cmd
}
