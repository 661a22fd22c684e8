package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/topograph/builder"
	"github.com/katalvlaran/topograph/scene"
)

// layout describes one generate target: its argument names and constructor.
type layout struct {
	args  []string
	build func(vals []float64) builder.Constructor
}

var layouts = map[string]layout{
	"path":      {[]string{"n"}, func(v []float64) builder.Constructor { return builder.Path(int(v[0])) }},
	"cycle":     {[]string{"n"}, func(v []float64) builder.Constructor { return builder.Cycle(int(v[0])) }},
	"star":      {[]string{"n"}, func(v []float64) builder.Constructor { return builder.Star(int(v[0])) }},
	"wheel":     {[]string{"n"}, func(v []float64) builder.Constructor { return builder.Wheel(int(v[0])) }},
	"complete":  {[]string{"n"}, func(v []float64) builder.Constructor { return builder.Complete(int(v[0])) }},
	"bipartite": {[]string{"n1", "n2"}, func(v []float64) builder.Constructor { return builder.CompleteBipartite(int(v[0]), int(v[1])) }},
	"grid":      {[]string{"rows", "cols"}, func(v []float64) builder.Constructor { return builder.Grid(int(v[0]), int(v[1])) }},
	"random":    {[]string{"n", "p"}, func(v []float64) builder.Constructor { return builder.RandomSparse(int(v[0]), v[1]) }},
}

func layoutNames() []string {
	return []string{"path", "cycle", "star", "wheel", "complete", "bipartite", "grid", "random"}
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		out       string
		seed      int64
		spacing   float64
		radius    float64
		weightKey string
		weight    float64
		byLength  bool
		idScheme  string
	)
	cmd := &cobra.Command{
		Use:   "generate LAYOUT ARGS...",
		Short: "Write a generated scene as YAML",
		Long: "Write a generated scene as YAML.\n\nLayouts: " + strings.Join(layoutNames(), ", ") + `

  path|cycle|star|wheel|complete N
  bipartite N1 N2
  grid ROWS COLS
  random N P`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := layouts[args[0]]
			if !ok {
				return fmt.Errorf("unknown layout %q (want one of %s)", args[0], strings.Join(layoutNames(), ", "))
			}
			if len(args)-1 != len(l.args) {
				return fmt.Errorf("%s needs %s", args[0], strings.Join(l.args, " "))
			}
			vals := make([]float64, len(l.args))
			for i, s := range args[1:] {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("%s %s: %w", args[0], l.args[i], err)
				}
				vals[i] = f
			}

			bopts := []builder.BuilderOption{builder.WithSeed(seed)}
			if spacing > 0 {
				bopts = append(bopts, builder.WithSpacing(spacing))
			}
			if radius > 0 {
				bopts = append(bopts, builder.WithRadius(radius))
			}
			if weightKey != "" {
				bopts = append(bopts, builder.WithWeightKey(weightKey))
				if byLength {
					bopts = append(bopts, builder.WithLengthWeight(weight))
				} else {
					bopts = append(bopts, builder.WithConstantWeight(weight))
				}
			}
			ids, err := builder.ParseIDScheme(idScheme)
			if err != nil {
				return err
			}
			bopts = append(bopts, builder.WithIDScheme(ids))

			sopts, err := a.storeOptions()
			if err != nil {
				return err
			}
			sc, err := builder.BuildScene(sopts, bopts, l.build(vals))
			if err != nil {
				return err
			}
			a.log.Info("scene generated", "layout", args[0], "nodes", sc.Store.Len(), "segments", sc.Store.SegmentCount())

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			return scene.Encode(w, scene.FromStore(sc.Store))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	f.Int64Var(&seed, "seed", 1, "random seed for the random layout")
	f.Float64Var(&spacing, "spacing", 0, "distance between neighbouring points (default 1)")
	f.Float64Var(&radius, "radius", 0, "circle radius for ring layouts (default 1)")
	f.StringVar(&weightKey, "weight-key", "", "segment attribute to set on every segment")
	f.Float64Var(&weight, "weight", 1, "value written under --weight-key")
	f.BoolVar(&byLength, "by-length", false, "write --weight times the segment length instead")
	f.StringVar(&idScheme, "ids", "decimal", "node id scheme ("+strings.Join(builder.IDSchemes(), ", ")+")")

	return cmd
}
