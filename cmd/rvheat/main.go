package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rvheat/rvheat/internal/cfg"
	"github.com/rvheat/rvheat/internal/heat"
	"github.com/rvheat/rvheat/internal/render"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rvheat",
		Short: "Register heat analysis for RISC-V control-flow graphs",
		Long: `rvheat computes a register heat map over a program's control-flow
graph: for every reachable instruction, how recently each register was
written, clamped to a configurable maximum.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newPathsCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	var maxHeat int
	var format string

	cmd := &cobra.Command{
		Use:   "analyze <cfg.yaml>",
		Short: "Compute the register heat map of a CFG fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cfg.LoadFile(args[0])
			if err != nil {
				return err
			}
			slog.Debug("loaded cfg", "fixture", args[0], "nodes", g.Len())

			heatmap, err := heat.Propagate(g, maxHeat)
			if err != nil {
				return err
			}
			slog.Debug("analysis finished", "lines", len(heatmap))

			switch format {
			case "text":
				fmt.Fprint(cmd.OutOrStdout(), render.Text(heatmap))
			case "pretty":
				fmt.Fprint(cmd.OutOrStdout(), render.Pretty(heatmap, maxHeat))
			case "json":
				out, err := render.JSON(heatmap)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			default:
				return fmt.Errorf("unknown format %q (want text, pretty or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxHeat, "max-heat", 8, "maximum heat level a register can reach")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text, pretty or json")
	return cmd
}

func newPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths <cfg.yaml>",
		Short: "Show the graph queries driving the analysis",
		Long: `paths prints the detected back edges, loop-back nodes and merge
points of a CFG fixture, plus every simple entry-to-exit path of the
acyclic view. Useful for understanding what analyze will traverse.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cfg.LoadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range g.BackEdges() {
				fmt.Fprintf(out, "back edge: %d -> %d\n", e.From, e.To)
			}

			loopBack := g.LoopBackNodes()
			fmt.Fprintf(out, "loop-back nodes: %v\n", loopBack)

			hidden := make(map[int]bool, len(loopBack))
			for _, id := range loopBack {
				hidden[id] = true
			}
			view := g.WithoutNodes(hidden)

			merges := view.MergePoints()
			mergeIDs := make([]int, 0, len(merges))
			for _, id := range view.NodeIDs() {
				if merges[id] {
					mergeIDs = append(mergeIDs, id)
				}
			}
			fmt.Fprintf(out, "merge points: %v\n", mergeIDs)

			for _, path := range view.SimplePaths(cfg.EntryID, cfg.ExitID) {
				fmt.Fprintf(out, "path: %v\n", path)
			}
			return nil
		},
	}
	return cmd
}
