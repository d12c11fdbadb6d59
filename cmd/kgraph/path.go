package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/kgraph/bfs"
	"github.com/katalvlaran/kgraph/snapshot"
)

func newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <snapshot> <start> <goal>",
		Short: "Print the shortest directed path between two nodes of a snapshot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxDepth, _ := cmd.Flags().GetInt("max-depth")
			g, err := snapshot.Load[any](args[0])
			if err != nil {
				return err
			}
			path, err := bfs.FindPath(g, args[1], args[2], bfs.WithMaxDepth(maxDepth))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(path) == 0 {
				fmt.Fprintf(out, "no path from %s to %s\n", args[1], args[2])
				return nil
			}
			fmt.Fprintf(out, "%s (%d hops)\n", strings.Join(path, " -> "), len(path)-1)

			return nil
		},
	}
	cmd.Flags().Int("max-depth", 0, "Maximum path length in edges (0 = unlimited)")

	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <snapshot>",
		Short: "Load a snapshot, verify graph invariants and print counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := snapshot.Load[any](args[0])
			if err != nil {
				return err
			}
			s := g.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d nodes, %d edges, %d self-loops, %d isolated\n",
				s.NodeCount, s.EdgeCount, s.SelfLoopCount, s.IsolatedCount)

			return nil
		},
	}
}
