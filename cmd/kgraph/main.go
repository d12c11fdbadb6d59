// Package main provides the kgraph CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "0.1.0"
	commit    = "dev"
	buildTime = "unknown" // Set via ldflags: -X main.buildTime=$(date +%Y%m%d-%H%M%S)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kgraph",
		Short: "kgraph - in-memory knowledge graph for LLM agents",
		Long: `kgraph keeps a directed, labeled graph of entities and relationships in memory
and exposes it to agents as a set of JSON tools over HTTP.

Snapshots are plain JSON or YAML files holding {nodes, edges}.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kgraph v%s (%s) built %s\n", version, commit, buildTime)
		},
	})
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newPathCmd())
	rootCmd.AddCommand(newCheckCmd())

	return rootCmd
}
