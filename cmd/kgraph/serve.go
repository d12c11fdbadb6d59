package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/kgraph/core"
	"github.com/katalvlaran/kgraph/internal/config"
	"github.com/katalvlaran/kgraph/internal/logging"
	"github.com/katalvlaran/kgraph/internal/metrics"
	"github.com/katalvlaran/kgraph/internal/server"
	"github.com/katalvlaran/kgraph/snapshot"
	"github.com/katalvlaran/kgraph/tool"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP tool server",
		Long: `Start the HTTP tool server.

Configuration comes from defaults, then --config, then KGRAPH_* environment
variables, then the flags below.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("config", "", "Path to a YAML configuration file")
	cmd.Flags().String("address", "", "Listen address host:port (overrides config)")
	cmd.Flags().String("snapshot", "", "Snapshot file to load at startup (overrides config)")
	cmd.Flags().Bool("save-on-shutdown", false, "Write the graph back to the snapshot file on shutdown")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := serveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	g, err := loadGraph(cfg.Graph.SnapshotPath, logger)
	if err != nil {
		return err
	}

	var reg *tool.Registry
	regOpts := []tool.Option{tool.WithLogger(logger.Named("tool"))}
	srvOpts := []server.Option{server.WithLogger(logger.Named("http"))}
	if cfg.Metrics.Enabled {
		// graph gauges are read on scrape, after reg is assigned
		collector := metrics.NewCollector(cfg.Metrics.Namespace, func() core.GraphStats { return reg.Stats() })
		regOpts = append(regOpts, tool.WithObserver(collector))
		srvOpts = append(srvOpts, server.WithMetrics(collector))
	}
	reg = tool.NewRegistry(g, regOpts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting kgraph",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
	)
	runErr := server.New(cfg.Server, reg, srvOpts...).Run(ctx)

	if cfg.Graph.SaveOnShutdown && cfg.Graph.SnapshotPath != "" {
		if err := snapshot.WriteFile(cfg.Graph.SnapshotPath, reg.Snapshot()); err != nil {
			logger.Error("save snapshot", zap.String("path", cfg.Graph.SnapshotPath), zap.Error(err))
			return errors.Join(runErr, err)
		}
		logger.Info("snapshot saved", zap.String("path", cfg.Graph.SnapshotPath))
	}

	return runErr
}

// serveConfig loads the configuration and applies flag overrides.
func serveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("address"); v != "" {
		cfg.Server.Address = v
	}
	if v, _ := cmd.Flags().GetString("snapshot"); v != "" {
		cfg.Graph.SnapshotPath = v
	}
	if cmd.Flags().Changed("save-on-shutdown") {
		cfg.Graph.SaveOnShutdown, _ = cmd.Flags().GetBool("save-on-shutdown")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// loadGraph reads the snapshot at path. A missing file or an empty path yields an empty graph.
func loadGraph(path string, logger *zap.Logger) (*core.Graph[any], error) {
	if path == "" {
		return core.NewGraph[any](), nil
	}
	g, err := snapshot.Load[any](path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("snapshot not found, starting empty", zap.String("path", path))
		return core.NewGraph[any](), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	logger.Info("snapshot loaded", zap.String("path", path))

	return g, nil
}
