package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/plotboard"
	"github.com/jpalmerr/plotboard/config"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates the CLI logger. The json format is meant for log
// collectors; text is for people watching a terminal.
func newLogger(w io.Writer, format string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		}))
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return slog.New(handler)
}

// addDatasetFlags registers the flags shared by every command that loads a
// dataset.
func addDatasetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to config file (optional)")
	cmd.Flags().String("dataset", "", "dataset file, overrides dataset.path from the config")
}

// loadConfig reads the config file named by --config, or the defaults when
// no file is given, and applies the --dataset override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path, _ := cmd.Flags().GetString("dataset"); path != "" {
		cfg.Dataset.Path = path
	}
	return cfg, nil
}

// serveCmd starts the PlotBoard page server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scatter plot page",
	Long: `Start the PlotBoard page server.

The server will:
  - Load configuration from the YAML file, if one is given
  - Load the dataset once and build the scatter plot
  - Serve the page on the configured host and port

A dataset that is missing or unreadable stops the command before anything
is served. The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  plotboard serve
  plotboard serve --dataset candy.gob
  plotboard serve -c /etc/plotboard/config.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addDatasetFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(os.Stderr, cfg.LogFormat, cfg.Debug)
	logger.Info("config loaded",
		"dataset", cfg.Dataset.Path,
		"x", cfg.Dataset.X.String(),
		"y", cfg.Dataset.Y.String(),
		"label", cfg.Dataset.Label.String(),
	)

	opts := append(config.BuildOptions(cfg), plotboard.WithLogger(logger))
	pb, err := plotboard.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create PlotBoard: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- pb.Start(ctx)
	}()

	// wait for server to finish
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
