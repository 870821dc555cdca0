// Package main is the entry point for the plotboard CLI.
//
// PlotBoard can be run either as a library (SDK) or as a standalone binary
// with optional YAML configuration. This CLI provides the standalone binary
// approach.
//
// Usage:
//
//	plotboard serve                           # Serve plotly_data.gob on :8050
//	plotboard serve -c config.yaml            # Serve with a config file
//	plotboard validate -c config.yaml         # Check config and dataset
//	plotboard render -o chart.svg             # Export a static image
//	plotboard pack --in candy.csv --gzip      # Convert CSV to a dataset file
//	plotboard version                         # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "plotboard",
	Short: "Serve a dataset as an interactive scatter plot",
	Long: `PlotBoard loads a two-column dataset once, builds a scatter plot from it,
and serves the plot as a single local web page. Hovering a point shows
its label.

Quick start:
  1. Convert your data: plotboard pack --in candy.csv
  2. Run: plotboard serve
  3. Open http://127.0.0.1:8050 in your browser

Example config:
  title: Candy Power Ranking
  dataset:
    path: plotly_data.gob
    x: sugarpercent
    y: winpercent
    label: competitorname`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this plotboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "plotboard %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
