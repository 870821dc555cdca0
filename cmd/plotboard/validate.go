package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/plotboard"
	"github.com/jpalmerr/plotboard/config"
)

// validateCmd checks the config and dataset without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config and dataset",
	Long: `Validate PlotBoard configuration and its dataset without starting the server.

This command parses the YAML (when given), expands environment variables,
loads the dataset, resolves the configured columns and builds the plot.
It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config and dataset are valid
  1 - Something is invalid (error details printed to stderr)

Example:
  plotboard validate
  plotboard validate -c config.yaml
  plotboard validate --dataset candy.gob`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addDatasetFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	opts := append(config.BuildOptions(cfg), plotboard.WithLogger(slog.New(slog.DiscardHandler)))
	pb, err := plotboard.New(opts...)
	if err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}

	out := cmd.OutOrStdout()
	r := lipgloss.NewRenderer(out)
	okStyle := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}).Bold(true)
	labelStyle := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"})

	line := func(label, value string) {
		fmt.Fprintf(out, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-8s", label+":")), value)
	}

	fmt.Fprintln(out, okStyle.Render("Dataset is valid!"))
	line("Source", pb.Source())
	line("Rows", strconv.Itoa(pb.Rows()))
	line("Columns", strings.Join(pb.Columns(), ", "))
	line("X", cfg.Dataset.X.String())
	line("Y", cfg.Dataset.Y.String())
	line("Label", cfg.Dataset.Label.String())
	line("Title", pb.Title())
	line("Listen", "http://"+pb.Addr())

	return nil
}
