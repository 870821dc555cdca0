package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/plotboard"
	"github.com/jpalmerr/plotboard/config"
)

// renderCmd exports the plot as a static image.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Export the scatter plot as an SVG or PNG image",
	Long: `Build the scatter plot from the dataset and write it as a static image.

Static images have no hover, so every point is annotated with its label.
The format is taken from --format, or from the output file extension.

Example:
  plotboard render -o chart.svg
  plotboard render -c config.yaml -o chart.png`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	addDatasetFlags(renderCmd)

	renderCmd.Flags().StringP("output", "o", "", "output file (required)")
	renderCmd.Flags().String("format", "", "image format: svg or png (default: from output extension)")
	_ = renderCmd.MarkFlagRequired("output")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(output), ".")
	}

	opts := append(config.BuildOptions(cfg), plotboard.WithLogger(slog.New(slog.DiscardHandler)))
	pb, err := plotboard.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create PlotBoard: %w", err)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := pb.RenderStatic(f, format); err != nil {
		_ = f.Close()
		_ = os.Remove(output)
		return fmt.Errorf("failed to render: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d points to %s\n", pb.Rows(), output)
	return nil
}
