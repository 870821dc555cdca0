package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/plotboard"
	"github.com/jpalmerr/plotboard/internal/dataset"
)

// packCmd converts a CSV file into a dataset file.
var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Convert a CSV file into a dataset file",
	Long: `Read a CSV file with a header row and write it as a PlotBoard dataset file.

Columns whose every value parses as a number are stored as numbers; all
other columns are stored as text.

Example:
  plotboard pack --in candy-data.csv
  plotboard pack --in candy-data.csv --out data/candy.gob --gzip`,
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)

	packCmd.Flags().String("in", "", "CSV input file (required)")
	packCmd.Flags().String("out", plotboard.DefaultDatasetPath, "dataset output file")
	packCmd.Flags().Bool("gzip", false, "gzip-compress the dataset file")
	_ = packCmd.MarkFlagRequired("in")
}

func runPack(cmd *cobra.Command, args []string) error {
	in, _ := cmd.Flags().GetString("in")
	out, _ := cmd.Flags().GetString("out")
	compress, _ := cmd.Flags().GetBool("gzip")

	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() { _ = src.Close() }()

	frame, err := dataset.ReadCSV(src)
	if err != nil {
		return err
	}

	if err := dataset.Save(out, frame, compress); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Packed %d rows x %d columns into %s\n", frame.Len(), len(frame.Columns), out)
	return nil
}
