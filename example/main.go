package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/plotboard"
)

func main() {
	// write a sample dataset file (see sample_data.go)
	path, err := writeSampleDataset()
	if err != nil {
		slog.Error("failed to write sample dataset", "error", err)
		os.Exit(1)
	}

	// plot by column name; price is shown on hover after the candy name
	pb, err := plotboard.New(
		plotboard.WithDatasetFile(path),
		plotboard.WithX(plotboard.ColumnNamed("sugarpercent")),
		plotboard.WithY(plotboard.ColumnNamed("winpercent")),
		plotboard.WithHover(plotboard.ColumnNamed("pricepercent")),
		plotboard.WithTitle("Candy Power Ranking"),
		plotboard.WithAxisTitles("Sugar percentile", "Win %"),
	)
	if err != nil {
		slog.Error("failed to create plotboard", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   PlotBoard Demo                                      ║")
	fmt.Println("  ║                                                       ║")
	fmt.Printf("  ║   Open http://%-40s║\n", pb.Addr())
	fmt.Println("  ║                                                       ║")
	fmt.Printf("  ║   %-2d candies, hover a point to see its name           ║\n", pb.Rows())
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pb.Start(ctx); err != nil {
		slog.Error("plotboard error", "error", err)
		os.Exit(1)
	}
}
