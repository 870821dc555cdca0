// Package plotboard serves a dataset as an interactive scatter plot on a
// single local web page.
//
// PlotBoard does one thing: load a pre-serialized table once, build a
// scatter plot from two numeric columns plus a label column shown on hover,
// and serve that plot until the process is told to stop. There is no
// refresh, no routing beyond "/", and no API.
//
// # Quick Start
//
// Load the default dataset file (plotly_data.gob) and serve it on
// http://127.0.0.1:8050 with graceful shutdown:
//
//	pb, err := plotboard.New()
//	if err != nil {
//	    slog.Error("dataset unavailable", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	pb.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// PlotBoard uses the functional options pattern for configuration:
//
//	pb, err := plotboard.New(
//	    plotboard.WithDatasetFile("candy.gob"),
//	    plotboard.WithX(plotboard.ColumnNamed("sugarpercent")),
//	    plotboard.WithY(plotboard.ColumnNamed("winpercent")),
//	    plotboard.WithLabel(plotboard.ColumnNamed("competitorname")),
//	    plotboard.WithHover(plotboard.ColumnNamed("pricepercent")),
//	    plotboard.WithTitle("Candy Power Ranking"),
//	    plotboard.WithPort(9090),
//	)
//
// Datasets can also be supplied in memory with [WithColumns].
//
// # Dataset Files
//
// A dataset file is a gob-encoded table, optionally gzip-compressed. The
// "plotboard pack" command creates one from a CSV file with a header row.
// Columns whose cells all parse as numbers become numeric columns; the rest
// are text.
//
// # Failure Model
//
// Every problem with the dataset (missing file, corrupt encoding, missing or
// non-numeric columns) is reported by [New] as an error wrapping
// [ErrDatasetUnavailable]. Once New succeeds, serving has no further
// failure modes apart from binding the listen address.
//
// # Architecture
//
// PlotBoard consists of several internal packages (under internal/):
//
//   - internal/dataset: Column-oriented table, gob codec and CSV import
//   - internal/plot: Pure dataset-to-figure builder and static image export
//   - internal/server: Single-page HTTP server with graceful shutdown
//   - dashboard: Embedded page template
//
// The internal packages are not part of the public API and may change
// without notice.
package plotboard
