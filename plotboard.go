package plotboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jpalmerr/plotboard/dashboard"
	"github.com/jpalmerr/plotboard/internal/dataset"
	"github.com/jpalmerr/plotboard/internal/plot"
	"github.com/jpalmerr/plotboard/internal/server"
)

const (
	// DefaultDatasetPath is the dataset file loaded when none is configured.
	DefaultDatasetPath = "plotly_data.gob"

	// DefaultLabelColumn is the column shown on hover when none is configured.
	DefaultLabelColumn = "competitorname"

	// DefaultTitle is the chart and page title.
	DefaultTitle = "Interactive Scatter Plot"

	// DefaultPlotlyURL is where the page loads Plotly from.
	DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

	defaultXTitle = "X-axis"
	defaultYTitle = "Y-axis"
	defaultHost   = "127.0.0.1"
	defaultPort   = 8050
)

// PlotBoard loads a dataset, turns it into a scatter plot, and serves the plot
// on a single local page.
//
// All the work that can fail on bad input happens in [New]: the dataset is
// loaded exactly once, the figure is built, and the page is rendered. After
// that the PlotBoard is immutable and [PlotBoard.Start] only serves bytes.
//
// The typical lifecycle is:
//
//	pb, err := plotboard.New(plotboard.WithDatasetFile("plotly_data.gob"))
//	if err != nil {
//	    slog.Error("failed to create plotboard", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	pb.Start(ctx) // blocks until context cancelled
type PlotBoard struct {
	title   string
	addr    string
	source  string
	rows    int
	columns []string
	figure  plot.Figure
	server  *server.Server
	logger  *slog.Logger
}

// New loads the dataset and builds a [PlotBoard] with the given options.
//
// Defaults reproduce the classic setup: the dataset is read from
// [DefaultDatasetPath], column 0 is X, column 1 is Y, the column named
// [DefaultLabelColumn] is shown on hover, and the page is served on
// 127.0.0.1:8050.
//
// Returns an error wrapping [ErrDatasetUnavailable] if the dataset cannot be
// loaded or lacks the selected columns, or an error if any option is invalid.
// Nothing is served when New fails.
func New(opts ...Option) (*PlotBoard, error) {
	cfg := &pbConfig{
		datasetPath: DefaultDatasetPath,
		x:           ColumnAt(0),
		y:           ColumnAt(1),
		label:       ColumnNamed(DefaultLabelColumn),
		title:       DefaultTitle,
		xTitle:      defaultXTitle,
		yTitle:      defaultYTitle,
		plotlyURL:   DefaultPlotlyURL,
		host:        defaultHost,
		port:        defaultPort,
		debug:       true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.datasetPathSet && len(cfg.columns) > 0 {
		return nil, errors.New("WithDatasetFile and WithColumns are mutually exclusive")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	frame, source, err := cfg.loadFrame()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	logger.Debug("dataset loaded",
		"source", source,
		"rows", frame.Len(),
		"columns", frame.Names(),
	)

	hover := make([]dataset.Ref, 0, 1+len(cfg.hover))
	hover = append(hover, cfg.label.toDataset())
	for _, ref := range cfg.hover {
		hover = append(hover, ref.toDataset())
	}

	fig, err := plot.Build(frame, plot.Settings{
		X:      cfg.x.toDataset(),
		Y:      cfg.y.toDataset(),
		Hover:  hover,
		Title:  cfg.title,
		XTitle: cfg.xTitle,
		YTitle: cfg.yTitle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build plot: %w", err)
	}

	addr := net.JoinHostPort(cfg.host, strconv.Itoa(cfg.port))
	srv, err := server.NewServer(server.Page{
		Title:     cfg.title,
		PlotlyURL: cfg.plotlyURL,
		Figure:    fig,
	}, addr, dashboard.Assets, cfg.debug, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	return &PlotBoard{
		title:   cfg.title,
		addr:    addr,
		source:  source,
		rows:    frame.Len(),
		columns: frame.Names(),
		figure:  fig,
		server:  srv,
		logger:  logger,
	}, nil
}

// loadFrame returns the in-memory columns as a frame, or loads the file.
// The second result describes where the data came from, for logging.
func (cfg *pbConfig) loadFrame() (*dataset.Frame, string, error) {
	if len(cfg.columns) > 0 {
		f := &dataset.Frame{Columns: make([]dataset.Column, len(cfg.columns))}
		for i, c := range cfg.columns {
			f.Columns[i] = c.toDataset()
		}
		if err := f.Validate(); err != nil {
			return nil, "memory", err
		}
		return f, "memory", nil
	}

	f, err := dataset.Load(cfg.datasetPath)
	return f, cfg.datasetPath, err
}

// Start serves the page until the provided context is cancelled.
//
// Start is a blocking call. The listener is bound before anything else
// happens, so an unavailable address is reported immediately as an error.
// The caller controls the lifecycle via the context:
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//	pb.Start(ctx)
//
// Returns nil on graceful shutdown.
func (pb *PlotBoard) Start(ctx context.Context) error {
	pb.logger.Info("plotboard starting", "source", pb.source, "points", pb.rows)
	pb.logger.Info("dashboard available", "url", "http://"+pb.addr)

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	if err := pb.server.Run(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	pb.logger.Info("plotboard stopped")
	return nil
}

// Handler returns the HTTP handler that serves the page.
//
// Use it to mount the page in an existing server instead of calling
// [PlotBoard.Start].
func (pb *PlotBoard) Handler() http.Handler {
	return pb.server.Handler()
}

// Page returns a copy of the rendered HTML page.
func (pb *PlotBoard) Page() []byte {
	return pb.server.Page()
}

// Point is one plotted dataset row.
type Point struct {
	// X and Y are the row's values in the X and Y columns.
	X, Y float64

	// Hover holds the hover text values, label first, as shown in the page.
	Hover []string
}

// Points returns the plotted points in dataset row order.
//
// The returned slice is a copy; modifying it does not affect the PlotBoard.
func (pb *PlotBoard) Points() []Point {
	src := pb.figure.Points()
	points := make([]Point, len(src))
	for i, p := range src {
		points[i] = Point{X: p.X, Y: p.Y, Hover: p.Hover}
	}
	return points
}

// Title returns the chart title.
func (pb *PlotBoard) Title() string {
	return pb.title
}

// Addr returns the host:port the page is served on.
func (pb *PlotBoard) Addr() string {
	return pb.addr
}

// Source returns the dataset file path, or "memory" for [WithColumns].
func (pb *PlotBoard) Source() string {
	return pb.source
}

// Columns returns the dataset column names in order.
func (pb *PlotBoard) Columns() []string {
	return append([]string(nil), pb.columns...)
}

// RenderStatic writes the plot as a static "svg" or "png" image.
//
// Static images cannot show hover text, so each point is annotated with its
// label instead.
func (pb *PlotBoard) RenderStatic(w io.Writer, format string) error {
	f, err := plot.ParseFormat(format)
	if err != nil {
		return err
	}
	return plot.RenderStatic(w, pb.figure, f)
}

// Rows returns the number of dataset rows, which equals the number of points.
func (pb *PlotBoard) Rows() int {
	return pb.rows
}
