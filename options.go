package plotboard

import (
	"errors"
	"log/slog"
	"net/url"
)

// pbConfig holds mutable state during PlotBoard construction.
type pbConfig struct {
	datasetPath    string
	datasetPathSet bool
	columns        []Column

	x     ColumnRef
	y     ColumnRef
	label ColumnRef
	hover []ColumnRef

	title     string
	xTitle    string
	yTitle    string
	plotlyURL string

	host   string
	port   int
	debug  bool
	logger *slog.Logger
}

// Option is a function that configures a [PlotBoard] instance during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*pbConfig) error

// WithDatasetFile sets the path of the serialized dataset to load.
//
// The file must contain a gob-encoded table, optionally gzip-compressed, as
// written by the "plotboard pack" command. Defaults to [DefaultDatasetPath],
// resolved relative to the working directory.
//
// Returns an error if the path is empty.
func WithDatasetFile(path string) Option {
	return func(cfg *pbConfig) error {
		if path == "" {
			return errors.New("dataset path cannot be empty")
		}
		cfg.datasetPath = path
		cfg.datasetPathSet = true
		return nil
	}
}

// WithColumns supplies the dataset in memory instead of loading a file.
//
// All columns must have the same length. Cannot be combined with
// [WithDatasetFile].
//
// Example:
//
//	pb, err := plotboard.New(plotboard.WithColumns(
//	    plotboard.NumberColumn("x", 1, 3),
//	    plotboard.NumberColumn("y", 2, 4),
//	    plotboard.TextColumn("competitorname", "A", "B"),
//	))
func WithColumns(columns ...Column) Option {
	return func(cfg *pbConfig) error {
		if len(columns) == 0 {
			return errors.New("at least one column is required")
		}
		cfg.columns = append(cfg.columns, columns...)
		return nil
	}
}

// WithX selects the column plotted on the X axis. Defaults to column 0.
func WithX(ref ColumnRef) Option {
	return func(cfg *pbConfig) error {
		if err := ref.validate(); err != nil {
			return err
		}
		cfg.x = ref
		return nil
	}
}

// WithY selects the column plotted on the Y axis. Defaults to column 1.
func WithY(ref ColumnRef) Option {
	return func(cfg *pbConfig) error {
		if err := ref.validate(); err != nil {
			return err
		}
		cfg.y = ref
		return nil
	}
}

// WithLabel selects the column shown first in each point's hover text.
// Defaults to the column named [DefaultLabelColumn].
func WithLabel(ref ColumnRef) Option {
	return func(cfg *pbConfig) error {
		if err := ref.validate(); err != nil {
			return err
		}
		cfg.label = ref
		return nil
	}
}

// WithHover adds columns shown in the hover text after the label.
//
// Can be called multiple times; columns appear in the order added.
func WithHover(refs ...ColumnRef) Option {
	return func(cfg *pbConfig) error {
		for _, ref := range refs {
			if err := ref.validate(); err != nil {
				return err
			}
		}
		cfg.hover = append(cfg.hover, refs...)
		return nil
	}
}

// WithTitle sets the chart title, also used as the page title.
//
// If not specified, defaults to [DefaultTitle].
func WithTitle(title string) Option {
	return func(cfg *pbConfig) error {
		if title == "" {
			return errors.New("title cannot be empty")
		}
		cfg.title = title
		return nil
	}
}

// WithAxisTitles sets the X and Y axis titles. Defaults to "X-axis" and "Y-axis".
func WithAxisTitles(x, y string) Option {
	return func(cfg *pbConfig) error {
		if x == "" || y == "" {
			return errors.New("axis titles cannot be empty")
		}
		cfg.xTitle = x
		cfg.yTitle = y
		return nil
	}
}

// WithPlotlyURL overrides where the page loads the Plotly library from.
//
// Useful for offline setups that host plotly.min.js locally.
// Returns an error if the URL cannot be parsed.
func WithPlotlyURL(u string) Option {
	return func(cfg *pbConfig) error {
		if u == "" {
			return errors.New("plotly url cannot be empty")
		}
		if _, err := url.Parse(u); err != nil {
			return err
		}
		cfg.plotlyURL = u
		return nil
	}
}

// WithHost sets the interface the server listens on. Defaults to 127.0.0.1.
func WithHost(host string) Option {
	return func(cfg *pbConfig) error {
		cfg.host = host
		return nil
	}
}

// WithPort sets the HTTP port for the page. Defaults to 8050.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *pbConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithDebug toggles development mode, in which every request is logged at
// debug level. Enabled by default; pass false for quieter production use.
func WithDebug(debug bool) Option {
	return func(cfg *pbConfig) error {
		cfg.debug = debug
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the PlotBoard instance.
//
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *pbConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
