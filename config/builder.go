package config

import "github.com/jpalmerr/plotboard"

// BuildOptions converts parsed configuration into SDK options.
//
// The logger is not part of the file format; callers add [plotboard.WithLogger]
// themselves.
func BuildOptions(cfg *Config) []plotboard.Option {
	opts := []plotboard.Option{
		plotboard.WithDatasetFile(cfg.Dataset.Path),
		plotboard.WithX(cfg.Dataset.X.Ref()),
		plotboard.WithY(cfg.Dataset.Y.Ref()),
		plotboard.WithLabel(cfg.Dataset.Label.Ref()),
		plotboard.WithTitle(cfg.Title),
		plotboard.WithAxisTitles(cfg.Axes.XTitle, cfg.Axes.YTitle),
		plotboard.WithPlotlyURL(cfg.PlotlyURL),
		plotboard.WithHost(cfg.Host),
		plotboard.WithPort(cfg.Port),
		plotboard.WithDebug(cfg.Debug),
	}

	if len(cfg.Dataset.Hover) > 0 {
		refs := make([]plotboard.ColumnRef, len(cfg.Dataset.Hover))
		for i, h := range cfg.Dataset.Hover {
			refs[i] = h.Ref()
		}
		opts = append(opts, plotboard.WithHover(refs...))
	}

	return opts
}
