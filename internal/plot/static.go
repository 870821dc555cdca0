package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Format is an output format for [RenderStatic].
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected svg or png)", s)
	}
}

const (
	staticWidth  = 1024
	staticHeight = 640
	dotWidth     = 5
)

// RenderStatic draws the figure as a static image.
//
// Hover text has no static equivalent, so each point is annotated with its
// first hover value instead. An empty figure returns an error.
func RenderStatic(w io.Writer, fig Figure, format Format) error {
	points := fig.Points()
	if len(points) == 0 {
		return fmt.Errorf("figure has no points to render")
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	annotations := make([]chart.Value2, 0, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
		if len(p.Hover) > 0 && p.Hover[0] != "" {
			annotations = append(annotations, chart.Value2{XValue: p.X, YValue: p.Y, Label: p.Hover[0]})
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    dotWidth,
				DotColor:    chart.ColorBlue,
			},
			XValues: xs,
			YValues: ys,
		},
	}
	if len(annotations) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: annotations})
	}

	graph := chart.Chart{
		Title:  fig.Layout.Title.Text,
		Width:  staticWidth,
		Height: staticHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  chart.XAxis{Name: fig.Layout.XAxis.Title.Text, Range: axisRange(xs)},
		YAxis:  chart.YAxis{Name: fig.Layout.YAxis.Title.Text, Range: axisRange(ys)},
		Series: series,
	}

	var provider chart.RendererProvider
	switch format {
	case FormatSVG:
		provider = chart.SVG
	case FormatPNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}
	return nil
}

// axisRange spans values. A single distinct value is widened by 5% of its
// magnitude (or 1 for zero) on each side, since go-chart cannot draw an
// axis with zero width.
func axisRange(values []float64) *chart.ContinuousRange {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		pad := math.Abs(lo) * 0.05
		if pad == 0 {
			pad = 1
		}
		lo, hi = lo-pad, hi+pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}
