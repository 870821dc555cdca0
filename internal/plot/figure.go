// Package plot turns a dataset into a scatter-plot figure.
//
// The [Figure] type mirrors the subset of the Plotly figure schema the
// dashboard needs, so its JSON encoding can be handed to Plotly.newPlot in
// the browser unchanged. [Build] is a pure function: the same frame and
// settings always produce an equal figure and identical JSON.
package plot

import (
	"fmt"
	"html"
	"strings"

	"github.com/jpalmerr/plotboard/internal/dataset"
)

// Figure is a Plotly figure with a single scatter trace.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one scatter trace drawn as markers.
type Trace struct {
	Type          string     `json:"type"`
	Mode          string     `json:"mode"`
	Name          string     `json:"name,omitempty"`
	X             []float64  `json:"x"`
	Y             []float64  `json:"y"`
	CustomData    [][]string `json:"customdata"`
	HoverTemplate string     `json:"hovertemplate"`
}

// Layout carries the chart and axis titles.
type Layout struct {
	Title Title `json:"title"`
	XAxis Axis  `json:"xaxis"`
	YAxis Axis  `json:"yaxis"`
}

// Axis is a Plotly axis definition.
type Axis struct {
	Title Title `json:"title"`
}

// Title is a Plotly title object.
type Title struct {
	Text string `json:"text"`
}

// Settings selects the columns and titles used by [Build].
type Settings struct {
	X     dataset.Ref
	Y     dataset.Ref
	Hover []dataset.Ref

	Title  string
	XTitle string
	YTitle string
}

// Point is one plotted row.
type Point struct {
	X     float64
	Y     float64
	Hover []string
}

// Build creates the scatter figure for f.
//
// X and Y must resolve to numeric columns. Hover columns may be of any kind;
// their values are carried as text in the trace's customdata, one entry per
// hover column, in the order given.
func Build(f *dataset.Frame, s Settings) (Figure, error) {
	xs, err := numericColumn(f, s.X, "x")
	if err != nil {
		return Figure{}, err
	}
	ys, err := numericColumn(f, s.Y, "y")
	if err != nil {
		return Figure{}, err
	}

	hover := make([]dataset.Column, len(s.Hover))
	for i, ref := range s.Hover {
		c, err := f.Resolve(ref)
		if err != nil {
			return Figure{}, fmt.Errorf("hover column %s: %w", ref, err)
		}
		hover[i] = c
	}

	n := f.Len()
	custom := make([][]string, n)
	for row := range n {
		values := make([]string, len(hover))
		for i, c := range hover {
			values[i] = c.Text(row)
		}
		custom[row] = values
	}

	trace := Trace{
		Type:          "scatter",
		Mode:          "markers",
		X:             append([]float64(nil), xs.Numbers...),
		Y:             append([]float64(nil), ys.Numbers...),
		CustomData:    custom,
		HoverTemplate: hoverTemplate(s.XTitle, s.YTitle, hover),
	}
	// keep empty datasets encoding as [] rather than null
	if trace.X == nil {
		trace.X = []float64{}
		trace.Y = []float64{}
	}

	return Figure{
		Data: []Trace{trace},
		Layout: Layout{
			Title: Title{Text: s.Title},
			XAxis: Axis{Title: Title{Text: s.XTitle}},
			YAxis: Axis{Title: Title{Text: s.YTitle}},
		},
	}, nil
}

// numericColumn resolves ref and checks that it holds numbers.
func numericColumn(f *dataset.Frame, ref dataset.Ref, axis string) (dataset.Column, error) {
	c, err := f.Resolve(ref)
	if err != nil {
		return dataset.Column{}, fmt.Errorf("%s column %s: %w", axis, ref, err)
	}
	if c.Kind != dataset.KindNumber {
		return dataset.Column{}, fmt.Errorf("%w: %s column %s is %s, want number",
			dataset.ErrUnavailable, axis, ref, c.Kind)
	}
	return c, nil
}

// hoverTemplate builds the Plotly hovertemplate for the trace, matching the
// "name=value" lines Plotly Express produces. <extra></extra> hides the
// trace name box.
func hoverTemplate(xTitle, yTitle string, hover []dataset.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%%{x}<br>%s=%%{y}", templateText(xTitle), templateText(yTitle))
	for i, c := range hover {
		fmt.Fprintf(&b, "<br>%s=%%{customdata[%d]}", templateText(c.Name), i)
	}
	b.WriteString("<extra></extra>")
	return b.String()
}

// templateText makes s literal inside a hovertemplate. Markup characters
// become entities and % becomes &#37;, so "%{y}" in a column name is shown
// as written instead of being substituted.
func templateText(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "%", "&#37;")
}

// Points returns the plotted rows of the first trace.
func (f Figure) Points() []Point {
	if len(f.Data) == 0 {
		return nil
	}
	tr := f.Data[0]
	points := make([]Point, len(tr.X))
	for i := range tr.X {
		points[i] = Point{
			X:     tr.X[i],
			Y:     tr.Y[i],
			Hover: append([]string(nil), tr.CustomData[i]...),
		}
	}
	return points
}

// Clone returns a deep copy of the figure.
func (f Figure) Clone() Figure {
	cp := Figure{Layout: f.Layout, Data: make([]Trace, len(f.Data))}
	for i, tr := range f.Data {
		tr.X = append([]float64(nil), tr.X...)
		tr.Y = append([]float64(nil), tr.Y...)
		custom := make([][]string, len(tr.CustomData))
		for j, row := range tr.CustomData {
			custom[j] = append([]string(nil), row...)
		}
		tr.CustomData = custom
		cp.Data[i] = tr
	}
	return cp
}
