package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpalmerr/plotboard/internal/dataset"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" SVG ")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	f, err = ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	_, err = ParseFormat("gif")
	assert.ErrorContains(t, err, `unknown format "gif"`)
}

func TestRenderStatic_SVG(t *testing.T) {
	fig, err := Build(candyFrame(), defaultSettings())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderStatic(&buf, fig, FormatSVG))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Interactive Scatter Plot")
}

func TestRenderStatic_PNG(t *testing.T) {
	fig, err := Build(candyFrame(), defaultSettings())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderStatic(&buf, fig, FormatPNG))
	assert.Equal(t, []byte("\x89PNG"), buf.Bytes()[:4])
}

func TestRenderStatic_NoPoints(t *testing.T) {
	f := &dataset.Frame{Columns: []dataset.Column{
		{Name: "x", Kind: dataset.KindNumber},
		{Name: "y", Kind: dataset.KindNumber},
	}}
	s := defaultSettings()
	s.Hover = nil

	fig, err := Build(f, s)
	require.NoError(t, err)

	err = RenderStatic(&bytes.Buffer{}, fig, FormatSVG)
	assert.ErrorContains(t, err, "no points")
}

func TestRenderStatic_SinglePoint(t *testing.T) {
	f := &dataset.Frame{Columns: []dataset.Column{
		{Name: "x", Kind: dataset.KindNumber, Numbers: []float64{0.5}},
		{Name: "y", Kind: dataset.KindNumber, Numbers: []float64{0}},
		{Name: "competitorname", Kind: dataset.KindText, Strings: []string{"Twix"}},
	}}

	fig, err := Build(f, defaultSettings())
	require.NoError(t, err)

	for _, format := range []Format{FormatSVG, FormatPNG} {
		var buf bytes.Buffer
		require.NoError(t, RenderStatic(&buf, fig, format), format)
		assert.NotZero(t, buf.Len(), format)
	}
}

func TestRenderStatic_ConstantColumn(t *testing.T) {
	f := &dataset.Frame{Columns: []dataset.Column{
		{Name: "x", Kind: dataset.KindNumber, Numbers: []float64{1, 2, 3}},
		{Name: "y", Kind: dataset.KindNumber, Numbers: []float64{7, 7, 7}},
		{Name: "competitorname", Kind: dataset.KindText, Strings: []string{"A", "B", "C"}},
	}}

	fig, err := Build(f, defaultSettings())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderStatic(&buf, fig, FormatSVG))
	assert.Contains(t, buf.String(), "<svg")
}

func TestAxisRange(t *testing.T) {
	r := axisRange([]float64{3, -1, 2})
	assert.Equal(t, -1.0, r.Min)
	assert.Equal(t, 3.0, r.Max)

	r = axisRange([]float64{20, 20})
	assert.InDelta(t, 19.0, r.Min, 1e-9)
	assert.InDelta(t, 21.0, r.Max, 1e-9)

	r = axisRange([]float64{0})
	assert.Equal(t, -1.0, r.Min)
	assert.Equal(t, 1.0, r.Max)
}
