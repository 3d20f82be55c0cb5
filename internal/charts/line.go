package charts

import (
	"math"
	"strconv"
	"strings"

	"txdash/domain/dataset"
	"txdash/domain/page"
	"txdash/internal/errors"
)

// Palette is cycled through for line series
var Palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

const (
	frameWidth  = 640
	frameHeight = 260
	marginLeft  = 64
	marginRight = 16
	marginTop   = 12
	marginBot   = 40
)

func defaultFrame() page.Frame {
	return page.Frame{
		Width:  frameWidth,
		Height: frameHeight,
		Left:   marginLeft,
		Top:    marginTop,
		Right:  frameWidth - marginRight,
		Bottom: frameHeight - marginBot,
	}
}

// NewLineChart plots every column of s against its index. NaN samples break
// the line instead of being drawn.
func NewLineChart(index string, s *dataset.Series) (*page.LineChart, error) {
	if s == nil || len(s.Columns) == 0 {
		return nil, errors.InvalidInput("line chart needs at least one series")
	}

	chart := &page.LineChart{
		Frame: defaultFrame(),
		X:     page.Axis{Label: index},
	}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for j, name := range s.Columns {
		series := page.LineSeries{Name: name, Color: Palette[j%len(Palette)]}
		for i, x := range s.X {
			y := s.Y[j][i]
			if math.IsNaN(y) || math.IsInf(y, 0) || math.IsInf(x, 0) || math.IsNaN(x) {
				continue
			}
			series.Points = append(series.Points, page.Point{X: x, Y: y})
			xMin, xMax = math.Min(xMin, x), math.Max(xMax, x)
			yMin, yMax = math.Min(yMin, y), math.Max(yMax, y)
		}
		chart.Series = append(chart.Series, series)
	}

	if math.IsInf(xMin, 1) {
		xMin, xMax, yMin, yMax = 0, 1, 0, 1
	}
	if xMin == xMax {
		xMin, xMax = xMin-0.5, xMax+0.5
	}
	if yMin == yMax {
		yMin, yMax = yMin-0.5, yMax+0.5
	}
	chart.X.Min, chart.X.Max = xMin, xMax
	chart.Y.Min, chart.Y.Max = yMin, yMax
	if len(s.Columns) == 1 {
		chart.Y.Label = s.Columns[0]
	}

	for j := range chart.Series {
		chart.Series[j].Paths = tracePaths(chart, s.X, s.Y[j])
	}
	return chart, nil
}

// tracePaths turns samples into SVG polyline point lists, splitting at gaps
func tracePaths(chart *page.LineChart, xs, ys []float64) []string {
	var paths []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			paths = append(paths, b.String())
			b.Reset()
		}
	}
	for i, x := range xs {
		y := ys[i]
		if math.IsNaN(y) || math.IsInf(y, 0) || math.IsNaN(x) || math.IsInf(x, 0) {
			flush()
			continue
		}
		px := chart.Left + (x-chart.X.Min)/(chart.X.Max-chart.X.Min)*(chart.Right-chart.Left)
		py := chart.Bottom - (y-chart.Y.Min)/(chart.Y.Max-chart.Y.Min)*(chart.Bottom-chart.Top)
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(px, 'f', 2, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(py, 'f', 2, 64))
	}
	flush()
	return paths
}
