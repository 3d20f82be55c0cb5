package charts

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"txdash/domain/page"
	"txdash/internal/errors"
)

// HistogramOptions configures NewHistogram
type HistogramOptions struct {
	Bins   int
	Title  string
	XLabel string
	YLabel string
	Color  string
	Grid   bool
}

// NewHistogram bins values into opts.Bins equal-width buckets spanning
// [min, max]. The last bucket is closed so the maximum is counted.
// NaN and infinite values are dropped.
func NewHistogram(values []float64, opts HistogramOptions) (*page.Histogram, error) {
	if opts.Bins < 1 {
		return nil, errors.InvalidInput("histogram needs at least one bin")
	}

	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			x = append(x, v)
		}
	}
	sort.Float64s(x)

	lo, hi := 0.0, 1.0
	if len(x) > 0 {
		lo, hi = x[0], x[len(x)-1]
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
	}

	dividers := make([]float64, opts.Bins+1)
	floats.Span(dividers, lo, hi)
	// Span can land one ulp below hi, and stat.Histogram treats the top
	// divider as exclusive.
	top := hi
	dividers[len(dividers)-1] = math.Nextafter(top, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)

	h := &page.Histogram{
		Frame:   defaultFrame(),
		Title:   opts.Title,
		X:       page.Axis{Label: opts.XLabel, Min: lo, Max: hi},
		YLabel:  opts.YLabel,
		Color:   opts.Color,
		Grid:    opts.Grid,
		Bins:    make([]page.Bin, opts.Bins),
		Summary: Summarize(x),
	}
	for i, c := range counts {
		upper := dividers[i+1]
		if i == len(counts)-1 {
			upper = top
		}
		h.Bins[i] = page.Bin{Lower: dividers[i], Upper: upper, Count: int(c)}
		if int(c) > h.MaxCount {
			h.MaxCount = int(c)
		}
	}

	layoutBars(h)
	return h, nil
}

func layoutBars(h *page.Histogram) {
	plotW := h.Right - h.Left
	plotH := h.Bottom - h.Top
	barW := plotW / float64(len(h.Bins))

	h.Bars = make([]page.Bar, len(h.Bins))
	for i, bin := range h.Bins {
		height := 0.0
		if h.MaxCount > 0 {
			height = float64(bin.Count) / float64(h.MaxCount) * plotH
		}
		h.Bars[i] = page.Bar{
			X:      h.Left + float64(i)*barW,
			Y:      h.Bottom - height,
			Width:  barW,
			Height: height,
			Count:  bin.Count,
		}
	}

	if h.Grid {
		for _, frac := range []float64{0.25, 0.5, 0.75, 1} {
			h.GridY = append(h.GridY, h.Bottom-frac*plotH)
		}
	}
}

// Summarize computes descriptive statistics; an empty input yields a zero summary
func Summarize(values []float64) page.Summary {
	if len(values) == 0 {
		return page.Summary{}
	}
	data := stats.Float64Data(values)
	s := page.Summary{Count: len(values)}
	s.Mean, _ = stats.Mean(data)
	s.Median, _ = stats.Median(data)
	s.Min, _ = stats.Min(data)
	s.Max, _ = stats.Max(data)
	if len(values) > 1 {
		s.StdDev, _ = stats.StandardDeviationSample(data)
	}
	return s
}
