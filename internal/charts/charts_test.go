package charts

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"txdash/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramCountsEveryValue(t *testing.T) {
	values := []float64{0.1, 0.2, 0.2, 0.5, 0.9, 1.0, math.NaN(), math.Inf(1)}

	h, err := NewHistogram(values, HistogramOptions{Bins: 50, XLabel: "Gas Used / Gas Limit", YLabel: "Block Count"})
	require.NoError(t, err)

	require.Len(t, h.Bins, 50)
	total := 0
	for _, bin := range h.Bins {
		total += bin.Count
	}
	assert.Equal(t, 6, total, "NaN and Inf are dropped, the maximum is kept")
	assert.Equal(t, 1, h.Bins[49].Count, "the top value lands in the closed last bin")
	assert.Equal(t, 1.0, h.Bins[49].Upper)
	assert.Equal(t, 0.1, h.Bins[0].Lower)
	assert.Equal(t, 6, h.Summary.Count)
	assert.InDelta(t, 0.35, h.Summary.Median, 1e-9)
	assert.Equal(t, 0.1, h.Summary.Min)
	assert.Equal(t, 1.0, h.Summary.Max)
	assert.Len(t, h.Bars, 50)
}

func TestHistogramBinsAreContiguous(t *testing.T) {
	h, err := NewHistogram([]float64{3, 1, 2, 7, 5}, HistogramOptions{Bins: 4})
	require.NoError(t, err)

	for i := 1; i < len(h.Bins); i++ {
		assert.Equal(t, h.Bins[i-1].Upper, h.Bins[i].Lower)
	}
	assert.Equal(t, []int{2, 1, 1, 1}, []int{h.Bins[0].Count, h.Bins[1].Count, h.Bins[2].Count, h.Bins[3].Count})
	assert.Equal(t, 2, h.MaxCount)
}

func TestHistogramTopValueAtSpanEdge(t *testing.T) {
	values := []float64{0.002535405005150605, 0.01663945475339684}

	h, err := NewHistogram(values, HistogramOptions{Bins: 50})
	require.NoError(t, err)

	total := 0
	for _, bin := range h.Bins {
		total += bin.Count
	}
	assert.Equal(t, len(values), total)
	assert.Equal(t, 1, h.Bins[len(h.Bins)-1].Count)
	assert.Equal(t, values[1], h.Bins[len(h.Bins)-1].Upper)
}

func TestHistogramCountsRandomGasCosts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 500; trial++ {
		values := make([]float64, 2+rng.Intn(40))
		for i := range values {
			values[i] = rng.ExpFloat64() * 0.005
		}

		h, err := NewHistogram(values, HistogramOptions{Bins: 50})
		require.NoError(t, err, "trial %d", trial)

		total := 0
		for _, bin := range h.Bins {
			total += bin.Count
		}
		require.Equal(t, len(values), total, "trial %d", trial)
	}
}

func TestHistogramConstantAndEmpty(t *testing.T) {
	h, err := NewHistogram([]float64{4, 4, 4}, HistogramOptions{Bins: 10})
	require.NoError(t, err)
	assert.Equal(t, 3.5, h.X.Min)
	assert.Equal(t, 4.5, h.X.Max)

	empty, err := NewHistogram(nil, HistogramOptions{Bins: 10, Grid: true})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.MaxCount)
	assert.Equal(t, 0, empty.Summary.Count)
	assert.Len(t, empty.GridY, 4)

	_, err = NewHistogram([]float64{1}, HistogramOptions{Bins: 0})
	assert.Error(t, err)
}

func TestHistogramBarsFitFrame(t *testing.T) {
	h, err := NewHistogram([]float64{1, 1, 2, 3}, HistogramOptions{Bins: 3})
	require.NoError(t, err)

	tallest := h.Bars[0]
	assert.InDelta(t, h.Bottom-h.Top, tallest.Height, 1e-9)
	assert.InDelta(t, h.Top, tallest.Y, 1e-9)
	last := h.Bars[len(h.Bars)-1]
	assert.InDelta(t, h.Right, last.X+last.Width, 1e-9)
}

func TestLineChartIndexedByBlockNumber(t *testing.T) {
	series := &dataset.Series{
		X:       []float64{100, 101, 102, 103},
		Columns: []string{"avg_gas"},
		Y:       [][]float64{{21000, math.NaN(), 28000, 30000}},
	}

	chart, err := NewLineChart("block_number", series)
	require.NoError(t, err)

	assert.Equal(t, "block_number", chart.X.Label)
	assert.Equal(t, "avg_gas", chart.Y.Label)
	assert.Equal(t, 100.0, chart.X.Min)
	assert.Equal(t, 103.0, chart.X.Max)
	assert.Equal(t, 21000.0, chart.Y.Min)
	assert.Equal(t, 30000.0, chart.Y.Max)

	require.Len(t, chart.Series, 1)
	assert.Len(t, chart.Series[0].Points, 3)
	require.Len(t, chart.Series[0].Paths, 2, "NaN splits the line")
	assert.True(t, strings.HasPrefix(chart.Series[0].Paths[0], "64.00,"))
}

func TestLineChartSkipsNonFiniteBlockNumbers(t *testing.T) {
	series := &dataset.Series{
		X:       []float64{100, math.Inf(1), 102},
		Columns: []string{"avg_gas"},
		Y:       [][]float64{{21000, 25000, 28000}},
	}

	chart, err := NewLineChart("block_number", series)
	require.NoError(t, err)

	require.Len(t, chart.Series, 1)
	require.Len(t, chart.Series[0].Paths, 2)
	for _, path := range chart.Series[0].Paths {
		assert.NotContains(t, path, "NaN")
		assert.NotContains(t, path, "Inf")
	}
}

func TestLineChartRequiresSeries(t *testing.T) {
	_, err := NewLineChart("block_number", &dataset.Series{})
	assert.Error(t, err)
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"1.23", "1.23"},
		{"42", "42"},
		{"42.0", "42"},
		{"0.000012345678", "1.23457e-05"},
		{"0.0012345678", "0.00123457"},
		{"4.2e-7", "4.2e-07"},
		{"-4.2e-7", "-4.2e-07"},
		{"35000.123456789", "35000.123457"},
		{"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"0xabc", "0xabc"},
		{"0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b", "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"},
		{"transfer", "transfer"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCell(dataset.ParseValue(tt.raw)), "raw %q", tt.raw)
	}
}

func TestNewTableView(t *testing.T) {
	table := &dataset.Table{
		Name:    dataset.TopFromVolume,
		Columns: []string{"address", "eth_volume"},
		Index:   "address",
		Rows:    [][]dataset.Value{{dataset.ParseValue("0xabc"), dataset.ParseValue("1.23")}},
	}

	view := NewTableView(table)
	assert.Equal(t, "address", view.Index)
	assert.Equal(t, []string{"address", "eth_volume"}, view.Columns)
	assert.Equal(t, [][]string{{"0xabc", "1.23"}}, view.Rows)
	assert.Equal(t, 1, view.Total)
}
