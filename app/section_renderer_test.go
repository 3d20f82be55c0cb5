package app

import (
	"context"
	"testing"

	"txdash/adapters/csvdir"
	"txdash/domain/dataset"
	"txdash/domain/page"
	"txdash/domain/section"
	"txdash/internal/errors"
	"txdash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixtureSet(t *testing.T) dataset.Set {
	t.Helper()
	loader := NewDatasetLoader(csvdir.NewDirectorySource(testkit.NewProcessedDir(t)))
	set, err := loader.Load(context.Background())
	require.NoError(t, err)
	return set
}

func TestRenderEverySection(t *testing.T) {
	set := loadFixtureSet(t)
	renderer := NewSectionRenderer(RenderOptions{})

	for _, sec := range section.All {
		t.Run(sec.Slug(), func(t *testing.T) {
			p, err := renderer.Render(sec, set)
			require.NoError(t, err)

			assert.Equal(t, sec, p.Section)
			assert.Equal(t, sec.Heading(), p.Heading)
			assert.Equal(t, sec.Datasets(), p.Datasets(), "a section draws exactly its own datasets, in order")
		})
	}
}

func TestRenderAnomaliesPreview(t *testing.T) {
	set := loadFixtureSet(t)
	renderer := NewSectionRenderer(RenderOptions{PreviewRows: 5})

	p, err := renderer.Render(section.Anomalies, set)
	require.NoError(t, err)

	metric := p.Find(page.BlockMetric, dataset.ZScoreAnomalies)
	require.NotNil(t, metric)
	assert.Equal(t, "Z-Score Anomaly Transactions", metric.Metric.Label)
	assert.Equal(t, "12", metric.Metric.Value)

	preview := p.Find(page.BlockTable, dataset.ZScoreAnomalies)
	require.NotNil(t, preview)
	assert.Len(t, preview.Table.Rows, 5)
	assert.Equal(t, testkit.ZScoreRows, preview.Table.Total)

	small := p.Find(page.BlockTable, dataset.InputSizeAnomalies)
	require.NotNil(t, small)
	assert.Len(t, small.Table.Rows, testkit.InputSizeRows, "short tables are shown whole")

	kmeans := p.Find(page.BlockMetric, dataset.KMeansOutliers)
	require.NotNil(t, kmeans)
	assert.Equal(t, "7", kmeans.Metric.Value)

	require.Len(t, p.Blocks, 4)
	assert.Equal(t, page.BlockColumns, p.Blocks[0].Kind)
	assert.Equal(t, page.BlockHeading, p.Blocks[1].Kind)
	assert.Equal(t, "Clustering-Based Outliers", p.Blocks[1].Title)
}

func TestRenderGasTrends(t *testing.T) {
	set := loadFixtureSet(t)
	renderer := NewSectionRenderer(RenderOptions{HistogramBins: 10})

	p, err := renderer.Render(section.GasTrends, set)
	require.NoError(t, err)

	line := p.Find(page.BlockLineChart, dataset.AvgGasPerBlock)
	require.NotNil(t, line)
	assert.Equal(t, "Average Gas per Block", line.Title)
	assert.Equal(t, dataset.ColumnBlockNumber, line.Line.X.Label)
	require.Len(t, line.Line.Series, 1)
	assert.Equal(t, "avg_gas", line.Line.Series[0].Name)
	assert.Len(t, line.Line.Series[0].Points, testkit.BlockRows)

	gasCost := p.Find(page.BlockHistogram, dataset.GasCostData)
	require.NotNil(t, gasCost)
	assert.Equal(t, "Gas Cost Distribution (ETH)", gasCost.Histogram.Title)
	assert.Equal(t, "green", gasCost.Histogram.Color)
	assert.False(t, gasCost.Histogram.Grid)
	assert.Len(t, gasCost.Histogram.Bins, 10)
	assert.Equal(t, testkit.GasCostRows, gasCost.Histogram.Summary.Count)

	allTx := p.Find(page.BlockHistogram, dataset.CongestionRatioAllTx)
	require.NotNil(t, allTx)
	assert.Equal(t, "skyblue", allTx.Histogram.Color)
	assert.True(t, allTx.Histogram.Grid)
	assert.Equal(t, "Transaction Count", allTx.Histogram.YLabel)

	unique := p.Find(page.BlockHistogram, dataset.BlockCongestionUnique)
	require.NotNil(t, unique)
	assert.Equal(t, "orange", unique.Histogram.Color)
	assert.Equal(t, "Block Count", unique.Histogram.YLabel)
	assert.Equal(t, testkit.BlockRows, unique.Histogram.Summary.Count)
}

func TestRenderTopAddressesLayout(t *testing.T) {
	set := loadFixtureSet(t)
	p, err := NewSectionRenderer(RenderOptions{}).Render(section.TopAddresses, set)
	require.NoError(t, err)

	require.Len(t, p.Blocks, 2)
	require.Len(t, p.Blocks[0].Columns, 2)
	assert.Equal(t, "From Addresses by Count", p.Blocks[0].Columns[0][0].Title)
	assert.Equal(t, "From Addresses by ETH Volume", p.Blocks[0].Columns[1][0].Title)
	assert.Equal(t, "To Addresses by Count", p.Blocks[1].Title)

	volume := p.Find(page.BlockTable, dataset.TopFromVolume)
	require.NotNil(t, volume)
	assert.Equal(t, []string{dataset.ColumnAddress, dataset.ColumnETHVolume}, volume.Table.Columns)
	assert.Equal(t, dataset.ColumnAddress, volume.Table.Index)
	assert.Len(t, volume.Table.Rows, 3)
}

func TestRenderSchemaMismatchIsolated(t *testing.T) {
	set := loadFixtureSet(t)
	broken := make(dataset.Set, len(set))
	for name, table := range set {
		broken[name] = table
	}
	broken[dataset.AvgGasPerBlock] = &dataset.Table{
		Name:    dataset.AvgGasPerBlock,
		Columns: []string{dataset.ColumnBlockNumber, "note"},
		Rows: [][]dataset.Value{
			{dataset.ParseValue("1000"), dataset.ParseValue("quiet")},
		},
	}

	renderer := NewSectionRenderer(RenderOptions{})

	_, err := renderer.Render(section.GasTrends, broken)
	require.Error(t, err)
	assert.Equal(t, errors.CodeSchemaMismatch, errors.GetCode(err))

	for _, sec := range section.All {
		if sec == section.GasTrends {
			continue
		}
		_, err := renderer.Render(sec, broken)
		assert.NoError(t, err, sec.String())
	}
}

func TestRenderMissingDataset(t *testing.T) {
	set := loadFixtureSet(t)
	partial := set.Subset(section.TopAddresses.Datasets()...)

	_, err := NewSectionRenderer(RenderOptions{}).Render(section.EfficiencyAnalysis, partial)
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatasetMissing, errors.GetCode(err))
}

func TestRenderUnknownSection(t *testing.T) {
	_, err := NewSectionRenderer(RenderOptions{}).Render(section.Section("Mempool"), dataset.Set{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
