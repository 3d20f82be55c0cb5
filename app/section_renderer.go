package app

import (
	"fmt"
	"strconv"

	"txdash/domain/dataset"
	"txdash/domain/page"
	"txdash/domain/section"
	"txdash/internal/charts"
	"txdash/internal/errors"
)

// RenderOptions tunes section layouts
type RenderOptions struct {
	HistogramBins int
	PreviewRows   int
}

// DefaultRenderOptions mirrors the dashboard's stock layout
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{HistogramBins: 50, PreviewRows: 5}
}

// SectionRenderer builds the page for one section from the loaded datasets.
// Rendering is deterministic and reads only the datasets the section owns.
type SectionRenderer struct {
	opts RenderOptions
}

// NewSectionRenderer creates a renderer; zero options fall back to defaults
func NewSectionRenderer(opts RenderOptions) *SectionRenderer {
	defaults := DefaultRenderOptions()
	if opts.HistogramBins < 1 {
		opts.HistogramBins = defaults.HistogramBins
	}
	if opts.PreviewRows < 1 {
		opts.PreviewRows = defaults.PreviewRows
	}
	return &SectionRenderer{opts: opts}
}

// Render lays out sec. Any missing dataset or schema mismatch fails this
// section only.
func (r *SectionRenderer) Render(sec section.Section, set dataset.Set) (*page.Page, error) {
	if !sec.Valid() {
		return nil, errors.NotFound(fmt.Sprintf("section %q", sec))
	}

	view := set.Subset(sec.Datasets()...)

	var blocks []page.Block
	var err error
	switch sec {
	case section.TopAddresses:
		blocks, err = r.topAddresses(view)
	case section.GasTrends:
		blocks, err = r.gasTrends(view)
	case section.ContractInteractions:
		blocks, err = r.contractInteractions(view)
	case section.Anomalies:
		blocks, err = r.anomalies(view)
	case section.EfficiencyAnalysis:
		blocks, err = r.efficiencyAnalysis(view)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render section %s", sec)
	}

	return &page.Page{
		Section: sec,
		Slug:    sec.Slug(),
		Heading: sec.Heading(),
		Blocks:  blocks,
	}, nil
}

func (r *SectionRenderer) topAddresses(view dataset.Set) ([]page.Block, error) {
	fromCount, err := tableBlock(view, dataset.TopFromCount, "From Addresses by Count")
	if err != nil {
		return nil, err
	}
	fromVolume, err := tableBlock(view, dataset.TopFromVolume, "From Addresses by ETH Volume")
	if err != nil {
		return nil, err
	}
	toCount, err := tableBlock(view, dataset.TopToCount, "To Addresses by Count")
	if err != nil {
		return nil, err
	}
	return []page.Block{
		columns([]page.Block{fromCount}, []page.Block{fromVolume}),
		toCount,
	}, nil
}

func (r *SectionRenderer) gasTrends(view dataset.Set) ([]page.Block, error) {
	avgGas, err := lineBlock(view, dataset.AvgGasPerBlock, "Average Gas per Block")
	if err != nil {
		return nil, err
	}
	avgCongestion, err := lineBlock(view, dataset.AvgCongestion, "Average Congestion per Block")
	if err != nil {
		return nil, err
	}
	gasCost, err := r.histogramBlock(view, dataset.GasCostData, dataset.ColumnGasCostETH,
		"Gas Cost Distribution", charts.HistogramOptions{
			Title:  "Gas Cost Distribution (ETH)",
			XLabel: "Gas Cost (ETH)",
			YLabel: "Transactions",
			Color:  "green",
		})
	if err != nil {
		return nil, err
	}
	allTx, err := r.histogramBlock(view, dataset.CongestionRatioAllTx, dataset.ColumnCongestionRatio,
		"Congestion Ratio Distribution - All Transactions", charts.HistogramOptions{
			Title:  "Block Congestion Ratio (All Transactions)",
			XLabel: "Gas Used / Gas Limit",
			YLabel: "Transaction Count",
			Color:  "skyblue",
			Grid:   true,
		})
	if err != nil {
		return nil, err
	}
	unique, err := r.histogramBlock(view, dataset.BlockCongestionUnique, dataset.ColumnCongestionRatio,
		"Congestion Ratio Distribution - Unique Blocks", charts.HistogramOptions{
			Title:  "Block Congestion Ratio (Unique Blocks)",
			XLabel: "Gas Used / Gas Limit",
			YLabel: "Block Count",
			Color:  "orange",
			Grid:   true,
		})
	if err != nil {
		return nil, err
	}
	return []page.Block{avgGas, avgCongestion, gasCost, allTx, unique}, nil
}

func (r *SectionRenderer) contractInteractions(view dataset.Set) ([]page.Block, error) {
	byTx, err := tableBlock(view, dataset.TopContractsByTx, "Top Contracts by Tx Count")
	if err != nil {
		return nil, err
	}
	byGas, err := tableBlock(view, dataset.TopContractsByGas, "Top Contracts by Total Gas")
	if err != nil {
		return nil, err
	}
	efficiency, err := tableBlock(view, dataset.ContractGasEfficiency, "Gas Efficiency Metrics (Top Contracts)")
	if err != nil {
		return nil, err
	}
	return []page.Block{
		columns([]page.Block{byTx}, []page.Block{byGas}),
		efficiency,
	}, nil
}

func (r *SectionRenderer) anomalies(view dataset.Set) ([]page.Block, error) {
	zscore, err := r.previewBlocks(view, dataset.ZScoreAnomalies, "Z-Score Anomaly Transactions")
	if err != nil {
		return nil, err
	}
	inputSize, err := r.previewBlocks(view, dataset.InputSizeAnomalies, "Input Size Anomaly Transactions")
	if err != nil {
		return nil, err
	}
	kmeans, err := r.previewBlocks(view, dataset.KMeansOutliers, "KMeans Outliers")
	if err != nil {
		return nil, err
	}

	blocks := []page.Block{
		columns(zscore, inputSize),
		{Kind: page.BlockHeading, Title: "Clustering-Based Outliers"},
	}
	return append(blocks, kmeans...), nil
}

func (r *SectionRenderer) efficiencyAnalysis(view dataset.Set) ([]page.Block, error) {
	spenders, err := tableBlock(view, dataset.TopSpenders, "Top Wallets by Gas Spent (ETH)")
	if err != nil {
		return nil, err
	}
	ratio, err := tableBlock(view, dataset.TopValueToGasRatio, "Top Value-to-Gas Ratio Transactions")
	if err != nil {
		return nil, err
	}
	return []page.Block{spenders, ratio}, nil
}

// sectionTable looks up a dataset a section needs. A loaded set always holds
// the whole catalog, so a gap here is a server fault rather than a bad request.
func sectionTable(view dataset.Set, name dataset.Name) (*dataset.Table, error) {
	table, err := view.Get(name)
	if err != nil {
		return nil, errors.DatasetMissing(string(name), err)
	}
	return table, nil
}

func tableBlock(view dataset.Set, name dataset.Name, title string) (page.Block, error) {
	table, err := sectionTable(view, name)
	if err != nil {
		return page.Block{}, err
	}
	return page.Block{
		Kind:    page.BlockTable,
		Title:   title,
		Dataset: name,
		Table:   charts.NewTableView(table),
	}, nil
}

func lineBlock(view dataset.Set, name dataset.Name, title string) (page.Block, error) {
	table, err := sectionTable(view, name)
	if err != nil {
		return page.Block{}, err
	}
	series, err := table.IndexedSeries(dataset.ColumnBlockNumber)
	if err != nil {
		return page.Block{}, err
	}
	chart, err := charts.NewLineChart(dataset.ColumnBlockNumber, series)
	if err != nil {
		return page.Block{}, errors.WithCode(errors.CodeSchemaMismatch, err)
	}
	return page.Block{
		Kind:    page.BlockLineChart,
		Title:   title,
		Dataset: name,
		Line:    chart,
	}, nil
}

func (r *SectionRenderer) histogramBlock(view dataset.Set, name dataset.Name, column, title string, opts charts.HistogramOptions) (page.Block, error) {
	table, err := sectionTable(view, name)
	if err != nil {
		return page.Block{}, err
	}
	values, err := table.Floats(column)
	if err != nil {
		return page.Block{}, err
	}
	opts.Bins = r.opts.HistogramBins
	hist, err := charts.NewHistogram(values, opts)
	if err != nil {
		return page.Block{}, err
	}
	return page.Block{
		Kind:      page.BlockHistogram,
		Title:     title,
		Dataset:   name,
		Histogram: hist,
	}, nil
}

// previewBlocks shows a dataset's row count followed by its first rows
func (r *SectionRenderer) previewBlocks(view dataset.Set, name dataset.Name, label string) ([]page.Block, error) {
	table, err := sectionTable(view, name)
	if err != nil {
		return nil, err
	}
	preview := charts.NewTableView(table.Head(r.opts.PreviewRows))
	preview.Total = table.Len()
	return []page.Block{
		{
			Kind:    page.BlockMetric,
			Dataset: name,
			Metric:  &page.Metric{Label: label, Value: strconv.Itoa(table.Len())},
		},
		{
			Kind:    page.BlockTable,
			Dataset: name,
			Table:   preview,
		},
	}, nil
}

func columns(cols ...[]page.Block) page.Block {
	return page.Block{Kind: page.BlockColumns, Columns: cols}
}
