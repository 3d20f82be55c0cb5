package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"txdash/domain/dataset"
)

func TestExportRoundTrip(t *testing.T) {
	table := &dataset.Table{
		Name:    dataset.TopFromVolume,
		Columns: []string{"address", "eth_volume"},
		Index:   "address",
		Rows: [][]dataset.Value{
			{dataset.ParseValue("0xabc"), dataset.ParseValue("1.23")},
			{dataset.ParseValue("0xdef"), dataset.ParseValue("")},
		},
	}

	var buf bytes.Buffer
	exporter := NewExporter()
	require.NoError(t, exporter.Write(&buf, table))
	assert.Equal(t, "top_from_volume.xlsx", exporter.FileName(table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("top_from_volume")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"address", "eth_volume"}, rows[0])
	assert.Equal(t, []string{"0xabc", "1.23"}, rows[1])
	assert.Equal(t, "0xdef", rows[2][0])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "kmeans_outliers", SheetName(dataset.KMeansOutliers))
	long := dataset.Name(strings.Repeat("x", 40))
	assert.Len(t, SheetName(long), 31)
}
