package ui

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"txdash/domain/dataset"
	"txdash/domain/section"
	"txdash/internal/testkit"
	"txdash/ports"
)

func TestAppListSections(t *testing.T) {
	api := NewApp(newTestService(t, testkit.NewProcessedDir(t)))

	rec := get(t, api.Handler(), "/api/sections")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var sections []ports.SectionSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sections))
	require.Len(t, sections, len(section.All))
	assert.Equal(t, section.TopAddresses, sections[0].Name)
	assert.Equal(t, "efficiency-analysis", sections[4].Slug)
}

func TestAppGetSection(t *testing.T) {
	api := NewApp(newTestService(t, testkit.NewProcessedDir(t)))

	rec := get(t, api.Handler(), "/api/sections/gas-trends")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Slug   string `json:"slug"`
		Blocks []struct {
			Kind      string `json:"kind"`
			Dataset   string `json:"dataset"`
			Histogram *struct {
				Bins []struct {
					Count int `json:"count"`
				} `json:"bins"`
			} `json:"histogram"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "gas-trends", body.Slug)
	require.Len(t, body.Blocks, 5)
	assert.Equal(t, "line_chart", body.Blocks[0].Kind)

	gasCost := body.Blocks[2]
	require.NotNil(t, gasCost.Histogram)
	assert.Equal(t, string(dataset.GasCostData), gasCost.Dataset)
	assert.Len(t, gasCost.Histogram.Bins, 50)
	total := 0
	for _, bin := range gasCost.Histogram.Bins {
		total += bin.Count
	}
	assert.Equal(t, testkit.GasCostRows, total)
}

func TestAppGetDataset(t *testing.T) {
	api := NewApp(newTestService(t, testkit.NewProcessedDir(t)))

	rec := get(t, api.Handler(), "/api/datasets/top_from_volume")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Index   string          `json:"index"`
		Columns []string        `json:"columns"`
		Rows    [][]interface{} `json:"rows"`
		Total   int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, dataset.ColumnAddress, body.Index)
	assert.Equal(t, []string{dataset.ColumnAddress, dataset.ColumnETHVolume}, body.Columns)
	require.Len(t, body.Rows, 3)
	assert.Equal(t, testkit.Addresses[0], body.Rows[0][0])
	assert.Equal(t, 12.5, body.Rows[0][1])
}

func TestAppNotFound(t *testing.T) {
	api := NewApp(newTestService(t, testkit.NewProcessedDir(t)))

	for _, path := range []string{"/api/sections/mempool", "/api/datasets/mempool", "/api/nowhere"} {
		rec := get(t, api.Handler(), path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "NOT_FOUND", body["code"])
	}
}

func TestAppRenderFailure(t *testing.T) {
	dir := testkit.NewProcessedDir(t)
	testkit.Overwrite(t, dir, dataset.GasCostData, "hash,gas_cost_eth\n0x01,cheap\n")
	api := NewApp(newTestService(t, dir))

	rec := get(t, api.Handler(), "/api/sections/gas-trends")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SCHEMA_MISMATCH", body["code"])
}
