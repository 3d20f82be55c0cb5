package csvdir

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"txdash/domain/dataset"
	"txdash/internal"
	"txdash/internal/errors"
)

const utf8BOM = "\ufeff"

// DirectorySource reads datasets from CSV files in one directory
type DirectorySource struct {
	dir    string
	logger *internal.Logger
}

// NewDirectorySource creates a source rooted at dir
func NewDirectorySource(dir string) *DirectorySource {
	return &DirectorySource{dir: dir, logger: internal.DefaultLogger}
}

// Describe names the source for logs
func (s *DirectorySource) Describe() string {
	return "csv:" + s.dir
}

// Path returns where the file for spec is expected
func (s *DirectorySource) Path(spec dataset.Spec) string {
	return filepath.Join(s.dir, spec.File)
}

// Read loads the file for spec. A missing file is DATASET_MISSING; anything
// that does not parse as a rectangular CSV is DATASET_MALFORMED.
func (s *DirectorySource) Read(ctx context.Context, spec dataset.Spec) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(spec)
	start := time.Now()
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.DatasetMissing(string(spec.Name), fmt.Errorf("file not found: %s", path))
		}
		return nil, errors.DatasetMissing(string(spec.Name), err)
	}
	defer file.Close()

	table, err := ReadTable(file, spec)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("[DirectorySource] %s read in %.2fms (%d columns, %d rows)",
		path, float64(time.Since(start).Nanoseconds())/1e6, len(table.Columns), table.Len())
	return table, nil
}

// ReadTable parses CSV content into a table following spec
func ReadTable(r io.Reader, spec dataset.Spec) (*dataset.Table, error) {
	reader := csv.NewReader(r)
	if spec.Headerless {
		reader.FieldsPerRecord = len(spec.Columns)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.DatasetMalformed(string(spec.Name), err)
	}

	var headers []string
	if spec.Headerless {
		headers = append([]string(nil), spec.Columns...)
		if len(rows) > 0 && isHeaderRow(rows[0], spec.Columns) {
			rows = rows[1:]
		}
		if len(rows) == 0 {
			return nil, errors.DatasetMalformed(string(spec.Name), fmt.Errorf("file has no data rows"))
		}
	} else {
		if len(rows) == 0 {
			return nil, errors.DatasetMalformed(string(spec.Name), fmt.Errorf("file is empty, expected a header row"))
		}
		headers, err = processHeaders(rows[0])
		if err != nil {
			return nil, errors.DatasetMalformed(string(spec.Name), err)
		}
		rows = rows[1:]
	}

	return processRows(spec, headers, rows), nil
}

// processHeaders cleans the header row. Blank names (a pandas index written
// without a label) become column_<n>; duplicates are rejected.
func processHeaders(row []string) ([]string, error) {
	headers := make([]string, len(row))
	seen := make(map[string]bool, len(row))
	for i, header := range row {
		if i == 0 {
			header = strings.TrimPrefix(header, utf8BOM)
		}
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("column_%d", i)
		}
		if seen[header] {
			return nil, fmt.Errorf("duplicate column %q", header)
		}
		seen[header] = true
		headers[i] = header
	}
	return headers, nil
}

// isHeaderRow spots a stray header line in a header-less file
func isHeaderRow(row, columns []string) bool {
	if len(row) != len(columns) {
		return false
	}
	for i, cell := range row {
		if i == 0 {
			cell = strings.TrimPrefix(cell, utf8BOM)
		}
		if !strings.EqualFold(strings.TrimSpace(cell), columns[i]) {
			return false
		}
	}
	return true
}

func processRows(spec dataset.Spec, headers []string, rows [][]string) *dataset.Table {
	table := &dataset.Table{
		Name:    spec.Name,
		Columns: headers,
		Rows:    make([][]dataset.Value, len(rows)),
	}
	if spec.IndexFirst && len(headers) > 0 {
		table.Index = headers[0]
	}
	for i, row := range rows {
		values := make([]dataset.Value, len(headers))
		for j := range headers {
			if j < len(row) {
				values[j] = dataset.ParseValue(row[j])
			}
		}
		table.Rows[i] = values
	}
	return table
}
