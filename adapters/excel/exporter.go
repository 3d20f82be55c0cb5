package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"txdash/domain/dataset"
)

// maxSheetName is Excel's limit on sheet name length
const maxSheetName = 31

// Exporter writes datasets as XLSX workbooks
type Exporter struct{}

// NewExporter creates an exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// ContentType is the MIME type of the produced workbook
func (e *Exporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName is the download name for table
func (e *Exporter) FileName(table *dataset.Table) string {
	return string(table.Name) + ".xlsx"
}

// Write renders table into a single-sheet workbook: header row first, numeric
// cells stored as numbers.
func (e *Exporter) Write(w io.Writer, table *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(table.Name)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			switch {
			case v.IsFinite():
				cells[j] = v.Number
			default:
				cells[j] = v.Text
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(table.Columns) > 0 {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SheetName derives a valid sheet name from a dataset name
func SheetName(name dataset.Name) string {
	s := string(name)
	if len(s) > maxSheetName {
		s = s[:maxSheetName]
	}
	return s
}
