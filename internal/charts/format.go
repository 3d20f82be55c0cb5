package charts

import (
	"math"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"txdash/domain/dataset"
	"txdash/domain/page"
)

// FormatCell renders one table cell for display. Account addresses are shown
// in EIP-55 checksum form; numbers lose float noise.
func FormatCell(v dataset.Value) string {
	if v.IsEmpty() {
		return ""
	}
	if !v.Numeric {
		if len(v.Text) == 2+2*common.AddressLength && common.IsHexAddress(v.Text) {
			return common.HexToAddress(v.Text).Hex()
		}
		return v.Text
	}
	return FormatNumber(v.Number)
}

// FormatNumber prints integers without a fraction and caps fractions at six
// digits. Long fractions below one keep six significant digits instead.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > 6 {
		if math.Abs(f) < 1 {
			return strconv.FormatFloat(f, 'g', 6, 64)
		}
		s = strconv.FormatFloat(f, 'f', 6, 64)
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}

// NewTableView formats a table for display
func NewTableView(t *dataset.Table) *page.TableView {
	view := &page.TableView{
		Index:   t.Index,
		Columns: t.Columns,
		Rows:    make([][]string, len(t.Rows)),
		Total:   t.Len(),
	}
	for i, row := range t.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatCell(v)
		}
		view.Rows[i] = cells
	}
	return view
}
