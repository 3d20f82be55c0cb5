package dataset

import (
	"fmt"
	"math"
	"sort"

	"txdash/internal/errors"
)

// Table is the in-memory form of one dataset. It is never mutated after load.
type Table struct {
	Name    Name      `json:"name"`
	Columns []string  `json:"columns"`
	Index   string    `json:"index,omitempty"`
	Rows    [][]Value `json:"rows"`
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Head returns a view over the first n rows
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{
		Name:    t.Name,
		Columns: t.Columns,
		Index:   t.Index,
		Rows:    t.Rows[:n:n],
	}
}

// ColumnIndex returns the position of column, or -1
func (t *Table) ColumnIndex(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// HasColumn reports whether column exists
func (t *Table) HasColumn(column string) bool {
	return t.ColumnIndex(column) >= 0
}

// Column returns every cell of column
func (t *Table) Column(column string) ([]Value, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil, errors.SchemaMismatch(fmt.Sprintf("dataset %s has no column %q (columns: %v)", t.Name, column, t.Columns))
	}
	values := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Floats returns the non-empty cells of column as numbers.
// Empty cells are skipped; any other non-numeric cell is a schema mismatch.
func (t *Table) Floats(column string) ([]float64, error) {
	values, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(values))
	for i, v := range values {
		if v.IsEmpty() {
			continue
		}
		if !v.Numeric {
			return nil, errors.SchemaMismatch(fmt.Sprintf("dataset %s column %q row %d is not numeric: %q", t.Name, column, i, v.Text))
		}
		out = append(out, v.Number)
	}
	return out, nil
}

// IsNumericColumn reports whether every non-empty cell of column is numeric
// and at least one cell is present
func (t *Table) IsNumericColumn(column string) bool {
	values, err := t.Column(column)
	if err != nil {
		return false
	}
	seen := false
	for _, v := range values {
		if v.IsEmpty() {
			continue
		}
		if !v.Numeric {
			return false
		}
		seen = true
	}
	return seen
}

// Series is an x-indexed run of y values, one per named column
type Series struct {
	X       []float64
	Columns []string
	Y       [][]float64
}

// IndexedSeries reads every numeric column other than index against index.
// Rows with an empty index are dropped; rows are ordered by index.
func (t *Table) IndexedSeries(index string) (*Series, error) {
	idx := t.ColumnIndex(index)
	if idx < 0 {
		return nil, errors.SchemaMismatch(fmt.Sprintf("dataset %s has no index column %q", t.Name, index))
	}

	var columns []int
	for i, c := range t.Columns {
		if i != idx && t.IsNumericColumn(c) {
			columns = append(columns, i)
		}
	}
	if len(columns) == 0 {
		return nil, errors.SchemaMismatch(fmt.Sprintf("dataset %s has no numeric column besides %q", t.Name, index))
	}

	type point struct {
		x float64
		y []float64
	}
	points := make([]point, 0, len(t.Rows))
	for i, row := range t.Rows {
		xv := row[idx]
		if xv.IsEmpty() {
			continue
		}
		if !xv.Numeric {
			return nil, errors.SchemaMismatch(fmt.Sprintf("dataset %s index %q row %d is not numeric: %q", t.Name, index, i, xv.Text))
		}
		p := point{x: xv.Number, y: make([]float64, len(columns))}
		for j, c := range columns {
			p.y[j] = row[c].Number
			if row[c].IsEmpty() {
				p.y[j] = math.NaN()
			}
		}
		points = append(points, p)
	}
	sort.SliceStable(points, func(a, b int) bool { return points[a].x < points[b].x })

	s := &Series{X: make([]float64, len(points)), Y: make([][]float64, len(columns))}
	for _, c := range columns {
		s.Columns = append(s.Columns, t.Columns[c])
	}
	for j := range columns {
		s.Y[j] = make([]float64, len(points))
	}
	for i, p := range points {
		s.X[i] = p.x
		for j := range columns {
			s.Y[j][i] = p.y[j]
		}
	}
	return s, nil
}

// CheckColumns verifies that the table carries every column the spec requires
func (s Spec) CheckColumns(t *Table) error {
	for _, column := range s.Required {
		if !t.HasColumn(column) {
			return errors.SchemaMismatch(fmt.Sprintf("dataset %s is missing required column %q (columns: %v)", s.Name, column, t.Columns))
		}
	}
	if len(t.Columns) == 0 {
		return errors.SchemaMismatch(fmt.Sprintf("dataset %s has no columns", s.Name))
	}
	return nil
}

// Set maps every loaded dataset to its table. Shared read-only.
type Set map[Name]*Table

// Get returns the table for name
func (s Set) Get(name Name) (*Table, error) {
	t, ok := s[name]
	if !ok || t == nil {
		return nil, errors.NotFound(fmt.Sprintf("dataset %s", name))
	}
	return t, nil
}

// Subset returns a set restricted to names; tables are shared, not copied
func (s Set) Subset(names ...Name) Set {
	out := make(Set, len(names))
	for _, name := range names {
		if t, ok := s[name]; ok {
			out[name] = t
		}
	}
	return out
}
