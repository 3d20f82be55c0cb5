package page

import (
	"txdash/domain/dataset"
	"txdash/domain/section"
)

// BlockKind identifies what a block draws
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockTable     BlockKind = "table"
	BlockLineChart BlockKind = "line_chart"
	BlockHistogram BlockKind = "histogram"
	BlockMetric    BlockKind = "metric"
	BlockColumns   BlockKind = "columns"
)

// Page is one rendered section
type Page struct {
	Section section.Section `json:"section"`
	Slug    string          `json:"slug"`
	Heading string          `json:"heading"`
	Blocks  []Block         `json:"blocks"`
}

// Block is one element of a page. Exactly one payload field is set, matching Kind;
// BlockColumns lays its Columns out side by side.
type Block struct {
	Kind      BlockKind    `json:"kind"`
	Title     string       `json:"title,omitempty"`
	Dataset   dataset.Name `json:"dataset,omitempty"`
	Table     *TableView   `json:"table,omitempty"`
	Line      *LineChart   `json:"line,omitempty"`
	Histogram *Histogram   `json:"histogram,omitempty"`
	Metric    *Metric      `json:"metric,omitempty"`
	Columns   [][]Block    `json:"columns,omitempty"`
}

// Datasets lists every dataset a page draws from, in first-use order
func (p *Page) Datasets() []dataset.Name {
	seen := make(map[dataset.Name]bool)
	var out []dataset.Name
	var walk func(blocks []Block)
	walk = func(blocks []Block) {
		for _, b := range blocks {
			if b.Dataset != "" && !seen[b.Dataset] {
				seen[b.Dataset] = true
				out = append(out, b.Dataset)
			}
			for _, col := range b.Columns {
				walk(col)
			}
		}
	}
	walk(p.Blocks)
	return out
}

// Find returns the first block, depth-first, that draws name with the given kind
func (p *Page) Find(kind BlockKind, name dataset.Name) *Block {
	var found *Block
	var walk func(blocks []Block)
	walk = func(blocks []Block) {
		for i := range blocks {
			if found != nil {
				return
			}
			b := &blocks[i]
			if b.Kind == kind && b.Dataset == name {
				found = b
				return
			}
			for _, col := range b.Columns {
				walk(col)
			}
		}
	}
	walk(p.Blocks)
	return found
}

// TableView is a display-ready table. Index is empty for tables with a
// positional index, in which case row numbers are shown.
type TableView struct {
	Index   string     `json:"index,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// Metric is a single labelled figure
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Frame is the SVG canvas and its plot area
type Frame struct {
	Width  float64 `json:"-"`
	Height float64 `json:"-"`
	Left   float64 `json:"-"`
	Top    float64 `json:"-"`
	Right  float64 `json:"-"`
	Bottom float64 `json:"-"`
}

// Axis describes one chart axis
type Axis struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Point is one finite sample of a line series
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineSeries is one column plotted against the index
type LineSeries struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
	// Paths holds SVG polyline coordinates, one per gap-free run.
	Paths []string `json:"-"`
}

// LineChart plots one or more series over a numeric index
type LineChart struct {
	Frame
	X      Axis         `json:"x"`
	Y      Axis         `json:"y"`
	Series []LineSeries `json:"series"`
}

// Bin is one histogram bucket, [Lower, Upper)
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Bar is the SVG rectangle drawn for a bin
type Bar struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Count  int
}

// Summary holds descriptive statistics of the histogram input
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Histogram is a binned distribution of one numeric column
type Histogram struct {
	Frame
	Title    string    `json:"title"`
	X        Axis      `json:"x"`
	YLabel   string    `json:"y_label"`
	Color    string    `json:"color"`
	Grid     bool      `json:"grid"`
	Bins     []Bin     `json:"bins"`
	MaxCount int       `json:"max_count"`
	Summary  Summary   `json:"summary"`
	Bars     []Bar     `json:"-"`
	GridY    []float64 `json:"-"`
}
