package ports

import (
	"context"

	"txdash/domain/dataset"
	"txdash/domain/page"
	"txdash/domain/section"
)

// ReaderPort provides read-only access to rendered sections and raw datasets
// for the HTML and JSON surfaces. Neither surface can modify loaded data.
type ReaderPort interface {
	Sections() []SectionSummary
	RenderSection(ctx context.Context, sec section.Section) (*page.Page, error)
	Dataset(ctx context.Context, name dataset.Name) (*dataset.Table, error)
}

// SectionSummary describes one navigation entry
type SectionSummary struct {
	Name     section.Section `json:"name"`
	Slug     string          `json:"slug"`
	Heading  string          `json:"heading"`
	Datasets []dataset.Name  `json:"datasets"`
}
