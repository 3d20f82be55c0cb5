package app

import (
	"context"
	"fmt"

	"txdash/domain/dataset"
	"txdash/domain/page"
	"txdash/domain/section"
	"txdash/internal/errors"
	"txdash/ports"
)

// DashboardService serves rendered sections and raw datasets to the web surfaces
type DashboardService struct {
	datasets ports.DatasetProvider
	renderer *SectionRenderer
}

// NewDashboardService wires a dataset provider to a renderer
func NewDashboardService(datasets ports.DatasetProvider, renderer *SectionRenderer) *DashboardService {
	return &DashboardService{datasets: datasets, renderer: renderer}
}

// Sections lists the navigation entries in order
func (s *DashboardService) Sections() []ports.SectionSummary {
	out := make([]ports.SectionSummary, 0, len(section.All))
	for _, sec := range section.All {
		out = append(out, ports.SectionSummary{
			Name:     sec,
			Slug:     sec.Slug(),
			Heading:  sec.Heading(),
			Datasets: sec.Datasets(),
		})
	}
	return out
}

// RenderSection renders one section from the memoized datasets
func (s *DashboardService) RenderSection(ctx context.Context, sec section.Section) (*page.Page, error) {
	set, err := s.datasets.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(sec, set)
}

// Dataset returns one loaded table
func (s *DashboardService) Dataset(ctx context.Context, name dataset.Name) (*dataset.Table, error) {
	if _, ok := dataset.Lookup(name); !ok {
		return nil, errors.NotFound(fmt.Sprintf("dataset %s", name))
	}
	set, err := s.datasets.Load(ctx)
	if err != nil {
		return nil, err
	}
	return set.Get(name)
}

var _ ports.ReaderPort = (*DashboardService)(nil)
