package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"txdash/domain/dataset"
	"txdash/internal"
	"txdash/internal/errors"
	"txdash/ports"
)

// defaultReadConcurrency bounds how many dataset files are read at once
const defaultReadConcurrency = 4

// DatasetLoader reads every catalog dataset once per process and memoizes
// the result. The mapping is never refreshed.
type DatasetLoader struct {
	source      ports.DatasetSource
	catalog     []dataset.Spec
	concurrency int
	logger      *internal.Logger

	once sync.Once
	set  dataset.Set
	err  error
}

// NewDatasetLoader creates a loader over the full dataset catalog
func NewDatasetLoader(source ports.DatasetSource) *DatasetLoader {
	return &DatasetLoader{
		source:      source,
		catalog:     dataset.Catalog,
		concurrency: defaultReadConcurrency,
		logger:      internal.DefaultLogger,
	}
}

// Load returns the dataset mapping. The first call reads every dataset; if any
// one is missing or malformed the whole load fails and no mapping is returned.
// Later calls return the same mapping, or the same error.
func (l *DatasetLoader) Load(ctx context.Context) (dataset.Set, error) {
	l.once.Do(func() {
		l.set, l.err = l.load(ctx)
	})
	return l.set, l.err
}

func (l *DatasetLoader) load(ctx context.Context) (dataset.Set, error) {
	start := time.Now()
	l.logger.Info("[DatasetLoader] Loading %d datasets from %s", len(l.catalog), l.source.Describe())

	tables := make([]*dataset.Table, len(l.catalog))
	errs := make([]error, len(l.catalog))

	// Every dataset is read even after a failure, so the reported error is
	// always the first failing dataset in catalog order.
	var g errgroup.Group
	g.SetLimit(l.concurrency)
	for i, spec := range l.catalog {
		i, spec := i, spec
		g.Go(func() error {
			table, err := l.source.Read(ctx, spec)
			if err == nil {
				err = spec.CheckColumns(table)
			}
			if err != nil {
				errs[i] = err
				return nil
			}
			tables[i] = table
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			l.logger.Error("[DatasetLoader] Dataset %s failed: %v", l.catalog[i].Name, err)
			return nil, errors.Wrapf(err, "failed to load dataset %s", l.catalog[i].Name)
		}
	}

	set := make(dataset.Set, len(tables))
	for i, table := range tables {
		set[l.catalog[i].Name] = table
		l.logger.Debug("[DatasetLoader] %s: %d rows, columns %v", l.catalog[i].Name, table.Len(), table.Columns)
	}

	l.logger.Info("[DatasetLoader] Loaded %d datasets in %.2fms",
		len(set), float64(time.Since(start).Nanoseconds())/1e6)
	return set, nil
}
