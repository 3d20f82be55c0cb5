package ports

import (
	"context"

	"txdash/domain/dataset"
)

// DatasetSource reads one pre-computed dataset according to its spec.
// Implementations never write.
type DatasetSource interface {
	Read(ctx context.Context, spec dataset.Spec) (*dataset.Table, error)
	Describe() string
}

// DatasetProvider hands out the loaded dataset mapping. Every call after the
// first returns the same mapping (or the same error).
type DatasetProvider interface {
	Load(ctx context.Context) (dataset.Set, error)
}
