package trip

import (
	"context"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/futig/trip-planner-backend/internal/index"
)

type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) (entity.Retrieval, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt *entity.Prompt) (*entity.RawOutput, error)
}

type IndexBuilder interface {
	Build(ctx context.Context, srcDir, outPath string) (*index.Snapshot, *index.Manifest, error)
}

type SnapshotStore interface {
	Swap(snap *index.Snapshot)
	Ready() bool
}
