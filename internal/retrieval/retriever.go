package retrieval

import (
	"context"
	"fmt"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Embedder embeds a query with the same model used at index time.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher runs similarity search over the active index snapshot.
type Searcher interface {
	Search(vector []float32, k int) (entity.Retrieval, error)
}

// Retriever embeds a query and returns the top-k most similar chunks.
type Retriever struct {
	embedder Embedder
	store    Searcher
	logger   *zap.Logger
}

func NewRetriever(embedder Embedder, store Searcher, logger *zap.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Retrieve returns the k nearest chunks with similarity scores, descending.
// Fails with ErrIndexUnavailable when no index has been built.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) (entity.Retrieval, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := r.store.Search(vector, k)
	if err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "retrieval complete",
		zap.Int("results", len(results)),
		zap.Float32("best_score", results.BestScore()),
	)
	return results, nil
}
