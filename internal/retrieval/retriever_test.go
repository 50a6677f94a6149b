package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	return s.vector, s.err
}

type stubSearcher struct {
	results   entity.Retrieval
	err       error
	gotVector []float32
	gotK      int
}

func (s *stubSearcher) Search(vector []float32, k int) (entity.Retrieval, error) {
	s.gotVector = vector
	s.gotK = k
	return s.results, s.err
}

func TestRetrievePassesQueryVectorAndK(t *testing.T) {
	searcher := &stubSearcher{
		results: entity.Retrieval{
			{Chunk: entity.Chunk{ID: "a", Text: "tokyo"}, Score: 0.9},
		},
	}
	r := NewRetriever(&stubEmbedder{vector: []float32{0.1, 0.2}}, searcher, zap.NewNop())

	results, err := r.Retrieve(context.Background(), "tokyo trip", 7)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []float32{0.1, 0.2}, searcher.gotVector)
	assert.Equal(t, 7, searcher.gotK)
}

func TestRetrieveIndexUnavailable(t *testing.T) {
	searcher := &stubSearcher{err: entity.ErrIndexUnavailable}
	r := NewRetriever(&stubEmbedder{vector: []float32{1}}, searcher, zap.NewNop())

	_, err := r.Retrieve(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, entity.ErrIndexUnavailable)
}

func TestRetrieveEmbedderFailure(t *testing.T) {
	r := NewRetriever(&stubEmbedder{err: errors.New("api down")}, &stubSearcher{}, zap.NewNop())

	_, err := r.Retrieve(context.Background(), "anything", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed query")
}
