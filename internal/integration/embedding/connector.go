package embedding

import (
	"context"
	"fmt"
	"math"

	"github.com/futig/trip-planner-backend/internal/config"
	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Dimension per embedding model. Query and corpus embeddings must come
// from the same model, otherwise similarity scores are meaningless.
var modelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

const defaultDimension = 1536

// Connector produces L2-normalized embedding vectors via the OpenAI API.
type Connector struct {
	client *openai.Client
	config config.EmbeddingConfig
	dim    int
	logger *zap.Logger
}

func NewConnector(cfg config.EmbeddingConfig, logger *zap.Logger) *Connector {
	dim, ok := modelDimensions[cfg.Model]
	if !ok {
		dim = defaultDimension
	}
	return &Connector{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
		dim:    dim,
		logger: logger,
	}
}

// Embed embeds a single text.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", entity.ErrEmbeddingFailed)
	}
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts in a single API call, preserving order.
func (c *Connector) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctxzap.Debug(ctx, "embedding texts", zap.Int("count", len(texts)), zap.String("model", c.config.Model))

	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(reqCtx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.config.Model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrEmbeddingFailed, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", entity.ErrEmbeddingFailed, len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", entity.ErrEmbeddingFailed, d.Index)
		}
		v := make([]float32, len(d.Embedding))
		copy(v, d.Embedding)
		l2normalize(v)
		vectors[d.Index] = v
	}
	return vectors, nil
}

func (c *Connector) Dimension() int { return c.dim }

func (c *Connector) Model() string { return c.config.Model }

// l2normalize scales a vector to unit length so dot products equal
// cosine similarity.
func l2normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
