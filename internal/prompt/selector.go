package prompt

import (
	"context"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Selector decides between the grounded and the fallback prompt using a
// single relevance threshold. The comparison is strict: a best score
// exactly equal to the threshold selects the fallback path.
type Selector struct {
	threshold float32
	logger    *zap.Logger
}

func NewSelector(threshold float64, logger *zap.Logger) *Selector {
	return &Selector{
		threshold: float32(threshold),
		logger:    logger,
	}
}

// Select builds the generation prompt for a trip request. When the best
// retrieval score exceeds the threshold, the prompt embeds every chunk
// scoring above the threshold (descending) and constrains the model to
// that context; otherwise it instructs the model to use general knowledge.
func (s *Selector) Select(ctx context.Context, req *entity.TripRequest, retrieval entity.Retrieval) *entity.Prompt {
	bestScore := retrieval.BestScore()
	grounded := bestScore > s.threshold

	ctxzap.Info(ctx, "prompt path selected",
		zap.Bool("grounded", grounded),
		zap.Float32("best_score", bestScore),
		zap.Float32("threshold", s.threshold),
		zap.Int("retrieved", len(retrieval)),
	)

	if !grounded {
		return &entity.Prompt{
			Text:     fallbackPrompt(req),
			Grounded: false,
		}
	}

	relevant := retrieval.Above(s.threshold)
	return &entity.Prompt{
		Text:     groundedPrompt(req, relevant),
		Grounded: true,
		Context:  relevant,
	}
}

// Threshold returns the configured relevance threshold.
func (s *Selector) Threshold() float32 { return s.threshold }
