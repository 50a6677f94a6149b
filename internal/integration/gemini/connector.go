package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/futig/trip-planner-backend/internal/config"
	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/futig/trip-planner-backend/internal/integration/common"
	pkghttp "github.com/futig/trip-planner-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const finishReasonSafety = "SAFETY"

// Connector calls the Gemini generateContent API with a structured-output
// schema. Transient upstream failures are retried with backoff; content
// policy rejections are surfaced immediately and never retried.
type Connector struct {
	config    config.GeminiConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.GeminiConfig, logger *zap.Logger) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Generate sends the prompt and returns the raw model output. The caller
// must sanitize the output before treating it as an itinerary.
func (c *Connector) Generate(ctx context.Context, prompt *entity.Prompt) (*entity.RawOutput, error) {
	ctxzap.Info(ctx, "generating itinerary via Gemini",
		zap.String("model", c.config.Model),
		zap.Bool("grounded", prompt.Grounded),
		zap.Int("prompt_length", len(prompt.Text)),
	)

	req := &generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt.Text}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   itinerarySchema,
		},
	}

	endpoint := fmt.Sprintf(c.config.GenerateEndpoint, c.config.Model)

	var resp generateResponse
	opts := append(c.config.Retry.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(attempt uint, err error) {
			ctxzap.Warn(ctx, "generation attempt failed, retrying",
				zap.Uint("attempt", attempt),
				zap.Error(err),
			)
		}),
	)

	err := retry.Do(func() error {
		resp = generateResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp,
			pkghttp.WithQueryParam("key", c.config.APIKey),
		)
	}, opts...)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	text, err := extractText(&resp)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "generation succeeded", zap.Int("output_length", len(text)))
	return &entity.RawOutput{Text: text}, nil
}

// Reachable reports whether the generation backend is configured. Used by
// the health endpoint.
func (c *Connector) Reachable() bool {
	return c.config.APIKey != "" && c.config.Url != ""
}

// isTransient reports whether an error is worth retrying: network
// failures, rate limiting and upstream 5xx. Anything else (including a
// cancelled context) fails fast.
func isTransient(err error) bool {
	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled)
	}
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	return false
}

func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", entity.ErrGenerationTimeout, err)
	}
	return fmt.Errorf("%w: %v", entity.ErrGenerationUnavailable, err)
}

// extractText pulls the generated text out of the response, surfacing
// content policy blocks as ErrGenerationRejected.
func extractText(resp *generateResponse) (string, error) {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", entity.ErrGenerationRejected, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", entity.ErrGenerationUnavailable)
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == finishReasonSafety {
		return "", fmt.Errorf("%w: candidate blocked by safety filter", entity.ErrGenerationRejected)
	}
	if len(cand.Content.Parts) == 0 || cand.Content.Parts[0].Text == "" {
		return "", fmt.Errorf("%w: empty candidate content", entity.ErrGenerationUnavailable)
	}
	return cand.Content.Parts[0].Text, nil
}
