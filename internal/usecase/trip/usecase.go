package trip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/futig/trip-planner-backend/internal/index"
	"github.com/futig/trip-planner-backend/internal/pkg/logger"
	"github.com/futig/trip-planner-backend/internal/pkg/validator"
	"github.com/futig/trip-planner-backend/internal/prompt"
	"github.com/futig/trip-planner-backend/internal/sanitize"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// TripUsecase orchestrates the planning pipeline:
// retrieve -> select prompt -> generate -> sanitize.
type TripUsecase struct {
	retriever  Retriever
	selector   *prompt.Selector
	generator  Generator
	sanitizer  *sanitize.Sanitizer
	builder    IndexBuilder
	store      SnapshotStore
	validator  *validator.Validator
	cache      *gocache.Cache
	topK       int
	genTimeout time.Duration
	sourceDir  string
	indexPath  string
	logger     *zap.Logger
}

// Options carries the pipeline knobs that come from configuration.
type Options struct {
	TopK              int
	GenerationTimeout time.Duration
	ResponseCacheTTL  time.Duration
	KnowledgeBaseDir  string
	IndexPath         string
}

// NewUsecase creates a new trip planning use case
func NewUsecase(
	retriever Retriever,
	selector *prompt.Selector,
	generator Generator,
	sanitizer *sanitize.Sanitizer,
	builder IndexBuilder,
	store SnapshotStore,
	validator *validator.Validator,
	opts Options,
	logger *zap.Logger,
) *TripUsecase {
	var cache *gocache.Cache
	if opts.ResponseCacheTTL > 0 {
		cache = gocache.New(opts.ResponseCacheTTL, opts.ResponseCacheTTL)
	}

	return &TripUsecase{
		retriever:  retriever,
		selector:   selector,
		generator:  generator,
		sanitizer:  sanitizer,
		builder:    builder,
		store:      store,
		validator:  validator,
		cache:      cache,
		topK:       opts.TopK,
		genTimeout: opts.GenerationTimeout,
		sourceDir:  opts.KnowledgeBaseDir,
		indexPath:  opts.IndexPath,
		logger:     logger,
	}
}

// PlanTrip runs the full pipeline for a single trip request.
func (uc *TripUsecase) PlanTrip(ctx context.Context, req *entity.TripRequest) (*entity.PlanTripResponse, error) {
	if err := uc.validator.ValidatePlanTrip(req); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if cached, ok := uc.cache.Get(req.Fingerprint()); ok {
			ctxzap.Info(ctx, "trip plan served from cache",
				zap.String("destination", req.Destination),
			)
			return cached.(*entity.PlanTripResponse), nil
		}
	}

	retrieval, err := uc.retriever.Retrieve(ctx, retrievalQuery(req), uc.topK)
	if err != nil {
		ctxzap.Error(ctx, "retrieval failed", zap.Error(err))
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	p := uc.selector.Select(ctx, req, retrieval)
	ctx = logger.WithPath(ctx, p.Grounded)

	raw, err := uc.generate(ctx, p)
	if err != nil {
		ctxzap.Error(ctx, "generation failed", zap.Error(err))
		return nil, fmt.Errorf("generate itinerary: %w", err)
	}

	itinerary, err := uc.sanitizer.Sanitize(ctx, raw, p)
	if err != nil {
		ctxzap.Error(ctx, "sanitization failed", zap.Error(err))
		return nil, fmt.Errorf("sanitize output: %w", err)
	}

	resp := &entity.PlanTripResponse{
		Data:     itinerary,
		Grounded: p.Grounded,
	}

	if uc.cache != nil {
		uc.cache.Set(req.Fingerprint(), resp, gocache.DefaultExpiration)
	}

	ctxzap.Info(ctx, "trip plan generated",
		zap.String("destination", req.Destination),
		zap.Int("hotels", len(itinerary.Hotels)),
		zap.Int("restaurants", len(itinerary.Restaurants)),
		zap.Int("days", len(itinerary.Days)),
	)

	return resp, nil
}

// generate calls the model under the per-request generation ceiling.
func (uc *TripUsecase) generate(ctx context.Context, p *entity.Prompt) (*entity.RawOutput, error) {
	genCtx := ctx
	if uc.genTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, uc.genTimeout)
		defer cancel()
	}

	raw, err := uc.generator.Generate(genCtx, p)
	if err != nil {
		// The ceiling expiring is a generation timeout regardless of how
		// the connector reported it; the caller cancelling is not.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s", entity.ErrGenerationTimeout, err)
		}
		return nil, err
	}

	return raw, nil
}

// RebuildIndex rebuilds the knowledge base index and swaps the live
// snapshot. Cached responses are dropped because they may reference the
// replaced context.
func (uc *TripUsecase) RebuildIndex(ctx context.Context) (*index.Manifest, error) {
	snap, manifest, err := uc.builder.Build(ctx, uc.sourceDir, uc.indexPath)
	if err != nil {
		return nil, fmt.Errorf("rebuild index: %w", err)
	}

	uc.store.Swap(snap)
	if uc.cache != nil {
		uc.cache.Flush()
	}

	ctxzap.Info(ctx, "index rebuilt",
		zap.Int("chunks", manifest.ChunkCount),
		zap.Int("documents", manifest.DocumentCount),
		zap.String("model", manifest.EmbeddingModel),
	)

	return manifest, nil
}

// IndexReady reports whether a snapshot is loaded and searchable.
func (uc *TripUsecase) IndexReady() bool {
	return uc.store.Ready()
}

func retrievalQuery(req *entity.TripRequest) string {
	query := strings.TrimSpace(req.Destination)
	if prefs := strings.TrimSpace(req.Preferences); prefs != "" {
		query += " " + prefs
	}
	return query
}
