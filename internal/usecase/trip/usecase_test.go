package trip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/futig/trip-planner-backend/internal/index"
	"github.com/futig/trip-planner-backend/internal/pkg/validator"
	"github.com/futig/trip-planner-backend/internal/prompt"
	"github.com/futig/trip-planner-backend/internal/retrieval"
	"github.com/futig/trip-planner-backend/internal/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRetriever struct {
	retrieval entity.Retrieval
	err       error
	gotQuery  string
	gotK      int
	calls     int
}

func (s *stubRetriever) Retrieve(_ context.Context, query string, k int) (entity.Retrieval, error) {
	s.calls++
	s.gotQuery = query
	s.gotK = k
	return s.retrieval, s.err
}

type stubGenerator struct {
	fn    func(ctx context.Context, p *entity.Prompt) (*entity.RawOutput, error)
	got   *entity.Prompt
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context, p *entity.Prompt) (*entity.RawOutput, error) {
	s.calls++
	s.got = p
	return s.fn(ctx, p)
}

type stubBuilder struct {
	snap     *index.Snapshot
	manifest *index.Manifest
	err      error
}

func (s *stubBuilder) Build(_ context.Context, _, _ string) (*index.Snapshot, *index.Manifest, error) {
	return s.snap, s.manifest, s.err
}

type stubStore struct {
	swapped *index.Snapshot
	ready   bool
}

func (s *stubStore) Swap(snap *index.Snapshot) { s.swapped = snap; s.ready = true }
func (s *stubStore) Ready() bool               { return s.ready }

func tripOutput() string {
	return `{
		"hotels": [
			{"name": "Park Hyatt Tokyo", "description": "Luxury hotel in Shinjuku", "map_link": "example.com/park-hyatt"}
		],
		"restaurants": [
			{"name": "Sukiyabashi Jiro", "cuisine": "Sushi", "recommendation_reason": "World famous", "map_link": "https://maps.google.com/?q=jiro"}
		],
		"itinerary": [
			{"day": 1, "date": "Oct 10", "activities": [
				{"name": "Senso-ji", "description": "Historic temple", "map_link": ""}
			]}
		]
	}`
}

func staticGenerator(text string) *stubGenerator {
	return &stubGenerator{
		fn: func(_ context.Context, _ *entity.Prompt) (*entity.RawOutput, error) {
			return &entity.RawOutput{Text: text}, nil
		},
	}
}

func newTestUsecase(retriever Retriever, generator Generator, store SnapshotStore, builder IndexBuilder, opts Options) *TripUsecase {
	if opts.TopK == 0 {
		opts.TopK = 5
	}
	if opts.GenerationTimeout == 0 {
		opts.GenerationTimeout = time.Second
	}
	return NewUsecase(
		retriever,
		prompt.NewSelector(0.4, zap.NewNop()),
		generator,
		sanitize.NewSanitizer(zap.NewNop()),
		builder,
		store,
		validator.NewValidator(),
		opts,
		zap.NewNop(),
	)
}

func tokyoRetrieval() entity.Retrieval {
	return entity.Retrieval{
		{Chunk: entity.Chunk{ID: "c1", Source: "tokyo.md", Text: "Park Hyatt Tokyo and Sukiyabashi Jiro are in the guide. Senso-ji temple."}, Score: 0.82},
		{Chunk: entity.Chunk{ID: "c2", Source: "tokyo.md", Text: "Shinjuku nightlife overview."}, Score: 0.55},
	}
}

func TestPlanTripGroundedFlow(t *testing.T) {
	retriever := &stubRetriever{retrieval: tokyoRetrieval()}
	generator := staticGenerator(tripOutput())
	uc := newTestUsecase(retriever, generator, &stubStore{ready: true}, nil, Options{})

	resp, err := uc.PlanTrip(context.Background(), &entity.TripRequest{
		Destination: "Tokyo",
		Dates:       "Oct 10 - Oct 14",
		Preferences: "food",
	})
	require.NoError(t, err)

	assert.True(t, resp.Grounded)
	require.NotNil(t, resp.Data)
	require.Len(t, resp.Data.Hotels, 1)
	assert.Equal(t, "https://example.com/park-hyatt", resp.Data.Hotels[0].MapLink)

	assert.Equal(t, "Tokyo food", retriever.gotQuery)
	assert.Equal(t, 5, retriever.gotK)
	require.NotNil(t, generator.got)
	assert.True(t, generator.got.Grounded)
	assert.Len(t, generator.got.Context, 2)
}

func TestPlanTripFallbackWhenNothingRelevant(t *testing.T) {
	retriever := &stubRetriever{retrieval: entity.Retrieval{}}
	generator := staticGenerator(tripOutput())
	uc := newTestUsecase(retriever, generator, &stubStore{ready: true}, nil, Options{})

	resp, err := uc.PlanTrip(context.Background(), &entity.TripRequest{
		Destination: "Paris",
		Dates:       "May 1 - May 5",
	})
	require.NoError(t, err)

	assert.False(t, resp.Grounded)
	require.NotNil(t, generator.got)
	assert.False(t, generator.got.Grounded)
	assert.Empty(t, generator.got.Context)
}

type fixedEmbedder struct {
	vector []float32
}

func (f *fixedEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return f.vector, nil
}

func TestPlanTripEmptyKnowledgeBaseFallsBack(t *testing.T) {
	// A built-but-empty index is not an outage: retrieval comes back
	// empty and the request is answered from general knowledge.
	store := index.NewStore(zap.NewNop())
	store.Swap(&index.Snapshot{Dimension: 3, Model: "test-model"})
	retriever := retrieval.NewRetriever(&fixedEmbedder{vector: []float32{1, 0, 0}}, store, zap.NewNop())

	generator := staticGenerator(tripOutput())
	uc := newTestUsecase(retriever, generator, &stubStore{ready: true}, nil, Options{})

	resp, err := uc.PlanTrip(context.Background(), &entity.TripRequest{
		Destination: "Paris, France",
		Dates:       "May 1 - May 5",
	})
	require.NoError(t, err)

	assert.False(t, resp.Grounded)
	require.NotNil(t, resp.Data)
	require.NotNil(t, generator.got)
	assert.False(t, generator.got.Grounded)
	assert.Empty(t, generator.got.Context)
}

func TestPlanTripValidationFailureSkipsPipeline(t *testing.T) {
	retriever := &stubRetriever{}
	generator := staticGenerator(tripOutput())
	uc := newTestUsecase(retriever, generator, &stubStore{}, nil, Options{})

	_, err := uc.PlanTrip(context.Background(), &entity.TripRequest{Dates: "Oct 10"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrMissingField)
	assert.Zero(t, retriever.calls)
	assert.Zero(t, generator.calls)
}

func TestPlanTripPropagatesIndexUnavailable(t *testing.T) {
	retriever := &stubRetriever{err: entity.ErrIndexUnavailable}
	generator := staticGenerator(tripOutput())
	uc := newTestUsecase(retriever, generator, &stubStore{}, nil, Options{})

	_, err := uc.PlanTrip(context.Background(), &entity.TripRequest{Destination: "Tokyo", Dates: "Oct 10"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrIndexUnavailable)
	assert.Zero(t, generator.calls)
}

func TestPlanTripGenerationCeiling(t *testing.T) {
	retriever := &stubRetriever{retrieval: entity.Retrieval{}}
	generator := &stubGenerator{
		fn: func(ctx context.Context, _ *entity.Prompt) (*entity.RawOutput, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	uc := newTestUsecase(retriever, generator, &stubStore{}, nil, Options{GenerationTimeout: 20 * time.Millisecond})

	_, err := uc.PlanTrip(context.Background(), &entity.TripRequest{Destination: "Tokyo", Dates: "Oct 10"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrGenerationTimeout)
}

func TestPlanTripCallerCancelIsNotATimeout(t *testing.T) {
	retriever := &stubRetriever{retrieval: entity.Retrieval{}}
	generator := &stubGenerator{
		fn: func(ctx context.Context, _ *entity.Prompt) (*entity.RawOutput, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	uc := newTestUsecase(retriever, generator, &stubStore{}, nil, Options{GenerationTimeout: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := uc.PlanTrip(ctx, &entity.TripRequest{Destination: "Tokyo", Dates: "Oct 10"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrGenerationTimeout)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanTripMalformedOutput(t *testing.T) {
	retriever := &stubRetriever{retrieval: entity.Retrieval{}}
	generator := staticGenerator("I am sorry, I cannot plan this trip.")
	uc := newTestUsecase(retriever, generator, &stubStore{}, nil, Options{})

	_, err := uc.PlanTrip(context.Background(), &entity.TripRequest{Destination: "Tokyo", Dates: "Oct 10"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrMalformedOutput)
}

func TestPlanTripCacheAvoidsSecondGeneration(t *testing.T) {
	retriever := &stubRetriever{retrieval: tokyoRetrieval()}
	generator := staticGenerator(tripOutput())
	uc := newTestUsecase(retriever, generator, &stubStore{ready: true}, nil, Options{ResponseCacheTTL: time.Minute})

	req := &entity.TripRequest{Destination: "Tokyo", Dates: "Oct 10 - Oct 14"}

	first, err := uc.PlanTrip(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.PlanTrip(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, generator.calls)
	assert.Equal(t, 1, retriever.calls)
	assert.Same(t, first, second)
}

func TestPlanTripCacheKeyNormalization(t *testing.T) {
	retriever := &stubRetriever{retrieval: tokyoRetrieval()}
	generator := staticGenerator(tripOutput())
	uc := newTestUsecase(retriever, generator, &stubStore{ready: true}, nil, Options{ResponseCacheTTL: time.Minute})

	_, err := uc.PlanTrip(context.Background(), &entity.TripRequest{Destination: "Tokyo", Dates: "Oct 10"})
	require.NoError(t, err)

	_, err = uc.PlanTrip(context.Background(), &entity.TripRequest{Destination: "  tokyo ", Dates: "Oct 10"})
	require.NoError(t, err)

	assert.Equal(t, 1, generator.calls)
}

func TestRebuildIndexSwapsSnapshotAndDropsCache(t *testing.T) {
	retriever := &stubRetriever{retrieval: tokyoRetrieval()}
	generator := staticGenerator(tripOutput())
	store := &stubStore{}
	snap := &index.Snapshot{Dimension: 3, Model: "test-model"}
	builder := &stubBuilder{
		snap:     snap,
		manifest: &index.Manifest{ChunkCount: 12, DocumentCount: 3, EmbeddingModel: "test-model"},
	}
	uc := newTestUsecase(retriever, generator, store, builder, Options{ResponseCacheTTL: time.Minute})

	req := &entity.TripRequest{Destination: "Tokyo", Dates: "Oct 10"}
	_, err := uc.PlanTrip(context.Background(), req)
	require.NoError(t, err)

	manifest, err := uc.RebuildIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, manifest.ChunkCount)
	assert.Same(t, snap, store.swapped)
	assert.True(t, uc.IndexReady())

	// The rebuilt index invalidates cached plans.
	_, err = uc.PlanTrip(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, generator.calls)
}

func TestRebuildIndexBuildFailure(t *testing.T) {
	store := &stubStore{}
	builder := &stubBuilder{err: errors.New("embed batch: boom")}
	uc := newTestUsecase(&stubRetriever{}, staticGenerator(tripOutput()), store, builder, Options{})

	_, err := uc.RebuildIndex(context.Background())
	require.Error(t, err)
	assert.Nil(t, store.swapped)
}
