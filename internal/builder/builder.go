package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/trip-planner-backend/internal/api"
	currencyapi "github.com/futig/trip-planner-backend/internal/api/currency"
	tripapi "github.com/futig/trip-planner-backend/internal/api/trip"
	"github.com/futig/trip-planner-backend/internal/config"
	"github.com/futig/trip-planner-backend/internal/index"
	"github.com/futig/trip-planner-backend/internal/integration/currency"
	"github.com/futig/trip-planner-backend/internal/integration/embedding"
	"github.com/futig/trip-planner-backend/internal/integration/gemini"
	"github.com/futig/trip-planner-backend/internal/pkg/validator"
	"github.com/futig/trip-planner-backend/internal/prompt"
	"github.com/futig/trip-planner-backend/internal/retrieval"
	"github.com/futig/trip-planner-backend/internal/sanitize"
	currencyuc "github.com/futig/trip-planner-backend/internal/usecase/currency"
	tripuc "github.com/futig/trip-planner-backend/internal/usecase/trip"
	"go.uber.org/zap"
)

type generationConnector interface {
	tripuc.Generator
	api.GeneratorCheck
}

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize connectors (with mock support)
	var embedder index.Embedder
	var generator generationConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		embedder = embedding.NewMockConnector(logger)
		generator = gemini.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		embedder = embedding.NewConnector(cfg.EmbeddingCfg, logger)
		generator = gemini.NewConnector(cfg.GeminiCfg, logger)
	}

	// Load the index snapshot. A missing snapshot is not fatal: requests
	// fail with a 503 until an index is built via /api/reindex or the
	// indexer command.
	store := index.NewStore(logger)
	snap, err := index.LoadSnapshot(cfg.IndexCfg.Path)
	if err != nil {
		logger.Warn("index snapshot not loaded, planning is degraded until reindex",
			zap.String("path", cfg.IndexCfg.Path),
			zap.Error(err),
		)
	} else {
		if snap.Dimension != embedder.Dimension() || snap.Model != embedder.Model() {
			logger.Warn("index snapshot was built with a different embedding model",
				zap.String("snapshot_model", snap.Model),
				zap.String("embedder_model", embedder.Model()),
				zap.Int("snapshot_dimension", snap.Dimension),
				zap.Int("embedder_dimension", embedder.Dimension()),
			)
		}
		store.Swap(snap)
		logger.Info("index snapshot loaded",
			zap.Int("chunks", len(snap.Chunks)),
			zap.String("model", snap.Model),
		)
	}

	indexBuilder := index.NewBuilder(
		index.NewLoader(logger),
		index.NewChunker(cfg.IndexCfg.ChunkSize, cfg.IndexCfg.ChunkOverlap),
		embedder,
		logger,
	)

	// Initialize pipeline components
	retriever := retrieval.NewRetriever(embedder, store, logger)
	selector := prompt.NewSelector(cfg.RetrievalCfg.Threshold, logger)
	sanitizer := sanitize.NewSanitizer(logger)
	v := validator.NewValidator()
	logger.Info("Pipeline components initialized")

	// Initialize use cases
	tripUC := tripuc.NewUsecase(
		retriever,
		selector,
		generator,
		sanitizer,
		indexBuilder,
		store,
		v,
		tripuc.Options{
			TopK:              cfg.RetrievalCfg.TopK,
			GenerationTimeout: cfg.GenerationTimeout,
			ResponseCacheTTL:  cfg.ResponseCacheTTL,
			KnowledgeBaseDir:  cfg.IndexCfg.KnowledgeBaseDir,
			IndexPath:         cfg.IndexCfg.Path,
		},
		logger,
	)

	currencyUC := currencyuc.NewUsecase(
		currency.NewConnector(cfg.CurrencyCfg, logger),
		v,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers and router. The router timeout must leave room
	// for the generation ceiling plus retrieval and sanitization.
	tripHandler := tripapi.NewHandler(tripUC)
	currencyHandler := currencyapi.NewHandler(currencyUC)
	requestTimeout := cfg.GenerationTimeout + 30*time.Second

	router := api.SetupRouter(tripHandler, currencyHandler, store, generator, requestTimeout, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildIndexer wires the offline index build command.
func BuildIndexer() (*Indexer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	var embedder index.Embedder
	if cfg.EnableMocks {
		embedder = embedding.NewMockConnector(logger)
	} else {
		embedder = embedding.NewConnector(cfg.EmbeddingCfg, logger)
	}

	indexBuilder := index.NewBuilder(
		index.NewLoader(logger),
		index.NewChunker(cfg.IndexCfg.ChunkSize, cfg.IndexCfg.ChunkOverlap),
		embedder,
		logger,
	)

	return &Indexer{
		builder: indexBuilder,
		cfg:     cfg,
		logger:  logger,
	}, nil
}
