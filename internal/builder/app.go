package builder

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futig/trip-planner-backend/internal/config"
	"github.com/futig/trip-planner-backend/internal/index"
	"go.uber.org/zap"
)

// App represents the application with all its components
type App struct {
	server *http.Server
	logger *zap.Logger
}

// Run starts the HTTP server and blocks until shutdown
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		return err
	case sig := <-sigChan:
		a.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.logger.Info("Shutting down server gracefully")

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}

// Indexer runs the offline index build.
type Indexer struct {
	builder *index.Builder
	cfg     *config.Config
	logger  *zap.Logger
}

// Run builds the index from the knowledge base and writes the snapshot.
func (i *Indexer) Run(ctx context.Context) error {
	start := time.Now()

	i.logger.Info("Building index",
		zap.String("source", i.cfg.IndexCfg.KnowledgeBaseDir),
		zap.String("output", i.cfg.IndexCfg.Path),
	)

	_, manifest, err := i.builder.Build(ctx, i.cfg.IndexCfg.KnowledgeBaseDir, i.cfg.IndexCfg.Path)
	if err != nil {
		return err
	}

	i.logger.Info("Index built",
		zap.Int("documents", manifest.DocumentCount),
		zap.Int("chunks", manifest.ChunkCount),
		zap.String("model", manifest.EmbeddingModel),
		zap.Int("dimension", manifest.Dimension),
		zap.Duration("took", time.Since(start)),
	)

	return nil
}
