package index

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/futig/trip-planner-backend/internal/entity"
	"go.uber.org/zap"
)

const manifestFileName = "manifest.json"

// Embedder converts text into L2-normalized embedding vectors. The same
// implementation must be used at index time and query time.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	Model() string
}

// Manifest describes a built index for operational inspection.
type Manifest struct {
	ChunkCount     int       `json:"chunk_count"`
	DocumentCount  int       `json:"document_count"`
	Sources        []string  `json:"sources"`
	EmbeddingModel string    `json:"embedding_model"`
	Dimension      int       `json:"dimension"`
	ChunkSize      int       `json:"chunk_size"`
	ChunkOverlap   int       `json:"chunk_overlap"`
	BuiltAt        time.Time `json:"built_at"`
}

// Builder constructs an index from a folder of source documents:
// load, chunk, embed, persist. The result is written to a temporary
// directory and renamed into place so readers never see a partial index.
type Builder struct {
	loader   *Loader
	chunker  *Chunker
	embedder Embedder
	logger   *zap.Logger
}

func NewBuilder(loader *Loader, chunker *Chunker, embedder Embedder, logger *zap.Logger) *Builder {
	return &Builder{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		logger:   logger,
	}
}

// Build creates a fresh index from srcDir and persists it at outPath,
// replacing any previous index wholesale. Returns the in-memory snapshot
// so callers can swap it into a live store without re-reading the files.
func (b *Builder) Build(ctx context.Context, srcDir, outPath string) (*Snapshot, *Manifest, error) {
	docs, err := b.loader.LoadFolder(srcDir)
	if err != nil {
		return nil, nil, err
	}

	var chunks []entity.Chunk
	sources := make([]string, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, doc.Source)
		chunks = append(chunks, b.chunker.Chunk(doc)...)
	}

	b.logger.Info("chunking complete",
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(chunks)),
	)

	// Zero chunks is a legal outcome: the knowledge base may be empty,
	// and an empty index lets planning answer from general knowledge.
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, ch := range chunks {
			texts[i] = ch.Text
		}
		vectors, err := b.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, nil, fmt.Errorf("embed chunks: %w", err)
		}
		if len(vectors) != len(chunks) {
			return nil, nil, fmt.Errorf("%w: got %d vectors for %d chunks", entity.ErrEmbeddingFailed, len(vectors), len(chunks))
		}
		for i := range chunks {
			chunks[i].Embedding = vectors[i]
		}
	}

	snap := &Snapshot{
		Chunks:    chunks,
		Dimension: b.embedder.Dimension(),
		Model:     b.embedder.Model(),
	}
	manifest := &Manifest{
		ChunkCount:     len(chunks),
		DocumentCount:  len(docs),
		Sources:        sources,
		EmbeddingModel: snap.Model,
		Dimension:      snap.Dimension,
		ChunkSize:      b.chunker.size,
		ChunkOverlap:   b.chunker.overlap,
		BuiltAt:        time.Now().UTC(),
	}

	if err := writeIndex(outPath, snap, manifest); err != nil {
		return nil, nil, err
	}

	b.logger.Info("index built",
		zap.String("path", outPath),
		zap.Int("chunks", manifest.ChunkCount),
		zap.String("model", manifest.EmbeddingModel),
	)
	return snap, manifest, nil
}

// writeIndex persists the snapshot and manifest into a sibling temp
// directory, then renames it over outPath. Rename is atomic on POSIX
// filesystems, so concurrent readers of the old directory are unaffected.
func writeIndex(outPath string, snap *Snapshot, manifest *Manifest) error {
	parent := filepath.Dir(outPath)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create index parent dir: %w", err)
	}

	tmpDir, err := os.MkdirTemp(parent, ".index-build-*")
	if err != nil {
		return fmt.Errorf("create temp index dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	f, err := os.Create(filepath.Join(tmpDir, indexFileName))
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		f.Close()
		return fmt.Errorf("encode index: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close index file: %w", err)
	}

	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, manifestFileName), manifestData, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	if err := os.RemoveAll(outPath); err != nil {
		return fmt.Errorf("remove previous index: %w", err)
	}
	if err := os.Rename(tmpDir, outPath); err != nil {
		return fmt.Errorf("activate new index: %w", err)
	}
	return nil
}
