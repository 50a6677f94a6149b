package index

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/futig/trip-planner-backend/internal/entity"
	"go.uber.org/zap"
)

const indexFileName = "index.gob"

// Snapshot is a complete, immutable index: chunks plus their embeddings.
// Readers share a snapshot without locking; rebuilds produce a fresh one
// that is swapped in atomically.
type Snapshot struct {
	Chunks    []entity.Chunk
	Dimension int
	Model     string
}

// Store holds the active index snapshot behind an atomic pointer.
// A nil snapshot means the index has not been built or loaded yet.
type Store struct {
	snapshot atomic.Pointer[Snapshot]
	logger   *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	return &Store{logger: logger}
}

// Ready reports whether a snapshot is being served. An empty snapshot
// counts: the index was built, there was just nothing to put in it.
func (s *Store) Ready() bool {
	return s.snapshot.Load() != nil
}

// Swap replaces the active snapshot. In-flight searches keep the snapshot
// they already loaded; new searches see the replacement.
func (s *Store) Swap(snap *Snapshot) {
	s.snapshot.Store(snap)
	if snap != nil {
		s.logger.Info("index snapshot swapped",
			zap.Int("chunks", len(snap.Chunks)),
			zap.Int("dimension", snap.Dimension),
			zap.String("model", snap.Model),
		)
	}
}

// Search returns the k chunks most similar to the query vector, descending
// by cosine similarity. Vectors are L2-normalized at embed time, so the
// dot product is the cosine similarity.
func (s *Store) Search(vector []float32, k int) (entity.Retrieval, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, entity.ErrIndexUnavailable
	}
	if len(snap.Chunks) == 0 {
		return entity.Retrieval{}, nil
	}
	if len(vector) != snap.Dimension {
		return nil, fmt.Errorf("%w: query %d, index %d", entity.ErrDimensionMismatch, len(vector), snap.Dimension)
	}
	if k <= 0 {
		k = 5
	}

	results := make(entity.Retrieval, 0, len(snap.Chunks))
	for _, ch := range snap.Chunks {
		results = append(results, entity.ScoredChunk{Chunk: ch, Score: dot(vector, ch.Embedding)})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// LoadSnapshot reads a persisted snapshot from the index directory.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(filepath.Join(path, indexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entity.ErrIndexUnavailable
		}
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrIndexCorrupt, err)
	}
	if snap.Dimension <= 0 {
		return nil, fmt.Errorf("%w: snapshot has no dimension", entity.ErrIndexCorrupt)
	}
	for _, ch := range snap.Chunks {
		if len(ch.Embedding) != snap.Dimension {
			return nil, fmt.Errorf("%w: chunk %s has dimension %d, expected %d",
				entity.ErrIndexCorrupt, ch.ID, len(ch.Embedding), snap.Dimension)
		}
	}
	return &snap, nil
}
