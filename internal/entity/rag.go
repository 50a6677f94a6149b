package entity

import "math"

// Chunk is a bounded segment of a source document, the unit of indexing
// and retrieval. Immutable once indexed.
type Chunk struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"-"`
}

// ScoredChunk pairs a chunk with its cosine similarity to a query.
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// Retrieval is an ordered sequence of scored chunks, descending by score.
// Transient, created per query.
type Retrieval []ScoredChunk

// BestScore returns the highest similarity score, or -Inf when the
// retrieval is empty.
func (r Retrieval) BestScore() float32 {
	if len(r) == 0 {
		return float32(math.Inf(-1))
	}
	return r[0].Score
}

// Above returns the chunks scoring strictly above the threshold,
// preserving descending score order.
func (r Retrieval) Above(threshold float32) []ScoredChunk {
	out := make([]ScoredChunk, 0, len(r))
	for _, sc := range r {
		if sc.Score > threshold {
			out = append(out, sc)
		}
	}
	return out
}

// Document is a source file loaded from the knowledge base folder.
type Document struct {
	Source  string
	Content string
}
