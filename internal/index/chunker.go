package index

import (
	"strings"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/google/uuid"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 150
)

// Chunker splits documents into fixed-size character chunks with overlap.
// Chunk boundaries are pulled back to the nearest whitespace so words are
// not cut in half.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = defaultChunkOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}
	return &Chunker{size: size, overlap: overlap}
}

// Chunk splits a document into overlapping chunks. Empty or
// whitespace-only documents produce no chunks.
func (c *Chunker) Chunk(doc entity.Document) []entity.Chunk {
	text := strings.TrimSpace(doc.Content)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	var chunks []entity.Chunk
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = backtrackToSpace(runes, start, end)
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			chunks = append(chunks, entity.Chunk{
				ID:     uuid.NewString(),
				Source: doc.Source,
				Text:   piece,
			})
		}

		if end == len(runes) {
			break
		}
		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// backtrackToSpace moves the cut point left to the last whitespace rune,
// unless that would shrink the chunk below half its size.
func backtrackToSpace(runes []rune, start, end int) int {
	min := start + (end-start)/2
	for i := end; i > min; i-- {
		if runes[i-1] == ' ' || runes[i-1] == '\n' || runes[i-1] == '\t' {
			return i
		}
	}
	return end
}
