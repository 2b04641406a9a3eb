package contract

import (
	"context"

	"conversational-rag-be/internal/entity"
)

// ScoredMemoryEntry wraps a memory with its cosine similarity to the query.
type ScoredMemoryEntry struct {
	Entry      *entity.MemoryEntry
	Similarity float64
}

type MemoryEntryRepository interface {
	// Upsert inserts the entry or, when the content-addressed id already
	// exists, refreshes the stored row in place.
	Upsert(ctx context.Context, entry *entity.MemoryEntry) error
	// SearchSimilar runs a cosine search restricted to one owner, ordered by
	// descending similarity.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, ownerId string) ([]*ScoredMemoryEntry, error)
}
