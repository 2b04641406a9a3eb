package contract

import (
	"context"

	"conversational-rag-be/internal/entity"
	"conversational-rag-be/internal/repository/specification"
)

// ScoredDocumentChunk wraps a chunk with its cosine similarity to the query.
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentEmbeddingRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByNamespace(ctx context.Context, namespace string) error
	// SearchSimilar runs a cosine search restricted to one namespace. Chunks
	// outside the namespace must never be returned.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, namespace string) ([]*ScoredDocumentChunk, error)
}
