package retriever

import (
	"context"
	"fmt"

	"conversational-rag-be/internal/repository/contract"
	"conversational-rag-be/pkg/embedding"
)

// RetrievedChunk is one similarity-search hit handed to the reasoning loop.
type RetrievedChunk struct {
	Document   string
	Source     string
	Similarity float64
}

// Retriever is a retrieval handle bound to exactly one session namespace.
// Every query it runs is filtered to that namespace, so documents uploaded by
// other sessions can never leak into its results.
type Retriever struct {
	embedder  embedding.EmbeddingProvider
	repo      contract.DocumentEmbeddingRepository
	namespace string
	topK      int
}

func New(
	embedder embedding.EmbeddingProvider,
	repo contract.DocumentEmbeddingRepository,
	namespace string,
	topK int,
) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{
		embedder:  embedder,
		repo:      repo,
		namespace: namespace,
		topK:      topK,
	}
}

func (r *Retriever) Namespace() string {
	return r.namespace
}

// Retrieve embeds the query and returns the topK most similar chunks from
// this session's namespace.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]RetrievedChunk, error) {
	res, err := r.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := r.repo.SearchSimilar(ctx, res.Embedding.Values, r.topK, r.namespace)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	chunks := make([]RetrievedChunk, len(scored))
	for i, s := range scored {
		chunks[i] = RetrievedChunk{
			Document:   s.Chunk.Document,
			Source:     s.Chunk.Source,
			Similarity: s.Similarity,
		}
	}
	return chunks, nil
}
