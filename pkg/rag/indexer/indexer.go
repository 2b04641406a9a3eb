package indexer

import (
	"context"
	"fmt"

	"conversational-rag-be/internal/entity"
	"conversational-rag-be/internal/pkg/logger"
	"conversational-rag-be/internal/repository/contract"
	"conversational-rag-be/pkg/embedding"
	"conversational-rag-be/pkg/ingest"
	"conversational-rag-be/pkg/rag/retriever"
	"conversational-rag-be/pkg/rag/splitter"

	"github.com/google/uuid"
)

const logModule = "ChunkIndexBuilder"

// Config tunes chunking and retrieval. Zero values fall back to the defaults
// used across the pipeline (1000/150/5).
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = 1000
	}
	if c.ChunkOverlap <= 0 {
		c.ChunkOverlap = 150
	}
	if c.TopK <= 0 {
		c.TopK = 5
	}
	return c
}

// Indexer splits loaded documents into overlapping windows, embeds them, and
// upserts the vectors under a session-scoped namespace.
type Indexer struct {
	embedder embedding.EmbeddingProvider
	repo     contract.DocumentEmbeddingRepository
	logger   logger.ILogger
	cfg      Config
}

func New(
	embedder embedding.EmbeddingProvider,
	repo contract.DocumentEmbeddingRepository,
	log logger.ILogger,
	cfg Config,
) *Indexer {
	return &Indexer{
		embedder: embedder,
		repo:     repo,
		logger:   log,
		cfg:      cfg.withDefaults(),
	}
}

// BuildRetriever chunks, embeds and stores the documents, then returns a
// retrieval handle bound to the session's namespace. Empty input returns
// (nil, nil): nothing indexed yet, caller must treat the handle as absent.
// Unlike ingestion, any embedding or upsert failure here is fatal for the
// request, since a partially built index would silently degrade answers.
func (ix *Indexer) BuildRetriever(ctx context.Context, docs []ingest.Document, sessionID string) (*retriever.Retriever, error) {
	if len(docs) == 0 {
		ix.logger.Warn(logModule, "No documents to process, skipping retriever creation", map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, nil
	}

	var chunks []*entity.DocumentChunk
	for _, doc := range docs {
		windows := splitter.SplitText(doc.Content, ix.cfg.ChunkSize, ix.cfg.ChunkOverlap)
		for i, window := range windows {
			chunks = append(chunks, &entity.DocumentChunk{
				Id:         uuid.New(),
				Namespace:  sessionID,
				Source:     doc.Source,
				ChunkIndex: i,
				Document:   window,
			})
		}
	}

	ix.logger.Info(logModule, "Documents split into chunks", map[string]interface{}{
		"session_id": sessionID,
		"documents":  len(docs),
		"chunks":     len(chunks),
	})

	for _, chunk := range chunks {
		res, err := ix.embedder.Generate(ctx, chunk.Document, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d of %q: %w", chunk.ChunkIndex, chunk.Source, err)
		}
		chunk.EmbeddingValue = res.Embedding.Values
	}

	if err := ix.repo.CreateBulk(ctx, chunks); err != nil {
		return nil, fmt.Errorf("upsert chunks for session %s: %w", sessionID, err)
	}

	ix.logger.Info(logModule, "Retriever created for session", map[string]interface{}{
		"session_id": sessionID,
		"top_k":      ix.cfg.TopK,
	})

	return retriever.New(ix.embedder, ix.repo, sessionID, ix.cfg.TopK), nil
}
