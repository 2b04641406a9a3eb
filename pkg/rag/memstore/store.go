package memstore

import (
	"context"
	"crypto/md5"
	"fmt"

	"conversational-rag-be/internal/entity"
	"conversational-rag-be/internal/pkg/logger"
	"conversational-rag-be/internal/repository/contract"
	"conversational-rag-be/pkg/embedding"
)

const logModule = "LongTermMemory"

// Error marks a long-term memory failure. Memory unavailability must stay
// visible to callers (contrast with the history store's lenient read path).
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("memory %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Store is the content-addressed, per-owner long-term semantic memory.
type Store struct {
	embedder embedding.EmbeddingProvider
	repo     contract.MemoryEntryRepository
	logger   logger.ILogger
	topK     int
}

func NewStore(
	embedder embedding.EmbeddingProvider,
	repo contract.MemoryEntryRepository,
	log logger.ILogger,
	topK int,
) *Store {
	if topK <= 0 {
		topK = 5
	}
	return &Store{
		embedder: embedder,
		repo:     repo,
		logger:   log,
		topK:     topK,
	}
}

// MemoryID derives the deterministic entry id from (owner, text). Identical
// input always maps to the same id, which is what makes Store idempotent.
func MemoryID(ownerID, memoryText string) string {
	return fmt.Sprintf("%s-%x", ownerID, md5.Sum([]byte(memoryText)))
}

// Embed delegates to the embedding model. No memory operation can proceed
// without a vector, so failures propagate.
func (s *Store) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := s.embedder.Generate(ctx, text, embedding.TaskRetrievalDocument)
	if err != nil {
		return nil, &Error{Op: "embed", Err: err}
	}
	return res.Embedding.Values, nil
}

// Store upserts one memory statement for the owner. Safe to call repeatedly
// with the same (owner, text): the content-addressed id makes it overwrite.
func (s *Store) Store(ctx context.Context, ownerID, memoryText string) error {
	vector, err := s.Embed(ctx, memoryText)
	if err != nil {
		return err
	}

	entry := &entity.MemoryEntry{
		Id:             MemoryID(ownerID, memoryText),
		OwnerId:        ownerID,
		Memory:         memoryText,
		EmbeddingValue: vector,
	}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return &Error{Op: "store", Err: err}
	}

	s.logger.Debug(logModule, "Memory stored", map[string]interface{}{
		"owner_id": ownerID,
		"memory":   memoryText,
	})
	return nil
}

// Retrieve returns up to topK memory texts for the owner, ordered by
// descending similarity to the query. No matches yields an empty slice.
func (s *Store) Retrieve(ctx context.Context, ownerID, query string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = s.topK
	}

	res, err := s.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, &Error{Op: "embed", Err: err}
	}

	scored, err := s.repo.SearchSimilar(ctx, res.Embedding.Values, topK, ownerID)
	if err != nil {
		return nil, &Error{Op: "retrieve", Err: err}
	}

	if len(scored) == 0 {
		s.logger.Debug(logModule, "No memories retrieved", map[string]interface{}{
			"owner_id": ownerID,
		})
		return []string{}, nil
	}

	memories := make([]string, len(scored))
	for i, m := range scored {
		memories[i] = m.Entry.Memory
	}

	s.logger.Debug(logModule, "Memories retrieved", map[string]interface{}{
		"owner_id": ownerID,
		"matches":  len(memories),
	})
	return memories, nil
}
