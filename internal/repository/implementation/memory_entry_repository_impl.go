package implementation

import (
	"context"

	"conversational-rag-be/internal/entity"
	"conversational-rag-be/internal/mapper"
	"conversational-rag-be/internal/model"
	"conversational-rag-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemoryEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoryEntryMapper
}

func NewMemoryEntryRepository(db *gorm.DB) contract.MemoryEntryRepository {
	return &MemoryEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoryEntryMapper(),
	}
}

// Upsert relies on the content-addressed primary key: a repeat of the same
// (owner, memory) pair updates the existing row instead of inserting a twin.
func (r *MemoryEntryRepositoryImpl) Upsert(ctx context.Context, entry *entity.MemoryEntry) error {
	m := r.mapper.ToModel(entry)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"memory", "embedding_value", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemoryEntryRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, ownerId string) ([]*contract.ScoredMemoryEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.MemoryEntry
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("memory_entries").
		Select("memory_entries.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("owner_id = ?", ownerId).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredMemoryEntry, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredMemoryEntry{
			Entry:      r.mapper.ToEntity(&res.MemoryEntry),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
