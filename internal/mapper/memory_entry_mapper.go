package mapper

import (
	"time"

	"conversational-rag-be/internal/entity"
	"conversational-rag-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type MemoryEntryMapper struct{}

func NewMemoryEntryMapper() *MemoryEntryMapper {
	return &MemoryEntryMapper{}
}

func (m *MemoryEntryMapper) ToEntity(e *model.MemoryEntry) *entity.MemoryEntry {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.MemoryEntry{
		Id:             e.Id,
		OwnerId:        e.OwnerId,
		Memory:         e.Memory,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *MemoryEntryMapper) ToModel(e *entity.MemoryEntry) *model.MemoryEntry {
	if e == nil {
		return nil
	}

	mm := &model.MemoryEntry{
		Id:             e.Id,
		OwnerId:        e.OwnerId,
		Memory:         e.Memory,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		mm.UpdatedAt = *e.UpdatedAt
	}
	return mm
}
