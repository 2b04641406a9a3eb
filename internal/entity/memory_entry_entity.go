package entity

import "time"

// MemoryEntry is one long-term semantic memory statement. Id is a pure
// function of (OwnerId, Memory), so storing the same statement twice for the
// same owner overwrites instead of duplicating.
type MemoryEntry struct {
	Id             string
	OwnerId        string
	Memory         string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
