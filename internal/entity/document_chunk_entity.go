package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is an embedded slice of an uploaded source. Namespace is the
// owning session id; chunks from different sessions never mix at query time.
type DocumentChunk struct {
	Id             uuid.UUID
	Namespace      string
	Source         string
	ChunkIndex     int
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
}
