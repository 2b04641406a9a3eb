package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

type MemoryEntry struct {
	Id             string          `gorm:"type:varchar(255);primaryKey"` // owner + content hash
	OwnerId        string          `gorm:"type:varchar(255);not null;index"`
	Memory         string          `gorm:"type:text;not null"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (MemoryEntry) TableName() string {
	return "memory_entries"
}
