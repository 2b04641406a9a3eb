package contract

import (
	"context"

	"conversational-rag-be/internal/entity"
)

type ChatTurnRepository interface {
	Create(ctx context.Context, turn *entity.ChatTurn) error
	// Recent returns up to limit turns for a session, newest first.
	Recent(ctx context.Context, sessionId string, limit int) ([]*entity.ChatTurn, error)
}
