package history

import (
	"context"
	"fmt"
	"strings"

	"conversational-rag-be/internal/entity"
	"conversational-rag-be/internal/pkg/logger"
	"conversational-rag-be/internal/repository/contract"

	"github.com/google/uuid"
)

const logModule = "ShortTermHistory"

// Store is the short-term conversation log: an append-only sequence of
// question/answer turns per session.
//
// Writes are strict (losing a turn breaks continuity, the caller decides what
// to do). Reads are deliberately lenient: a failed history fetch degrades the
// chat to a stateless turn instead of blocking it.
type Store struct {
	repo   contract.ChatTurnRepository
	logger logger.ILogger
}

func NewStore(repo contract.ChatTurnRepository, log logger.ILogger) *Store {
	return &Store{repo: repo, logger: log}
}

// Append persists one completed turn.
func (s *Store) Append(ctx context.Context, sessionID, question, answer string) error {
	turn := &entity.ChatTurn{
		Id:        uuid.New(),
		SessionId: sessionID,
		UserInput: question,
		Response:  answer,
	}
	if err := s.repo.Create(ctx, turn); err != nil {
		s.logger.Error(logModule, "Failed to append chat turn", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

// RecentTurns returns up to limit turns in chronological order (oldest
// first). Errors propagate; use Recent for the lenient prompt-building path.
func (s *Store) RecentTurns(ctx context.Context, sessionID string, limit int) ([]*entity.ChatTurn, error) {
	turns, err := s.repo.Recent(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}
	// Repository returns newest first; reverse into chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// Recent formats the most recent turns as a prompt block. Any retrieval error
// collapses to an empty block.
func (s *Store) Recent(ctx context.Context, sessionID string, limit int) string {
	turns, err := s.RecentTurns(ctx, sessionID, limit)
	if err != nil {
		s.logger.Error(logModule, "Failed to fetch chat history, degrading to empty", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return ""
	}
	if len(turns) == 0 {
		return ""
	}

	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, fmt.Sprintf("User: %s\nAssistant: %s", turn.UserInput, turn.Response))
	}
	return strings.Join(lines, "\n")
}
