package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one question/answer pair in a session's short-term history.
// Append-only; ordering by CreatedAt.
type ChatTurn struct {
	Id        uuid.UUID
	SessionId string
	UserInput string
	Response  string
	CreatedAt time.Time
}
