package dto

import "time"

type UploadDocumentsResponse struct {
	SessionId     string `json:"session_id"`
	SourcesLoaded int    `json:"sources_loaded"`
}

type ResetSessionResponse struct {
	SessionId     string `json:"session_id"`
	ChunksRemoved int64  `json:"chunks_removed"`
}

type ChatRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Question  string `json:"question" validate:"required"`
}

type ChatResponse struct {
	SessionId string `json:"session_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

type ChatTurnResponse struct {
	UserInput string    `json:"user_input"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// StoreMemoryMessage is the payload published after a completed turn to
// persist the question as long-term memory.
type StoreMemoryMessage struct {
	OwnerId    string `json:"owner_id"`
	MemoryText string `json:"memory_text"`
}
