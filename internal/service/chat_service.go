package service

import (
	"context"

	"conversational-rag-be/internal/dto"
	"conversational-rag-be/internal/pkg/logger"
	"conversational-rag-be/internal/pkg/serverutils"
	"conversational-rag-be/internal/repository/memory"
	"conversational-rag-be/pkg/agent"
	"conversational-rag-be/pkg/rag/history"
	"conversational-rag-be/pkg/rag/memstore"
	"conversational-rag-be/pkg/rag/prompt"
)

const chatLogModule = "ChatService"

// IChatService runs a full conversational turn against a session's indexed
// documents and exposes the stored transcript.
type IChatService interface {
	SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, sessionID string, limit int) ([]*dto.ChatTurnResponse, error)
}

type chatService struct {
	registry     *memory.RetrieverRegistry
	agentBuilder *agent.Builder
	history      *history.Store
	memories     *memstore.Store
	publisher    IMemoryPublisherService
	logger       logger.ILogger
	historyLimit int
	memoryTopK   int
}

func NewChatService(
	registry *memory.RetrieverRegistry,
	agentBuilder *agent.Builder,
	historyStore *history.Store,
	memoryStore *memstore.Store,
	publisher IMemoryPublisherService,
	log logger.ILogger,
	historyLimit int,
	memoryTopK int,
) IChatService {
	return &chatService{
		registry:     registry,
		agentBuilder: agentBuilder,
		history:      historyStore,
		memories:     memoryStore,
		publisher:    publisher,
		logger:       log,
		historyLimit: historyLimit,
		memoryTopK:   memoryTopK,
	}
}

// SendChat drives one turn: gather history and semantic memories, compose the
// prompt, run the reasoning loop, then persist the turn and queue the memory
// write. Persistence never fails the request once an answer exists.
func (s *chatService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionID := request.SessionId
	question := request.Question

	ret, found := s.registry.Get(sessionID)
	if !found || ret == nil {
		return nil, serverutils.ErrSessionNotIndexed
	}

	historyBlock := s.history.Recent(ctx, sessionID, s.historyLimit)

	recalled, err := s.memories.Retrieve(ctx, sessionID, question, s.memoryTopK)
	if err != nil {
		s.logger.Error(chatLogModule, "Semantic memory lookup failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	finalPrompt := prompt.NewBuilder(historyBlock, recalled, question).Build()

	reasoner, _, err := s.agentBuilder.Build(ret)
	if err != nil {
		s.logger.Error(chatLogModule, "Failed to assemble agent", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	answer, err := reasoner.Run(ctx, finalPrompt)
	if err != nil {
		s.logger.Error(chatLogModule, "Reasoning loop failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if err := s.history.Append(ctx, sessionID, question, answer); err != nil {
		s.logger.Warn(chatLogModule, "Failed to persist chat turn", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	if err := s.publisher.PublishStoreMemory(sessionID, question); err != nil {
		s.logger.Warn(chatLogModule, "Failed to queue memory write", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	return &dto.ChatResponse{
		SessionId: sessionID,
		Question:  question,
		Answer:    answer,
	}, nil
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string, limit int) ([]*dto.ChatTurnResponse, error) {
	turns, err := s.history.RecentTurns(ctx, sessionID, limit)
	if err != nil {
		s.logger.Error(chatLogModule, "Failed to load chat history", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}

	responses := make([]*dto.ChatTurnResponse, 0, len(turns))
	for _, turn := range turns {
		responses = append(responses, &dto.ChatTurnResponse{
			UserInput: turn.UserInput,
			Response:  turn.Response,
			CreatedAt: turn.CreatedAt,
		})
	}
	return responses, nil
}
