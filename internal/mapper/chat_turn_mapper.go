package mapper

import (
	"conversational-rag-be/internal/entity"
	"conversational-rag-be/internal/model"
)

type ChatTurnMapper struct{}

func NewChatTurnMapper() *ChatTurnMapper {
	return &ChatTurnMapper{}
}

func (m *ChatTurnMapper) ToEntity(t *model.ChatTurn) *entity.ChatTurn {
	if t == nil {
		return nil
	}
	return &entity.ChatTurn{
		Id:        t.Id,
		SessionId: t.SessionId,
		UserInput: t.UserInput,
		Response:  t.Response,
		CreatedAt: t.CreatedAt,
	}
}

func (m *ChatTurnMapper) ToModel(t *entity.ChatTurn) *model.ChatTurn {
	if t == nil {
		return nil
	}
	return &model.ChatTurn{
		Id:        t.Id,
		SessionId: t.SessionId,
		UserInput: t.UserInput,
		Response:  t.Response,
		CreatedAt: t.CreatedAt,
	}
}
