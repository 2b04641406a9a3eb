package controller

import (
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"conversational-rag-be/internal/dto"
	"conversational-rag-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentService struct {
	uploadRes *dto.UploadDocumentsResponse
	resetRes  *dto.ResetSessionResponse
}

func (f *fakeDocumentService) Upload(ctx context.Context, sessionID string, files []*multipart.FileHeader, urls []string) (*dto.UploadDocumentsResponse, error) {
	return f.uploadRes, nil
}

func (f *fakeDocumentService) Reset(ctx context.Context, sessionID string) (*dto.ResetSessionResponse, error) {
	return f.resetRes, nil
}

type fakeChatService struct {
	lastLimit int
	chatRes   *dto.ChatResponse
	turns     []*dto.ChatTurnResponse
}

func (f *fakeChatService) SendChat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	return f.chatRes, nil
}

func (f *fakeChatService) GetHistory(ctx context.Context, sessionID string, limit int) ([]*dto.ChatTurnResponse, error) {
	f.lastLimit = limit
	return f.turns, nil
}

func newTestApp(chat *fakeChatService, historyLimit int) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	c := NewRagController(&fakeDocumentService{}, chat, historyLimit)
	c.RegisterRoutes(app.Group("/api"))
	return app
}

func TestHistoryDefaultsToConfiguredLimit(t *testing.T) {
	chat := &fakeChatService{}
	app := newTestApp(chat, 5)

	req := httptest.NewRequest("GET", "/api/rag/v1/history/session-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, chat.lastLimit)
}

func TestHistoryHonoursLimitQuery(t *testing.T) {
	chat := &fakeChatService{}
	app := newTestApp(chat, 5)

	req := httptest.NewRequest("GET", "/api/rag/v1/history/session-1?limit=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, chat.lastLimit)
}

func TestHistoryRejectsUselessLimits(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"zero", "?limit=0"},
		{"negative", "?limit=-3"},
		{"garbage", "?limit=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChatService{}
			app := newTestApp(chat, 5)

			req := httptest.NewRequest("GET", "/api/rag/v1/history/session-1"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, 5, chat.lastLimit)
		})
	}
}

func TestChatMalformedBodyIsBadRequest(t *testing.T) {
	app := newTestApp(&fakeChatService{}, 5)

	req := httptest.NewRequest("POST", "/api/rag/v1/chat", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "invalid request body")
}

func TestChatMissingFieldsIsBadRequest(t *testing.T) {
	app := newTestApp(&fakeChatService{}, 5)

	req := httptest.NewRequest("POST", "/api/rag/v1/chat", strings.NewReader(`{"session_id":"s1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
