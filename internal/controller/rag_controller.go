package controller

import (
	"conversational-rag-be/internal/dto"
	"conversational-rag-be/internal/pkg/serverutils"
	"conversational-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRagController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type ragController struct {
	documentService service.IDocumentService
	chatService     service.IChatService
	historyLimit    int
}

func NewRagController(
	documentService service.IDocumentService,
	chatService service.IChatService,
	historyLimit int,
) IRagController {
	return &ragController{
		documentService: documentService,
		chatService:     chatService,
		historyLimit:    historyLimit,
	}
}

func (c *ragController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rag/v1")
	h.Post("upload", c.Upload)
	h.Post("chat", c.Chat)
	h.Get("history/:session_id", c.History)
	h.Delete("session/:session_id", c.Reset)
}

func (c *ragController) Upload(ctx *fiber.Ctx) error {
	sessionID := ctx.FormValue("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid multipart form")
	}

	files := form.File["files"]
	urls := form.Value["urls"]

	res, err := c.documentService.Upload(ctx.Context(), sessionID, files, urls)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload documents", res))
}

func (c *ragController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *ragController) Reset(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	res, err := c.documentService.Reset(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset session", res))
}

func (c *ragController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	limit := ctx.QueryInt("limit", c.historyLimit)
	if limit <= 0 {
		limit = c.historyLimit
	}

	res, err := c.chatService.GetHistory(ctx.Context(), sessionID, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
