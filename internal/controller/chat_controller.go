package controller

import (
	"errors"
	"io"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/serverutils"
	"ai-docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// apiKeyHeader lets a caller supply their own Gemini key per request,
// overriding the server's configured key.
const apiKeyHeader = "X-Goog-Api-Key"

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	UploadDocument(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetSessionState(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("session", c.CreateSession)
	h.Post("session/:id/document", c.UploadDocument)
	h.Post("session/:id/ask", c.Ask)
	h.Get("session/:id/history", c.GetHistory)
	h.Get("session/:id/state", c.GetSessionState)
	h.Delete("session/:id", c.DeleteSession)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) UploadDocument(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	fileHeader, err := ctx.FormFile("document")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing document file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.chatService.UploadDocument(ctx.Context(), ctx.Get(apiKeyHeader), id, fileHeader.Filename, content)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *chatController) Ask(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Ask(ctx.Context(), ctx.Get(apiKeyHeader), id, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.chatService.GetHistory(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *chatController) GetSessionState(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.chatService.GetSessionState(ctx.Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session state", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := c.chatService.DeleteSession(ctx.Context(), id); err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

// mapServiceError translates the service sentinels into HTTP-coded fiber
// errors. Anything unmapped stays a 500.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMissingAPIKey),
		errors.Is(err, service.ErrEmptyQuestion),
		errors.Is(err, service.ErrNoFile),
		errors.Is(err, service.ErrUnsupportedFileType),
		errors.Is(err, service.ErrSessionNotReady):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUpstream):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return err
}
