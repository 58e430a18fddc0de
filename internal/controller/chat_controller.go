package controller

import (
	"errors"

	"ai-webchat-be/internal/dto"
	"ai-webchat-be/internal/pkg/serverutils"
	"ai-webchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	TestGemini(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	gateway     service.ILLMGatewayService
	sessions    *serverutils.SessionManager
}

func NewChatController(chatService service.IChatService, gateway service.ILLMGatewayService, sessions *serverutils.SessionManager) IChatController {
	return &chatController{
		chatService: chatService,
		gateway:     gateway,
		sessions:    sessions,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	api := r.Group("/api")
	api.Get("/test-gemini", c.TestGemini)

	chats := api.Group("/chats", serverutils.RequireAuth)
	chats.Get("", c.List)
	chats.Post("", c.Create)
	chats.Get("/:id", c.Show)
	chats.Delete("/:id", c.Delete)
	chats.Post("/:id/message", c.SendMessage)
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	state := serverutils.CurrentSession(ctx)
	return ctx.JSON(c.chatService.List(state))
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	state := serverutils.CurrentSession(ctx)
	res := c.chatService.Create(state)
	if err := c.sessions.Save(ctx); err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	state := serverutils.CurrentSession(ctx)
	res, err := c.chatService.Get(state, ctx.Params("id"))
	if err != nil {
		return ctx.Status(statusForServiceError(err)).JSON(serverutils.ErrorResponse(err.Error()))
	}
	return ctx.JSON(res)
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	state := serverutils.CurrentSession(ctx)
	if err := c.chatService.Delete(state, ctx.Params("id")); err != nil {
		return ctx.Status(statusForServiceError(err)).JSON(serverutils.ErrorResponse(err.Error()))
	}
	if err := c.sessions.Save(ctx); err != nil {
		return err
	}
	return ctx.JSON(&dto.DeleteChatResponse{Message: "Chat deleted successfully"})
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	state := serverutils.CurrentSession(ctx)
	res, err := c.chatService.SendMessage(ctx.Context(), state, ctx.Params("id"), &req)
	if err != nil {
		return ctx.Status(statusForServiceError(err)).JSON(serverutils.ErrorResponse(err.Error()))
	}
	if err := c.sessions.Save(ctx); err != nil {
		return err
	}
	return ctx.JSON(res)
}

// TestGemini is a diagnostic endpoint that round-trips a fixed prompt.
// The gateway absorbs provider failures, so the reply may itself be one of
// the fixed error strings.
func (c *chatController) TestGemini(ctx *fiber.Ctx) error {
	reply := c.gateway.Generate(ctx.Context(), "Say hello!", nil)
	return ctx.JSON(&dto.TestGeminiResponse{
		Status:   "success",
		Response: reply,
	})
}

func statusForServiceError(err error) int {
	switch {
	case errors.Is(err, service.ErrChatNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrEmptyMessage):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
