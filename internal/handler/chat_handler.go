package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zenithcordai/zenithcordai-backend/internal/models"
	"github.com/zenithcordai/zenithcordai-backend/internal/service"
	"github.com/zenithcordai/zenithcordai-backend/pkg/utils"
)

type ChatHandler struct {
	chatService *service.ChatService
	validator   *utils.Validator
}

func NewChatHandler(chatService *service.ChatService, validator *utils.Validator) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validator,
	}
}

func (h *ChatHandler) DemoChat(c *fiber.Ctx) error {
	var req models.DemoChatRequest
	if err := decodeBody(c, &req); err != nil {
		return invalidJSON(c)
	}

	if err := h.validator.Struct(req); err != nil {
		return validationError(c, fieldIssues(err)...)
	}

	return c.JSON(models.DemoChatResponse{
		Reply: h.chatService.Reply(*req.Message),
	})
}
