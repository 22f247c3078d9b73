package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zenithcordai/zenithcordai-backend/internal/models"
	"github.com/zenithcordai/zenithcordai-backend/internal/service"
	"github.com/zenithcordai/zenithcordai-backend/pkg/utils"
)

type ContactHandler struct {
	contactService *service.ContactService
	validator      *utils.Validator
}

func NewContactHandler(contactService *service.ContactService, validator *utils.Validator) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validator:      validator,
	}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req models.ContactSubmission
	if err := decodeBody(c, &req); err != nil {
		return invalidJSON(c)
	}

	if err := h.validator.Struct(req); err != nil {
		return validationError(c, fieldIssues(err)...)
	}

	h.contactService.Submit(c.UserContext(), req)

	return c.JSON(models.OKResponse{OK: true})
}
