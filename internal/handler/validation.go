package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zenithcordai/zenithcordai-backend/internal/models"
	"github.com/zenithcordai/zenithcordai-backend/pkg/utils"
)

// decodeBody decodes the raw request body with the app's JSON decoder regardless of Content-Type.
func decodeBody(c *fiber.Ctx, out interface{}) error {
	return c.App().Config().JSONDecoder(c.Body(), out)
}

func validationError(c *fiber.Ctx, issues ...models.ValidationIssue) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationErrorResponse{Detail: issues})
}

func bodyIssue(msg, typ string) models.ValidationIssue {
	return models.ValidationIssue{Loc: []string{"body"}, Msg: msg, Type: typ}
}

func invalidJSON(c *fiber.Ctx) error {
	return validationError(c, bodyIssue("invalid JSON body", "value_error.jsondecode"))
}

func fieldIssues(err error) []models.ValidationIssue {
	fields := utils.FieldErrors(err)
	if len(fields) == 0 {
		return []models.ValidationIssue{bodyIssue(err.Error(), "value_error")}
	}

	issues := make([]models.ValidationIssue, 0, len(fields))
	for _, f := range fields {
		issue := models.ValidationIssue{Loc: []string{"body", f.Field}}
		switch f.Tag {
		case "required":
			issue.Msg, issue.Type = "field required", "value_error.missing"
		case "email":
			issue.Msg, issue.Type = "value is not a valid email address", "value_error.email"
		default:
			issue.Msg, issue.Type = "failed on the '"+f.Tag+"' rule", "value_error."+f.Tag
		}
		issues = append(issues, issue)
	}
	return issues
}
