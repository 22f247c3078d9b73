package handler

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/zenithcordai/zenithcordai-backend/internal/models"
	"github.com/zenithcordai/zenithcordai-backend/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreateCheckoutSession answers 200 with {"url"} or {"error"}. Only an
// undecodable or non-object body is rejected at the transport level.
func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	if !h.paymentService.Configured() {
		return c.JSON(models.CheckoutError(service.ErrMissingSecretKey.Error()))
	}

	var payload interface{}
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := decodeBody(c, &payload); err != nil {
			return invalidJSON(c)
		}
	}

	plan := string(models.DefaultPlan)
	switch v := payload.(type) {
	case map[string]interface{}:
		if raw, ok := v["plan"]; ok {
			s, ok := raw.(string)
			if !ok {
				return c.JSON(models.CheckoutError("plan must be a string"))
			}
			plan = s
		}
	default:
		// Empty JSON values (null, false, 0, "", []) fall back to the default plan.
		if !isEmptyJSON(v) {
			return validationError(c, bodyIssue("body must be a JSON object", "type_error.dict"))
		}
	}

	return c.JSON(h.paymentService.CreateCheckoutSession(c.UserContext(), plan))
}

func isEmptyJSON(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	}
	return false
}
