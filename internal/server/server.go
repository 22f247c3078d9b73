package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenithcordai/zenithcordai-backend/internal/config"
	"github.com/zenithcordai/zenithcordai-backend/internal/handler"
	"github.com/zenithcordai/zenithcordai-backend/internal/middleware"
	"github.com/zenithcordai/zenithcordai-backend/internal/models"
)

type Handlers struct {
	Health  *handler.HealthHandler
	Contact *handler.ContactHandler
	Chat    *handler.ChatHandler
	Payment *handler.PaymentHandler
}

func New(cfg *config.Config, h Handlers, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "zenithcordai-api",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())
	// Wide open for now; narrow CORS_ALLOW_ORIGINS once the frontend domains settle.
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS",
	}))
	if cfg.Server.RateLimitPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.Server.RateLimitPerMinute,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
		}))
	}

	app.Get("/health", h.Health.Health)
	app.Post("/contact", h.Contact.Submit)
	app.Post("/demo-chat", h.Chat.DemoChat)
	app.Post("/create-checkout-session", h.Payment.CreateCheckoutSession)

	return app
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			code = ferr.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(models.DetailResponse{Detail: http.StatusText(code)})
	}
}
