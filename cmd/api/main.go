package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zenithcordai/zenithcordai-backend/internal/config"
	"github.com/zenithcordai/zenithcordai-backend/internal/handler"
	"github.com/zenithcordai/zenithcordai-backend/internal/server"
	"github.com/zenithcordai/zenithcordai-backend/internal/service"
	"github.com/zenithcordai/zenithcordai-backend/pkg/email"
	"github.com/zenithcordai/zenithcordai-backend/pkg/logger"
	"github.com/zenithcordai/zenithcordai-backend/pkg/payment"
	"github.com/zenithcordai/zenithcordai-backend/pkg/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly
	envErr := godotenv.Load()

	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if envErr != nil {
		zlog.Debug("no .env file loaded", zap.Error(envErr))
	}
	if cfg.Stripe.SecretKey == "" {
		zlog.Warn("STRIPE_SECRET_KEY is not set, checkout is disabled")
	}

	// Stripe
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey,
		payment.WithAPIURL(cfg.Stripe.APIURL),
		payment.WithLogger(zlog.Named("stripe").Sugar()),
	)

	// Contact notifications are optional
	var notifier service.ContactNotifier
	if cfg.Email.Enabled() {
		emailService, err := email.NewEmailService(
			cfg.Email.ResendAPIKey,
			cfg.Email.FromAddress,
			cfg.Email.FromName,
			cfg.Email.ContactNotifyTo,
			zlog,
		)
		if err != nil {
			zlog.Fatal("failed to build email service", zap.Error(err))
		}
		notifier = emailService
	}

	// Services
	contactService := service.NewContactService(notifier, zlog)
	chatService := service.NewChatService()
	paymentService := service.NewPaymentService(stripeService, cfg, zlog)

	validator := utils.NewValidator()

	app := server.New(cfg, server.Handlers{
		Health:  handler.NewHealthHandler(),
		Contact: handler.NewContactHandler(contactService, validator),
		Chat:    handler.NewChatHandler(chatService, validator),
		Payment: handler.NewPaymentHandler(paymentService),
	}, zlog)

	go func() {
		zlog.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
}
