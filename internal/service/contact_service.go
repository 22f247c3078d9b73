package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zenithcordai/zenithcordai-backend/internal/models"
	"github.com/zenithcordai/zenithcordai-backend/pkg/email"
)

type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg email.ContactMessage) error
}

// DefaultNotifyTimeout caps how long a contact request waits on the notifier.
const DefaultNotifyTimeout = 5 * time.Second

type ContactService struct {
	notifier      ContactNotifier
	notifyTimeout time.Duration
	logger        *zap.Logger
}

type ContactOption func(*ContactService)

func WithNotifyTimeout(d time.Duration) ContactOption {
	return func(s *ContactService) {
		s.notifyTimeout = d
	}
}

// NewContactService accepts a nil notifier, in which case submissions are only logged.
func NewContactService(notifier ContactNotifier, logger *zap.Logger, opts ...ContactOption) *ContactService {
	s := &ContactService{
		notifier:      notifier,
		notifyTimeout: DefaultNotifyTimeout,
		logger:        logger.Named("contact"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records a validated submission. Notification failures are logged, not returned.
func (s *ContactService) Submit(ctx context.Context, sub models.ContactSubmission) {
	msg := email.ContactMessage{
		Name:    deref(sub.Name),
		Email:   deref(sub.Email),
		Message: deref(sub.Message),
	}

	s.logger.Info("contact submission",
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("message", msg.Message),
	)

	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyContact(ctx, msg); err != nil {
		s.logger.Error("contact notification failed", zap.String("email", msg.Email), zap.Error(err))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
