package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

type StripeService struct {
	sessions *session.Client
}

type StripeOption func(*stripe.BackendConfig)

// WithAPIURL points the client at another Stripe API base, e.g. stripe-mock.
func WithAPIURL(url string) StripeOption {
	return func(cfg *stripe.BackendConfig) {
		if url != "" {
			cfg.URL = stripe.String(url)
		}
	}
}

// WithLogger routes Stripe client logs through logger. *zap.SugaredLogger satisfies the interface.
func WithLogger(logger stripe.LeveledLoggerInterface) StripeOption {
	return func(cfg *stripe.BackendConfig) {
		cfg.LeveledLogger = logger
	}
}

// NewStripeService builds a client bound to secretKey. Network retries are disabled.
func NewStripeService(secretKey string, opts ...StripeOption) *StripeService {
	cfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
	return &StripeService{
		sessions: &session.Client{B: backend, Key: secretKey},
	}
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx

	cs, err := s.sessions.New(params)
	if err != nil {
		return nil, err
	}

	return cs, nil
}

// ErrorMessage returns the human readable part of a Stripe failure.
func ErrorMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
