package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/zenithcordai/zenithcordai-backend/internal/config"
	"github.com/zenithcordai/zenithcordai-backend/internal/models"
	"github.com/zenithcordai/zenithcordai-backend/pkg/payment"
	"github.com/zenithcordai/zenithcordai-backend/pkg/utils"
)

const ProductBrand = "ZenithCordAI"

// ErrMissingSecretKey is returned when checkout is attempted without STRIPE_SECRET_KEY.
var ErrMissingSecretKey = errors.New("Missing STRIPE_SECRET_KEY")

// ProviderError wraps any failure reported by the payment provider.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return payment.ErrorMessage(e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Amounts in pence for plans checked out without a configured Stripe price.
var fallbackAmounts = map[string]int64{
	string(models.PlanStarter): 2500,
	string(models.PlanPro):     4900,
}

type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type PaymentService struct {
	provider    CheckoutProvider
	secretKey   string
	prices      config.PriceIDs
	frontendURL string
	logger      *zap.Logger
}

func NewPaymentService(provider CheckoutProvider, cfg *config.Config, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		provider:    provider,
		secretKey:   cfg.Stripe.SecretKey,
		prices:      cfg.Stripe.Prices,
		frontendURL: cfg.FrontendURL,
		logger:      logger.Named("payment"),
	}
}

// Configured reports whether a Stripe secret key is present.
func (s *PaymentService) Configured() bool {
	return s.secretKey != ""
}

// CreateCheckoutSession never fails at the transport level: every failure is folded into the result.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, plan string) models.CheckoutResult {
	url, err := s.createSession(ctx, plan)
	if err != nil {
		s.logger.Warn("checkout session failed", zap.String("plan", plan), zap.Error(err))
		return models.CheckoutError(err.Error())
	}
	return models.CheckoutURL(url)
}

func (s *PaymentService) createSession(ctx context.Context, plan string) (string, error) {
	if !s.Configured() {
		return "", ErrMissingSecretKey
	}

	params := s.sessionParams(plan)
	cs, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		return "", &ProviderError{Err: err}
	}

	s.logger.Info("checkout session created",
		zap.String("plan", plan),
		zap.String("mode", stripe.StringValue(params.Mode)),
		zap.String("session_id", cs.ID),
	)
	return cs.URL, nil
}

// sessionParams builds a subscription session when the plan has a configured price,
// otherwise a one-time payment with an inline GBP price. Unknown plans take the
// one-time path with a zero amount.
func (s *PaymentService) sessionParams(plan string) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(s.frontendURL + "/pricing?success=true"),
		CancelURL:          stripe.String(s.frontendURL + "/pricing?canceled=true"),
	}

	if priceID := s.prices.Lookup(plan); priceID != "" {
		params.Mode = stripe.String(string(stripe.CheckoutSessionModeSubscription))
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		}
		return params
	}

	params.Mode = stripe.String(string(stripe.CheckoutSessionModePayment))
	params.LineItems = []*stripe.CheckoutSessionLineItemParams{
		{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyGBP)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("%s %s", ProductBrand, utils.Capitalize(plan))),
				},
				UnitAmount: stripe.Int64(fallbackAmounts[plan]),
			},
			Quantity: stripe.Int64(1),
		},
	}
	return params
}
