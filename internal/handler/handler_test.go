package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/zenithcordai/zenithcordai-backend/internal/config"
	"github.com/zenithcordai/zenithcordai-backend/internal/models"
	"github.com/zenithcordai/zenithcordai-backend/internal/service"
	"github.com/zenithcordai/zenithcordai-backend/pkg/email"
	"github.com/zenithcordai/zenithcordai-backend/pkg/utils"
)

type fakeProvider struct {
	calls []*stripe.CheckoutSessionParams
	err   error
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return nil, f.err
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil
}

type fakeNotifier struct {
	sent []email.ContactMessage
}

func (f *fakeNotifier) NotifyContact(_ context.Context, msg email.ContactMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

type testEnv struct {
	app      *fiber.App
	provider *fakeProvider
	notifier *fakeNotifier
}

func setupApp(secretKey string, prices config.PriceIDs) *testEnv {
	cfg := &config.Config{
		FrontendURL: "https://zenith.example",
		Stripe:      config.StripeConfig{SecretKey: secretKey, Prices: prices},
	}
	provider := &fakeProvider{}
	notifier := &fakeNotifier{}
	validator := utils.NewValidator()
	logger := zap.NewNop()

	contact := NewContactHandler(service.NewContactService(notifier, logger), validator)
	chat := NewChatHandler(service.NewChatService(), validator)
	pay := NewPaymentHandler(service.NewPaymentService(provider, cfg, logger))

	app := fiber.New()
	app.Get("/health", NewHealthHandler().Health)
	app.Post("/contact", contact.Submit)
	app.Post("/demo-chat", chat.DemoChat)
	app.Post("/create-checkout-session", pay.CreateCheckoutSession)

	return &testEnv{app: app, provider: provider, notifier: notifier}
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	env := setupApp("", config.PriceIDs{})

	status, body := do(t, env.app, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"ok": true}, body)
}

func TestContactAcceptsValidSubmission(t *testing.T) {
	env := setupApp("", config.PriceIDs{})

	status, body := do(t, env.app, http.MethodPost, "/contact",
		`{"name":"Ada","email":"ada@example.com","message":"`+strings.Repeat("long ", 2000)+`"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"ok": true}, body)
	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, "ada@example.com", env.notifier.sent[0].Email)
}

func TestContactAcceptsEmptyMessage(t *testing.T) {
	env := setupApp("", config.PriceIDs{})

	status, _ := do(t, env.app, http.MethodPost, "/contact", `{"name":"","email":"ada@example.com","message":""}`)

	assert.Equal(t, http.StatusOK, status)
}

func TestContactRejectsInvalidEmail(t *testing.T) {
	env := setupApp("", config.PriceIDs{})

	status, body := do(t, env.app, http.MethodPost, "/contact", `{"name":"Ada","email":"not-an-email","message":"hi"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	detail := body["detail"].([]interface{})
	require.Len(t, detail, 1)
	issue := detail[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"body", "email"}, issue["loc"])
	assert.Equal(t, "value_error.email", issue["type"])
	assert.Empty(t, env.notifier.sent)
}

func TestContactRejectsMissingFields(t *testing.T) {
	env := setupApp("", config.PriceIDs{})

	status, body := do(t, env.app, http.MethodPost, "/contact", `{"email":"ada@example.com"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	detail := body["detail"].([]interface{})
	var missing []interface{}
	for _, d := range detail {
		issue := d.(map[string]interface{})
		assert.Equal(t, "value_error.missing", issue["type"])
		missing = append(missing, issue["loc"].([]interface{})[1])
	}
	assert.ElementsMatch(t, []interface{}{"name", "message"}, missing)
}

func TestContactRejectsMalformedJSON(t *testing.T) {
	env := setupApp("", config.PriceIDs{})

	status, body := do(t, env.app, http.MethodPost, "/contact", `{"name":`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	issue := body["detail"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "value_error.jsondecode", issue["type"])
}

func TestDemoChat(t *testing.T) {
	env := setupApp("", config.PriceIDs{})

	tests := map[string]string{
		"How much does it COST?": service.ReplyPricing,
		"hello, price please":    service.ReplyPricing,
		"Hi there":               service.ReplyGreeting,
		"What can you do?":       service.ReplyFallback,
		"":                       service.ReplyFallback,
	}
	for msg, want := range tests {
		payload, _ := json.Marshal(models.DemoChatRequest{Message: &msg})
		status, body := do(t, env.app, http.MethodPost, "/demo-chat", string(payload))

		assert.Equal(t, http.StatusOK, status, msg)
		assert.Equal(t, want, body["reply"], msg)
	}
}

func TestDemoChatRequiresMessage(t *testing.T) {
	env := setupApp("", config.PriceIDs{})

	status, body := do(t, env.app, http.MethodPost, "/demo-chat", `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	issue := body["detail"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"body", "message"}, issue["loc"])
}

func TestCheckoutMissingSecretKey(t *testing.T) {
	env := setupApp("", config.PriceIDs{Starter: "price_starter"})

	for _, body := range []string{`{"plan":"pro"}`, `{"plan":"free"}`, `{}`, ``, `not json`} {
		status, out := do(t, env.app, http.MethodPost, "/create-checkout-session", body)

		assert.Equal(t, http.StatusOK, status, body)
		assert.Equal(t, map[string]interface{}{"error": "Missing STRIPE_SECRET_KEY"}, out, body)
	}
	assert.Empty(t, env.provider.calls)
}

func TestCheckoutDefaultsToStarter(t *testing.T) {
	for _, body := range []string{``, `null`, `{}`, `{"other":1}`, `[]`} {
		env := setupApp("sk_test_123", config.PriceIDs{})

		status, out := do(t, env.app, http.MethodPost, "/create-checkout-session", body)

		assert.Equal(t, http.StatusOK, status, body)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", out["url"], body)
		require.Len(t, env.provider.calls, 1, body)
		item := env.provider.calls[0].LineItems[0]
		assert.Equal(t, int64(2500), stripe.Int64Value(item.PriceData.UnitAmount), body)
	}
}

func TestCheckoutSubscriptionWithPriceID(t *testing.T) {
	env := setupApp("sk_test_123", config.PriceIDs{Pro: "price_pro"})

	status, out := do(t, env.app, http.MethodPost, "/create-checkout-session", `{"plan":"pro"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"url": "https://checkout.stripe.com/c/pay/cs_test_1"}, out)
	require.Len(t, env.provider.calls, 1)
	assert.Equal(t, "subscription", stripe.StringValue(env.provider.calls[0].Mode))
	assert.Equal(t, "price_pro", stripe.StringValue(env.provider.calls[0].LineItems[0].Price))
}

func TestCheckoutUnknownPlanFallsThroughToZeroAmount(t *testing.T) {
	env := setupApp("sk_test_123", config.PriceIDs{Free: "price_free", Starter: "price_starter", Pro: "price_pro"})

	status, _ := do(t, env.app, http.MethodPost, "/create-checkout-session", `{"plan":"enterprise"}`)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, env.provider.calls, 1)
	params := env.provider.calls[0]
	assert.Equal(t, "payment", stripe.StringValue(params.Mode))
	assert.Equal(t, int64(0), stripe.Int64Value(params.LineItems[0].PriceData.UnitAmount))
	assert.Equal(t, "ZenithCordAI Enterprise", stripe.StringValue(params.LineItems[0].PriceData.ProductData.Name))
}

func TestCheckoutProviderFailureIsReturnedAsPayload(t *testing.T) {
	env := setupApp("sk_test_123", config.PriceIDs{})
	env.provider.err = &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Msg: "Invalid API Key provided"}

	status, out := do(t, env.app, http.MethodPost, "/create-checkout-session", `{"plan":"starter"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"error": "Invalid API Key provided"}, out)
}

func TestCheckoutNonStringPlan(t *testing.T) {
	env := setupApp("sk_test_123", config.PriceIDs{})

	status, out := do(t, env.app, http.MethodPost, "/create-checkout-session", `{"plan":42}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"error": "plan must be a string"}, out)
	assert.Empty(t, env.provider.calls)
}

func TestCheckoutRejectsMalformedBody(t *testing.T) {
	env := setupApp("sk_test_123", config.PriceIDs{})

	for _, body := range []string{`{"plan":`, `["pro"]`, `"pro"`, `7`} {
		status, _ := do(t, env.app, http.MethodPost, "/create-checkout-session", body)
		assert.Equal(t, http.StatusUnprocessableEntity, status, body)
	}
	assert.Empty(t, env.provider.calls)
}

func TestContactReturnsPromptlyWhenNotifierStalls(t *testing.T) {
	release := make(chan struct{})
	resendAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(resendAPI.Close)
	t.Cleanup(func() { close(release) })

	logger := zap.NewNop()
	notifier, err := email.NewEmailService("re_test", "bot@example.com", "ZenithCordAI", "owner@example.com", logger,
		email.WithBaseURL(resendAPI.URL+"/"), email.WithSendTimeout(5*time.Second))
	require.NoError(t, err)

	contact := NewContactHandler(
		service.NewContactService(notifier, logger, service.WithNotifyTimeout(100*time.Millisecond)),
		utils.NewValidator(),
	)
	app := fiber.New()
	app.Post("/contact", contact.Submit)

	start := time.Now()
	status, body := do(t, app, http.MethodPost, "/contact", `{"name":"Ada","email":"ada@example.com","message":"hi"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"ok": true}, body)
	assert.Less(t, time.Since(start), time.Second)
}

type emptySessionProvider struct{}

func (emptySessionProvider) CreateCheckoutSession(context.Context, *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return &stripe.CheckoutSession{ID: "cs_test_2"}, nil
}

func TestCheckoutEmptySessionURLKeepsURLKey(t *testing.T) {
	cfg := &config.Config{FrontendURL: "https://zenith.example", Stripe: config.StripeConfig{SecretKey: "sk_test_123"}}
	pay := NewPaymentHandler(service.NewPaymentService(emptySessionProvider{}, cfg, zap.NewNop()))
	app := fiber.New()
	app.Post("/create-checkout-session", pay.CreateCheckoutSession)

	status, out := do(t, app, http.MethodPost, "/create-checkout-session", `{"plan":"pro"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"url": ""}, out)
}
