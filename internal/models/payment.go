package models

import "encoding/json"

type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
)

// DefaultPlan is used when the checkout body carries no plan.
const DefaultPlan = PlanStarter

const fallbackCheckoutError = "checkout session could not be created"

// CheckoutResult carries either the hosted checkout URL or an error message, never both.
type CheckoutResult struct {
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

func CheckoutURL(url string) CheckoutResult {
	return CheckoutResult{URL: url}
}

// CheckoutError never produces an empty error, so a failure is always distinguishable from success.
func CheckoutError(msg string) CheckoutResult {
	if msg == "" {
		msg = fallbackCheckoutError
	}
	return CheckoutResult{Error: msg}
}

// MarshalJSON always emits exactly one of "url" or "error".
func (r CheckoutResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	return json.Marshal(struct {
		URL string `json:"url"`
	}{r.URL})
}
