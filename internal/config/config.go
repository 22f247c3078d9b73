package config

import (
	"os"
	"strconv"
	"strings"
)

const DefaultFrontendURL = "https://zenithcordai.vercel.app"

type ServerConfig struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowOrigins   string
	RateLimitPerMinute int
}

// PriceIDs holds the Stripe recurring price ids per plan. Empty means not configured.
type PriceIDs struct {
	Free    string
	Starter string
	Pro     string
}

// Lookup returns the price id for plan, or "" for unknown plans.
func (p PriceIDs) Lookup(plan string) string {
	switch plan {
	case "free":
		return p.Free
	case "starter":
		return p.Starter
	case "pro":
		return p.Pro
	}
	return ""
}

type StripeConfig struct {
	SecretKey string
	APIURL    string
	Prices    PriceIDs
}

type EmailConfig struct {
	ResendAPIKey    string
	FromAddress     string
	FromName        string
	ContactNotifyTo string
}

// Enabled reports whether contact notifications can be sent.
func (e EmailConfig) Enabled() bool {
	return e.ResendAPIKey != "" && e.FromAddress != "" && e.ContactNotifyTo != ""
}

type Config struct {
	Server      ServerConfig
	FrontendURL string
	Stripe      StripeConfig
	Email       EmailConfig
}

// LoadConfig reads the process environment once. Callers treat the result as read-only.
func LoadConfig() *Config {
	cfg := &Config{}

	cfg.Server.Port = getEnv("PORT", "")
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	cfg.Server.Env = getEnv("APP_ENV", "development")
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.Server.CORSAllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	cfg.Server.RateLimitPerMinute = getInt("RATE_LIMIT_PER_MINUTE", 0)

	cfg.FrontendURL = strings.TrimRight(getEnv("FRONTEND_URL", DefaultFrontendURL), "/")

	// Stripe config
	cfg.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	cfg.Stripe.APIURL = getEnv("STRIPE_API_URL", "")
	cfg.Stripe.Prices = PriceIDs{
		Free:    getEnv("PRICE_FREE", ""),
		Starter: getEnv("PRICE_STARTER", ""),
		Pro:     getEnv("PRICE_PRO", ""),
	}

	// Resend config
	cfg.Email.ResendAPIKey = getEnv("RESEND_API_KEY", "")
	cfg.Email.FromAddress = getEnv("EMAIL_FROM_ADDRESS", "")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "ZenithCordAI")
	cfg.Email.ContactNotifyTo = getEnv("CONTACT_NOTIFY_TO", "")

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
