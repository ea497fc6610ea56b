package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration, read once at startup and
// passed explicitly to components.
type Config struct {
	ServiceName      string
	Env              string
	Port             string
	KeyID            string
	KeySecret        string
	ProcessorBaseURL string
	CORSOrigins      []string
	RateLimitMax     int
	RateLimitWindow  time.Duration
	OTELEndpoint     string
}

// ErrMissingCredentials is returned when the processor key id or secret
// is not configured.
var ErrMissingCredentials = errors.New("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")

// Load reads configuration from environment variables. A missing
// processor credential is an error so the caller can fail startup.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")

	cfg := &Config{
		ServiceName:      "checkout-service",
		Env:              v.GetString("APP_ENV"),
		Port:             v.GetString("PORT"),
		KeyID:            v.GetString("RAZORPAY_KEY_ID"),
		KeySecret:        v.GetString("RAZORPAY_KEY_SECRET"),
		ProcessorBaseURL: v.GetString("RAZORPAY_BASE_URL"),
		CORSOrigins:      splitCSV(v.GetString("CORS_ORIGINS")),
		RateLimitMax:     v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:  v.GetDuration("RATE_LIMIT_WINDOW"),
		OTELEndpoint:     v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, ErrMissingCredentials
	}
	return cfg, nil
}

func splitCSV(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
