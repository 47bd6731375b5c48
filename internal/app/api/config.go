package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the process settings read from the environment. A local
// .env file is honored when present so development does not need exported
// variables.
type Config struct {
	Port string

	JWTSecret string
	TokenTTL  time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	CompanyName  string
	ContactEmail string

	TemporalDisabled bool
}

// LoadConfig reads configuration from .env (if present) and the process
// environment. Environment variables win over .env values.
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		Port:             envOrDefault("PORT", "8080"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TokenTTL:         envDuration("JWT_TTL", 24*time.Hour),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         envOrDefault("SMTP_PORT", "587"),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:         envOrDefault("SMTP_FROM", "cropnesia@gmail.com"),
		CompanyName:      envOrDefault("COMPANY_NAME", "Belandja"),
		ContactEmail:     envOrDefault("CONTACT_EMAIL", "cropnesia@gmail.com"),
		TemporalDisabled: envBool("TEMPORAL_DISABLED"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

func envBool(key string) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return raw == "1"
	}
	return value
}
