package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port                 string
	PostgresURI          string
	JWTSecret            string
	JWTIssuer            string
	JWTAudience          string
	JWTExpirationMinutes int
	AgentAPIToken        string
	ChatWebhookURL       string
	ChatToken            string
	ChatTimeout          time.Duration
	AvatarDir            string
	AvatarURLPrefix      string
	AdminEmail           string
	AdminPassword        string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "3000"),
		PostgresURI:          os.Getenv("POSTGRESQL_URI"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTIssuer:            getEnv("JWT_ISSUER", "taskify-api"),
		JWTAudience:          getEnv("JWT_AUDIENCE", "taskify-client"),
		JWTExpirationMinutes: getEnvInt("JWT_EXPIRATION_MINUTES", 60),
		AgentAPIToken:        os.Getenv("AGENT_API_TOKEN"),
		ChatWebhookURL:       getEnv("CHAT_WEBHOOK_URL", "http://localhost:5005/webhooks/rest/webhook"),
		ChatToken:            os.Getenv("CHAT_TOKEN"),
		ChatTimeout:          time.Duration(getEnvInt("CHAT_TIMEOUT_SECONDS", 15)) * time.Second,
		AvatarDir:            getEnv("AVATAR_DIR", "uploads/avatars"),
		AvatarURLPrefix:      getEnv("AVATAR_URL_PREFIX", "/uploads/avatars"),
		AdminEmail:           getEnv("ADMIN_EMAIL", "admin@taskify.local"),
		AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.PostgresURI == "" {
		return nil, errors.New("POSTGRESQL_URI environment variable is required")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	if cfg.AgentAPIToken == "" {
		return nil, errors.New("AGENT_API_TOKEN environment variable is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
