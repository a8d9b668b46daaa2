package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Catalog sources.
const (
	CatalogEmbedded = "embedded"
	CatalogCSV      = "csv"
	CatalogSQLite   = "sqlite"
)

// Config holds the configuration for the application.
type Config struct {
	Env  string
	Port string

	CatalogSource string
	CatalogPath   string
	DatabasePath  string
	DefaultDiet   string

	GeminiAPIKey string
	GeminiModel  string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64

	APIJWTSecret       string
	CORSAllowedOrigins []string
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                getenv("APP_ENV", "dev"),
		Port:               getenv("PORT", "8080"),
		CatalogSource:      strings.ToLower(getenv("CATALOG_SOURCE", CatalogEmbedded)),
		CatalogPath:        os.Getenv("CATALOG_PATH"),
		DatabasePath:       os.Getenv("DATABASE_PATH"),
		DefaultDiet:        getenv("DEFAULT_DIET", "Vegetarian"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getenv("GEMINI_MODEL", "gemini-1.5-flash"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
		APIJWTSecret:       os.Getenv("API_JWT_SECRET"),
	}

	switch cfg.CatalogSource {
	case CatalogEmbedded:
	case CatalogCSV:
		if cfg.CatalogPath == "" {
			return nil, fmt.Errorf("CATALOG_PATH environment variable not set")
		}
	case CatalogSQLite:
		if cfg.DatabasePath == "" {
			return nil, fmt.Errorf("DATABASE_PATH environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "data/diet.db"
	}

	ids, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.TelegramAllowedUserIDs = ids
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// AdviceEnabled reports whether an LLM key is configured for plan advice.
func (c *Config) AdviceEnabled() bool {
	return c.GeminiAPIKey != ""
}

// TelegramEnabled reports whether the bot surface should be started.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseUserIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
