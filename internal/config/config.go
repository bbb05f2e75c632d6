// Package config provides environment-driven configuration with optional
// .env file support.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all settings for the bot and console binaries. BOT_TOKEN is
// validated by the binary that needs it, not here.
type Config struct {
	BotToken          string
	DatabasePath      string
	ContentPath       string
	TotalTests        int
	QuestionsPerTest  int
	PassingPercentage int
	LogLevel          string
}

// Load reads configuration from environment variables, with a best-effort
// .env file load first.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		DatabasePath: envOrDefault("DB_PATH", "./data/drivetest.db"),
		ContentPath:  os.Getenv("CONTENT_PATH"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.TotalTests, err = envIntOrDefault("TOTAL_TESTS", 25); err != nil {
		return nil, err
	}
	if cfg.QuestionsPerTest, err = envIntOrDefault("QUESTIONS_PER_TEST", 25); err != nil {
		return nil, err
	}
	if cfg.PassingPercentage, err = envIntOrDefault("PASSING_PERCENTAGE", 75); err != nil {
		return nil, err
	}

	if cfg.PassingPercentage > 100 {
		return nil, fmt.Errorf("PASSING_PERCENTAGE must be within 1-100, got %d", cfg.PassingPercentage)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, value)
	}
	return value, nil
}
