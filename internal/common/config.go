package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Gemini  GeminiConfig
	Extract ExtractConfig
}

// GeminiConfig holds understanding-service configuration
type GeminiConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	Timeout      time.Duration
	PollInterval time.Duration
}

// ExtractConfig holds run-loop behavior: bounded retry with fixed backoff,
// a longer wait after quota errors, and a cooperative inter-request throttle.
type ExtractConfig struct {
	MaxRetries int
	RetryDelay time.Duration
	QuotaWait  time.Duration
	Throttle   time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Gemini: GeminiConfig{
			APIKey:       getEnv("GEMINI_API_KEY", ""),
			BaseURL:      getEnv("GEMINI_BASE_URL", ""),
			Model:        getEnv("GEMINI_MODEL", "gemini-flash-latest"),
			Timeout:      getEnvAsDuration("GEMINI_TIMEOUT", 120*time.Second),
			PollInterval: getEnvAsDuration("GEMINI_POLL_INTERVAL", time.Second),
		},
		Extract: ExtractConfig{
			MaxRetries: getEnvAsInt("EXTRACT_MAX_RETRIES", 3),
			RetryDelay: getEnvAsDuration("EXTRACT_RETRY_DELAY", 2*time.Second),
			QuotaWait:  getEnvAsDuration("EXTRACT_QUOTA_WAIT", 30*time.Second),
			Throttle:   getEnvAsDuration("EXTRACT_THROTTLE", 4*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	if c.Extract.MaxRetries < 1 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MAX_RETRIES must be at least 1", ErrInvalidInput)
	}
	return nil
}
