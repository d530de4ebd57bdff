package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ChatProviderOpenAI = "openai"
	ChatProviderGemini = "gemini"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT secret shared with the hosted auth service
	JWTSecret string

	// Chat relay
	ChatProvider string
	ChatAPIKey   string
	ChatAPIURL   string
	ChatModel    string
	GeminiAPIKey string
	GeminiModel  string

	// Scoring
	ScoreWindowDays int

	// Logging
	LogLevel string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Env:             getEnvOrDefault("ENV", "development"),
		DatabaseURL:     mustGetEnv("DATABASE_URL"),
		RedisURL:        mustGetEnv("REDIS_URL"),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		ChatProvider:    strings.ToLower(getEnvOrDefault("CHAT_PROVIDER", ChatProviderOpenAI)),
		ChatAPIKey:      os.Getenv("CHAT_API_KEY"),
		ChatAPIURL:      getEnvOrDefault("CHAT_API_URL", "https://api.openai.com/v1"),
		ChatModel:       getEnvOrDefault("CHAT_MODEL", "gpt-3.5-turbo"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		ScoreWindowDays: getEnvAsIntOrDefault("SCORE_WINDOW_DAYS", 7),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

// ChatCredential returns the key for the selected chat provider. Empty means
// the relay runs without an upstream.
func (c *Config) ChatCredential() string {
	if c.ChatProvider == ChatProviderGemini {
		return c.GeminiAPIKey
	}
	return c.ChatAPIKey
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
