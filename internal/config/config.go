// Package config provides configuration for the chat backend.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultContextWindow is the number of most recent messages sent to the responder.
const DefaultContextWindow = 10

// Config holds the chat backend configuration.
type Config struct {
	// Server settings
	HTTPPort     int
	InternalPort int

	// Database
	DatabaseURL string

	// LLM upstream
	LLMMode        string
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMTemperature float64
	LLMMaxTokens   int
	LLMTimeout     time.Duration

	// Conversation
	ContextWindow  int
	PersonaFile    string
	AssistantLabel string

	// Auth
	JWTSecret string

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		InternalPort:   getEnvInt("INTERNAL_PORT", 8081),
		DatabaseURL:    getEnv("DATABASE_URL", "file:chatbot.db?cache=shared&mode=rwc"),
		LLMMode:        strings.ToLower(getEnv("LLM_MODE", "")),
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://api.groq.com/openai"),
		LLMAPIKey:      getEnv("LLM_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
		LLMTemperature: getEnvFloat("LLM_TEMPERATURE", 0.7),
		LLMMaxTokens:   getEnvInt("LLM_MAX_TOKENS", 1024),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		ContextWindow:  getEnvInt("CONTEXT_WINDOW", DefaultContextWindow),
		PersonaFile:    getEnv("PERSONA_FILE", ""),
		AssistantLabel: getEnv("EXPORT_ASSISTANT_LABEL", "Assistant"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnvBool("LOG_PRETTY", false),
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = DefaultContextWindow
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
