// ABOUTME: Centralized configuration for the DocuMind document Q&A service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the service
type Config struct {
	// Server settings
	Port int

	// OpenAI settings; an empty APIKey disables provider embeddings
	// and answer generation (the pipeline degrades, it does not fail)
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Vector collection settings
	VectorDir    string
	ChunkSize    int
	ChunkOverlap int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		Port:           getEnvInt("DOCUMIND_PORT", 8000),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("DOCUMIND_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: getEnv("DOCUMIND_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		VectorDir:      getEnv("DOCUMIND_VECTOR_DIR", "./vector_store"),
		ChunkSize:      getEnvInt("DOCUMIND_CHUNK_SIZE", 1000),
		ChunkOverlap:   getEnvInt("DOCUMIND_CHUNK_OVERLAP", 200),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("DOCUMIND_PORT must be 1-65535, got %d", c.Port)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("DOCUMIND_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("DOCUMIND_CHUNK_OVERLAP must be non-negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("DOCUMIND_CHUNK_OVERLAP (%d) must be smaller than DOCUMIND_CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.VectorDir == "" {
		return fmt.Errorf("DOCUMIND_VECTOR_DIR must not be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
