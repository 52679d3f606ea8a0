// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Pipeline construction and small formatting utilities
package commands

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/core"
	"github.com/documind/documind/internal/ingest"
	"github.com/documind/documind/internal/llm"
	"github.com/documind/documind/internal/logger"
	"github.com/documind/documind/internal/storage/sqlite"
)

// buildPipeline loads configuration and wires the full pipeline.
// The returned close function releases the vector store.
func buildPipeline() (*core.Pipeline, func(), error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	level := cfg.LogLevel
	if quiet {
		level = "error"
	} else if verbose {
		level = "debug"
	}
	logger.New(logger.Config{Level: level, Format: cfg.LogFormat})

	store, err := sqlite.New(cfg.VectorDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening vector store: %w", err)
	}

	var embedder core.Embedder
	var generator core.Generator
	if cfg.OpenAIKey != "" {
		client, err := llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
		})
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("building provider client: %w", err)
		}
		embedder = client
		generator = client
	}

	pipeline := core.NewPipeline(store, ingest.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap), embedder, generator)
	return pipeline, func() { store.Close() }, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
