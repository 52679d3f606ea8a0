// ABOUTME: Main entry point for the DocuMind HTTP server
// ABOUTME: Wires config, logging, the vector store, and the pipeline
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/documind/documind/internal/api"
	"github.com/documind/documind/internal/config"
	"github.com/documind/documind/internal/core"
	"github.com/documind/documind/internal/ingest"
	"github.com/documind/documind/internal/llm"
	"github.com/documind/documind/internal/logger"
	"github.com/documind/documind/internal/storage/sqlite"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	store, err := sqlite.New(cfg.VectorDir)
	if err != nil {
		slog.Error("failed to open vector store", "dir", cfg.VectorDir, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Without a credential the pipeline degrades to store embeddings
	// and templated answers rather than failing
	var client *llm.Client
	if cfg.OpenAIKey == "" {
		slog.Warn("OPENAI_API_KEY not set, running without provider embeddings and answer generation")
	} else {
		client, err = llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			ChatModel:      cfg.ChatModel,
			EmbeddingModel: cfg.EmbeddingModel,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
		})
		if err != nil {
			slog.Error("failed to build provider client", "error", err)
			os.Exit(1)
		}
	}

	var embedder core.Embedder
	var generator core.Generator
	if client != nil {
		embedder = client
		generator = client
	}

	pipeline := core.NewPipeline(store, ingest.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap), embedder, generator)
	server := api.NewServer(pipeline, cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}
}
