// ABOUTME: OpenAI client for question embeddings and answer generation
// ABOUTME: Wraps every call with bounded retries, backoff, and a per-attempt timeout
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/documind/documind/internal/util"
)

const (
	// DefaultChatModel is the default model for answer generation
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
}

// Client wraps the OpenAI API client with retry logic
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a new OpenAI client with the given API key using
// default configuration
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a new OpenAI client with custom configuration
func NewClientWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		client:         openai.NewClient(cfg.APIKey),
		chatModel:      chatModel,
		embeddingModel: openai.EmbeddingModel(embeddingModel),
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// EmbedTexts generates one embedding vector per input text, preserving
// input order exactly. Empty input yields empty output without a call.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	var vectors [][]float64

	err := util.Do(ctx, c.maxRetries, c.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: texts,
			Model: c.embeddingModel,
		})
		if err != nil {
			return err
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
		}

		// Place vectors by the index the API reports rather than
		// response position
		vectors = make([][]float64, len(texts))
		for _, data := range resp.Data {
			if data.Index < 0 || data.Index >= len(texts) {
				return fmt.Errorf("embedding index %d out of range", data.Index)
			}
			vec := make([]float64, len(data.Embedding))
			for i, v := range data.Embedding {
				vec[i] = float64(v)
			}
			vectors[data.Index] = vec
		}
		for i, vec := range vectors {
			if vec == nil {
				return fmt.Errorf("no embedding returned for input %d", i)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("generating embeddings: %w", err)
	}

	return vectors, nil
}

// Chat sends a single-prompt completion request and returns the text
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	var answer string

	err := util.Do(ctx, c.maxRetries, c.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}

		answer = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generating completion: %w", err)
	}

	return answer, nil
}
