// ABOUTME: Retrieval stage producing ranked source chunks for a question
// ABOUTME: Resolves the embedding strategy once per request before querying the store
package core

import (
	"context"
	"log/slog"

	"github.com/documind/documind/internal/models"
	"github.com/documind/documind/internal/storage"
)

// NoRelevantDocuments marks the normal zero-result retrieval outcome
const NoRelevantDocuments = "no relevant documents found"

// Embedder produces one vector per input text, preserving order.
// Implemented by llm.Client.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float64, error)
}

// embeddingStrategy names the two valid ways to embed a question.
// Absence of a provider vector is a capability, not an error.
type embeddingStrategy int

const (
	// storeEmbedding delegates embedding to the vector store's
	// internal default model
	storeEmbedding embeddingStrategy = iota
	// providerEmbedding uses a vector from the external provider
	providerEmbedding
)

// questionEmbedding is the per-request resolution of the strategy
type questionEmbedding struct {
	strategy embeddingStrategy
	vector   []float64
}

// Retriever runs the retrieval stage against the vector store
type Retriever struct {
	store    storage.VectorStore
	embedder Embedder // nil when no provider credential is configured
}

// NewRetriever creates a Retriever. embedder may be nil.
func NewRetriever(store storage.VectorStore, embedder Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// resolveEmbedding decides the embedding strategy for this request.
// Provider absence or failure both resolve to the store's own embedding;
// neither fails the request.
func (r *Retriever) resolveEmbedding(ctx context.Context, question string) questionEmbedding {
	if r.embedder == nil {
		return questionEmbedding{strategy: storeEmbedding}
	}

	vectors, err := r.embedder.EmbedTexts(ctx, []string{question})
	if err != nil || len(vectors) != 1 {
		slog.Warn("provider embedding unavailable, using store default", "error", err)
		return questionEmbedding{strategy: storeEmbedding}
	}

	return questionEmbedding{strategy: providerEmbedding, vector: vectors[0]}
}

// Run populates state with ranked retrieval results. Zero matches is a
// normal terminal outcome recorded in state.RetrievalErr; only store
// failures return an error.
func (r *Retriever) Run(ctx context.Context, state *models.QueryState) error {
	state.CurrentStage = models.StageRetrieval

	embedding := r.resolveEmbedding(ctx, state.Question)

	var queryVector []float64
	if embedding.strategy == providerEmbedding {
		queryVector = embedding.vector
	}

	scored, err := r.store.Query(state.Question, state.NResults, queryVector)
	if err != nil {
		return err
	}

	if len(scored) == 0 {
		state.Retrieved = nil
		state.RetrievalErr = NoRelevantDocuments
		return nil
	}

	// Preserve the store's ranking order
	results := make([]models.RetrievalResult, len(scored))
	for i, s := range scored {
		results[i] = models.RetrievalResult{
			Chunk:           s.Record.Chunk.Text,
			FileName:        s.Record.Chunk.FileName,
			ChunkIndex:      s.Record.Chunk.ChunkIndex,
			SimilarityScore: models.ClampScore(1.0 - s.Distance),
		}
	}

	state.Retrieved = results
	state.RetrievalErr = ""
	return nil
}
