// ABOUTME: Pipeline wires ingestion and query stages over the vector store
// ABOUTME: Each request runs the stages as a strictly sequential chain
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/documind/documind/internal/ingest"
	"github.com/documind/documind/internal/models"
	"github.com/documind/documind/internal/storage"
)

// Pipeline holds the collaborators shared by all requests. The vector
// store is the only shared mutable state; everything per-request lives
// in a QueryState.
type Pipeline struct {
	store       storage.VectorStore
	splitter    *ingest.Splitter
	embedder    Embedder  // nil when no provider credential is configured
	retriever   *Retriever
	synthesizer *Synthesizer
	expander    *Expander
}

// NewPipeline creates the pipeline. embedder and generator may be nil;
// the pipeline then runs fully on the store's internal embedding and
// templated answers.
func NewPipeline(store storage.VectorStore, splitter *ingest.Splitter, embedder Embedder, generator Generator) *Pipeline {
	return &Pipeline{
		store:       store,
		splitter:    splitter,
		embedder:    embedder,
		retriever:   NewRetriever(store, embedder),
		synthesizer: NewSynthesizer(generator),
		expander:    NewExpander(generator),
	}
}

// ErrParse marks failures to extract usable text from a document.
// Callers use it to distinguish bad input from store failures.
var ErrParse = errors.New("could not extract text")

// IngestFile parses, chunks, embeds, and stores one document.
// Returns the stored chunks. Parse failures and store failures are
// surfaced; embedding failures are not.
func (p *Pipeline) IngestFile(ctx context.Context, path, fileName string) ([]models.Chunk, error) {
	text, err := ingest.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %v", ErrParse, fileName, err)
	}
	return p.IngestText(ctx, text, fileName, path)
}

// IngestText chunks and stores already-extracted document text.
func (p *Pipeline) IngestText(ctx context.Context, text, fileName, sourcePath string) ([]models.Chunk, error) {
	chunks := p.splitter.Split(text, fileName, sourcePath)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w from %s: document is empty", ErrParse, fileName)
	}

	ids := make([]string, len(chunks))
	for i := range chunks {
		ids[i] = uuid.New().String()
	}

	// Capability branch: provider embeddings when available, otherwise
	// the store computes its own
	var embeddings [][]float64
	if p.embedder != nil {
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Text
		}
		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			slog.Warn("provider embedding unavailable during ingest, using store default", "error", err)
		} else {
			embeddings = vectors
		}
	}

	if err := p.store.Insert(ids, chunks, embeddings); err != nil {
		return nil, fmt.Errorf("storing chunks for %s: %w", fileName, err)
	}

	slog.Info("document ingested", "file", fileName, "chunks", len(chunks))
	return chunks, nil
}

// Answer runs the query pipeline: retrieval then synthesis, threading
// one QueryState through both. Only store failures return an error.
func (p *Pipeline) Answer(ctx context.Context, question string, nResults int) (*models.QueryState, error) {
	state := models.NewQueryState(question, nResults)

	if err := p.retriever.Run(ctx, state); err != nil {
		return nil, fmt.Errorf("retrieving documents: %w", err)
	}

	p.synthesizer.Run(ctx, state)
	return state, nil
}

// ExpandQuery returns the question plus generated paraphrases.
func (p *Pipeline) ExpandQuery(ctx context.Context, question string, count int) []string {
	return p.expander.Expand(ctx, question, count)
}

// SupportedFile reports whether the upload surface accepts this name.
func SupportedFile(fileName string) bool {
	_, err := ingest.ParserFor(filepath.Base(fileName))
	return err == nil
}
