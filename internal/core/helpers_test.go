// ABOUTME: Shared fakes for pipeline stage tests
// ABOUTME: Fake provider clients and a canned vector store
package core

import (
	"context"
	"errors"

	"github.com/documind/documind/internal/models"
	"github.com/documind/documind/internal/storage"
)

// fakeEmbedder returns fixed vectors or a configured error
type fakeEmbedder struct {
	vector []float64
	err    error
	calls  int
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

// fakeGenerator returns a fixed response or a configured error
type fakeGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeGenerator) Chat(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeStore serves canned scored records and tracks queries
type fakeStore struct {
	results   []storage.ScoredRecord
	queryErr  error
	lastTopK  int
	lastQuery string
	lastVec   []float64
}

func (f *fakeStore) Insert([]string, []models.Chunk, [][]float64) error { return nil }

func (f *fakeStore) Query(queryText string, topK int, embedding []float64) ([]storage.ScoredRecord, error) {
	f.lastQuery = queryText
	f.lastTopK = topK
	f.lastVec = embedding
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.results, nil
}

func (f *fakeStore) DeleteByFileName(string) (int, error)  { return 0, nil }
func (f *fakeStore) All() ([]models.StoredRecord, error)   { return nil, nil }
func (f *fakeStore) Count() (int, error)                   { return len(f.results), nil }
func (f *fakeStore) FileNames() ([]string, error)          { return nil, nil }
func (f *fakeStore) Close() error                          { return nil }

var errProviderDown = errors.New("provider unavailable")

func scoredRecord(text, fileName string, index int, distance float64) storage.ScoredRecord {
	return storage.ScoredRecord{
		Record: models.StoredRecord{
			ID: "rec-" + fileName,
			Chunk: models.Chunk{
				Text:        text,
				FileName:    fileName,
				ChunkIndex:  index,
				TotalChunks: index + 1,
			},
		},
		Distance: distance,
	}
}
